package payment

import (
	"context"

	"gorm.io/gorm"

	"concurso-backend/entities"
)

type (
	PaymentRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.Transaction) error
		GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error)
		UpdateTransaction(ctx context.Context, tx *entities.Transaction) error
		GetTransactionsByUser(ctx context.Context, userID string) ([]*entities.Transaction, error)
		GetAllTransactions(ctx context.Context) ([]*entities.Transaction, error)
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateTransaction(ctx context.Context, tx *entities.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *paymentRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error) {
	var tx entities.Transaction
	if err := r.db.WithContext(ctx).Preload("Company").Preload("User").Where("order_id = ?", orderID).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *paymentRepository) UpdateTransaction(ctx context.Context, tx *entities.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *paymentRepository) GetTransactionsByUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	var txs []*entities.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *paymentRepository) GetAllTransactions(ctx context.Context) ([]*entities.Transaction, error) {
	var txs []*entities.Transaction
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
