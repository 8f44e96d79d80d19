package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
	"concurso-backend/internal/queue"
	"concurso-backend/internal/utils"
	"concurso-backend/pkg/company"
	"concurso-backend/pkg/sample"
)

type (
	PaymentService interface {
		CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (domain.CreatePaymentResponse, error)
		HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error
		GetPayments(ctx context.Context, userID string, role string) ([]domain.PaymentResponse, error)
	}

	paymentService struct {
		paymentRepository PaymentRepository
		companyRepository company.CompanyRepository
		sampleRepository  sample.SampleRepository
		snapClient        snap.Client
		mailClient        *asynq.Client
	}
)

func NewPaymentService(
	paymentRepository PaymentRepository,
	companyRepository company.CompanyRepository,
	sampleRepository sample.SampleRepository,
	mailClient *asynq.Client,
) PaymentService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(utils.GetConfig("SERVER_KEY"), env)

	return &paymentService{
		paymentRepository: paymentRepository,
		companyRepository: companyRepository,
		sampleRepository:  sampleRepository,
		snapClient:        client,
		mailClient:        mailClient,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (domain.CreatePaymentResponse, error) {
	comp, err := s.companyRepository.GetCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CreatePaymentResponse{}, domain.ErrCompanyNotFound
		}
		return domain.CreatePaymentResponse{}, err
	}

	if comp.UserID.String() != userID {
		return domain.CreatePaymentResponse{}, domain.ErrUnauthorizedAccess
	}

	count, err := s.sampleRepository.CountPendingPayment(ctx, req.CompanyID)
	if err != nil {
		return domain.CreatePaymentResponse{}, err
	}
	if count == 0 {
		return domain.CreatePaymentResponse{}, domain.ErrNoSamplesToPay
	}

	fee, err := strconv.ParseInt(utils.GetConfig("INSCRIPTION_FEE"), 10, 64)
	if err != nil || fee <= 0 {
		fee = 50000
	}
	amount := fee * count

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CreatePaymentResponse{}, domain.ErrParseUUID
	}

	orderID := fmt.Sprintf("%s-%s-%d",
		utils.GetConfig("CONTEST_SHORT_NAME"), comp.ID.String()[:8], time.Now().Unix())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    comp.ID.String(),
				Name:  fmt.Sprintf("Inscription - %s", comp.Name),
				Price: fee,
				Qty:   int32(count),
			},
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return domain.CreatePaymentResponse{}, domain.ErrPaymentFailed
	}

	tx := &entities.Transaction{
		ID:         uuid.New(),
		UserID:     userUUID,
		CompanyID:  comp.ID,
		OrderID:    orderID,
		Amount:     amount,
		Status:     "pending",
		InvoiceURL: snapResp.RedirectURL,
	}

	if err := s.paymentRepository.CreateTransaction(ctx, tx); err != nil {
		return domain.CreatePaymentResponse{}, err
	}

	return domain.CreatePaymentResponse{
		TransactionID: tx.ID.String(),
		OrderID:       orderID,
		Amount:        amount,
		InvoiceURL:    snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error {
	tx, err := s.paymentRepository.GetTransactionByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	status := tx.Status
	switch req.TransactionStatus {
	case "capture":
		if req.FraudStatus == "accept" {
			status = "settlement"
		}
	case "settlement":
		status = "settlement"
	case "deny", "cancel":
		status = "cancel"
	case "expire":
		status = "expire"
	case "pending":
		status = "pending"
	}

	if status == tx.Status {
		return nil
	}

	tx.Status = status
	if err := s.paymentRepository.UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	if status == "settlement" {
		s.sendReceiptMail(ctx, tx)
	}
	return nil
}

func (s *paymentService) GetPayments(ctx context.Context, userID string, role string) ([]domain.PaymentResponse, error) {
	var (
		txs []*entities.Transaction
		err error
	)
	if role == domain.RoleAdmin {
		txs, err = s.paymentRepository.GetAllTransactions(ctx)
	} else {
		txs, err = s.paymentRepository.GetTransactionsByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.PaymentResponse, 0, len(txs))
	for _, tx := range txs {
		result = append(result, domain.PaymentResponse{
			ID:         tx.ID.String(),
			OrderID:    tx.OrderID,
			CompanyID:  tx.CompanyID.String(),
			Amount:     tx.Amount,
			Status:     tx.Status,
			InvoiceURL: tx.InvoiceURL,
		})
	}
	return result, nil
}

func (s *paymentService) sendReceiptMail(ctx context.Context, tx *entities.Transaction) {
	if tx.User == nil {
		return
	}

	companyName := ""
	if tx.Company != nil {
		companyName = tx.Company.Name
	}

	body := fmt.Sprintf(
		"<p>Hemos recibido el pago de la inscripcion de %s.</p><p>Orden: %s<br>Importe: %d</p>",
		companyName, tx.OrderID, tx.Amount,
	)

	if err := queue.EnqueueSendMail(ctx, s.mailClient, queue.SendMailPayload{
		To:      tx.User.Email,
		Subject: "Pago de inscripcion confirmado",
		Body:    body,
	}); err != nil {
		fmt.Printf("Error enqueueing receipt mail: %v\n", err)
	}
}
