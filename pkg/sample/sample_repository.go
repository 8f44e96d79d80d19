package sample

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"concurso-backend/entities"
)

type (
	SampleRepository interface {
		CreateSample(ctx context.Context, sample *entities.Sample) error
		GetSampleByID(ctx context.Context, id string) (*entities.Sample, error)
		UpdateSample(ctx context.Context, sample *entities.Sample) error
		DeleteSample(ctx context.Context, id string) error
		GetSamples(ctx context.Context, filter SampleFilter, page, limit int) ([]*entities.Sample, int64, error)
		GetSamplesByIDs(ctx context.Context, ids []string) ([]*entities.Sample, error)
		GetAllSamples(ctx context.Context) ([]*entities.Sample, error)
		CountPendingPayment(ctx context.Context, companyID string) (int64, error)
		MaxAssignedBarcode(ctx context.Context, prefix string) (string, error)
		GetReceptionStats(ctx context.Context) (map[string]interface{}, error)
	}

	SampleFilter struct {
		CompanyID string
		UserID    string // restricts to samples of companies owned by this user
		Category  string
		Received  *bool
	}

	sampleRepository struct {
		db *gorm.DB
	}
)

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db: db}
}

func (r *sampleRepository) CreateSample(ctx context.Context, sample *entities.Sample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *sampleRepository) GetSampleByID(ctx context.Context, id string) (*entities.Sample, error) {
	var sample entities.Sample
	if err := r.db.WithContext(ctx).Preload("Company").Where("id = ?", id).First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *sampleRepository) UpdateSample(ctx context.Context, sample *entities.Sample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

func (r *sampleRepository) DeleteSample(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Sample{}).Error
}

func (r *sampleRepository) GetSamples(ctx context.Context, filter SampleFilter, page, limit int) ([]*entities.Sample, int64, error) {
	var samples []*entities.Sample
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Sample{})
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.UserID != "" {
		query = query.Where(
			"company_id IN (?)",
			r.db.Model(&entities.Company{}).Select("id").Where("user_id = ?", filter.UserID),
		)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Received != nil {
		query = query.Where("received = ?", *filter.Received)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Company").
		Offset(offset).Limit(limit).
		Order("created_at asc").
		Find(&samples).Error; err != nil {
		return nil, 0, err
	}

	return samples, count, nil
}

func (r *sampleRepository) GetSamplesByIDs(ctx context.Context, ids []string) ([]*entities.Sample, error) {
	var samples []*entities.Sample
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepository) GetAllSamples(ctx context.Context) ([]*entities.Sample, error) {
	var samples []*entities.Sample
	if err := r.db.WithContext(ctx).Preload("Company").Order("created_at asc").Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepository) CountPendingPayment(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Sample{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *sampleRepository) MaxAssignedBarcode(ctx context.Context, prefix string) (string, error) {
	var barcode string
	err := r.db.WithContext(ctx).Model(&entities.Sample{}).
		Where("barcode LIKE ?", prefix+"%").
		Select("COALESCE(MAX(barcode), '')").
		Scan(&barcode).Error
	return strings.TrimSpace(barcode), err
}

func (r *sampleRepository) GetReceptionStats(ctx context.Context) (map[string]interface{}, error) {
	var total, received int64

	if err := r.db.WithContext(ctx).Model(&entities.Sample{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entities.Sample{}).
		Where("received = ?", true).
		Count(&received).Error; err != nil {
		return nil, err
	}

	type categoryCount struct {
		Category string
		Count    int64
	}
	var rows []categoryCount
	if err := r.db.WithContext(ctx).Model(&entities.Sample{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[string]int64, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = row.Count
	}

	return map[string]interface{}{
		"total_samples":    total,
		"received_samples": received,
		"pending_samples":  total - received,
		"by_category":      byCategory,
	}, nil
}
