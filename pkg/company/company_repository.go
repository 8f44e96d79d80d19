package company

import (
	"context"

	"gorm.io/gorm"

	"concurso-backend/entities"
)

type (
	CompanyRepository interface {
		CreateCompany(ctx context.Context, company *entities.Company) error
		GetCompanyByID(ctx context.Context, id string) (*entities.Company, error)
		UpdateCompany(ctx context.Context, company *entities.Company) error
		DeleteCompany(ctx context.Context, id string) error
		GetCompanies(ctx context.Context, userID string, page, limit int) ([]*entities.Company, int64, error)
	}

	companyRepository struct {
		db *gorm.DB
	}
)

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) CreateCompany(ctx context.Context, company *entities.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetCompanyByID(ctx context.Context, id string) (*entities.Company, error) {
	var company entities.Company
	if err := r.db.WithContext(ctx).Preload("Samples").Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) UpdateCompany(ctx context.Context, company *entities.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) DeleteCompany(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Company{}).Error
}

func (r *companyRepository) GetCompanies(ctx context.Context, userID string, page, limit int) ([]*entities.Company, int64, error) {
	var companies []*entities.Company
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Company{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Samples").Offset(offset).Limit(limit).Order("name asc").Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, count, nil
}
