package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
	"concurso-backend/internal/utils/storage"
)

type (
	CompanyService interface {
		CreateCompany(ctx context.Context, req domain.CreateCompanyRequest, userID string) (domain.CompanyResponse, error)
		UpdateCompany(ctx context.Context, id string, req domain.UpdateCompanyRequest, userID, role string) error
		DeleteCompany(ctx context.Context, id string, userID, role string) error
		GetCompanies(ctx context.Context, userID, role string, page, limit int) ([]domain.CompanyResponse, int64, error)
		GetCompanyByID(ctx context.Context, id string, userID, role string) (domain.CompanyResponse, error)
		UploadLogo(ctx context.Context, req domain.UploadCompanyLogoRequest, userID, role string) error
	}

	companyService struct {
		companyRepository CompanyRepository
		s3                storage.AwsS3
	}
)

func NewCompanyService(companyRepository CompanyRepository, s3 storage.AwsS3) CompanyService {
	return &companyService{
		companyRepository: companyRepository,
		s3:                s3,
	}
}

func canAccess(company *entities.Company, userID, role string) bool {
	return role == domain.RoleAdmin || company.UserID.String() == userID
}

func (s *companyService) CreateCompany(ctx context.Context, req domain.CreateCompanyRequest, userID string) (domain.CompanyResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CompanyResponse{}, domain.ErrParseUUID
	}

	company := &entities.Company{
		ID:           uuid.New(),
		UserID:       userUUID,
		Name:         req.Name,
		TaxID:        req.TaxID,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Country:      req.Country,
	}

	if err := s.companyRepository.CreateCompany(ctx, company); err != nil {
		return domain.CompanyResponse{}, err
	}

	return companyToResponse(company), nil
}

func (s *companyService) UpdateCompany(ctx context.Context, id string, req domain.UpdateCompanyRequest, userID, role string) error {
	company, err := s.companyRepository.GetCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCompanyNotFound
		}
		return err
	}

	if !canAccess(company, userID, role) {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.TaxID != "" {
		company.TaxID = req.TaxID
	}
	if req.ContactEmail != "" {
		company.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		company.ContactPhone = req.ContactPhone
	}
	if req.Address != "" {
		company.Address = req.Address
	}
	if req.Country != "" {
		company.Country = req.Country
	}

	return s.companyRepository.UpdateCompany(ctx, company)
}

func (s *companyService) DeleteCompany(ctx context.Context, id string, userID, role string) error {
	company, err := s.companyRepository.GetCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCompanyNotFound
		}
		return err
	}

	if !canAccess(company, userID, role) {
		return domain.ErrUnauthorizedAccess
	}

	if company.LogoURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(company.LogoURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.companyRepository.DeleteCompany(ctx, id)
}

func (s *companyService) GetCompanies(ctx context.Context, userID, role string, page, limit int) ([]domain.CompanyResponse, int64, error) {
	ownerFilter := userID
	if role == domain.RoleAdmin {
		ownerFilter = ""
	}

	companies, count, err := s.companyRepository.GetCompanies(ctx, ownerFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		response = append(response, companyToResponse(company))
	}
	return response, count, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, id string, userID, role string) (domain.CompanyResponse, error) {
	company, err := s.companyRepository.GetCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CompanyResponse{}, domain.ErrCompanyNotFound
		}
		return domain.CompanyResponse{}, err
	}

	if !canAccess(company, userID, role) {
		return domain.CompanyResponse{}, domain.ErrUnauthorizedAccess
	}

	return companyToResponse(company), nil
}

func (s *companyService) UploadLogo(ctx context.Context, req domain.UploadCompanyLogoRequest, userID, role string) error {
	company, err := s.companyRepository.GetCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCompanyNotFound
		}
		return err
	}

	if !canAccess(company, userID, role) {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("company-logo-%s", company.ID.String())
	var objectKey string
	var uploadErr error

	if company.LogoURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(company.LogoURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Logo, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Logo, "company-logos", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Logo, "company-logos", storage.AllowImage...)
	}
	if uploadErr != nil {
		return uploadErr
	}

	company.LogoURL = s.s3.GetPublicLinkKey(objectKey)
	return s.companyRepository.UpdateCompany(ctx, company)
}

func companyToResponse(company *entities.Company) domain.CompanyResponse {
	return domain.CompanyResponse{
		ID:           company.ID.String(),
		Name:         company.Name,
		TaxID:        company.TaxID,
		ContactEmail: company.ContactEmail,
		ContactPhone: company.ContactPhone,
		Address:      company.Address,
		Country:      company.Country,
		LogoURL:      company.LogoURL,
		SampleCount:  len(company.Samples),
	}
}
