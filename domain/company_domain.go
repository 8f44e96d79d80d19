package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessCreateCompany = "company created successfully"
	MessageSuccessUpdateCompany = "company updated successfully"
	MessageSuccessDeleteCompany = "company deleted successfully"
	MessageSuccessGetCompanies  = "companies retrieved successfully"
	MessageSuccessUploadLogo    = "company logo uploaded successfully"

	MessageFailedCreateCompany = "failed to create company"
	MessageFailedUpdateCompany = "failed to update company"
	MessageFailedDeleteCompany = "failed to delete company"
	MessageFailedGetCompanies  = "failed to retrieve companies"
	MessageFailedUploadLogo    = "failed to upload company logo"

	ErrCompanyNotFound    = errors.New("company not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to resource")
)

type (
	CreateCompanyRequest struct {
		Name         string `json:"name" validate:"required"`
		TaxID        string `json:"tax_id" validate:"required"`
		ContactEmail string `json:"contact_email" validate:"required,email"`
		ContactPhone string `json:"contact_phone" validate:"omitempty"`
		Address      string `json:"address" validate:"omitempty"`
		Country      string `json:"country" validate:"omitempty"`
	}

	UpdateCompanyRequest struct {
		Name         string `json:"name" validate:"omitempty"`
		TaxID        string `json:"tax_id" validate:"omitempty"`
		ContactEmail string `json:"contact_email" validate:"omitempty,email"`
		ContactPhone string `json:"contact_phone" validate:"omitempty"`
		Address      string `json:"address" validate:"omitempty"`
		Country      string `json:"country" validate:"omitempty"`
	}

	UploadCompanyLogoRequest struct {
		CompanyID string                `json:"company_id" form:"company_id" validate:"required,uuid"`
		Logo      *multipart.FileHeader `json:"logo" form:"logo" validate:"required"`
	}

	CompanyResponse struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		TaxID        string `json:"tax_id"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
		Address      string `json:"address"`
		Country      string `json:"country"`
		LogoURL      string `json:"logo_url,omitempty"`
		SampleCount  int    `json:"sample_count"`
	}
)
