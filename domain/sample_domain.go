package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateSample   = "sample created successfully"
	MessageSuccessUpdateSample   = "sample updated successfully"
	MessageSuccessDeleteSample   = "sample deleted successfully"
	MessageSuccessGetSamples     = "samples retrieved successfully"
	MessageSuccessAssignBarcode  = "barcode assigned successfully"
	MessageSuccessUploadSheet    = "tech sheet uploaded successfully"
	MessageSuccessGetStats       = "reception statistics retrieved successfully"
	MessageSuccessExportSamples  = "samples exported successfully"

	MessageFailedCreateSample  = "failed to create sample"
	MessageFailedUpdateSample  = "failed to update sample"
	MessageFailedDeleteSample  = "failed to delete sample"
	MessageFailedGetSamples    = "failed to retrieve samples"
	MessageFailedAssignBarcode = "failed to assign barcode"
	MessageFailedUploadSheet   = "failed to upload tech sheet"
	MessageFailedGetStats      = "failed to retrieve reception statistics"
	MessageFailedExportSamples = "failed to export samples"

	ErrSampleNotFound        = errors.New("sample not found")
	ErrInvalidCategory       = errors.New("invalid sample category")
	ErrBarcodeAlreadySet     = errors.New("sample already has a barcode")
	ErrSampleAlreadyReceived = errors.New("sample already received")
)

var SampleCategories = []string{"Wine", "Spirit", "OliveOil"}

type (
	CreateSampleRequest struct {
		CompanyID string `json:"company_id" validate:"required,uuid"`
		Name      string `json:"name" validate:"required"`
		Category  string `json:"category" validate:"required,oneof=Wine Spirit OliveOil"`
		Vintage   int    `json:"vintage" validate:"omitempty,min=1900"`
	}

	UpdateSampleRequest struct {
		Name     string `json:"name" validate:"omitempty"`
		Category string `json:"category" validate:"omitempty,oneof=Wine Spirit OliveOil"`
		Vintage  int    `json:"vintage" validate:"omitempty,min=1900"`
	}

	UploadTechSheetRequest struct {
		SampleID string                `json:"sample_id" form:"sample_id" validate:"required,uuid"`
		Sheet    *multipart.FileHeader `json:"sheet" form:"sheet" validate:"required"`
	}

	SampleResponse struct {
		ID           string     `json:"id"`
		CompanyID    string     `json:"company_id"`
		CompanyName  string     `json:"company_name,omitempty"`
		Name         string     `json:"name"`
		Category     string     `json:"category"`
		Vintage      int        `json:"vintage,omitempty"`
		Barcode      string     `json:"barcode,omitempty"`
		DisplayCode  string     `json:"display_code,omitempty"`
		Received     bool       `json:"received"`
		ReceivedAt   *time.Time `json:"received_at,omitempty"`
		TechSheetURL string     `json:"tech_sheet_url,omitempty"`
	}

	ReceptionStatsResponse struct {
		TotalSamples    int64            `json:"total_samples"`
		ReceivedSamples int64            `json:"received_samples"`
		PendingSamples  int64            `json:"pending_samples"`
		ByCategory      map[string]int64 `json:"by_category"`
	}
)
