package sample

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
	"concurso-backend/internal/utils/storage"
	"concurso-backend/pkg/company"
)

// Assigned barcodes use the EAN-13 in-store prefix so they can never collide
// with a commercial product code on the same scanner.
const barcodePrefix = "200"

type (
	SampleService interface {
		CreateSample(ctx context.Context, req domain.CreateSampleRequest, userID, role string) (domain.SampleResponse, error)
		UpdateSample(ctx context.Context, id string, req domain.UpdateSampleRequest, userID, role string) error
		DeleteSample(ctx context.Context, id string, userID, role string) error
		GetSamples(ctx context.Context, filter SampleFilter, page, limit int) ([]domain.SampleResponse, int64, error)
		GetSampleByID(ctx context.Context, id string, userID, role string) (domain.SampleResponse, error)
		AssignBarcode(ctx context.Context, id string, userID, role string) (domain.SampleResponse, error)
		UploadTechSheet(ctx context.Context, req domain.UploadTechSheetRequest, userID, role string) error
		GetReceptionStats(ctx context.Context) (domain.ReceptionStatsResponse, error)
		ExportCSV(ctx context.Context) ([]byte, error)
	}

	sampleService struct {
		sampleRepository  SampleRepository
		companyRepository company.CompanyRepository
		s3                storage.AwsS3
	}
)

func NewSampleService(sampleRepository SampleRepository, companyRepository company.CompanyRepository, s3 storage.AwsS3) SampleService {
	return &sampleService{
		sampleRepository:  sampleRepository,
		companyRepository: companyRepository,
		s3:                s3,
	}
}

func (s *sampleService) ownsCompany(ctx context.Context, companyID, userID, role string) error {
	if role == domain.RoleAdmin {
		return nil
	}
	c, err := s.companyRepository.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCompanyNotFound
		}
		return err
	}
	if c.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}
	return nil
}

func (s *sampleService) CreateSample(ctx context.Context, req domain.CreateSampleRequest, userID, role string) (domain.SampleResponse, error) {
	if err := s.ownsCompany(ctx, req.CompanyID, userID, role); err != nil {
		return domain.SampleResponse{}, err
	}

	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return domain.SampleResponse{}, domain.ErrParseUUID
	}

	sample := &entities.Sample{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Category:  req.Category,
		Vintage:   req.Vintage,
	}

	if err := s.sampleRepository.CreateSample(ctx, sample); err != nil {
		return domain.SampleResponse{}, err
	}

	return sampleToResponse(sample), nil
}

func (s *sampleService) UpdateSample(ctx context.Context, id string, req domain.UpdateSampleRequest, userID, role string) error {
	sample, err := s.sampleRepository.GetSampleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSampleNotFound
		}
		return err
	}

	if err := s.ownsCompany(ctx, sample.CompanyID.String(), userID, role); err != nil {
		return err
	}

	if req.Name != "" {
		sample.Name = req.Name
	}
	if req.Category != "" {
		sample.Category = req.Category
	}
	if req.Vintage > 0 {
		sample.Vintage = req.Vintage
	}

	return s.sampleRepository.UpdateSample(ctx, sample)
}

func (s *sampleService) DeleteSample(ctx context.Context, id string, userID, role string) error {
	sample, err := s.sampleRepository.GetSampleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSampleNotFound
		}
		return err
	}

	if err := s.ownsCompany(ctx, sample.CompanyID.String(), userID, role); err != nil {
		return err
	}

	if sample.Received {
		return domain.ErrSampleAlreadyReceived
	}

	if sample.TechSheetURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(sample.TechSheetURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.sampleRepository.DeleteSample(ctx, id)
}

func (s *sampleService) GetSamples(ctx context.Context, filter SampleFilter, page, limit int) ([]domain.SampleResponse, int64, error) {
	samples, count, err := s.sampleRepository.GetSamples(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.SampleResponse, 0, len(samples))
	for _, sample := range samples {
		response = append(response, sampleToResponse(sample))
	}
	return response, count, nil
}

func (s *sampleService) GetSampleByID(ctx context.Context, id string, userID, role string) (domain.SampleResponse, error) {
	sample, err := s.sampleRepository.GetSampleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SampleResponse{}, domain.ErrSampleNotFound
		}
		return domain.SampleResponse{}, err
	}

	if err := s.ownsCompany(ctx, sample.CompanyID.String(), userID, role); err != nil {
		return domain.SampleResponse{}, err
	}

	return sampleToResponse(sample), nil
}

// AssignBarcode gives a sample its scannable identity: the next sequential
// EAN-13 under the in-store prefix plus a short human-readable display code.
func (s *sampleService) AssignBarcode(ctx context.Context, id string, userID, role string) (domain.SampleResponse, error) {
	sample, err := s.sampleRepository.GetSampleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SampleResponse{}, domain.ErrSampleNotFound
		}
		return domain.SampleResponse{}, err
	}

	if err := s.ownsCompany(ctx, sample.CompanyID.String(), userID, role); err != nil {
		return domain.SampleResponse{}, err
	}

	if sample.Barcode != nil {
		return domain.SampleResponse{}, domain.ErrBarcodeAlreadySet
	}

	max, err := s.sampleRepository.MaxAssignedBarcode(ctx, barcodePrefix)
	if err != nil {
		return domain.SampleResponse{}, err
	}

	seq := 0
	if len(max) == 13 {
		if n, convErr := strconv.Atoi(max[len(barcodePrefix) : len(max)-1]); convErr == nil {
			seq = n
		}
	}
	seq++

	body := fmt.Sprintf("%s%09d", barcodePrefix, seq)
	barcode := body + strconv.Itoa(ean13CheckDigit(body))
	displayCode := strconv.Itoa(seq)

	sample.Barcode = &barcode
	sample.DisplayCode = &displayCode
	if err := s.sampleRepository.UpdateSample(ctx, sample); err != nil {
		return domain.SampleResponse{}, err
	}

	return sampleToResponse(sample), nil
}

func (s *sampleService) UploadTechSheet(ctx context.Context, req domain.UploadTechSheetRequest, userID, role string) error {
	sample, err := s.sampleRepository.GetSampleByID(ctx, req.SampleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSampleNotFound
		}
		return err
	}

	if err := s.ownsCompany(ctx, sample.CompanyID.String(), userID, role); err != nil {
		return err
	}

	fileName := fmt.Sprintf("tech-sheet-%s", sample.ID.String())
	var objectKey string
	var uploadErr error

	if sample.TechSheetURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(sample.TechSheetURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Sheet, storage.AllowDocument...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Sheet, "tech-sheets", storage.AllowDocument...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Sheet, "tech-sheets", storage.AllowDocument...)
	}
	if uploadErr != nil {
		return uploadErr
	}

	sample.TechSheetURL = s.s3.GetPublicLinkKey(objectKey)
	return s.sampleRepository.UpdateSample(ctx, sample)
}

func (s *sampleService) GetReceptionStats(ctx context.Context) (domain.ReceptionStatsResponse, error) {
	stats, err := s.sampleRepository.GetReceptionStats(ctx)
	if err != nil {
		return domain.ReceptionStatsResponse{}, err
	}

	return domain.ReceptionStatsResponse{
		TotalSamples:    stats["total_samples"].(int64),
		ReceivedSamples: stats["received_samples"].(int64),
		PendingSamples:  stats["pending_samples"].(int64),
		ByCategory:      stats["by_category"].(map[string]int64),
	}, nil
}

// ExportCSV produces the back-office reception spreadsheet.
func (s *sampleService) ExportCSV(ctx context.Context) ([]byte, error) {
	samples, err := s.sampleRepository.GetAllSamples(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"barcode", "display_code", "company", "name", "category", "vintage", "received", "received_at"}); err != nil {
		return nil, err
	}

	for _, sample := range samples {
		barcode, displayCode := "", ""
		if sample.Barcode != nil {
			barcode = *sample.Barcode
		}
		if sample.DisplayCode != nil {
			displayCode = *sample.DisplayCode
		}
		companyName := ""
		if sample.Company != nil {
			companyName = sample.Company.Name
		}
		receivedAt := ""
		if sample.ReceivedAt != nil {
			receivedAt = sample.ReceivedAt.Format("2006-01-02 15:04:05 -07:00")
		}
		vintage := ""
		if sample.Vintage > 0 {
			vintage = strconv.Itoa(sample.Vintage)
		}

		row := []string{
			barcode,
			displayCode,
			companyName,
			sample.Name,
			sample.Category,
			vintage,
			strconv.FormatBool(sample.Received),
			receivedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ean13CheckDigit computes the checksum for a 12-digit EAN body.
func ean13CheckDigit(body string) int {
	sum := 0
	for i, r := range body {
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return (10 - sum%10) % 10
}

func sampleToResponse(sample *entities.Sample) domain.SampleResponse {
	res := domain.SampleResponse{
		ID:           sample.ID.String(),
		CompanyID:    sample.CompanyID.String(),
		Name:         sample.Name,
		Category:     sample.Category,
		Vintage:      sample.Vintage,
		Received:     sample.Received,
		ReceivedAt:   sample.ReceivedAt,
		TechSheetURL: sample.TechSheetURL,
	}
	if sample.Barcode != nil {
		res.Barcode = *sample.Barcode
	}
	if sample.DisplayCode != nil {
		res.DisplayCode = *sample.DisplayCode
	}
	if sample.Company != nil {
		res.CompanyName = sample.Company.Name
	}
	return res
}
