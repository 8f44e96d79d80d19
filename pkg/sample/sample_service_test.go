package sample

import (
	"context"
	"encoding/csv"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
)

type fakeSampleRepository struct {
	samples map[string]*entities.Sample
	maxCode string
}

func newFakeSampleRepository() *fakeSampleRepository {
	return &fakeSampleRepository{samples: make(map[string]*entities.Sample)}
}

func (f *fakeSampleRepository) CreateSample(ctx context.Context, s *entities.Sample) error {
	f.samples[s.ID.String()] = s
	return nil
}

func (f *fakeSampleRepository) GetSampleByID(ctx context.Context, id string) (*entities.Sample, error) {
	s, ok := f.samples[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSampleRepository) UpdateSample(ctx context.Context, s *entities.Sample) error {
	f.samples[s.ID.String()] = s
	if s.Barcode != nil && *s.Barcode > f.maxCode {
		f.maxCode = *s.Barcode
	}
	return nil
}

func (f *fakeSampleRepository) DeleteSample(ctx context.Context, id string) error {
	delete(f.samples, id)
	return nil
}

func (f *fakeSampleRepository) GetSamples(ctx context.Context, filter SampleFilter, page, limit int) ([]*entities.Sample, int64, error) {
	var out []*entities.Sample
	for _, s := range f.samples {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSampleRepository) GetSamplesByIDs(ctx context.Context, ids []string) ([]*entities.Sample, error) {
	var out []*entities.Sample
	for _, id := range ids {
		if s, ok := f.samples[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSampleRepository) GetAllSamples(ctx context.Context) ([]*entities.Sample, error) {
	var out []*entities.Sample
	for _, s := range f.samples {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSampleRepository) CountPendingPayment(ctx context.Context, companyID string) (int64, error) {
	var count int64
	for _, s := range f.samples {
		if s.CompanyID.String() == companyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSampleRepository) MaxAssignedBarcode(ctx context.Context, prefix string) (string, error) {
	if strings.HasPrefix(f.maxCode, prefix) {
		return f.maxCode, nil
	}
	return "", nil
}

func (f *fakeSampleRepository) GetReceptionStats(ctx context.Context) (map[string]interface{}, error) {
	var total, received int64
	byCategory := make(map[string]int64)
	for _, s := range f.samples {
		total++
		if s.Received {
			received++
			byCategory[s.Category]++
		}
	}
	return map[string]interface{}{
		"total_samples":    total,
		"received_samples": received,
		"pending_samples":  total - received,
		"by_category":      byCategory,
	}, nil
}

type fakeCompanyRepository struct {
	companies map[string]*entities.Company
}

func (f *fakeCompanyRepository) CreateCompany(ctx context.Context, c *entities.Company) error {
	f.companies[c.ID.String()] = c
	return nil
}

func (f *fakeCompanyRepository) GetCompanyByID(ctx context.Context, id string) (*entities.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepository) UpdateCompany(ctx context.Context, c *entities.Company) error {
	return nil
}

func (f *fakeCompanyRepository) DeleteCompany(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCompanyRepository) GetCompanies(ctx context.Context, userID string, page, limit int) ([]*entities.Company, int64, error) {
	return nil, 0, nil
}

type fakeStorage struct{}

func (fakeStorage) UploadFile(name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	return folder + "/" + name, nil
}

func (fakeStorage) UpdateFile(key string, file *multipart.FileHeader, allowed ...string) (string, error) {
	return key, nil
}

func (fakeStorage) DeleteFile(key string) error { return nil }

func (fakeStorage) GetPublicLinkKey(key string) string {
	return "https://bucket.example.com/" + key
}

func (fakeStorage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.example.com/")
}

func newTestService() (SampleService, *fakeSampleRepository, *entities.Company) {
	repo := newFakeSampleRepository()
	owner := uuid.New()
	comp := &entities.Company{ID: uuid.New(), UserID: owner, Name: "Bodega Norte"}
	companies := &fakeCompanyRepository{companies: map[string]*entities.Company{comp.ID.String(): comp}}
	return NewSampleService(repo, companies, fakeStorage{}), repo, comp
}

func addSample(repo *fakeSampleRepository, comp *entities.Company, name string) *entities.Sample {
	s := &entities.Sample{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Name:      name,
		Category:  "Wine",
		Vintage:   2021,
		Company:   comp,
	}
	repo.samples[s.ID.String()] = s
	return s
}

func TestEAN13CheckDigit(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"400638133393", 1},
		{"200000000001", 5},
		{"200000000042", 8},
		{"000000000000", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ean13CheckDigit(tt.body), "body %s", tt.body)
	}
}

func TestAssignBarcodeSequence(t *testing.T) {
	svc, repo, comp := newTestService()

	first := addSample(repo, comp, "Reserva")
	second := addSample(repo, comp, "Crianza")

	resFirst, err := svc.AssignBarcode(context.Background(), first.ID.String(), "", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "2000000000015", resFirst.Barcode)
	assert.Equal(t, "1", resFirst.DisplayCode)

	resSecond, err := svc.AssignBarcode(context.Background(), second.ID.String(), "", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "2000000000022", resSecond.Barcode)
	assert.Equal(t, "2", resSecond.DisplayCode)
}

func TestAssignBarcodeRejectsReassignment(t *testing.T) {
	svc, repo, comp := newTestService()
	s := addSample(repo, comp, "Reserva")

	_, err := svc.AssignBarcode(context.Background(), s.ID.String(), "", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.AssignBarcode(context.Background(), s.ID.String(), "", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrBarcodeAlreadySet)
}

func TestAssignBarcodeUnknownSample(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AssignBarcode(context.Background(), uuid.NewString(), "", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)
}

func TestCreateSampleRequiresOwnership(t *testing.T) {
	svc, _, comp := newTestService()

	req := domain.CreateSampleRequest{
		CompanyID: comp.ID.String(),
		Name:      "Reserva",
		Category:  "Wine",
	}

	_, err := svc.CreateSample(context.Background(), req, uuid.NewString(), domain.RoleOperator)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	res, err := svc.CreateSample(context.Background(), req, comp.UserID.String(), domain.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, "Reserva", res.Name)
}

func TestDeleteReceivedSampleRefused(t *testing.T) {
	svc, repo, comp := newTestService()
	s := addSample(repo, comp, "Reserva")
	s.Received = true

	err := svc.DeleteSample(context.Background(), s.ID.String(), "", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrSampleAlreadyReceived)
}

func TestExportCSV(t *testing.T) {
	svc, repo, comp := newTestService()

	s := addSample(repo, comp, "Reserva")
	code := "2000000000015"
	display := "1"
	at := time.Date(2026, 5, 12, 10, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	s.Barcode = &code
	s.DisplayCode = &display
	s.Received = true
	s.ReceivedAt = &at

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"barcode", "display_code", "company", "name", "category", "vintage", "received", "received_at"}, rows[0])
	assert.Equal(t, "2000000000015", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "Bodega Norte", rows[1][2])
	assert.Equal(t, "true", rows[1][6])
	assert.Contains(t, rows[1][7], "2026-05-12 10:30:00")
}

func TestGetReceptionStats(t *testing.T) {
	svc, repo, comp := newTestService()

	addSample(repo, comp, "Reserva").Received = true
	addSample(repo, comp, "Crianza")

	stats, err := svc.GetReceptionStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalSamples)
	assert.Equal(t, int64(1), stats.ReceivedSamples)
	assert.Equal(t, int64(1), stats.PendingSamples)
	assert.Equal(t, int64(1), stats.ByCategory["Wine"])
}
