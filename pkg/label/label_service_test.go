package label

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
	"concurso-backend/pkg/sample"
)

type fakeSampleRepository struct {
	samples map[string]*entities.Sample
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
	return nil
}

func (f *fakeSampleRepository) DeleteSample(ctx context.Context, id string) error {
	return nil
}

func (f *fakeSampleRepository) GetSamples(ctx context.Context, filter sample.SampleFilter, page, limit int) ([]*entities.Sample, int64, error) {
	return nil, 0, nil
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
	return nil, nil
}

func (f *fakeSampleRepository) CountPendingPayment(ctx context.Context, companyID string) (int64, error) {
	return 0, nil
}

func (f *fakeSampleRepository) MaxAssignedBarcode(ctx context.Context, prefix string) (string, error) {
	return "", nil
}

func (f *fakeSampleRepository) GetReceptionStats(ctx context.Context) (map[string]interface{}, error) {
	return nil, nil
}

func newRepoWithSample(barcode string) (*fakeSampleRepository, *entities.Sample) {
	repo := &fakeSampleRepository{samples: make(map[string]*entities.Sample)}
	s := &entities.Sample{ID: uuid.New(), CompanyID: uuid.New(), Name: "Reserva", Category: "Wine"}
	if barcode != "" {
		s.Barcode = &barcode
	}
	repo.samples[s.ID.String()] = s
	return repo, s
}

func TestRenderCodeProducesBars(t *testing.T) {
	svc := NewLabelService(&fakeSampleRepository{samples: map[string]*entities.Sample{}})

	svg := svc.RenderCode("4006381333931", domain.RenderLabelOptions{ShowLabel: true})

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "fill=\"black\"")
	assert.Contains(t, svg, ">4006381333931</text>")
}

func TestRenderCodeWithoutLabelText(t *testing.T) {
	svc := NewLabelService(&fakeSampleRepository{samples: map[string]*entities.Sample{}})

	svg := svc.RenderCode("4006381333931", domain.RenderLabelOptions{})

	assert.NotContains(t, svg, "<text")
}

func TestRenderCodePlaceholderOnEmpty(t *testing.T) {
	svc := NewLabelService(&fakeSampleRepository{samples: map[string]*entities.Sample{}})

	svg := svc.RenderCode("no digits", domain.RenderLabelOptions{})

	assert.Contains(t, svg, "sin codigo")
}

func TestRenderCodeNormalizesShortCodes(t *testing.T) {
	svc := NewLabelService(&fakeSampleRepository{samples: map[string]*entities.Sample{}})

	// Short display codes are padded to a full EAN-13 before encoding.
	svg := svc.RenderCode("17", domain.RenderLabelOptions{ShowLabel: true})

	assert.Contains(t, svg, ">0000000000017</text>")
}

func TestRenderSampleLabel(t *testing.T) {
	repo, s := newRepoWithSample("2000000000015")
	svc := NewLabelService(repo)

	svg, err := svc.RenderSampleLabel(context.Background(), s.ID.String(), domain.RenderLabelOptions{})
	require.NoError(t, err)
	assert.Contains(t, svg, "fill=\"black\"")
}

func TestRenderSampleLabelUnknownSample(t *testing.T) {
	repo, _ := newRepoWithSample("2000000000015")
	svc := NewLabelService(repo)

	_, err := svc.RenderSampleLabel(context.Background(), uuid.NewString(), domain.RenderLabelOptions{})
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)
}

func TestRenderSampleLabelWithoutCode(t *testing.T) {
	repo, s := newRepoWithSample("")
	svc := NewLabelService(repo)

	svg, err := svc.RenderSampleLabel(context.Background(), s.ID.String(), domain.RenderLabelOptions{})
	require.NoError(t, err)
	assert.Contains(t, svg, "sin codigo")
}

func TestPrintSheet(t *testing.T) {
	repo, s := newRepoWithSample("2000000000015")
	other := &entities.Sample{ID: uuid.New(), CompanyID: uuid.New(), Name: "Sin codigo"}
	repo.samples[other.ID.String()] = other

	svc := NewLabelService(repo)

	html, err := svc.PrintSheet(context.Background(), domain.PrintSheetRequest{
		SampleIDs: []string{s.ID.String(), other.ID.String(), uuid.NewString()},
		Columns:   2,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "grid-template-columns:repeat(2,1fr)")
	// One cell for the coded sample; codeless and unknown ids are skipped.
	assert.Equal(t, 1, strings.Count(html, "class=\"cell\""))
	assert.Contains(t, html, ">2000000000015</div>")
}

func TestPrintSheetDefaultColumns(t *testing.T) {
	repo, s := newRepoWithSample("2000000000015")
	svc := NewLabelService(repo)

	html, err := svc.PrintSheet(context.Background(), domain.PrintSheetRequest{
		SampleIDs: []string{s.ID.String()},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "grid-template-columns:repeat(3,1fr)")
}
