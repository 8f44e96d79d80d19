package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
)

type fakeCheckinRepository struct {
	samples  map[string]*entities.Sample
	findCall int
	markCall int
	failMark error
	loseRace bool
}

func newFakeCheckinRepository() *fakeCheckinRepository {
	return &fakeCheckinRepository{samples: make(map[string]*entities.Sample)}
}

func (f *fakeCheckinRepository) FindSampleByCode(ctx context.Context, code string) (*entities.Sample, error) {
	f.findCall++
	for _, s := range f.samples {
		if s.Barcode != nil && *s.Barcode == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCheckinRepository) MarkSampleReceived(ctx context.Context, id string, at time.Time) (bool, error) {
	f.markCall++
	if f.failMark != nil {
		return false, f.failMark
	}
	if f.loseRace {
		return false, nil
	}
	s, ok := f.samples[id]
	if !ok || s.Received {
		return false, nil
	}
	s.Received = true
	s.ReceivedAt = &at
	return true, nil
}

func storedSample(barcode string) *entities.Sample {
	b := barcode
	return &entities.Sample{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Reserva 2019",
		Category:  "Wine",
		Vintage:   2019,
		Barcode:   &b,
	}
}

func TestResolveMarksSampleReceived(t *testing.T) {
	repo := newFakeCheckinRepository()
	s := storedSample("2000000000428")
	repo.samples[s.ID.String()] = s

	svc := NewCheckinService(repo, time.UTC)

	res, err := svc.Resolve(context.Background(), "2000000000428")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinSuccess, res.Outcome)
	require.NotNil(t, res.Sample)
	assert.Equal(t, s.ID.String(), res.Sample.ID)
	require.NotNil(t, res.ReceivedAt)
	assert.True(t, s.Received)
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := newFakeCheckinRepository()
	s := storedSample("2000000000428")
	repo.samples[s.ID.String()] = s

	svc := NewCheckinService(repo, time.UTC)

	first, err := svc.Resolve(context.Background(), "2000000000428")
	require.NoError(t, err)
	require.Equal(t, domain.CheckinSuccess, first.Outcome)

	second, err := svc.Resolve(context.Background(), "2000000000428")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinAlreadyReceived, second.Outcome)
	require.NotNil(t, second.ReceivedAt)
	assert.Equal(t, first.ReceivedAt.Unix(), second.ReceivedAt.Unix())
}

func TestResolveLostRaceReportsAlreadyReceived(t *testing.T) {
	repo := newFakeCheckinRepository()
	s := storedSample("2000000000428")
	repo.samples[s.ID.String()] = s

	svc := NewCheckinService(repo, time.UTC)

	// Another station wins the conditional update between lookup and write.
	repo.loseRace = true

	res, err := svc.Resolve(context.Background(), "2000000000428")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinAlreadyReceived, res.Outcome)
}

func TestResolveUnknownCode(t *testing.T) {
	repo := newFakeCheckinRepository()
	svc := NewCheckinService(repo, time.UTC)

	res, err := svc.Resolve(context.Background(), "9999999999999")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinNotFound, res.Outcome)
	assert.Nil(t, res.Sample)
	assert.Zero(t, repo.markCall)
}

func TestResolveNoiseSkipsDatabase(t *testing.T) {
	repo := newFakeCheckinRepository()
	svc := NewCheckinService(repo, time.UTC)

	for _, raw := range []string{"", "no digits", "0", "000"} {
		res, err := svc.Resolve(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, domain.CheckinNotFound, res.Outcome, "input %q", raw)
	}
	assert.Zero(t, repo.findCall)
	assert.Zero(t, repo.markCall)
}

func TestResolvePersistenceFailureSurfacesError(t *testing.T) {
	repo := newFakeCheckinRepository()
	s := storedSample("2000000000428")
	repo.samples[s.ID.String()] = s
	repo.failMark = gorm.ErrInvalidDB

	svc := NewCheckinService(repo, time.UTC)

	_, err := svc.Resolve(context.Background(), "2000000000428")
	require.Error(t, err)
	assert.False(t, s.Received)
}

func TestResolveRecordsContestLocalTime(t *testing.T) {
	repo := newFakeCheckinRepository()
	s := storedSample("2000000000428")
	repo.samples[s.ID.String()] = s

	loc := time.FixedZone("CEST", 2*60*60)
	svc := NewCheckinService(repo, loc)

	res, err := svc.Resolve(context.Background(), "2000000000428")
	require.NoError(t, err)
	require.NotNil(t, res.ReceivedAt)
	_, offset := res.ReceivedAt.Zone()
	assert.Equal(t, 2*60*60, offset)
}
