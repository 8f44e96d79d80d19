package checkin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/entities"
)

type (
	CheckinService interface {
		Resolve(ctx context.Context, raw string) (domain.CheckinResponse, error)
	}

	checkinService struct {
		checkinRepository CheckinRepository
		location          *time.Location
	}
)

// NewCheckinService builds the resolver. Received timestamps are recorded in
// the contest's local timezone so operators see wall-clock times with an
// explicit UTC offset.
func NewCheckinService(checkinRepository CheckinRepository, location *time.Location) CheckinService {
	if location == nil {
		location = time.Local
	}
	return &checkinService{
		checkinRepository: checkinRepository,
		location:          location,
	}
}

func (s *checkinService) Resolve(ctx context.Context, raw string) (domain.CheckinResponse, error) {
	code := Normalize(raw)
	if code == "" || allZeros(code) {
		// Noise-only input never reaches the database.
		return domain.CheckinResponse{
			Outcome: domain.CheckinNotFound,
			Message: domain.MessageInfoSampleNotFound,
		}, nil
	}

	sample, err := s.checkinRepository.FindSampleByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CheckinResponse{
				Outcome: domain.CheckinNotFound,
				Message: domain.MessageInfoSampleNotFound,
			}, nil
		}
		return domain.CheckinResponse{}, err
	}

	if sample.Received {
		return domain.CheckinResponse{
			Outcome:    domain.CheckinAlreadyReceived,
			Sample:     sampleToResponse(sample),
			ReceivedAt: sample.ReceivedAt,
			Message:    domain.MessageInfoAlreadyReceived,
		}, nil
	}

	now := time.Now().In(s.location)
	updated, err := s.checkinRepository.MarkSampleReceived(ctx, sample.ID.String(), now)
	if err != nil {
		return domain.CheckinResponse{}, err
	}
	if !updated {
		// Another station won the conditional update between lookup and write.
		return domain.CheckinResponse{
			Outcome:    domain.CheckinAlreadyReceived,
			Sample:     sampleToResponse(sample),
			ReceivedAt: sample.ReceivedAt,
			Message:    domain.MessageInfoAlreadyReceived,
		}, nil
	}

	sample.Received = true
	sample.ReceivedAt = &now
	return domain.CheckinResponse{
		Outcome:    domain.CheckinSuccess,
		Sample:     sampleToResponse(sample),
		ReceivedAt: &now,
		Message:    domain.MessageSuccessCheckin,
	}, nil
}

func sampleToResponse(sample *entities.Sample) *domain.SampleResponse {
	res := &domain.SampleResponse{
		ID:         sample.ID.String(),
		CompanyID:  sample.CompanyID.String(),
		Name:       sample.Name,
		Category:   sample.Category,
		Vintage:    sample.Vintage,
		Received:   sample.Received,
		ReceivedAt: sample.ReceivedAt,
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
