package checkin

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"concurso-backend/entities"
)

type (
	CheckinRepository interface {
		FindSampleByCode(ctx context.Context, code string) (*entities.Sample, error)
		// MarkSampleReceived flips received/received_at in a single conditional
		// UPDATE guarded by "received = false". Returns false when the sample
		// was already received (no row matched), which is the idempotence guard
		// against two near-simultaneous scans of the same code.
		MarkSampleReceived(ctx context.Context, id string, at time.Time) (bool, error)
	}

	checkinRepository struct {
		db *gorm.DB
	}
)

func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) FindSampleByCode(ctx context.Context, code string) (*entities.Sample, error) {
	// Display codes are stored in their short human-readable form, so the
	// padded canonical code is also compared with its zeros stripped.
	short := strings.TrimLeft(code, "0")

	var sample entities.Sample
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("barcode = ? OR display_code = ?", code, short).
		Limit(1).
		First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *checkinRepository) MarkSampleReceived(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Sample{}).
		Where("id = ? AND received = ?", id, false).
		Updates(map[string]interface{}{
			"received":    true,
			"received_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
