package entities

import (
	"time"

	"github.com/google/uuid"
)

type Sample struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"` // "Wine", "Spirit", "OliveOil"
	Vintage      int        `json:"vintage,omitempty"`
	Barcode      *string    `gorm:"uniqueIndex" json:"barcode,omitempty"`
	DisplayCode  *string    `gorm:"uniqueIndex" json:"display_code,omitempty"`
	Received     bool       `json:"received"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
	TechSheetURL string     `json:"tech_sheet_url,omitempty"`

	Company *Company `gorm:"foreignKey:CompanyID"`
	Timestamp
}
