package entities

import (
	"github.com/google/uuid"
)

type Company struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	Address      string    `json:"address"`
	Country      string    `json:"country"`
	LogoURL      string    `json:"logo_url,omitempty"`

	User    *User     `gorm:"foreignKey:UserID"`
	Samples []*Sample `gorm:"foreignKey:CompanyID"`
	Timestamp
}
