package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contractor is a payee requiring 1099 reporting. TINEncrypted holds vault
// ciphertext only; the plaintext TIN is never persisted and never serialized.
type Contractor struct {
	ID           string     `gorm:"type:uuid;primary_key" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	TINEncrypted string     `gorm:"column:tin_encrypted" json:"-"`
	W9Received   bool       `gorm:"not null;default:false" json:"w9_received"`
	W9ReceivedAt *time.Time `json:"w9_received_at,omitempty"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `gorm:"size:2" json:"state"`
	ZipCode      string     `gorm:"size:10" json:"zip_code"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// Payment is one amount paid to a contractor. Records are append-only:
// no update or delete path exists, corrections are out of scope.
type Payment struct {
	ID           string          `gorm:"type:uuid;primary_key" json:"id"`
	ContractorID string          `gorm:"type:uuid;not null;index" json:"contractor_id"`
	Contractor   Contractor      `gorm:"foreignKey:ContractorID" json:"-"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	Description  string          `json:"description,omitempty"`
	ExternalRef  *string         `gorm:"unique" json:"external_ref,omitempty"`
	Category     string          `gorm:"default:'contractor_payment'" json:"category"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
}
