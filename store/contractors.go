// Package store persists contractors and payments over GORM. It owns record
// identity and lifecycle; callers reach it through the compliance facade or
// the portal handlers.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taxledger/models"
	"taxledger/types"
	"taxledger/vault"
)

var tinPattern = regexp.MustCompile(`^[0-9]{9}$`)

type ContractorStore struct {
	DB    *gorm.DB
	Vault *vault.Vault
}

func NewContractorStore(db *gorm.DB, v *vault.Vault) *ContractorStore {
	return &ContractorStore{DB: db, Vault: v}
}

type CreateContractorInput struct {
	Name    string
	Email   string
	TIN     string
	Address string
	City    string
	State   string
	ZipCode string
}

// NormalizeTIN strips dashes and spaces from a raw TIN.
func NormalizeTIN(tin string) string {
	tin = strings.ReplaceAll(tin, "-", "")
	return strings.ReplaceAll(tin, " ", "")
}

// FormatTIN renders 9 TIN digits SSN-style (XXX-XX-XXXX). Anything that is
// not 9 digits is returned as-is.
func FormatTIN(tin string) string {
	clean := NormalizeTIN(tin)
	if len(clean) != 9 {
		return clean
	}
	return fmt.Sprintf("%s-%s-%s", clean[:3], clean[3:5], clean[5:])
}

// Create validates a W-9 submission, encrypts the TIN and persists the
// contractor. A valid submission is W-9 receipt in this model, so the record
// is stamped w9_received with the current time. Submitting again for an
// email that already has a record replaces its name, TIN and address
// wholesale; identity and created_at are kept.
func (s *ContractorStore) Create(in CreateContractorInput) (*models.Contractor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", types.ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", types.ErrValidation)
	}
	tin := NormalizeTIN(in.TIN)
	if !tinPattern.MatchString(tin) {
		return nil, fmt.Errorf("%w: TIN must be 9 digits", types.ErrValidation)
	}

	encrypted, err := s.Vault.Encrypt(tin)
	if err != nil {
		return nil, fmt.Errorf("encrypt TIN: %w", err)
	}

	now := time.Now()

	var existing models.Contractor
	err = s.DB.Where("email = ?", in.Email).First(&existing).Error
	switch {
	case err == nil:
		// Re-submission replaces the sensitive fields wholesale.
		existing.Name = in.Name
		existing.TINEncrypted = encrypted
		existing.W9Received = true
		existing.W9ReceivedAt = &now
		existing.Address = in.Address
		existing.City = in.City
		existing.State = in.State
		existing.ZipCode = in.ZipCode
		existing.UpdatedAt = now
		if err := s.DB.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("update contractor: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		contractor := models.Contractor{
			ID:           uuid.New().String(),
			Name:         in.Name,
			Email:        in.Email,
			TINEncrypted: encrypted,
			W9Received:   true,
			W9ReceivedAt: &now,
			Address:      in.Address,
			City:         in.City,
			State:        in.State,
			ZipCode:      in.ZipCode,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.DB.Create(&contractor).Error; err != nil {
			return nil, fmt.Errorf("create contractor: %w", err)
		}
		return &contractor, nil
	default:
		return nil, fmt.Errorf("lookup contractor by email: %w", err)
	}
}

func (s *ContractorStore) Get(id string) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := s.DB.First(&contractor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor %s", types.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	return &contractor, nil
}

// List returns all contractors, optionally filtered by W-9 status. No
// matches is an empty slice, not an error.
func (s *ContractorStore) List(w9Received *bool) ([]models.Contractor, error) {
	query := s.DB.Model(&models.Contractor{})
	if w9Received != nil {
		query = query.Where("w9_received = ?", *w9Received)
	}
	contractors := []models.Contractor{}
	if err := query.Find(&contractors).Error; err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	return contractors, nil
}

// RevealTIN decrypts and returns the contractor's TIN digits. This is the
// single controlled decryption path in the system. The core performs no
// authorization: callers MUST verify the requester is entitled to see the
// TIN before invoking this.
func (s *ContractorStore) RevealTIN(id string) (string, error) {
	contractor, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if contractor.TINEncrypted == "" {
		return "", fmt.Errorf("%w: contractor %s has no TIN on file", types.ErrNotFound, id)
	}
	return s.Vault.Decrypt(contractor.TINEncrypted)
}

func (s *ContractorStore) HasW9(id string) (bool, error) {
	contractor, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return contractor.W9Received, nil
}
