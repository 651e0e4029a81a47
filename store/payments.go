package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taxledger/models"
	"taxledger/types"
)

// PaymentLedger is the append-only record of payments. It enforces
// referential integrity against the contractor store at record time; callers
// never need to pre-check.
type PaymentLedger struct {
	DB          *gorm.DB
	Contractors *ContractorStore
}

func NewPaymentLedger(db *gorm.DB, contractors *ContractorStore) *PaymentLedger {
	return &PaymentLedger{DB: db, Contractors: contractors}
}

type RecordPaymentInput struct {
	ContractorID string
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Category     string
	ExternalRef  string
}

// Record persists one immutable payment. The amount must be non-negative
// and the contractor must exist.
func (l *PaymentLedger) Record(in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", types.ErrValidation)
	}
	if _, err := l.Contractors.Get(in.ContractorID); err != nil {
		return nil, err
	}

	// A processor reference identifies one external payment event; replaying
	// it must not double-count the amount. Absent references persist as NULL
	// and never collide.
	var externalRef *string
	if in.ExternalRef != "" {
		var count int64
		err := l.DB.Model(&models.Payment{}).
			Where("external_ref = ?", in.ExternalRef).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("check external reference: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: external reference %s already recorded", types.ErrValidation, in.ExternalRef)
		}
		externalRef = &in.ExternalRef
	}

	category := in.Category
	if category == "" {
		category = "contractor_payment"
	}

	payment := models.Payment{
		ID:           uuid.New().String(),
		ContractorID: in.ContractorID,
		Amount:       in.Amount,
		Date:         in.Date,
		Description:  in.Description,
		ExternalRef:  externalRef,
		Category:     category,
		CreatedAt:    time.Now(),
	}
	if err := l.DB.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &payment, nil
}

// TotalForYear sums every payment to the contractor dated within the given
// calendar year. Dates are naive calendar dates; only the year component
// scopes the sum. Exact zero when nothing matches. Summation is decimal
// throughout, so totals carry no float accumulation error.
func (l *PaymentLedger) TotalForYear(contractorID string, year int) (decimal.Decimal, error) {
	var payments []models.Payment
	err := l.DB.Where("contractor_id = ?", contractorID).Find(&payments).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("query payments: %w", err)
	}

	total := decimal.Zero
	for _, p := range payments {
		if p.Date.Year() == year {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}
