// Package compliance composes the contractor store, payment ledger and
// threshold engine into the single entry point that portal, CLI and SDK
// consumers use.
package compliance

import (
	"time"

	"github.com/shopspring/decimal"

	"taxledger/models"
	"taxledger/store"
)

// Compliance is a thin facade over the core components. It holds no state
// and adds no invariants of its own.
type Compliance struct {
	Contractors *store.ContractorStore
	Ledger      *store.PaymentLedger
	Engine      *ThresholdEngine
}

func New(contractors *store.ContractorStore, ledger *store.PaymentLedger) *Compliance {
	return &Compliance{
		Contractors: contractors,
		Ledger:      ledger,
		Engine:      NewThresholdEngine(contractors, ledger),
	}
}

func (c *Compliance) AddContractor(in store.CreateContractorInput) (*models.Contractor, error) {
	return c.Contractors.Create(in)
}

func (c *Compliance) AddPayment(contractorID string, amount decimal.Decimal, date time.Time, description, category, externalRef string) (*models.Payment, error) {
	return c.Ledger.Record(store.RecordPaymentInput{
		ContractorID: contractorID,
		Amount:       amount,
		Date:         date,
		Description:  description,
		Category:     category,
		ExternalRef:  externalRef,
	})
}

func (c *Compliance) GetContractorTotal(contractorID string, year int) (decimal.Decimal, error) {
	return c.Ledger.TotalForYear(contractorID, year)
}

func (c *Compliance) GetContractorsAboveThreshold(year int, threshold decimal.Decimal) ([]ThresholdResult, error) {
	return c.Engine.ContractorsAbove(year, threshold)
}

func (c *Compliance) HasW9(contractorID string) (bool, error) {
	return c.Contractors.HasW9(contractorID)
}
