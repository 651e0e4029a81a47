package compliance

import (
	"sort"

	"github.com/shopspring/decimal"

	"taxledger/models"
	"taxledger/store"
)

// ThresholdResult pairs a contractor with what they were paid in one
// calendar year. It is derived on demand and never persisted, so it always
// reflects the latest recorded payments.
type ThresholdResult struct {
	Contractor models.Contractor `json:"contractor"`
	TotalPaid  decimal.Decimal   `json:"total_paid"`
}

// ThresholdEngine classifies contractors against a 1099 reporting threshold.
type ThresholdEngine struct {
	Contractors *store.ContractorStore
	Ledger      *store.PaymentLedger
}

func NewThresholdEngine(contractors *store.ContractorStore, ledger *store.PaymentLedger) *ThresholdEngine {
	return &ThresholdEngine{Contractors: contractors, Ledger: ledger}
}

// ContractorsAbove returns every contractor whose yearly total meets or
// exceeds the threshold ($600.00 exactly qualifies). Totals are recomputed
// from the ledger on every call. Results are sorted by contractor ID so a
// fixed input always yields the same output.
func (e *ThresholdEngine) ContractorsAbove(year int, threshold decimal.Decimal) ([]ThresholdResult, error) {
	contractors, err := e.Contractors.List(nil)
	if err != nil {
		return nil, err
	}

	results := []ThresholdResult{}
	for _, contractor := range contractors {
		total, err := e.Ledger.TotalForYear(contractor.ID, year)
		if err != nil {
			return nil, err
		}
		if total.GreaterThanOrEqual(threshold) {
			results = append(results, ThresholdResult{
				Contractor: contractor,
				TotalPaid:  total,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Contractor.ID < results[j].Contractor.ID
	})
	return results, nil
}
