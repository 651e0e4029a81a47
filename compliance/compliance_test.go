package compliance

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxledger/models"
	"taxledger/store"
	"taxledger/vault"
)

func newTestCompliance(t *testing.T) *Compliance {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Contractor{}, &models.Payment{}))

	encoded, err := vault.GenerateKey()
	require.NoError(t, err)
	key, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	v, err := vault.New(key)
	require.NoError(t, err)

	contractors := store.NewContractorStore(db, v)
	return New(contractors, store.NewPaymentLedger(db, contractors))
}

func contractorInput(name, email string) store.CreateContractorInput {
	return store.CreateContractorInput{
		Name:  name,
		Email: email,
		TIN:   "123-45-6789",
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func addPayment(t *testing.T, c *Compliance, contractorID, amount string, paid time.Time) {
	t.Helper()
	_, err := c.AddPayment(contractorID, mustDecimal(t, amount), paid, "", "", "")
	assert.NoError(t, err)
}

func TestThresholdInclusiveAtExactly600(t *testing.T) {
	c := newTestCompliance(t)

	atThreshold, err := c.AddContractor(contractorInput("At Threshold", "at@example.com"))
	assert.NoError(t, err)
	below, err := c.AddContractor(contractorInput("Just Below", "below@example.com"))
	assert.NoError(t, err)

	addPayment(t, c, atThreshold.ID, "600.00", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	addPayment(t, c, below.ID, "599.99", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))

	results, err := c.GetContractorsAboveThreshold(2026, mustDecimal(t, "600.00"))
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, atThreshold.ID, results[0].Contractor.ID)
	assert.True(t, results[0].TotalPaid.Equal(mustDecimal(t, "600.00")))
}

func TestThresholdExcludesZeroPaymentContractors(t *testing.T) {
	c := newTestCompliance(t)

	contractor, err := c.AddContractor(contractorInput("No Payments", "none@example.com"))
	assert.NoError(t, err)

	results, err := c.GetContractorsAboveThreshold(2026, mustDecimal(t, "600.00"))
	assert.NoError(t, err)
	assert.Empty(t, results)

	// W-9 receipt is independent of payment totals.
	hasW9, err := c.HasW9(contractor.ID)
	assert.NoError(t, err)
	assert.True(t, hasW9)
}

func TestThresholdZeroIncludesZeroTotals(t *testing.T) {
	c := newTestCompliance(t)

	_, err := c.AddContractor(contractorInput("No Payments", "none@example.com"))
	assert.NoError(t, err)

	// Degenerate caller input: >= still applies faithfully.
	results, err := c.GetContractorsAboveThreshold(2026, decimal.Zero)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, results[0].TotalPaid.IsZero())
}

func TestThresholdResultsSortedByContractorID(t *testing.T) {
	c := newTestCompliance(t)

	for i := 0; i < 5; i++ {
		contractor, err := c.AddContractor(contractorInput(
			fmt.Sprintf("Contractor %d", i),
			fmt.Sprintf("c%d@example.com", i),
		))
		assert.NoError(t, err)
		addPayment(t, c, contractor.ID, "700.00", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	}

	results, err := c.GetContractorsAboveThreshold(2026, mustDecimal(t, "600.00"))
	assert.NoError(t, err)
	assert.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i-1].Contractor.ID, results[i].Contractor.ID)
	}
}

func TestThresholdScopedToYear(t *testing.T) {
	c := newTestCompliance(t)

	contractor, err := c.AddContractor(contractorInput("Split Years", "split@example.com"))
	assert.NoError(t, err)

	addPayment(t, c, contractor.ID, "400.00", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	addPayment(t, c, contractor.ID, "400.00", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))

	// 800 in total, but neither single year reaches 600.
	for _, year := range []int{2025, 2026} {
		results, err := c.GetContractorsAboveThreshold(year, mustDecimal(t, "600.00"))
		assert.NoError(t, err)
		assert.Empty(t, results, "year %d", year)
	}
}

func TestEndToEndScenario(t *testing.T) {
	c := newTestCompliance(t)

	a, err := c.AddContractor(store.CreateContractorInput{
		Name:  "Contractor A",
		Email: "a@example.com",
		TIN:   "123-45-6789",
	})
	assert.NoError(t, err)

	addPayment(t, c, a.ID, "300.00", time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	addPayment(t, c, a.ID, "350.00", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))

	total, err := c.GetContractorTotal(a.ID, 2026)
	assert.NoError(t, err)
	assert.True(t, total.Equal(mustDecimal(t, "650.00")), "got %s", total)

	results, err := c.GetContractorsAboveThreshold(2026, mustDecimal(t, "600"))
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, a.ID, results[0].Contractor.ID)
	assert.True(t, results[0].TotalPaid.Equal(mustDecimal(t, "650.00")))

	hasW9, err := c.HasW9(a.ID)
	assert.NoError(t, err)
	assert.True(t, hasW9)
}
