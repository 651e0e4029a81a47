package store

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxledger/models"
	"taxledger/vault"
)

// newTestStores opens a fresh in-memory database per test. The shared-cache
// DSN keeps GORM's pooled connections pointed at the same database.
func newTestStores(t *testing.T) (*ContractorStore, *PaymentLedger) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Contractor{}, &models.Payment{}))

	v := newTestVault(t)
	contractors := NewContractorStore(db, v)
	return contractors, NewPaymentLedger(db, contractors)
}

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()

	encoded, err := vault.GenerateKey()
	require.NoError(t, err)
	key, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	v, err := vault.New(key)
	require.NoError(t, err)
	return v
}

func validContractor() CreateContractorInput {
	return CreateContractorInput{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		TIN:     "123-45-6789",
		Address: "12 Analytical Way",
		City:    "London",
		State:   "CA",
		ZipCode: "94107",
	}
}
