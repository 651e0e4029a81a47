package test

import (
	"log"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxledger/compliance"
	"taxledger/config"
	"taxledger/handlers"
	"taxledger/models"
	"taxledger/store"
	"taxledger/utils"
	"taxledger/vault"
)

var (
	testApp  *fiber.App
	testDB   *gorm.DB
	testCore *compliance.Compliance
)

func init() {
	// Self-contained test environment: a generated vault key and a fixed
	// JWT secret, no .env required.
	key, err := vault.GenerateKey()
	if err != nil {
		log.Fatal("Failed to generate test key:", err)
	}
	os.Setenv("TIN_ENCRYPTION_KEY", key)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DB_PATH", "file:apitest?mode=memory&cache=shared")

	config.LoadConfig()
	utils.InitLogger()

	testDB, err = gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to test database:", err)
	}
	if err := testDB.AutoMigrate(&models.Contractor{}, &models.Payment{}); err != nil {
		log.Fatal("Failed to migrate test database:", err)
	}

	v, err := vault.New(config.AppConfig.TINEncryptionKey)
	if err != nil {
		log.Fatal("Failed to initialize test vault:", err)
	}

	contractors := store.NewContractorStore(testDB, v)
	ledger := store.NewPaymentLedger(testDB, contractors)
	testCore = compliance.New(contractors, ledger)

	handlers.InitHandlers(testCore)
	testApp = fiber.New()
}

func SetupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	ResetTestDB()

	testApp = fiber.New()
	handlers.InitHandlers(testCore)

	return testApp, testDB
}

func ResetTestDB() {
	testDB.Exec("DELETE FROM payments")
	testDB.Exec("DELETE FROM contractors")
}

// Helper function to create test JWT token
func createTestToken(userID string, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		log.Printf("Error creating test token: %v", err)
		return ""
	}
	return tokenString
}
