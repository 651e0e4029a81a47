package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxledger/compliance"
	"taxledger/config"
	"taxledger/handlers"
	"taxledger/middleware"
	"taxledger/models"
	"taxledger/store"
	"taxledger/utils"
	"taxledger/vault"
)

var core *compliance.Compliance

func initServices() error {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.Contractor{}, &models.Payment{}); err != nil {
		return err
	}

	v, err := vault.New(config.AppConfig.TINEncryptionKey)
	if err != nil {
		return err
	}

	contractors := store.NewContractorStore(db, v)
	ledger := store.NewPaymentLedger(db, contractors)
	core = compliance.New(contractors, ledger)

	return nil
}

func setupRoutes(app *fiber.App) {
	app.Get("/", handlers.HealthCheck)

	app.Post("/api/w9/submit", handlers.SubmitW9)
	app.Get("/api/contractors", handlers.ListContractors)
	app.Get("/api/contractors/:id", handlers.GetContractor)
	app.Get("/api/contractors/:id/tin", middleware.RequireAdmin, handlers.RevealTIN)
	app.Get("/api/contractors/:id/total", handlers.GetContractorTotal)

	app.Post("/api/payments", handlers.RecordPayment)

	app.Get("/api/reports/1099", handlers.Get1099Report)
}

func generateKey() {
	key, err := vault.GenerateKey()
	if err != nil {
		log.Fatal("Failed to generate key:", err)
	}
	fmt.Println("Generated TIN encryption key:")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Store it securely and add to .env:")
	fmt.Printf("TIN_ENCRYPTION_KEY=%s\n", key)
}

func envFileContent(key string) string {
	return fmt.Sprintf(`# Taxledger configuration

PORT=8000
DB_PATH=agent_tax.db

# TIN encryption key (keep secret)
TIN_ENCRYPTION_KEY=%s

# Secret for the portal's admin tokens (guards the TIN reveal route)
JWT_SECRET=
`, key)
}

// scaffoldEnv writes a fresh configuration file with a generated vault key.
// An existing file is never overwritten.
func scaffoldEnv(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}
	key, err := vault.GenerateKey()
	if err != nil {
		return fmt.Errorf("could not generate key: %w", err)
	}
	return os.WriteFile(path, []byte(envFileContent(key)), 0o600)
}

func initConfig() {
	if err := scaffoldEnv(".env"); err != nil {
		log.Fatal("Failed to initialize config: ", err)
	}
	fmt.Println("Created .env with a fresh TIN encryption key")
	fmt.Println("Edit .env to set JWT_SECRET before serving")
}

func printHelp() {
	fmt.Print(`Taxledger CLI

Commands:
  init            Create a .env file with a fresh encryption key
  generate-key    Generate an encryption key for TINs
  serve           Start the W-9 portal server
  help            Show this help message
`)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "generate-key":
			generateKey()
			return
		case "init":
			initConfig()
			return
		case "help", "--help", "-h":
			printHelp()
			return
		case "serve":
		default:
			fmt.Printf("Unknown command: %s\n\n", os.Args[1])
			printHelp()
			return
		}
	}

	config.LoadConfig()
	utils.InitLogger()

	if err := initServices(); err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	app := fiber.New()
	handlers.InitHandlers(core)
	setupRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
