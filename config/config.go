package config

import (
	"encoding/base64"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBPath           string
	JWTSecret        string
	TINEncryptionKey []byte
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:             getEnvOrDefault("PORT", "8000"),
		DBPath:           getEnvOrDefault("DB_PATH", "agent_tax.db"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		TINEncryptionKey: mustGetKey("TIN_ENCRYPTION_KEY"),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

// mustGetKey decodes a base64-encoded encryption key. A missing or malformed
// key is a fatal startup error: the process must refuse to serve rather than
// operate the vault without one.
func mustGetKey(key string) []byte {
	value := mustGetEnv(key)
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		log.Fatalf("Environment variable %s is not valid base64: %v", key, err)
	}
	return decoded
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
