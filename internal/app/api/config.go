package api

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port           string
	UsersTable     string
	AWSRegion      string
	DynamoEndpoint string
	PostgresDSN    string
}

// LoadConfig reads environment variables and applies defaults. The storage
// backend is chosen from what is set: USERS_TABLE selects DynamoDB,
// POSTGRES_DSN selects PostgreSQL, and neither falls back to memory.
func LoadConfig() Config {
	return Config{
		Port:           envDefault("PORT", "8080"),
		UsersTable:     strings.TrimSpace(os.Getenv("USERS_TABLE")),
		AWSRegion:      strings.TrimSpace(os.Getenv("AWS_REGION")),
		DynamoEndpoint: strings.TrimSpace(os.Getenv("DYNAMODB_ENDPOINT")),
		PostgresDSN:    strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
