package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("USERS_TABLE", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.UsersTable)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USERS_TABLE", "users-dev")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "users-dev", cfg.UsersTable)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoEndpoint)
}
