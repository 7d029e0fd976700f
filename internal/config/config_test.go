package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.APP_PORT)
	assert.Equal(t, BackendMemory, cfg.STORE_BACKEND)
	assert.Equal(t, "connect.sid", cfg.SESSION_COOKIE_NAME)
	assert.Equal(t, 14*24*time.Hour, cfg.SESSION_MAX_AGE)
	assert.Equal(t, "todoDB", cfg.MONGO_DB_NAME)
	assert.Equal(t, 10, cfg.DB_MAX_OPEN_CONNS)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_MAX_AGE", "2h")
	t.Setenv("SESSION_SECURE_COOKIE", "true")
	t.Setenv("APP_PORT", "3000")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.STORE_BACKEND)
	assert.Equal(t, 2*time.Hour, cfg.SESSION_MAX_AGE)
	assert.True(t, cfg.SESSION_SECURE_COOKIE)
	assert.Equal(t, "3000", cfg.APP_PORT)
}

func TestFromEnvValidation(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "redis")
		_, err := fromEnv()
		assert.Error(t, err)
	})

	t.Run("datastore needs project", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "datastore")
		t.Setenv("GCP_PROJECT_ID", "")
		t.Setenv("SESSION_SECRET", "x")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "GCP_PROJECT_ID")
	})

	t.Run("secret required outside memory", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("SESSION_SECRET", "")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "memory")
		t.Setenv("SESSION_MAX_AGE", "forever")
		_, err := fromEnv()
		assert.Error(t, err)
	})
}
