package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendDatastore = "datastore"
	BackendMongo     = "mongo"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

type envConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string
	LOG_LEVEL     string
	PUBLIC_DIR    string

	STORE_BACKEND string

	GCP_PROJECT_ID string

	MONGO_URI     string
	MONGO_DB_NAME string

	DB_HOST              string
	DB_PORT              string
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration

	SESSION_SECRET        string
	SESSION_COOKIE_NAME   string
	SESSION_MAX_AGE       time.Duration
	SESSION_SECURE_COOKIE bool

	EXPORT_LAYOUT_FILE string
}

var DefaultEnvConfig envConfig

// LoadEnvConfig reads .env (if present) and the process environment into
// DefaultEnvConfig.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return err
	}
	DefaultEnvConfig = cfg
	return nil
}

func fromEnv() (envConfig, error) {
	var (
		cfg envConfig
		err error
	)

	cfg.APP_PORT = getString("APP_PORT", "8080")
	cfg.LOG_FILE_PATH = getString("LOG_FILE_PATH", "")
	cfg.LOG_LEVEL = getString("LOG_LEVEL", "info")
	cfg.PUBLIC_DIR = getString("PUBLIC_DIR", "public")

	cfg.STORE_BACKEND = strings.ToLower(getString("STORE_BACKEND", BackendDatastore))

	cfg.GCP_PROJECT_ID = getString("GCP_PROJECT_ID", "")

	cfg.MONGO_URI = getString("MONGO_URI", "")
	cfg.MONGO_DB_NAME = getString("MONGO_DB_NAME", "todoDB")

	cfg.DB_HOST = getString("DB_HOST", "localhost")
	cfg.DB_PORT = getString("DB_PORT", "5432")
	cfg.DB_USER = getString("DB_USER", "postgres")
	cfg.DB_PASSWORD = getString("DB_PASSWORD", "")
	cfg.DB_NAME = getString("DB_NAME", "todo")
	cfg.DB_SSL_MODE = getString("DB_SSL_MODE", "disable")
	if cfg.DB_MAX_OPEN_CONNS, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return cfg, err
	}
	if cfg.DB_MAX_IDLE_CONNS, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return cfg, err
	}
	if cfg.DB_CONN_MAX_LIFETIME, err = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return cfg, err
	}

	cfg.SESSION_SECRET = getString("SESSION_SECRET", "")
	cfg.SESSION_COOKIE_NAME = getString("SESSION_COOKIE_NAME", "connect.sid")
	if cfg.SESSION_MAX_AGE, err = getDuration("SESSION_MAX_AGE", 14*24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.SESSION_SECURE_COOKIE, err = getBool("SESSION_SECURE_COOKIE", false); err != nil {
		return cfg, err
	}

	cfg.EXPORT_LAYOUT_FILE = getString("EXPORT_LAYOUT_FILE", "")

	return cfg, cfg.validate()
}

func (c envConfig) validate() error {
	switch c.STORE_BACKEND {
	case BackendDatastore:
		if c.GCP_PROJECT_ID == "" {
			return errors.New("GCP_PROJECT_ID is required for the datastore backend")
		}
	case BackendMongo:
		if c.MONGO_URI == "" {
			return errors.New("MONGO_URI is required for the mongo backend")
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.STORE_BACKEND)
	}

	if c.SESSION_SECRET == "" && c.STORE_BACKEND != BackendMemory {
		return errors.New("SESSION_SECRET is required")
	}
	return nil
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := getString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getString(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getString(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
