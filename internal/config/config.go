package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMock     = "mock"
	StoreExcel    = "excel"
	StoreHTTP     = "http"
	StorePostgres = "postgres"
)

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	RecordStore  string
	DatasetPath  string
	StoreURL     string
	DatabaseURL  string
	MockLatency  time.Duration
	FetchTimeout time.Duration
	StoreMaxWait time.Duration
}

// Load reads .env files (if present) and then the environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...) // a missing .env is fine
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("ENVIRONMENT", "local"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		RecordStore: strings.ToLower(envOr("RECORD_STORE", StoreMock)),
		DatasetPath: envOr("DATASET_PATH", "video_analyses.xlsx"),
		StoreURL:    os.Getenv("RECORD_STORE_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.MockLatency, err = envMillis("MOCK_LATENCY_MS", 300); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = envSeconds("FETCH_TIMEOUT_SEC", 30); err != nil {
		return nil, err
	}
	if cfg.StoreMaxWait, err = envSeconds("STORE_MAX_RETRY_SEC", 20); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected record store has what it needs.
func (c *Config) Validate() error {
	switch c.RecordStore {
	case StoreMock, StoreExcel:
	case StoreHTTP:
		if c.StoreURL == "" {
			return fmt.Errorf("RECORD_STORE=http requires RECORD_STORE_URL")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("RECORD_STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", c.RecordStore)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", k, v)
	}
	return n, nil
}

func envMillis(k string, def int) (time.Duration, error) {
	n, err := envInt(k, def)
	return time.Duration(n) * time.Millisecond, err
}

func envSeconds(k string, def int) (time.Duration, error) {
	n, err := envInt(k, def)
	return time.Duration(n) * time.Second, err
}
