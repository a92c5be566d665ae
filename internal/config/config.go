package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	uploadTimeout, err := getEnvDuration("PROOF_UPLOAD_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	return &models.Config{
		Backend: getEnvString("STORE_BACKEND", "sqlite"),
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "gaserp.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
			SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
		},
		Postgres: models.PostgresConfig{
			URL:         getEnvString("POSTGRES_URL", ""),
			PingTimeout: pingTimeout,
		},
		Storage: models.StorageConfig{
			Mode:          getEnvString("PROOF_STORAGE_MODE", "disk"),
			Dir:           getEnvString("PROOF_STORAGE_DIR", "receipts"),
			BaseURL:       getEnvString("PROOF_STORAGE_BASE_URL", "file://receipts"),
			Endpoint:      getEnvString("PROOF_STORAGE_ENDPOINT", ""),
			UploadTimeout: uploadTimeout,
		},
		Catalog: models.CatalogConfig{
			SizesFile: getEnvString("SIZES_FILE", "sizes.yaml"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
