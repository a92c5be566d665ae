package models

import "time"

// Config represents the application configuration.
type Config struct {
	Backend  string // "sqlite" or "postgres"
	Database DatabaseConfig
	Postgres PostgresConfig
	Storage  StorageConfig
	Catalog  CatalogConfig
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedDemoData    bool
}

// PostgresConfig holds hosted-Postgres connection settings.
type PostgresConfig struct {
	URL         string
	PingTimeout time.Duration
}

// StorageConfig holds proof-of-delivery upload settings.
type StorageConfig struct {
	Mode          string // "disk" or "http"
	Dir           string // disk mode: destination directory
	BaseURL       string // disk mode: public URL prefix
	Endpoint      string // http mode: upload endpoint
	UploadTimeout time.Duration
}

// CatalogConfig points at the cylinder size/price catalog file.
type CatalogConfig struct {
	SizesFile string
}
