package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Store.
var _ store.Store = (*Service)(nil)

// balanceUpdateRetries bounds the reread loop when a version-guarded balance
// write loses to a concurrent writer.
const balanceUpdateRetries = 5

// Service is the SQLite-backed store. Every exported method is one filtered
// statement; only ApproveDriverHandover opens a multi-statement transaction,
// mirroring the single server-side procedure of the hosted backend.
type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.InitSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_tenant_role ON users(tenant_id, role);

	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		current_balance TEXT NOT NULL DEFAULT '0',
		version INTEGER NOT NULL DEFAULT 1,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_customers_tenant ON customers(tenant_id);

	CREATE TABLE IF NOT EXISTS cylinders (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		serial_number TEXT NOT NULL,
		size TEXT NOT NULL,
		status TEXT NOT NULL,
		current_location_type TEXT NOT NULL,
		current_holder_id TEXT NOT NULL DEFAULT '',
		last_order_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(tenant_id, serial_number)
	);

	CREATE INDEX IF NOT EXISTS idx_cylinders_holder ON cylinders(tenant_id, current_holder_id, current_location_type, status);
	CREATE INDEX IF NOT EXISTS idx_cylinders_last_order ON cylinders(tenant_id, last_order_id);
	CREATE INDEX IF NOT EXISTS idx_cylinders_status ON cylinders(tenant_id, status);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		friendly_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		driver_id TEXT NOT NULL DEFAULT '',
		total_amount TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		amount_received TEXT NOT NULL DEFAULT '0',
		notes TEXT NOT NULL DEFAULT '',
		trip_started_at TIMESTAMP,
		trip_completed_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_driver ON orders(tenant_id, driver_id, status);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

	CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		order_id TEXT NOT NULL DEFAULT '',
		customer_id TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		receiver_id TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		proof_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(tenant_id, customer_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_type_status ON transactions(tenant_id, type, status);

	CREATE TABLE IF NOT EXISTS handover_assets (
		transaction_id TEXT NOT NULL,
		cylinder_id TEXT NOT NULL,
		previous_status TEXT NOT NULL,
		PRIMARY KEY (transaction_id, cylinder_id)
	);

	CREATE TABLE IF NOT EXISTS employee_wallets (
		user_id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS company_ledger (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		admin_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_company_ledger_tenant ON company_ledger(tenant_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// placeholders returns "?, ?, ..." for n bind parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// inArgs prepends fixed arguments to the members of an IN (...) clause.
func inArgs(fixed []any, values []string) []any {
	args := make([]any, 0, len(fixed)+len(values))
	args = append(args, fixed...)
	for _, v := range values {
		args = append(args, v)
	}
	return args
}
