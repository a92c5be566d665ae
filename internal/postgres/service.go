package postgres

import (
	"context"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check that the Postgres backend satisfies the store contract.
var _ store.Store = (*Service)(nil)

// Service is the Postgres-backed store. It speaks the same per-call contract
// as the embedded backend but leans on server-side features where they exist:
// array parameters instead of expanded IN lists, row locking during handover
// asset selection and a database function for the atomic approval.
type Service struct {
	pool *pgxpool.Pool
}

func NewService(ctx context.Context, cfg models.PostgresConfig) (*Service, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgres url is required")
	}

	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zap.L().Info("Connected to Postgres store")
	return &Service{pool: pool}, nil
}

func (s *Service) Close() {
	s.pool.Close()
	zap.L().Info("Postgres connection pool closed")
}

// InitSchema creates the tables, indexes and the approval function. Idempotent.
func (s *Service) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	zap.L().Info("Postgres schema initialized")
	return nil
}
