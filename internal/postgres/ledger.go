package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsertLedgerEntry appends one company cash-book row.
func (s *Service) InsertLedgerEntry(ctx context.Context, actor models.Actor, params store.LedgerEntryParams) error {
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, queryInsertLedgerEntry,
		uuid.New().String(), actor.TenantId, params.Amount.String(), params.TransactionType,
		params.Category, params.Description, params.AdminId, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// CompanyCashTotal sums the signed cash-book amounts for the tenant.
func (s *Service) CompanyCashTotal(ctx context.Context, actor models.Actor) (decimal.Decimal, error) {
	var totalStr string
	err := s.pool.QueryRow(ctx, queryCompanyCashTotal, actor.TenantId).Scan(&totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total company ledger: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse ledger total '%s': %w", totalStr, err)
	}
	return total, nil
}
