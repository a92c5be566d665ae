package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InsertLedgerEntry appends one company cash-book row.
func (s *Service) InsertLedgerEntry(ctx context.Context, actor models.Actor, params store.LedgerEntryParams) error {
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, queryInsertLedgerEntry,
		uuid.New().String(), actor.TenantId, params.Amount.String(), params.TransactionType,
		params.Category, params.Description, params.AdminId, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	zap.L().Info("Ledger entry recorded",
		zap.String("type", params.TransactionType),
		zap.String("category", params.Category),
		zap.String("amount", params.Amount.String()))
	return nil
}

// CompanyCashTotal sums the tenant's cash book. The amounts are decimal text,
// so the summation happens in Go; SQL SUM would round them through floats.
func (s *Service) CompanyCashTotal(ctx context.Context, actor models.Actor) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, queryListLedgerAmounts, actor.TenantId)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read company ledger: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	total := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan ledger amount: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse ledger amount '%s': %w", amountStr, err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating ledger: %w", err)
	}
	return total, nil
}
