package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GetWalletBalance returns the driver's wallet balance, zero when no wallet
// row exists yet.
func (s *Service) GetWalletBalance(ctx context.Context, actor models.Actor, userId string) (decimal.Decimal, error) {
	var balanceStr string
	err := s.pool.QueryRow(ctx, queryGetWalletBalance, userId, actor.TenantId).Scan(&balanceStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}
	return balance, nil
}

// AdjustWalletBalance applies a signed delta as an upsert increment, creating
// the wallet row on first use.
func (s *Service) AdjustWalletBalance(ctx context.Context, actor models.Actor, userId string, delta decimal.Decimal) error {
	_, err := s.pool.Exec(ctx, queryAdjustWalletBalance, userId, actor.TenantId, delta.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to adjust wallet balance: %w", err)
	}
	return nil
}
