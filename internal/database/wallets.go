package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetWalletBalance returns the driver's cash liability. A missing wallet row
// means zero balance.
func (s *Service) GetWalletBalance(ctx context.Context, actor models.Actor, userId string) (decimal.Decimal, error) {
	var balanceStr string
	err := s.db.QueryRowContext(ctx, queryGetWalletBalance, userId, actor.TenantId).Scan(&balanceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse wallet balance '%s': %w", balanceStr, err)
	}
	return balance, nil
}

// AdjustWalletBalance applies a signed delta to the wallet, creating the row
// on first use. Like the customer balance, the arithmetic happens in Go and
// the write carries an optimistic version guard.
func (s *Service) AdjustWalletBalance(ctx context.Context, actor models.Actor, userId string, delta decimal.Decimal) error {
	now := time.Now()
	for attempt := 0; attempt < balanceUpdateRetries; attempt++ {
		var balanceStr string
		var version int64
		err := s.db.QueryRowContext(ctx, queryGetWalletForUpdate, userId, actor.TenantId).
			Scan(&balanceStr, &version)
		if err == sql.ErrNoRows {
			result, err := s.db.ExecContext(ctx, queryInsertWallet,
				userId, actor.TenantId, delta.String(), now)
			if err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}
			inserted, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to check rows affected: %w", err)
			}
			if inserted == 1 {
				zap.L().Debug("Created wallet",
					zap.String("user_id", userId),
					zap.String("balance", delta.String()))
				return nil
			}
			// A concurrent credit created the row first; reread and update.
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read wallet balance: %w", err)
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return fmt.Errorf("failed to parse wallet balance '%s': %w", balanceStr, err)
		}

		result, err := s.db.ExecContext(ctx, queryUpdateWalletBalance,
			balance.Add(delta).String(), now, userId, actor.TenantId, version)
		if err != nil {
			return fmt.Errorf("failed to adjust wallet balance: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 1 {
			zap.L().Debug("Adjusted wallet balance",
				zap.String("user_id", userId),
				zap.String("delta", delta.String()))
			return nil
		}
	}
	return fmt.Errorf("wallet update for %s kept losing the version race", userId)
}
