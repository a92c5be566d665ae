package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func scanCustomer(scanner interface{ Scan(dest ...any) error }) (*models.Customer, error) {
	var c models.Customer
	var balanceStr string
	err := scanner.Scan(&c.Id, &c.TenantId, &c.Name, &c.Phone, &c.Address,
		&balanceStr, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.CurrentBalance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_balance '%s': %w", balanceStr, err)
	}
	return &c, nil
}

func (s *Service) GetCustomer(ctx context.Context, actor models.Actor, customerId string) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx, queryGetCustomer, customerId, actor.TenantId)
	customer, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// AdjustCustomerBalance applies a signed delta to the customer's running
// debt. The new balance is computed with decimal arithmetic and written under
// an optimistic version guard, so concurrent settlements neither lose an
// update nor accumulate float error.
func (s *Service) AdjustCustomerBalance(ctx context.Context, actor models.Actor, customerId string, delta decimal.Decimal) error {
	for attempt := 0; attempt < balanceUpdateRetries; attempt++ {
		var balanceStr string
		var version int64
		err := s.db.QueryRowContext(ctx, queryGetCustomerBalance, customerId, actor.TenantId).
			Scan(&balanceStr, &version)
		if err == sql.ErrNoRows {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read customer balance: %w", err)
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return fmt.Errorf("failed to parse customer balance '%s': %w", balanceStr, err)
		}

		result, err := s.db.ExecContext(ctx, queryUpdateCustomerBalance,
			balance.Add(delta).String(), customerId, actor.TenantId, version)
		if err != nil {
			return fmt.Errorf("failed to adjust customer balance: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 1 {
			zap.L().Debug("Adjusted customer balance",
				zap.String("customer_id", customerId),
				zap.String("delta", delta.String()))
			return nil
		}
		// Another writer bumped the version; reread and retry.
	}
	return fmt.Errorf("customer balance update for %s kept losing the version race", customerId)
}

// ListOutstandingBalances returns customers with positive debt, largest first.
func (s *Service) ListOutstandingBalances(ctx context.Context, actor models.Actor) ([]models.Customer, error) {
	rows, err := s.db.QueryContext(ctx, queryListOutstandingBalances, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding balances: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var customers []models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}
