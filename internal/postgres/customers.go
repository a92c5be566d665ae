package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var customer models.Customer
	var balanceStr string
	err := row.Scan(&customer.Id, &customer.TenantId, &customer.Name, &customer.Phone,
		&customer.Address, &balanceStr, &customer.IsActive, &customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	customer.CurrentBalance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_balance '%s': %w", balanceStr, err)
	}
	return &customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, actor models.Actor, customerId string) (*models.Customer, error) {
	row := s.pool.QueryRow(ctx, queryGetCustomer, customerId, actor.TenantId)
	customer, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// AdjustCustomerBalance applies a signed delta as a single server-side
// increment, so concurrent settlements never clobber each other's updates.
func (s *Service) AdjustCustomerBalance(ctx context.Context, actor models.Actor, customerId string, delta decimal.Decimal) error {
	tag, err := s.pool.Exec(ctx, queryAdjustCustomerBalance, delta.String(), customerId, actor.TenantId)
	if err != nil {
		return fmt.Errorf("failed to adjust customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListOutstandingBalances returns customers who owe money, largest debt first.
func (s *Service) ListOutstandingBalances(ctx context.Context, actor models.Actor) ([]models.Customer, error) {
	rows, err := s.pool.Query(ctx, queryListOutstandingBalances, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding balances: %w", err)
	}
	defer rows.Close()

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
