package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func scanOrder(scanner interface{ Scan(dest ...any) error }) (*models.Order, error) {
	var order models.Order
	var totalStr, receivedStr string
	err := scanner.Scan(&order.Id, &order.TenantId, &order.FriendlyId, &order.CustomerId,
		&order.DriverId, &totalStr, &order.Status, &order.PaymentMethod, &receivedStr,
		&order.Notes, &order.TripStartedAt, &order.TripCompletedAt, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	order.TotalAmount, err = decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_amount '%s': %w", totalStr, err)
	}
	order.AmountReceived, err = decimal.NewFromString(receivedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount_received '%s': %w", receivedStr, err)
	}
	return &order, nil
}

// GetDriverOrder loads an order with its line items, scoped to the requesting
// driver and tenant. Orders of other drivers or tenants report ErrNotFound.
func (s *Service) GetDriverOrder(ctx context.Context, actor models.Actor, orderId string) (*models.Order, []models.OrderItem, error) {
	row := s.db.QueryRowContext(ctx, queryGetDriverOrder, orderId, actor.UserId, actor.TenantId)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil, store.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, queryGetOrderItems, orderId, actor.TenantId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.Id, &item.OrderId, &item.TenantId, &item.ProductName, &item.Quantity); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, items, nil
}

// ListDriverOrders returns the driver's orders in the given statuses, oldest first.
func (s *Service) ListDriverOrders(ctx context.Context, actor models.Actor, statuses []string) ([]models.Order, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(queryListDriverOrders, placeholders(len(statuses)))
	rows, err := s.db.QueryContext(ctx, query, inArgs([]any{actor.UserId, actor.TenantId}, statuses)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// StartTrip moves the driver's assigned orders to on_trip and returns how
// many rows matched. Orders not owned by the driver are untouched.
func (s *Service) StartTrip(ctx context.Context, actor models.Actor, orderIds []string, startedAt time.Time) (int64, error) {
	if len(orderIds) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(queryStartTrip, placeholders(len(orderIds)))
	args := append([]any{startedAt}, inArgs(nil, orderIds)...)
	args = append(args, actor.UserId, actor.TenantId)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to start trip: %w", err)
	}
	return result.RowsAffected()
}

// MarkOrderDelivered performs the conditional assigned/on_trip -> delivered
// transition. A re-run for an already-delivered order reports ErrAlreadyProcessed.
func (s *Service) MarkOrderDelivered(ctx context.Context, actor models.Actor, params store.MarkDeliveredParams) error {
	result, err := s.db.ExecContext(ctx, queryMarkOrderDelivered,
		params.AmountReceived.String(), params.PaymentMethod, params.Notes, params.CompletedAt,
		params.OrderId, actor.TenantId)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrAlreadyProcessed
	}
	return nil
}
