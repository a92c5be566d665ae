package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
)

func TestGetDriverOrder(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertOrder(t, service, "order-1", testDriver, models.OrderStatusAssigned, decimal.NewFromInt(5600), 2)

	order, items, err := service.GetDriverOrder(ctx, driverActor, "order-1")
	if err != nil {
		t.Fatalf("GetDriverOrder failed: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(5600)) {
		t.Errorf("Expected total 5600, got %s", order.TotalAmount.String())
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("Expected one item with quantity 2, got %+v", items)
	}
}

func TestGetDriverOrder_Scoping(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertOrder(t, service, "order-1", testDriver, models.OrderStatusAssigned, decimal.NewFromInt(5600), 2)

	otherDriver := models.Actor{UserId: testOtherDriver, TenantId: testTenant, Role: models.RoleDriver}
	if _, _, err := service.GetDriverOrder(ctx, otherDriver, "order-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another driver's order, got %v", err)
	}
	if _, _, err := service.GetDriverOrder(ctx, intruder, "order-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound across tenants, got %v", err)
	}
}

func TestStartTrip_OnlyAssignedOrders(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertOrder(t, service, "order-1", testDriver, models.OrderStatusAssigned, decimal.NewFromInt(5600), 2)
	insertOrder(t, service, "order-2", testDriver, models.OrderStatusDelivered, decimal.NewFromInt(2800), 1)
	insertOrder(t, service, "order-3", testOtherDriver, models.OrderStatusAssigned, decimal.NewFromInt(2800), 1)

	started, err := service.StartTrip(ctx, driverActor, []string{"order-1", "order-2", "order-3"}, time.Now())
	if err != nil {
		t.Fatalf("StartTrip failed: %v", err)
	}
	if started != 1 {
		t.Errorf("Expected 1 order started, got %d", started)
	}

	order, _, err := service.GetDriverOrder(ctx, driverActor, "order-1")
	if err != nil {
		t.Fatalf("GetDriverOrder failed: %v", err)
	}
	if order.Status != models.OrderStatusOnTrip {
		t.Errorf("Expected on_trip, got %s", order.Status)
	}
	if order.TripStartedAt == nil {
		t.Error("Expected trip_started_at to be set")
	}
}

func TestMarkOrderDelivered_SecondAttemptRefused(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertOrder(t, service, "order-1", testDriver, models.OrderStatusOnTrip, decimal.NewFromInt(5600), 2)

	params := store.MarkDeliveredParams{
		OrderId:        "order-1",
		AmountReceived: decimal.NewFromInt(1000),
		PaymentMethod:  models.PaymentMethodCash,
		CompletedAt:    time.Now(),
	}
	if err := service.MarkOrderDelivered(ctx, driverActor, params); err != nil {
		t.Fatalf("First delivery failed: %v", err)
	}

	err := service.MarkOrderDelivered(ctx, driverActor, params)
	if !errors.Is(err, store.ErrAlreadyProcessed) {
		t.Errorf("Expected ErrAlreadyProcessed on second delivery, got %v", err)
	}

	order, _, err := service.GetDriverOrder(ctx, driverActor, "order-1")
	if err != nil {
		t.Fatalf("GetDriverOrder failed: %v", err)
	}
	if order.Status != models.OrderStatusDelivered {
		t.Errorf("Expected delivered, got %s", order.Status)
	}
	if !order.AmountReceived.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected received 1000, got %s", order.AmountReceived.String())
	}
}
