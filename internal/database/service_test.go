package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	testTenant      = "tenant-1"
	testOtherTenant = "tenant-2"
	testDriver      = "driver-1"
	testOtherDriver = "driver-2"
	testAdmin       = "admin-1"
	testCashier     = "cashier-1"
	testCustomer    = "customer-1"
)

var (
	driverActor = models.Actor{UserId: testDriver, TenantId: testTenant, Role: models.RoleDriver}
	adminActor  = models.Actor{UserId: testAdmin, TenantId: testTenant, Role: models.RoleAdmin}
	intruder    = models.Actor{UserId: testDriver, TenantId: testOtherTenant, Role: models.RoleDriver}
)

func setupTestDB(t *testing.T) (*Service, func()) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	service := &Service{db: db}
	if err := service.InitSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	fixtures := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO tenants (id, name) VALUES (?, ?)`, []any{testTenant, "Test Agency"}},
		{`INSERT INTO tenants (id, name) VALUES (?, ?)`, []any{testOtherTenant, "Other Agency"}},
		{`INSERT INTO users (id, tenant_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			[]any{testDriver, testTenant, "Test Driver", "driver@test.local", models.RoleDriver}},
		{`INSERT INTO users (id, tenant_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			[]any{testOtherDriver, testTenant, "Other Driver", "driver2@test.local", models.RoleDriver}},
		{`INSERT INTO users (id, tenant_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			[]any{testAdmin, testTenant, "Test Admin", "admin@test.local", models.RoleAdmin}},
		{`INSERT INTO users (id, tenant_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			[]any{testCashier, testTenant, "Test Cashier", "cashier@test.local", models.RoleCashier}},
		{`INSERT INTO customers (id, tenant_id, name) VALUES (?, ?, ?)`,
			[]any{testCustomer, testTenant, "Test Customer"}},
	}
	for _, f := range fixtures {
		if _, err := db.Exec(f.query, f.args...); err != nil {
			t.Fatalf("Failed to insert fixture: %v", err)
		}
	}

	cleanup := func() {
		db.Close()
	}
	return service, cleanup
}

func insertCylinder(t *testing.T, s *Service, id, serial, status, location, holder string) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO cylinders
		(id, tenant_id, serial_number, size, status, current_location_type, current_holder_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, testTenant, serial, "Small", status, location, holder)
	if err != nil {
		t.Fatalf("Failed to insert cylinder %s: %v", serial, err)
	}
}

func insertOrder(t *testing.T, s *Service, id, driverId, status string, total decimal.Decimal, qty int) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO orders
		(id, tenant_id, friendly_id, customer_id, driver_id, total_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, testTenant, "ORD-"+id, testCustomer, driverId, total.String(), status)
	if err != nil {
		t.Fatalf("Failed to insert order %s: %v", id, err)
	}
	_, err = s.db.Exec(`INSERT INTO order_items
		(id, order_id, tenant_id, product_name, quantity) VALUES (?, ?, ?, ?, ?)`,
		"item-"+id, id, testTenant, "Small", qty)
	if err != nil {
		t.Fatalf("Failed to insert order item: %v", err)
	}
}

func cylinderStatus(t *testing.T, s *Service, id string) (status, location, holder string) {
	t.Helper()
	err := s.db.QueryRow(
		`SELECT status, current_location_type, current_holder_id FROM cylinders WHERE id = ?`, id).
		Scan(&status, &location, &holder)
	if err != nil {
		t.Fatalf("Failed to read cylinder %s: %v", id, err)
	}
	return status, location, holder
}

// testHandoverParams builds a minimal pending handover-request transaction;
// tests override fields as needed.
func testHandoverParams(amount decimal.Decimal) store.TransactionParams {
	return store.TransactionParams{
		UserId:        testDriver,
		ReceiverId:    testCashier,
		Type:          models.TransactionTypeHandoverRequest,
		Amount:        amount,
		PaymentMethod: models.PaymentMethodCash,
		Status:        models.TransactionStatusPending,
	}
}

func TestSetWalletThenGet(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	balance, err := service.GetWalletBalance(ctx, driverActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if !balance.Equal(decimal.Zero) {
		t.Errorf("Expected zero balance for missing wallet, got %s", balance.String())
	}

	if err := service.AdjustWalletBalance(ctx, driverActor, testDriver, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("AdjustWalletBalance failed: %v", err)
	}
	if err := service.AdjustWalletBalance(ctx, driverActor, testDriver, decimal.NewFromInt(200)); err != nil {
		t.Fatalf("AdjustWalletBalance failed: %v", err)
	}

	balance, err = service.GetWalletBalance(ctx, driverActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected balance 500 after two credits, got %s", balance.String())
	}
}

func TestAdjustCustomerBalance(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := service.AdjustCustomerBalance(ctx, driverActor, testCustomer, decimal.NewFromInt(4600)); err != nil {
		t.Fatalf("AdjustCustomerBalance failed: %v", err)
	}
	if err := service.AdjustCustomerBalance(ctx, driverActor, testCustomer, decimal.NewFromInt(-600)); err != nil {
		t.Fatalf("AdjustCustomerBalance failed: %v", err)
	}

	customer, err := service.GetCustomer(ctx, driverActor, testCustomer)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if !customer.CurrentBalance.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Expected balance 4000, got %s", customer.CurrentBalance.String())
	}
}

func TestAdjustCustomerBalance_ExactDecimal(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tenth := decimal.RequireFromString("0.1")

	// Repeated fractional increments must stay exact; binary-float
	// accumulation would yield 0.30000000000000004.
	for i := 0; i < 3; i++ {
		if err := service.AdjustCustomerBalance(ctx, driverActor, testCustomer, tenth); err != nil {
			t.Fatalf("AdjustCustomerBalance failed: %v", err)
		}
	}

	customer, err := service.GetCustomer(ctx, driverActor, testCustomer)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if got := customer.CurrentBalance.String(); got != "0.3" {
		t.Errorf("Expected balance exactly 0.3, got %s", got)
	}
}

func TestAdjustWalletBalance_ExactDecimal(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tenth := decimal.RequireFromString("0.1")

	for i := 0; i < 3; i++ {
		if err := service.AdjustWalletBalance(ctx, driverActor, testDriver, tenth); err != nil {
			t.Fatalf("AdjustWalletBalance failed: %v", err)
		}
	}

	balance, err := service.GetWalletBalance(ctx, driverActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if got := balance.String(); got != "0.3" {
		t.Errorf("Expected balance exactly 0.3, got %s", got)
	}
}

func TestAdjustCustomerBalance_WrongTenant(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	err := service.AdjustCustomerBalance(context.Background(), intruder, testCustomer, decimal.NewFromInt(100))
	if err == nil {
		t.Fatal("Expected error adjusting another tenant's customer")
	}
}

func TestUpdateTransactionStatus_Conditional(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txn, err := service.InsertTransaction(ctx, driverActor, testHandoverParams(decimal.NewFromInt(100)))
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	err = service.UpdateTransactionStatus(ctx, adminActor, txn.Id,
		models.TransactionStatusPending, models.TransactionStatusRejected)
	if err != nil {
		t.Fatalf("First transition failed: %v", err)
	}

	err = service.UpdateTransactionStatus(ctx, adminActor, txn.Id,
		models.TransactionStatusPending, models.TransactionStatusApproved)
	if err == nil {
		t.Fatal("Expected error on second transition from pending")
	}
}

func TestListCustomerTransactions_Ordering(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	saleAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	saleParams := testHandoverParams(decimal.NewFromInt(5600))
	saleParams.CustomerId = testCustomer
	saleParams.Type = models.TransactionTypeSale
	saleParams.CreatedAt = saleAt
	if _, err := service.InsertTransaction(ctx, driverActor, saleParams); err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	paymentParams := testHandoverParams(decimal.NewFromInt(-1000))
	paymentParams.CustomerId = testCustomer
	paymentParams.Type = models.TransactionTypePayment
	paymentParams.CreatedAt = saleAt.Add(time.Second)
	if _, err := service.InsertTransaction(ctx, driverActor, paymentParams); err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	transactions, err := service.ListCustomerTransactions(ctx, driverActor, testCustomer)
	if err != nil {
		t.Fatalf("ListCustomerTransactions failed: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Type != models.TransactionTypeSale {
		t.Errorf("Expected the sale first, got %s", transactions[0].Type)
	}
	if transactions[1].Type != models.TransactionTypePayment {
		t.Errorf("Expected the payment second, got %s", transactions[1].Type)
	}
	if !transactions[1].CreatedAt.After(transactions[0].CreatedAt) {
		t.Error("Expected the payment to be stamped after the sale")
	}
}
