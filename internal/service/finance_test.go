package service

import (
	"context"
	"errors"
	"testing"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
)

func TestRecordManualTransaction(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	err := svc.RecordManualTransaction(ctx, testAdmin, ManualEntryParams{
		EntryType: models.TransactionTypeCredit,
		Category:  "cylinder_sales",
		Amount:    decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("RecordManualTransaction failed: %v", err)
	}

	err = svc.RecordManualTransaction(ctx, testAdmin, ManualEntryParams{
		EntryType: models.TransactionTypeDebit,
		Category:  "fuel",
		Amount:    decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("RecordManualTransaction failed: %v", err)
	}

	cash, err := svc.GetCompanyCashTotal(ctx, testAdmin)
	if err != nil {
		t.Fatalf("GetCompanyCashTotal failed: %v", err)
	}
	if !cash.Equal(decimal.NewFromInt(800)) {
		t.Errorf("Expected cash 800 after credit and debit, got %s", cash)
	}
}

func TestRecordManualTransaction_CustomerPayment(t *testing.T) {
	svc, db, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	err := svc.RecordManualTransaction(ctx, testAdmin, ManualEntryParams{
		EntryType:  models.TransactionTypeCredit,
		Category:   "customer_payment",
		Amount:     decimal.NewFromInt(150),
		CustomerId: seededCustomerId,
	})
	if err != nil {
		t.Fatalf("RecordManualTransaction failed: %v", err)
	}

	if balance := customerBalance(t, db); !balance.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("Expected customer balance -150, got %s", balance)
	}

	statement, err := svc.GetCustomerStatement(ctx, testAdmin, seededCustomerId)
	if err != nil {
		t.Fatalf("GetCustomerStatement failed: %v", err)
	}
	if len(statement) != 1 || statement[0].Type != models.TransactionTypePayment {
		t.Fatalf("Expected one payment row on the statement, got %+v", statement)
	}
	if !statement[0].Amount.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("Expected amount -150, got %s", statement[0].Amount)
	}
}

func TestRecordManualTransaction_Validation(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	err := svc.RecordManualTransaction(ctx, testAdmin, ManualEntryParams{
		EntryType: "transfer",
		Category:  "misc",
		Amount:    decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown entry type, got %v", err)
	}

	err = svc.RecordManualTransaction(ctx, testDriver, ManualEntryParams{
		EntryType: models.TransactionTypeCredit,
		Category:  "misc",
		Amount:    decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for a driver, got %v", err)
	}
}

func TestVerifyPayment(t *testing.T) {
	svc, db, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	txn, err := db.InsertTransaction(ctx, testDriver, store.TransactionParams{
		CustomerId:    seededCustomerId,
		UserId:        testDriver.UserId,
		Type:          models.TransactionTypePayment,
		Amount:        decimal.NewFromInt(-400),
		PaymentMethod: models.PaymentMethodBank,
		Status:        models.TransactionStatusPendingVerification,
		Description:   "Bank transfer awaiting confirmation",
	})
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	if err := svc.VerifyPayment(ctx, testCashier, txn.Id); err != nil {
		t.Fatalf("VerifyPayment failed: %v", err)
	}

	updated, err := db.GetTransaction(ctx, testAdmin, txn.Id)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if updated.Status != models.TransactionStatusVerified {
		t.Errorf("Expected verified, got %s", updated.Status)
	}

	if balance := customerBalance(t, db); !balance.Equal(decimal.NewFromInt(-400)) {
		t.Errorf("Expected customer balance -400, got %s", balance)
	}

	cash, err := svc.GetCompanyCashTotal(ctx, testAdmin)
	if err != nil {
		t.Fatalf("GetCompanyCashTotal failed: %v", err)
	}
	if !cash.Equal(decimal.NewFromInt(400)) {
		t.Errorf("Expected cash 400, got %s", cash)
	}

	// A second verification must not double-clear the tab.
	err = svc.VerifyPayment(ctx, testCashier, txn.Id)
	if !errors.Is(err, store.ErrAlreadyProcessed) {
		t.Errorf("Expected ErrAlreadyProcessed, got %v", err)
	}
	if balance := customerBalance(t, db); !balance.Equal(decimal.NewFromInt(-400)) {
		t.Errorf("Expected balance unchanged at -400, got %s", balance)
	}
}

func TestRejectPayment(t *testing.T) {
	svc, db, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	txn, err := db.InsertTransaction(ctx, testDriver, store.TransactionParams{
		CustomerId:    seededCustomerId,
		UserId:        testDriver.UserId,
		Type:          models.TransactionTypePayment,
		Amount:        decimal.NewFromInt(-400),
		PaymentMethod: models.PaymentMethodBank,
		Status:        models.TransactionStatusPendingVerification,
	})
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	if err := svc.RejectPayment(ctx, testCashier, txn.Id); err != nil {
		t.Fatalf("RejectPayment failed: %v", err)
	}

	// Balances untouched.
	if balance := customerBalance(t, db); !balance.IsZero() {
		t.Errorf("Expected balance untouched, got %s", balance)
	}
	cash, err := svc.GetCompanyCashTotal(ctx, testAdmin)
	if err != nil {
		t.Fatalf("GetCompanyCashTotal failed: %v", err)
	}
	if !cash.IsZero() {
		t.Errorf("Expected empty cash book, got %s", cash)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	stats, err := svc.GetDashboardStats(context.Background(), testAdmin)
	if err != nil {
		t.Fatalf("GetDashboardStats failed: %v", err)
	}

	if stats.ActiveDrivers != 1 {
		t.Errorf("Expected 1 driver, got %d", stats.ActiveDrivers)
	}
	if stats.TotalCylinders != 5 {
		t.Errorf("Expected 5 cylinders, got %d", stats.TotalCylinders)
	}
	if stats.WarehouseStock != 2 {
		t.Errorf("Expected 2 in the warehouse, got %d", stats.WarehouseStock)
	}
	if stats.DistributedStock != 3 {
		t.Errorf("Expected 3 distributed, got %d", stats.DistributedStock)
	}
	if stats.EmptyCylinders != 0 {
		t.Errorf("Expected no empties, got %d", stats.EmptyCylinders)
	}
	if !stats.CompanyCash.IsZero() {
		t.Errorf("Expected empty cash book, got %s", stats.CompanyCash)
	}
}

func TestDriverInventoryAndStats(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	inv, err := svc.GetDriverInventory(ctx, testDriver)
	if err != nil {
		t.Fatalf("GetDriverInventory failed: %v", err)
	}
	if inv.FullCount != 3 || inv.EmptyCount != 0 {
		t.Errorf("Expected 3 full / 0 empty, got %d/%d", inv.FullCount, inv.EmptyCount)
	}

	stats, err := svc.GetDriverStats(ctx, testDriver)
	if err != nil {
		t.Fatalf("GetDriverStats failed: %v", err)
	}
	if stats.PendingOrders != 1 {
		t.Errorf("Expected 1 open order, got %d", stats.PendingOrders)
	}
	if !stats.WalletBalance.IsZero() {
		t.Errorf("Expected empty wallet, got %s", stats.WalletBalance)
	}
}
