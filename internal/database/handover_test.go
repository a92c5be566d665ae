package database

import (
	"context"
	"testing"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
)

// prepareHandover locks two cylinders, records the request and the asset
// links, and funds the driver's wallet.
func prepareHandover(t *testing.T, service *Service, amount, walletBalance decimal.Decimal) (*models.Transaction, []store.LockedCylinder) {
	t.Helper()
	ctx := context.Background()

	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusEmpty, models.LocationDriver, testDriver)

	locked, err := service.LockCylindersForHandover(ctx, driverActor, []string{"SN-1", "SN-2"})
	if err != nil {
		t.Fatalf("LockCylindersForHandover failed: %v", err)
	}
	if len(locked) != 2 {
		t.Fatalf("Expected 2 cylinders locked, got %d", len(locked))
	}

	txn, err := service.InsertTransaction(ctx, driverActor, testHandoverParams(amount))
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}
	if err := service.RecordHandoverAssets(ctx, driverActor, txn.Id, locked); err != nil {
		t.Fatalf("RecordHandoverAssets failed: %v", err)
	}

	if walletBalance.IsPositive() {
		if err := service.AdjustWalletBalance(ctx, driverActor, testDriver, walletBalance); err != nil {
			t.Fatalf("AdjustWalletBalance failed: %v", err)
		}
	}
	return txn, locked
}

func TestApproveDriverHandover(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	txn, locked := prepareHandover(t, service, decimal.NewFromInt(300), decimal.NewFromInt(500))

	result, err := service.ApproveDriverHandover(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("ApproveDriverHandover failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got refusal: %s", result.Message)
	}

	for _, lc := range locked {
		status, location, holder := cylinderStatus(t, service, lc.Id)
		if status != models.CylinderStatusEmpty || location != models.LocationWarehouse || holder != "" {
			t.Errorf("Expected %s received into warehouse, got %s/%s/%q", lc.SerialNumber, status, location, holder)
		}
	}

	balance, err := service.GetWalletBalance(ctx, adminActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected wallet 200 after debit, got %s", balance.String())
	}

	total, err := service.CompanyCashTotal(ctx, adminActor)
	if err != nil {
		t.Fatalf("CompanyCashTotal failed: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected company cash 300, got %s", total.String())
	}

	updated, err := service.GetTransaction(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if updated.Status != models.TransactionStatusApproved {
		t.Errorf("Expected approved, got %s", updated.Status)
	}
}

func TestApproveDriverHandover_WalletTooLow(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	txn, locked := prepareHandover(t, service, decimal.NewFromInt(500), decimal.NewFromInt(300))

	result, err := service.ApproveDriverHandover(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("ApproveDriverHandover failed: %v", err)
	}
	if result.Success {
		t.Fatal("Expected refusal when the wallet cannot cover the deposit")
	}

	// The whole unit rolled back: cylinders still locked, request still
	// pending, wallet untouched.
	for _, lc := range locked {
		status, _, _ := cylinderStatus(t, service, lc.Id)
		if status != models.CylinderStatusHandoverPending {
			t.Errorf("Expected %s still locked, got %s", lc.SerialNumber, status)
		}
	}

	updated, err := service.GetTransaction(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if updated.Status != models.TransactionStatusPending {
		t.Errorf("Expected still pending, got %s", updated.Status)
	}

	balance, err := service.GetWalletBalance(ctx, adminActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected wallet still 300, got %s", balance.String())
	}

	total, err := service.CompanyCashTotal(ctx, adminActor)
	if err != nil {
		t.Fatalf("CompanyCashTotal failed: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("Expected empty cash book, got %s", total.String())
	}
}

func TestApproveDriverHandover_NotFound(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	result, err := service.ApproveDriverHandover(context.Background(), adminActor, "missing")
	if err != nil {
		t.Fatalf("ApproveDriverHandover failed: %v", err)
	}
	if result.Success {
		t.Fatal("Expected refusal for a missing request")
	}
}

func TestApproveDriverHandover_AlreadyProcessed(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	txn, _ := prepareHandover(t, service, decimal.NewFromInt(100), decimal.NewFromInt(500))

	first, err := service.ApproveDriverHandover(ctx, adminActor, txn.Id)
	if err != nil || !first.Success {
		t.Fatalf("First approval failed: %v / %+v", err, first)
	}

	second, err := service.ApproveDriverHandover(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("Second approval errored: %v", err)
	}
	if second.Success {
		t.Fatal("Expected refusal for an already approved request")
	}

	// The wallet was debited exactly once.
	balance, err := service.GetWalletBalance(ctx, adminActor, testDriver)
	if err != nil {
		t.Fatalf("GetWalletBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("Expected wallet 400, got %s", balance.String())
	}
}

func TestApproveDriverHandover_CrossTenant(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	txn, _ := prepareHandover(t, service, decimal.NewFromInt(100), decimal.NewFromInt(500))

	otherAdmin := models.Actor{UserId: "admin-2", TenantId: testOtherTenant, Role: models.RoleAdmin}
	result, err := service.ApproveDriverHandover(ctx, otherAdmin, txn.Id)
	if err != nil {
		t.Fatalf("ApproveDriverHandover failed: %v", err)
	}
	if result.Success {
		t.Fatal("Expected refusal across tenants")
	}
}

func TestListHandoverAssets(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	txn, locked := prepareHandover(t, service, decimal.NewFromInt(100), decimal.Zero)

	assets, err := service.ListHandoverAssets(ctx, adminActor, txn.Id)
	if err != nil {
		t.Fatalf("ListHandoverAssets failed: %v", err)
	}
	if len(assets) != len(locked) {
		t.Fatalf("Expected %d assets, got %d", len(locked), len(assets))
	}

	statuses := make(map[string]string)
	for _, a := range assets {
		statuses[a.SerialNumber] = a.PreviousStatus
	}
	if statuses["SN-1"] != models.CylinderStatusFull || statuses["SN-2"] != models.CylinderStatusEmpty {
		t.Errorf("Unexpected previous statuses: %+v", statuses)
	}
}
