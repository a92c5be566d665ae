package database

import (
	"context"
	"testing"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
)

func TestCountDriverStock(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-3", "SN-3", models.CylinderStatusEmpty, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-4", "SN-4", models.CylinderStatusFull, models.LocationWarehouse, "")

	count, err := service.CountDriverStock(ctx, driverActor, testDriver, models.CylinderStatusFull)
	if err != nil {
		t.Fatalf("CountDriverStock failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 full cylinders on the truck, got %d", count)
	}
}

func TestMoveDeliveredByOrderAndFallback(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-3", "SN-3", models.CylinderStatusFull, models.LocationDriver, testDriver)

	// No cylinder is linked to the order, so the linked path moves nothing.
	moved, err := service.MoveDeliveredByOrder(ctx, driverActor, "order-1", testCustomer)
	if err != nil {
		t.Fatalf("MoveDeliveredByOrder failed: %v", err)
	}
	if moved != 0 {
		t.Fatalf("Expected 0 linked cylinders, got %d", moved)
	}

	moved, err = service.MoveDeliveredFallback(ctx, driverActor, "order-1", testCustomer, 2)
	if err != nil {
		t.Fatalf("MoveDeliveredFallback failed: %v", err)
	}
	if moved != 2 {
		t.Fatalf("Expected 2 cylinders moved by fallback, got %d", moved)
	}

	remaining, err := service.CountDriverStock(ctx, driverActor, testDriver, models.CylinderStatusFull)
	if err != nil {
		t.Fatalf("CountDriverStock failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("Expected 1 full cylinder left on truck, got %d", remaining)
	}
}

func TestReturnCylindersBySerial_OnlyFromCustomer(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusAtCustomer, models.LocationCustomer, testCustomer)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusFull, models.LocationWarehouse, "")

	returned, err := service.ReturnCylindersBySerial(ctx, driverActor, []string{"SN-1", "SN-2"})
	if err != nil {
		t.Fatalf("ReturnCylindersBySerial failed: %v", err)
	}
	if returned != 1 {
		t.Fatalf("Expected only the customer-held cylinder returned, got %d", returned)
	}

	status, location, holder := cylinderStatus(t, service, "cyl-1")
	if status != models.CylinderStatusEmpty || location != models.LocationDriver || holder != testDriver {
		t.Errorf("Expected empty/driver/%s, got %s/%s/%s", testDriver, status, location, holder)
	}

	status, location, _ = cylinderStatus(t, service, "cyl-2")
	if status != models.CylinderStatusFull || location != models.LocationWarehouse {
		t.Errorf("Warehouse cylinder should be untouched, got %s/%s", status, location)
	}
}

func TestLockCylindersForHandover_PartialPossession(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusEmpty, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-3", "SN-3", models.CylinderStatusAtCustomer, models.LocationCustomer, testCustomer)

	locked, err := service.LockCylindersForHandover(ctx, driverActor, []string{"SN-1", "SN-2", "SN-3"})
	if err != nil {
		t.Fatalf("LockCylindersForHandover failed: %v", err)
	}
	if len(locked) != 2 {
		t.Fatalf("Expected 2 cylinders locked, got %d", len(locked))
	}

	previous := make(map[string]string)
	for _, lc := range locked {
		previous[lc.SerialNumber] = lc.PreviousStatus

		status, _, _ := cylinderStatus(t, service, lc.Id)
		if status != models.CylinderStatusHandoverPending {
			t.Errorf("Expected %s locked, got %s", lc.SerialNumber, status)
		}
	}
	if previous["SN-1"] != models.CylinderStatusFull {
		t.Errorf("Expected SN-1 previous status full, got %s", previous["SN-1"])
	}
	if previous["SN-2"] != models.CylinderStatusEmpty {
		t.Errorf("Expected SN-2 previous status empty, got %s", previous["SN-2"])
	}

	// The customer's cylinder never entered the lock.
	status, _, _ := cylinderStatus(t, service, "cyl-3")
	if status != models.CylinderStatusAtCustomer {
		t.Errorf("Customer cylinder should be untouched, got %s", status)
	}
}

func TestUnlockCylinders_RestoresPreviousStatus(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusEmpty, models.LocationDriver, testDriver)

	locked, err := service.LockCylindersForHandover(ctx, driverActor, []string{"SN-1", "SN-2"})
	if err != nil {
		t.Fatalf("LockCylindersForHandover failed: %v", err)
	}

	if err := service.UnlockCylinders(ctx, driverActor, locked); err != nil {
		t.Fatalf("UnlockCylinders failed: %v", err)
	}

	status, _, _ := cylinderStatus(t, service, "cyl-1")
	if status != models.CylinderStatusFull {
		t.Errorf("Expected SN-1 restored to full, got %s", status)
	}
	status, _, _ = cylinderStatus(t, service, "cyl-2")
	if status != models.CylinderStatusEmpty {
		t.Errorf("Expected SN-2 restored to empty, got %s", status)
	}
}

func TestCountCylinders_Filters(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertCylinder(t, service, "cyl-1", "SN-1", models.CylinderStatusFull, models.LocationWarehouse, "")
	insertCylinder(t, service, "cyl-2", "SN-2", models.CylinderStatusFull, models.LocationDriver, testDriver)
	insertCylinder(t, service, "cyl-3", "SN-3", models.CylinderStatusEmpty, models.LocationCustomer, testCustomer)

	total, err := service.CountCylinders(ctx, adminActor, store.CylinderFilter{})
	if err != nil {
		t.Fatalf("CountCylinders failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 cylinders, got %d", total)
	}

	distributed, err := service.CountCylinders(ctx, adminActor, store.CylinderFilter{NotLocationType: models.LocationWarehouse})
	if err != nil {
		t.Fatalf("CountCylinders failed: %v", err)
	}
	if distributed != 2 {
		t.Errorf("Expected 2 distributed cylinders, got %d", distributed)
	}

	empty, err := service.CountCylinders(ctx, adminActor, store.CylinderFilter{Status: models.CylinderStatusEmpty})
	if err != nil {
		t.Fatalf("CountCylinders failed: %v", err)
	}
	if empty != 1 {
		t.Errorf("Expected 1 empty cylinder, got %d", empty)
	}
}

func TestLedgerTotal(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	entries := []decimal.Decimal{decimal.NewFromInt(300), decimal.NewFromInt(-120)}
	for _, amount := range entries {
		entryType := models.TransactionTypeCredit
		if amount.IsNegative() {
			entryType = models.TransactionTypeDebit
		}
		err := service.InsertLedgerEntry(ctx, adminActor, store.LedgerEntryParams{
			Amount:          amount,
			TransactionType: entryType,
			Category:        "test",
			AdminId:         testAdmin,
		})
		if err != nil {
			t.Fatalf("InsertLedgerEntry failed: %v", err)
		}
	}

	total, err := service.CompanyCashTotal(ctx, adminActor)
	if err != nil {
		t.Fatalf("CompanyCashTotal failed: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(180)) {
		t.Errorf("Expected total 180, got %s", total.String())
	}
}
