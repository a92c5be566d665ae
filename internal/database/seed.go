package database

import (
	"context"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Demo identities created by SeedDemoData. Fixed ids keep reseeding
// idempotent and let the commands document working -user/-tenant values.
const (
	DemoTenantId  = "tenant-demo"
	DemoAdminId   = "user-demo-admin"
	DemoCashierId = "user-demo-cashier"
	DemoDriverId  = "user-demo-driver"
)

// SeedDemoData populates a small working tenant: staff, a driver with a
// loaded truck, two customers and one assigned order priced from the size
// catalog. Safe to run repeatedly.
func (s *Service) SeedDemoData(ctx context.Context, sizes []config.SizeClass) error {
	if len(sizes) == 0 {
		return fmt.Errorf("size catalog is empty")
	}

	seed := func(query string, args ...any) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	}

	if err := seed(`INSERT OR IGNORE INTO tenants (id, name) VALUES (?, ?)`,
		DemoTenantId, "Demo Gas Agency"); err != nil {
		return fmt.Errorf("failed to seed tenant: %w", err)
	}

	users := []struct{ id, name, email, role string }{
		{DemoAdminId, "Demo Admin", "admin@demo.local", models.RoleAdmin},
		{DemoCashierId, "Demo Cashier", "cashier@demo.local", models.RoleCashier},
		{DemoDriverId, "Demo Driver", "driver@demo.local", models.RoleDriver},
	}
	for _, u := range users {
		if err := seed(`INSERT OR IGNORE INTO users (id, tenant_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			u.id, DemoTenantId, u.name, u.email, u.role); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.name, err)
		}
	}

	customers := []struct{ id, name, phone string }{
		{"customer-demo-1", "Khan General Store", "0300-1234567"},
		{"customer-demo-2", "Bismillah Hotel", "0301-7654321"},
	}
	for _, c := range customers {
		if err := seed(`INSERT OR IGNORE INTO customers (id, tenant_id, name, phone) VALUES (?, ?, ?, ?)`,
			c.id, DemoTenantId, c.name, c.phone); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.name, err)
		}
	}

	// Per size class: three full cylinders on the demo driver's truck and
	// two full ones in the warehouse.
	for _, size := range sizes {
		for i := 1; i <= 5; i++ {
			serial := fmt.Sprintf("%s-%03d", size.Name, i)
			location := models.LocationWarehouse
			holder := ""
			if i <= 3 {
				location = models.LocationDriver
				holder = DemoDriverId
			}
			err := seed(`INSERT OR IGNORE INTO cylinders
				(id, tenant_id, serial_number, size, status, current_location_type, current_holder_id)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				"cylinder-demo-"+serial, DemoTenantId, serial, size.Name,
				models.CylinderStatusFull, location, holder)
			if err != nil {
				return fmt.Errorf("failed to seed cylinder %s: %w", serial, err)
			}
		}
	}

	// One assigned order for the driver: two cylinders of the first size.
	unitPrice, err := config.UnitPrice(sizes, sizes[0].Name)
	if err != nil {
		return err
	}
	total := unitPrice.Mul(decimal.NewFromInt(2))

	orderId := "order-demo-1"
	friendlyId := "ORD-" + uuid.NewString()[:8]
	if err := seed(`INSERT OR IGNORE INTO orders
		(id, tenant_id, friendly_id, customer_id, driver_id, total_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		orderId, DemoTenantId, friendlyId, customers[0].id, DemoDriverId,
		total.String(), models.OrderStatusAssigned); err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}
	if err := seed(`INSERT OR IGNORE INTO order_items
		(id, order_id, tenant_id, product_name, quantity) VALUES (?, ?, ?, ?, ?)`,
		"order-item-demo-1", orderId, DemoTenantId, sizes[0].Name, 2); err != nil {
		return fmt.Errorf("failed to seed order item: %w", err)
	}

	zap.L().Info("Demo data seeded",
		zap.String("tenant_id", DemoTenantId),
		zap.String("driver_id", DemoDriverId),
		zap.Int("size_classes", len(sizes)))
	return nil
}
