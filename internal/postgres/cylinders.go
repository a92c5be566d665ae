package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CountDriverStock counts cylinders in the given status held by a driver.
// Read-only; this is the stock validator's data source.
func (s *Service) CountDriverStock(ctx context.Context, actor models.Actor, driverId, status string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, queryCountDriverStock, driverId, status, actor.TenantId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count driver stock: %w", err)
	}
	return count, nil
}

// ListDriverCylinders lists the cylinders on the actor's truck, full first.
// An empty status lists everything the driver holds.
func (s *Service) ListDriverCylinders(ctx context.Context, actor models.Actor, status string) ([]models.Cylinder, error) {
	var rows pgx.Rows
	var err error
	if status == "" {
		rows, err = s.pool.Query(ctx, queryListDriverCylinders, actor.UserId, actor.TenantId)
	} else {
		rows, err = s.pool.Query(ctx, queryListDriverCylindersByStatus, actor.UserId, status, actor.TenantId)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cylinders: %w", err)
	}
	return scanCylinders(rows)
}

func scanCylinders(rows pgx.Rows) ([]models.Cylinder, error) {
	defer rows.Close()

	var cylinders []models.Cylinder
	for rows.Next() {
		var c models.Cylinder
		err := rows.Scan(&c.Id, &c.TenantId, &c.SerialNumber, &c.Size, &c.Status,
			&c.LocationType, &c.HolderId, &c.LastOrderId, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cylinder: %w", err)
		}
		cylinders = append(cylinders, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cylinders: %w", err)
	}
	return cylinders, nil
}

// MoveDeliveredByOrder moves cylinders linked to the order via last_order_id
// from the driver to the customer. Returns the number of cylinders moved.
func (s *Service) MoveDeliveredByOrder(ctx context.Context, actor models.Actor, orderId, customerId string) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryMoveDeliveredByOrder,
		customerId, time.Now(), orderId, actor.TenantId)
	if err != nil {
		return 0, fmt.Errorf("failed to move delivered cylinders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MoveDeliveredFallback moves up to qty unlinked full cylinders from the
// driver to the customer, stamping last_order_id for future traceability.
// Used when the order link has drifted and matched nothing.
func (s *Service) MoveDeliveredFallback(ctx context.Context, actor models.Actor, orderId, customerId string, qty int) (int64, error) {
	if qty <= 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, queryMoveDeliveredFallback,
		customerId, orderId, time.Now(), actor.TenantId, actor.UserId, qty)
	if err != nil {
		return 0, fmt.Errorf("failed to move fallback cylinders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReturnCylindersBySerial moves the named cylinders from the customer back to
// the requesting driver as empties.
func (s *Service) ReturnCylindersBySerial(ctx context.Context, actor models.Actor, serials []string) (int64, error) {
	if len(serials) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, queryReturnBySerial,
		actor.UserId, time.Now(), serials, actor.TenantId)
	if err != nil {
		return 0, fmt.Errorf("failed to return cylinders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReturnCylindersByCount moves up to count arbitrary cylinders held by the
// customer back to the driver. Legacy path for callers without serials.
func (s *Service) ReturnCylindersByCount(ctx context.Context, actor models.Actor, customerId string, count int) (int64, error) {
	if count <= 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, queryReturnByCount,
		actor.UserId, time.Now(), actor.TenantId, customerId, count)
	if err != nil {
		return 0, fmt.Errorf("failed to return cylinders by count: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LockCylindersForHandover moves the named cylinders into handover_pending,
// but only those the actor actually holds on the truck. The select runs FOR
// UPDATE inside one transaction so concurrent lock attempts serialize;
// callers compare len(result) with len(serials) to detect partial locks. The
// returned entries carry each cylinder's pre-lock status for later restore.
func (s *Service) LockCylindersForHandover(ctx context.Context, actor models.Actor, serials []string) ([]store.LockedCylinder, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, querySelectLockableCylinders, serials, actor.UserId, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to select lockable cylinders: %w", err)
	}

	var locked []store.LockedCylinder
	for rows.Next() {
		var lc store.LockedCylinder
		if err := rows.Scan(&lc.Id, &lc.SerialNumber, &lc.PreviousStatus); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan lockable cylinder: %w", err)
		}
		locked = append(locked, lc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lockable cylinders: %w", err)
	}

	if len(locked) > 0 {
		ids := make([]string, len(locked))
		for i, lc := range locked {
			ids[i] = lc.Id
		}
		if _, err := tx.Exec(ctx, queryLockCylinders, time.Now(), ids, actor.TenantId); err != nil {
			return nil, fmt.Errorf("failed to lock cylinders: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit lock: %w", err)
	}

	zap.L().Info("Locked cylinders for handover",
		zap.String("driver_id", actor.UserId),
		zap.Int("requested", len(serials)),
		zap.Int("locked", len(locked)))
	return locked, nil
}

// UnlockCylinders restores locked cylinders to their recorded pre-lock
// statuses. Used for partial-lock rollback and handover rejection.
func (s *Service) UnlockCylinders(ctx context.Context, actor models.Actor, locked []store.LockedCylinder) error {
	now := time.Now()
	for _, lc := range locked {
		if _, err := s.pool.Exec(ctx, queryUnlockCylinder, lc.PreviousStatus, now, lc.Id, actor.TenantId); err != nil {
			return fmt.Errorf("failed to unlock cylinder %s: %w", lc.SerialNumber, err)
		}
	}
	return nil
}

// ListPendingCylinders lists every handover_pending cylinder in the tenant.
func (s *Service) ListPendingCylinders(ctx context.Context, actor models.Actor) ([]models.Cylinder, error) {
	rows, err := s.pool.Query(ctx, queryListPendingCylinders, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cylinders: %w", err)
	}
	return scanCylinders(rows)
}

// CountCylinders counts cylinders matching a dashboard filter.
func (s *Service) CountCylinders(ctx context.Context, actor models.Actor, filter store.CylinderFilter) (int, error) {
	query := "SELECT COUNT(*) FROM cylinders WHERE tenant_id = $1"
	args := []any{actor.TenantId}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.LocationType != "" {
		args = append(args, filter.LocationType)
		query += fmt.Sprintf(" AND current_location_type = $%d", len(args))
	}
	if filter.NotLocationType != "" {
		args = append(args, filter.NotLocationType)
		query += fmt.Sprintf(" AND current_location_type != $%d", len(args))
	}

	var count int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cylinders: %w", err)
	}
	return count, nil
}
