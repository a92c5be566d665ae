package service

import (
	"context"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DriverInventory is what the driver sees before starting a trip.
type DriverInventory struct {
	FullCount  int
	EmptyCount int
	Cylinders  []models.Cylinder
}

// DriverStats summarizes a driver's end-of-day liabilities.
type DriverStats struct {
	WalletBalance decimal.Decimal
	EmptiesOnHand int
	PendingOrders int
}

// DashboardStats is the admin overview, gathered concurrently.
type DashboardStats struct {
	CompanyCash      decimal.Decimal
	ActiveDrivers    int
	TotalCylinders   int
	EmptyCylinders   int
	WarehouseStock   int
	DistributedStock int
}

// GetDriverInventory returns the driver's truck contents with full/empty
// counts.
func (s *Service) GetDriverInventory(ctx context.Context, actor models.Actor) (*DriverInventory, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	cylinders, err := s.store.ListDriverCylinders(ctx, actor, "")
	if err != nil {
		return nil, err
	}

	inv := &DriverInventory{Cylinders: cylinders}
	for _, c := range cylinders {
		switch c.Status {
		case models.CylinderStatusFull:
			inv.FullCount++
		case models.CylinderStatusEmpty:
			inv.EmptyCount++
		}
	}
	return inv, nil
}

// GetDriverAssets lists the driver's cylinders in one status, for the
// handover serial picker.
func (s *Service) GetDriverAssets(ctx context.Context, actor models.Actor, status string) ([]models.Cylinder, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.store.ListDriverCylinders(ctx, actor, status)
}

// GetDriverStats gathers the driver's wallet balance, empties and open
// orders concurrently.
func (s *Service) GetDriverStats(ctx context.Context, actor models.Actor) (*DriverStats, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var stats DriverStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := s.store.GetWalletBalance(ctx, actor, actor.UserId)
		if err == nil {
			stats.WalletBalance = balance
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountDriverStock(ctx, actor, actor.UserId, models.CylinderStatusEmpty)
		if err == nil {
			stats.EmptiesOnHand = count
		}
		return err
	})
	g.Go(func() error {
		orders, err := s.store.ListDriverOrders(ctx, actor,
			[]string{models.OrderStatusAssigned, models.OrderStatusOnTrip})
		if err == nil {
			stats.PendingOrders = len(orders)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListReceivers lists the staff who may receive a handover.
func (s *Service) ListReceivers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.store.ListReceivers(ctx, actor)
}

// ListPendingHandovers lists the requests awaiting staff review.
func (s *Service) ListPendingHandovers(ctx context.Context, actor models.Actor) ([]models.Transaction, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.store.ListPendingHandovers(ctx, actor)
}

// ListPendingPayments lists the payments awaiting verification.
func (s *Service) ListPendingPayments(ctx context.Context, actor models.Actor) ([]models.Transaction, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.store.ListPendingPayments(ctx, actor)
}

// ListPendingCylinders lists every locked cylinder in the tenant.
func (s *Service) ListPendingCylinders(ctx context.Context, actor models.Actor) ([]models.Cylinder, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.store.ListPendingCylinders(ctx, actor)
}

// GetCustomerStatement returns a customer's transactions, oldest first.
func (s *Service) GetCustomerStatement(ctx context.Context, actor models.Actor, customerId string) ([]models.Transaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.store.ListCustomerTransactions(ctx, actor, customerId)
}

// ListOutstandingBalances lists customers with open tabs, largest first.
func (s *Service) ListOutstandingBalances(ctx context.Context, actor models.Actor) ([]models.Customer, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.store.ListOutstandingBalances(ctx, actor)
}

// GetCompanyCashTotal returns the signed sum of the company cash book.
func (s *Service) GetCompanyCashTotal(ctx context.Context, actor models.Actor) (decimal.Decimal, error) {
	if err := requireStaff(actor); err != nil {
		return decimal.Zero, err
	}
	return s.store.CompanyCashTotal(ctx, actor)
}

// GetDashboardStats gathers the admin overview numbers concurrently. One
// failed count fails the whole call; the dashboard shows stale data rather
// than a mix of fresh and missing figures.
func (s *Service) GetDashboardStats(ctx context.Context, actor models.Actor) (*DashboardStats, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	var stats DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.store.CompanyCashTotal(ctx, actor)
		if err == nil {
			stats.CompanyCash = total
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountUsersByRole(ctx, actor, models.RoleDriver)
		if err == nil {
			stats.ActiveDrivers = count
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountCylinders(ctx, actor, store.CylinderFilter{})
		if err == nil {
			stats.TotalCylinders = count
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountCylinders(ctx, actor, store.CylinderFilter{Status: models.CylinderStatusEmpty})
		if err == nil {
			stats.EmptyCylinders = count
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountCylinders(ctx, actor, store.CylinderFilter{LocationType: models.LocationWarehouse})
		if err == nil {
			stats.WarehouseStock = count
		}
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountCylinders(ctx, actor, store.CylinderFilter{NotLocationType: models.LocationWarehouse})
		if err == nil {
			stats.DistributedStock = count
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
