package service

import (
	"context"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/storage"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"
)

// Service orchestrates the delivery, handover and finance workflows on top of
// a store backend. It holds no state of its own; every operation is a
// sequence of per-call store operations ordered so that a crash mid-sequence
// leaves the books reconcilable rather than silently wrong.
type Service struct {
	store    store.Store
	uploader storage.Uploader
}

func NewService(st store.Store, uploader storage.Uploader) *Service {
	return &Service{store: st, uploader: uploader}
}

// Store exposes the underlying backend for callers that need raw reads.
func (s *Service) Store() store.Store {
	return s.store
}

// requireActor fails closed when the session did not resolve to a user and
// tenant.
func requireActor(actor models.Actor) error {
	if !actor.Resolved() {
		return ErrUnauthorized
	}
	return nil
}

// requireStaff additionally demands an office role.
func requireStaff(actor models.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsStaff() {
		return ErrUnauthorized
	}
	return nil
}

// validateDriverStock enforces the stock precondition for a settlement:
// zero full cylinders is a hard stop, fewer than required is a shortfall.
// Read-only; it never mutates state.
func (s *Service) validateDriverStock(ctx context.Context, actor models.Actor, required int) error {
	if required <= 0 {
		return nil
	}

	available, err := s.store.CountDriverStock(ctx, actor, actor.UserId, models.CylinderStatusFull)
	if err != nil {
		return err
	}
	if available == 0 {
		return ErrZeroStock
	}
	if available < required {
		return &InsufficientStockError{Available: available, Required: required}
	}
	return nil
}
