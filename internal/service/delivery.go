package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProofFile is an optional proof-of-delivery attachment.
type ProofFile struct {
	Name    string
	Content []byte
}

// CompleteDeliveryParams is a driver's settlement submission for one order.
type CompleteDeliveryParams struct {
	OrderId        string
	ReceivedAmount decimal.Decimal
	PaymentMethod  string
	Notes          string
	Proof          *ProofFile

	// Returned empties, by serial when scanned, by count otherwise.
	// Serials win when both are set.
	ReturnedSerials []string
	ReturnedCount   int
}

// CompleteDelivery settles a delivered order: it verifies truck stock, marks
// the order delivered, writes the sale and payment records, moves the
// customer's balance and relocates the cylinders. Steps run in dependency
// order; the conditional status transition up front makes a duplicate
// submission a no-op instead of double-billing.
func (s *Service) CompleteDelivery(ctx context.Context, actor models.Actor, params CompleteDeliveryParams) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if params.OrderId == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if params.ReceivedAmount.IsNegative() {
		return fmt.Errorf("%w: received amount cannot be negative", ErrValidation)
	}
	if params.PaymentMethod == "" {
		params.PaymentMethod = models.PaymentMethodCash
	}

	order, items, err := s.store.GetDriverOrder(ctx, actor, params.OrderId)
	if err != nil {
		return err
	}

	requiredQty := 0
	for _, item := range items {
		requiredQty += item.Quantity
	}

	if err := s.validateDriverStock(ctx, actor, requiredQty); err != nil {
		return err
	}

	proofUrl := s.uploadProof(ctx, order.Id, params.Proof)

	completedAt := time.Now()
	err = s.store.MarkOrderDelivered(ctx, actor, store.MarkDeliveredParams{
		OrderId:        order.Id,
		AmountReceived: params.ReceivedAmount,
		PaymentMethod:  params.PaymentMethod,
		Notes:          params.Notes,
		CompletedAt:    completedAt,
	})
	if err != nil {
		return fmt.Errorf("order update failed: %w", err)
	}

	if err := s.recordSettlementFinancials(ctx, actor, order, params, proofUrl, completedAt); err != nil {
		// The order stays delivered: reverting it would invite a retry
		// that double-moves assets. The books get fixed by hand.
		zap.L().Error("Financial records failed after order update",
			zap.String("order_id", order.Id),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFinancialRecord, err)
	}

	// Remainder goes on the customer's tab; an overpayment reduces it.
	remainder := order.TotalAmount.Sub(params.ReceivedAmount)
	if !remainder.IsZero() {
		if err := s.store.AdjustCustomerBalance(ctx, actor, order.CustomerId, remainder); err != nil {
			zap.L().Error("Customer balance update failed",
				zap.String("order_id", order.Id),
				zap.String("customer_id", order.CustomerId),
				zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFinancialRecord, err)
		}
	}

	s.relocateDeliveredCylinders(ctx, actor, order, requiredQty)
	s.collectReturnedEmpties(ctx, actor, order.CustomerId, params)

	zap.L().Info("Delivery settled",
		zap.String("order_id", order.Id),
		zap.String("friendly_id", order.FriendlyId),
		zap.String("total", order.TotalAmount.String()),
		zap.String("received", params.ReceivedAmount.String()))
	return nil
}

// StartTrip moves the driver's selected assigned orders to on_trip.
func (s *Service) StartTrip(ctx context.Context, actor models.Actor, orderIds []string) (int64, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}
	if len(orderIds) == 0 {
		return 0, fmt.Errorf("%w: no orders selected", ErrValidation)
	}

	started, err := s.store.StartTrip(ctx, actor, orderIds, time.Now())
	if err != nil {
		return 0, err
	}

	zap.L().Info("Trip started",
		zap.String("driver_id", actor.UserId),
		zap.Int("selected", len(orderIds)),
		zap.Int64("started", started))
	return started, nil
}

// uploadProof stores the proof-of-delivery attachment, if any. Failures are
// logged and swallowed; a missing receipt photo never blocks a settlement.
func (s *Service) uploadProof(ctx context.Context, orderId string, proof *ProofFile) string {
	if proof == nil || len(proof.Content) == 0 || s.uploader == nil {
		return ""
	}

	name := fmt.Sprintf("delivery_%s_%d%s", orderId, time.Now().UnixMilli(), filepath.Ext(proof.Name))
	url, err := s.uploader.Upload(ctx, name, proof.Content)
	if err != nil {
		zap.L().Warn("Proof upload failed, continuing without receipt",
			zap.String("order_id", orderId),
			zap.Error(err))
		return ""
	}
	return url
}

// recordSettlementFinancials writes the sale transaction and, when cash
// changed hands, the payment transaction and the wallet credit. The payment
// row is stamped one second after the sale so a created_at sort always shows
// the sale first.
func (s *Service) recordSettlementFinancials(ctx context.Context, actor models.Actor, order *models.Order, params CompleteDeliveryParams, proofUrl string, saleAt time.Time) error {
	_, err := s.store.InsertTransaction(ctx, actor, store.TransactionParams{
		OrderId:       order.Id,
		CustomerId:    order.CustomerId,
		UserId:        actor.UserId,
		Type:          models.TransactionTypeSale,
		Amount:        order.TotalAmount,
		PaymentMethod: params.PaymentMethod,
		Status:        models.TransactionStatusVerified,
		Description:   fmt.Sprintf("Sale for Order %s", order.FriendlyId),
		ProofUrl:      proofUrl,
		CreatedAt:     saleAt,
	})
	if err != nil {
		return fmt.Errorf("sale record: %w", err)
	}

	if !params.ReceivedAmount.IsPositive() {
		return nil
	}

	_, err = s.store.InsertTransaction(ctx, actor, store.TransactionParams{
		OrderId:       order.Id,
		CustomerId:    order.CustomerId,
		UserId:        actor.UserId,
		Type:          models.TransactionTypePayment,
		Amount:        params.ReceivedAmount.Neg(),
		PaymentMethod: params.PaymentMethod,
		Status:        models.TransactionStatusVerified,
		Description:   fmt.Sprintf("Payment for Order %s", order.FriendlyId),
		ProofUrl:      proofUrl,
		CreatedAt:     saleAt.Add(time.Second),
	})
	if err != nil {
		return fmt.Errorf("payment record: %w", err)
	}

	// Cash collected rides in the driver's wallet until handover.
	if err := s.store.AdjustWalletBalance(ctx, actor, actor.UserId, params.ReceivedAmount); err != nil {
		return fmt.Errorf("wallet credit: %w", err)
	}
	return nil
}

// relocateDeliveredCylinders moves the order's cylinders to the customer.
// The linked path matches by last_order_id; when dispatch never linked any
// cylinders, the fallback moves up to requiredQty full ones off the truck.
// Asset drift is logged, never fatal, because the money is already booked.
func (s *Service) relocateDeliveredCylinders(ctx context.Context, actor models.Actor, order *models.Order, requiredQty int) {
	moved, err := s.store.MoveDeliveredByOrder(ctx, actor, order.Id, order.CustomerId)
	if err != nil {
		zap.L().Warn("Cylinder relocation failed", zap.String("order_id", order.Id), zap.Error(err))
		return
	}

	if moved == 0 && requiredQty > 0 {
		moved, err = s.store.MoveDeliveredFallback(ctx, actor, order.Id, order.CustomerId, requiredQty)
		if err != nil {
			zap.L().Warn("Fallback cylinder relocation failed", zap.String("order_id", order.Id), zap.Error(err))
			return
		}
	}

	if int(moved) < requiredQty {
		zap.L().Warn("Fewer cylinders relocated than ordered",
			zap.String("order_id", order.Id),
			zap.Int64("moved", moved),
			zap.Int("required", requiredQty))
	}
}

// collectReturnedEmpties brings the customer's returned cylinders back onto
// the truck as empties.
func (s *Service) collectReturnedEmpties(ctx context.Context, actor models.Actor, customerId string, params CompleteDeliveryParams) {
	var returned int64
	var err error
	switch {
	case len(params.ReturnedSerials) > 0:
		returned, err = s.store.ReturnCylindersBySerial(ctx, actor, params.ReturnedSerials)
	case params.ReturnedCount > 0:
		returned, err = s.store.ReturnCylindersByCount(ctx, actor, customerId, params.ReturnedCount)
	default:
		return
	}
	if err != nil {
		zap.L().Warn("Empty cylinder return failed", zap.String("customer_id", customerId), zap.Error(err))
		return
	}

	zap.L().Info("Empties collected",
		zap.String("customer_id", customerId),
		zap.Int64("returned", returned))
}
