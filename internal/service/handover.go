package service

import (
	"context"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HandoverParams is a driver's end-of-day handover submission: cash to
// deposit and/or cylinder serials to hand back.
type HandoverParams struct {
	DepositAmount decimal.Decimal
	Serials       []string
	ReceiverId    string
}

// ProcessHandover records a maker-checker handover request. Cash stays in
// the wallet and cylinders move to handover_pending until a staff member
// approves or rejects. A partial asset lock is reverted before the error is
// returned, so a refused request leaves no cylinder stuck in limbo.
func (s *Service) ProcessHandover(ctx context.Context, actor models.Actor, params HandoverParams) (*models.Transaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if params.ReceiverId == "" {
		return nil, fmt.Errorf("%w: please select a receiver", ErrValidation)
	}
	if params.DepositAmount.IsNegative() {
		return nil, fmt.Errorf("%w: deposit amount cannot be negative", ErrValidation)
	}
	if !params.DepositAmount.IsPositive() && len(params.Serials) == 0 {
		return nil, fmt.Errorf("%w: nothing to hand over", ErrValidation)
	}

	if params.DepositAmount.IsPositive() {
		balance, err := s.store.GetWalletBalance(ctx, actor, actor.UserId)
		if err != nil {
			return nil, err
		}
		if params.DepositAmount.GreaterThan(balance) {
			return nil, &InsufficientFundsError{Balance: balance}
		}
	}

	var locked []store.LockedCylinder
	if len(params.Serials) > 0 {
		var err error
		locked, err = s.store.LockCylindersForHandover(ctx, actor, params.Serials)
		if err != nil {
			return nil, fmt.Errorf("permission denied, could not lock assets: %w", err)
		}
		if len(locked) == 0 {
			return nil, fmt.Errorf("%w: no assets locked, ensure you possess these cylinders", ErrOwnershipValidation)
		}
		if len(locked) < len(params.Serials) {
			if err := s.store.UnlockCylinders(ctx, actor, locked); err != nil {
				zap.L().Error("Failed to revert partial lock",
					zap.String("driver_id", actor.UserId),
					zap.Error(err))
			}
			return nil, fmt.Errorf("%w: you do not possess all %d selected cylinders", ErrOwnershipValidation, len(params.Serials))
		}
	}

	txn, err := s.store.InsertTransaction(ctx, actor, store.TransactionParams{
		UserId:        actor.UserId,
		ReceiverId:    params.ReceiverId,
		Type:          models.TransactionTypeHandoverRequest,
		Amount:        params.DepositAmount,
		PaymentMethod: models.PaymentMethodCash,
		Status:        models.TransactionStatusPending,
		Description:   fmt.Sprintf("Handover request: Rs %s and %d cylinders", params.DepositAmount.String(), len(locked)),
	})
	if err != nil {
		// Unlock best effort; a failure here leaves cylinders pending and
		// needs an admin to release them.
		if unlockErr := s.store.UnlockCylinders(ctx, actor, locked); unlockErr != nil {
			zap.L().Error("Failed to unlock after request creation failure",
				zap.String("driver_id", actor.UserId),
				zap.Error(unlockErr))
			return nil, fmt.Errorf("request creation failed and assets may remain locked, contact admin: %w", err)
		}
		return nil, fmt.Errorf("request creation failed: %w", err)
	}

	if len(locked) > 0 {
		if err := s.store.RecordHandoverAssets(ctx, actor, txn.Id, locked); err != nil {
			// Approval falls back to the driver's pending cylinders, so
			// the request stays serviceable without the join rows.
			zap.L().Warn("Failed to record handover asset links",
				zap.String("transaction_id", txn.Id),
				zap.Error(err))
		}
	}

	zap.L().Info("Handover requested",
		zap.String("transaction_id", txn.Id),
		zap.String("driver_id", actor.UserId),
		zap.String("receiver_id", params.ReceiverId),
		zap.String("amount", params.DepositAmount.String()),
		zap.Int("cylinders", len(locked)))
	return txn, nil
}

// ApproveHandover runs the atomic approval unit and returns its message.
// Staff only.
func (s *Service) ApproveHandover(ctx context.Context, actor models.Actor, transactionId string) (string, error) {
	if err := requireStaff(actor); err != nil {
		return "", err
	}
	if transactionId == "" {
		return "", fmt.Errorf("%w: transaction id is required", ErrValidation)
	}

	result, err := s.store.ApproveDriverHandover(ctx, actor, transactionId)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrApprovalProcedure, err)
	}
	if !result.Success {
		return "", fmt.Errorf("%w: %s", ErrApprovalProcedure, result.Message)
	}
	return result.Message, nil
}

// RejectHandover returns a pending request's cylinders to the driver in
// their pre-lock statuses and marks the request rejected. Only the named
// receiver may reject.
func (s *Service) RejectHandover(ctx context.Context, actor models.Actor, transactionId string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if transactionId == "" {
		return fmt.Errorf("%w: transaction id is required", ErrValidation)
	}

	txn, err := s.store.GetTransaction(ctx, actor, transactionId)
	if err != nil {
		return err
	}
	if txn.Type != models.TransactionTypeHandoverRequest || txn.ReceiverId != actor.UserId {
		return store.ErrNotFound
	}
	if txn.Status != models.TransactionStatusPending {
		return store.ErrAlreadyProcessed
	}

	locked, err := s.store.ListHandoverAssets(ctx, actor, transactionId)
	if err != nil {
		return err
	}
	if len(locked) == 0 {
		// Requests recorded before asset links existed: release whatever
		// the driver still has pending, back to empty.
		pending, err := s.store.ListPendingCylinders(ctx, actor)
		if err != nil {
			return err
		}
		for _, c := range pending {
			if c.HolderId != txn.UserId {
				continue
			}
			locked = append(locked, store.LockedCylinder{
				Id:             c.Id,
				SerialNumber:   c.SerialNumber,
				PreviousStatus: models.CylinderStatusEmpty,
			})
		}
	}

	if err := s.store.UnlockCylinders(ctx, actor, locked); err != nil {
		return fmt.Errorf("failed to release cylinders: %w", err)
	}

	err = s.store.UpdateTransactionStatus(ctx, actor, transactionId,
		models.TransactionStatusPending, models.TransactionStatusRejected)
	if err != nil {
		return err
	}

	zap.L().Info("Handover rejected",
		zap.String("transaction_id", transactionId),
		zap.String("receiver_id", actor.UserId),
		zap.Int("cylinders_released", len(locked)))
	return nil
}
