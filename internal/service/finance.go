package service

import (
	"context"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ManualEntryParams is an office-recorded cash-book entry.
type ManualEntryParams struct {
	// EntryType is credit (money in) or debit (money out).
	EntryType   string
	Category    string
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time

	// CustomerId links a customer_payment entry to the customer whose tab
	// it settles.
	CustomerId string
}

// RecordManualTransaction writes a manual company cash-book entry. A
// customer_payment entry additionally clears the customer's tab and appends
// a verified payment row to their statement.
func (s *Service) RecordManualTransaction(ctx context.Context, actor models.Actor, params ManualEntryParams) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if params.EntryType != models.TransactionTypeCredit && params.EntryType != models.TransactionTypeDebit {
		return fmt.Errorf("%w: entry type must be credit or debit", ErrValidation)
	}
	if !params.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if params.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	// The cash book stores signed amounts; debits go in negative.
	signed := params.Amount
	if params.EntryType == models.TransactionTypeDebit {
		signed = signed.Neg()
	}

	err := s.store.InsertLedgerEntry(ctx, actor, store.LedgerEntryParams{
		Amount:          signed,
		TransactionType: params.EntryType,
		Category:        params.Category,
		Description:     params.Description,
		AdminId:         actor.UserId,
		CreatedAt:       params.OccurredAt,
	})
	if err != nil {
		return err
	}

	if params.Category == "customer_payment" && params.CustomerId != "" {
		if err := s.store.AdjustCustomerBalance(ctx, actor, params.CustomerId, params.Amount.Neg()); err != nil {
			return fmt.Errorf("ledger entry recorded but customer balance update failed: %w", err)
		}
		_, err := s.store.InsertTransaction(ctx, actor, store.TransactionParams{
			CustomerId:    params.CustomerId,
			UserId:        actor.UserId,
			Type:          models.TransactionTypePayment,
			Amount:        params.Amount.Neg(),
			PaymentMethod: models.PaymentMethodCash,
			Status:        models.TransactionStatusVerified,
			Description:   "Direct payment at office",
		})
		if err != nil {
			return fmt.Errorf("ledger entry recorded but customer statement update failed: %w", err)
		}
	}

	zap.L().Info("Manual ledger entry recorded",
		zap.String("type", params.EntryType),
		zap.String("category", params.Category),
		zap.String("amount", signed.String()))
	return nil
}

// VerifyPayment confirms a pending customer payment: the row moves to
// verified, the customer's tab shrinks and the cash enters the company book.
func (s *Service) VerifyPayment(ctx context.Context, actor models.Actor, transactionId string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}

	txn, err := s.store.GetTransaction(ctx, actor, transactionId)
	if err != nil {
		return err
	}
	if txn.Type != models.TransactionTypePayment {
		return fmt.Errorf("%w: transaction is not a payment", ErrValidation)
	}

	err = s.store.UpdateTransactionStatus(ctx, actor, transactionId,
		models.TransactionStatusPendingVerification, models.TransactionStatusVerified)
	if err != nil {
		return err
	}

	// Payment amounts are stored negative; the magnitude is what clears
	// the tab and enters the book.
	amount := txn.Amount.Abs()
	if txn.CustomerId != "" {
		if err := s.store.AdjustCustomerBalance(ctx, actor, txn.CustomerId, amount.Neg()); err != nil {
			return fmt.Errorf("payment verified but customer balance update failed: %w", err)
		}
	}

	err = s.store.InsertLedgerEntry(ctx, actor, store.LedgerEntryParams{
		Amount:          amount,
		TransactionType: models.TransactionTypeCredit,
		Category:        "customer_payment_verified",
		Description:     fmt.Sprintf("Verified payment (Txn #%.8s)", transactionId),
		AdminId:         actor.UserId,
	})
	if err != nil {
		return fmt.Errorf("payment verified but ledger credit failed: %w", err)
	}

	zap.L().Info("Payment verified",
		zap.String("transaction_id", transactionId),
		zap.String("amount", amount.String()))
	return nil
}

// RejectPayment marks a pending payment rejected without touching balances.
func (s *Service) RejectPayment(ctx context.Context, actor models.Actor, transactionId string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}

	err := s.store.UpdateTransactionStatus(ctx, actor, transactionId,
		models.TransactionStatusPendingVerification, models.TransactionStatusRejected)
	if err != nil {
		return err
	}

	zap.L().Info("Payment rejected", zap.String("transaction_id", transactionId))
	return nil
}
