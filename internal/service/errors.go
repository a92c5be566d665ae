package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the operation-level failure classes. Callers branch on
// these with errors.Is; the wrapped text carries the operator-facing detail.
var (
	// ErrUnauthorized means the actor could not be resolved to a user and
	// tenant, or lacks the role the operation requires.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation means the request itself is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrZeroStock is the hard stop for settling a delivery with nothing on
	// the truck. Distinct from a shortfall so dispatch can tell an empty
	// truck from an under-loaded one.
	ErrZeroStock = errors.New("no cylinders found on truck, cannot complete delivery")

	// ErrOwnershipValidation means asset locking matched fewer cylinders
	// than requested; any partial lock has already been reverted.
	ErrOwnershipValidation = errors.New("asset ownership validation failed")

	// ErrFinancialRecord means the order was marked delivered but writing
	// its financial records failed. The order status is deliberately left
	// as delivered; the books need manual reconciliation.
	ErrFinancialRecord = errors.New("failed to create financial records")

	// ErrApprovalProcedure means the atomic approval unit failed or refused.
	ErrApprovalProcedure = errors.New("approval procedure failed")
)

// InsufficientStockError reports a stock shortfall, carrying both counts so
// the caller can render the exact message.
type InsufficientStockError struct {
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: you have %d full cylinders, but the order needs %d", e.Available, e.Required)
}

// InsufficientFundsError reports a handover deposit exceeding the driver's
// wallet balance.
type InsufficientFundsError struct {
	Balance decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds, wallet balance: Rs %s", e.Balance.String())
}
