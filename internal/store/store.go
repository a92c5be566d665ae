package store

import (
	"context"
	"errors"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations. ErrNotFound
// deliberately covers both "row absent" and "row belongs to another tenant"
// so callers cannot probe for existence across tenants.
var (
	ErrNotFound         = errors.New("not found or access denied")
	ErrAlreadyProcessed = errors.New("already processed")
)

// LockedCylinder is one cylinder moved into handover_pending, with the status
// it held before the lock so rejection and in-flight rollback can restore it.
type LockedCylinder struct {
	Id             string
	SerialNumber   string
	PreviousStatus string
}

// MarkDeliveredParams updates an order at settlement time. The transition is
// conditional on the order still being assigned/on_trip; a second settlement
// attempt for the same order must not match.
type MarkDeliveredParams struct {
	OrderId        string
	AmountReceived decimal.Decimal
	PaymentMethod  string
	Notes          string
	CompletedAt    time.Time
}

// TransactionParams appends one transaction row.
type TransactionParams struct {
	OrderId       string
	CustomerId    string
	UserId        string
	ReceiverId    string
	Type          string
	Amount        decimal.Decimal
	PaymentMethod string
	Status        string
	Description   string
	ProofUrl      string
	CreatedAt     time.Time
}

// LedgerEntryParams appends one company cash-book row.
type LedgerEntryParams struct {
	Amount          decimal.Decimal
	TransactionType string
	Category        string
	Description     string
	AdminId         string
	CreatedAt       time.Time
}

// CylinderFilter narrows dashboard counts.
type CylinderFilter struct {
	Status          string
	LocationType    string
	NotLocationType string
}

// HandoverResult is the outcome reported by the atomic approval procedure.
type HandoverResult struct {
	Success bool
	Message string
}

// Store is the per-call data API every backend must satisfy. Each method is a
// single filtered read, insert or conditional update against tenant-scoped
// tables; the store offers no cross-call transaction. ApproveDriverHandover
// is the one operation executed as an atomic unit on the backend side.
//
// Every method takes the resolved actor and applies the tenant predicate
// itself; no method trusts a caller-supplied tenant id.
type Store interface {
	// --- Orders ---
	GetDriverOrder(ctx context.Context, actor models.Actor, orderId string) (*models.Order, []models.OrderItem, error)
	ListDriverOrders(ctx context.Context, actor models.Actor, statuses []string) ([]models.Order, error)
	StartTrip(ctx context.Context, actor models.Actor, orderIds []string, startedAt time.Time) (int64, error)
	MarkOrderDelivered(ctx context.Context, actor models.Actor, params MarkDeliveredParams) error

	// --- Cylinders (asset location tracker) ---
	CountDriverStock(ctx context.Context, actor models.Actor, driverId, status string) (int, error)
	ListDriverCylinders(ctx context.Context, actor models.Actor, status string) ([]models.Cylinder, error)
	MoveDeliveredByOrder(ctx context.Context, actor models.Actor, orderId, customerId string) (int64, error)
	MoveDeliveredFallback(ctx context.Context, actor models.Actor, orderId, customerId string, qty int) (int64, error)
	ReturnCylindersBySerial(ctx context.Context, actor models.Actor, serials []string) (int64, error)
	ReturnCylindersByCount(ctx context.Context, actor models.Actor, customerId string, count int) (int64, error)
	LockCylindersForHandover(ctx context.Context, actor models.Actor, serials []string) ([]LockedCylinder, error)
	UnlockCylinders(ctx context.Context, actor models.Actor, locked []LockedCylinder) error
	ListPendingCylinders(ctx context.Context, actor models.Actor) ([]models.Cylinder, error)
	CountCylinders(ctx context.Context, actor models.Actor, filter CylinderFilter) (int, error)

	// --- Transactions ---
	InsertTransaction(ctx context.Context, actor models.Actor, params TransactionParams) (*models.Transaction, error)
	GetTransaction(ctx context.Context, actor models.Actor, transactionId string) (*models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, actor models.Actor, transactionId, fromStatus, toStatus string) error
	RecordHandoverAssets(ctx context.Context, actor models.Actor, transactionId string, locked []LockedCylinder) error
	ListHandoverAssets(ctx context.Context, actor models.Actor, transactionId string) ([]LockedCylinder, error)
	ListPendingHandovers(ctx context.Context, actor models.Actor) ([]models.Transaction, error)
	ListPendingPayments(ctx context.Context, actor models.Actor) ([]models.Transaction, error)
	ListCustomerTransactions(ctx context.Context, actor models.Actor, customerId string) ([]models.Transaction, error)

	// --- Customers ---
	GetCustomer(ctx context.Context, actor models.Actor, customerId string) (*models.Customer, error)
	AdjustCustomerBalance(ctx context.Context, actor models.Actor, customerId string, delta decimal.Decimal) error
	ListOutstandingBalances(ctx context.Context, actor models.Actor) ([]models.Customer, error)

	// --- Wallets ---
	GetWalletBalance(ctx context.Context, actor models.Actor, userId string) (decimal.Decimal, error)
	AdjustWalletBalance(ctx context.Context, actor models.Actor, userId string, delta decimal.Decimal) error

	// --- Company ledger ---
	InsertLedgerEntry(ctx context.Context, actor models.Actor, params LedgerEntryParams) error
	CompanyCashTotal(ctx context.Context, actor models.Actor) (decimal.Decimal, error)

	// --- Users ---
	ListReceivers(ctx context.Context, actor models.Actor) ([]models.User, error)
	CountUsersByRole(ctx context.Context, actor models.Actor, role string) (int, error)

	// --- Atomic approval procedure ---
	ApproveDriverHandover(ctx context.Context, actor models.Actor, transactionId string) (*HandoverResult, error)

	// --- Lifecycle ---
	Close()
}
