package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cylinder statuses. handover_pending is a transient lock state that is only
// left via handover approval or rejection.
const (
	CylinderStatusFull            = "full"
	CylinderStatusEmpty           = "empty"
	CylinderStatusAtCustomer      = "at_customer"
	CylinderStatusHandoverPending = "handover_pending"
)

// Cylinder location types. The (location, holder) pair must stay consistent:
// location driver implies the holder is a driver, location customer implies
// the holder is a customer, location warehouse carries no holder.
const (
	LocationWarehouse = "warehouse"
	LocationDriver    = "driver"
	LocationCustomer  = "customer"
)

// Order statuses.
const (
	OrderStatusAssigned  = "assigned"
	OrderStatusOnTrip    = "on_trip"
	OrderStatusDelivered = "delivered"
)

// Transaction types. Sale amounts are positive (increase customer debt),
// payment amounts are negative (decrease it). credit/debit are the company
// cash-book entry types for manual finance entries.
const (
	TransactionTypeSale            = "sale"
	TransactionTypePayment         = "payment"
	TransactionTypeHandoverRequest = "handover_request"
	TransactionTypeCredit          = "credit"
	TransactionTypeDebit           = "debit"
)

// Transaction statuses for the maker-checker and payment-verification flows.
const (
	TransactionStatusPending             = "pending"
	TransactionStatusPendingVerification = "pending_verification"
	TransactionStatusVerified            = "verified"
	TransactionStatusApproved            = "approved"
	TransactionStatusRejected            = "rejected"
)

// Payment methods.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCredit = "credit"
	PaymentMethodBank   = "bank"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleDriver  = "driver"
)

// Cylinder represents a tracked gas cylinder asset.
type Cylinder struct {
	Id           string    `db:"id"`
	TenantId     string    `db:"tenant_id"`
	SerialNumber string    `db:"serial_number"`
	Size         string    `db:"size"`
	Status       string    `db:"status"`
	LocationType string    `db:"current_location_type"`
	HolderId     string    `db:"current_holder_id"`
	LastOrderId  string    `db:"last_order_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Order is an append-only delivery order record. TotalAmount is fixed at
// creation; settlement only changes status, amount_received and timestamps.
type Order struct {
	Id              string          `db:"id"`
	TenantId        string          `db:"tenant_id"`
	FriendlyId      string          `db:"friendly_id"`
	CustomerId      string          `db:"customer_id"`
	DriverId        string          `db:"driver_id"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	PaymentMethod   string          `db:"payment_method"`
	AmountReceived  decimal.Decimal `db:"amount_received"`
	Notes           string          `db:"notes"`
	TripStartedAt   *time.Time      `db:"trip_started_at"`
	TripCompletedAt *time.Time      `db:"trip_completed_at"`
	CreatedAt       time.Time       `db:"created_at"`
}

// OrderItem is a line item on an order.
type OrderItem struct {
	Id          string `db:"id"`
	OrderId     string `db:"order_id"`
	TenantId    string `db:"tenant_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
}

// Customer carries a denormalized running debt balance. A positive balance
// means the customer owes the company money.
type Customer struct {
	Id             string          `db:"id"`
	TenantId       string          `db:"tenant_id"`
	Name           string          `db:"name"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Transaction is a customer-scoped ledger entry or a handover request record.
// Rows are append-only except for status transitions.
type Transaction struct {
	Id            string          `db:"id"`
	TenantId      string          `db:"tenant_id"`
	OrderId       string          `db:"order_id"`
	CustomerId    string          `db:"customer_id"`
	UserId        string          `db:"user_id"`
	ReceiverId    string          `db:"receiver_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	Description   string          `db:"description"`
	ProofUrl      string          `db:"proof_url"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// EmployeeWallet tracks the cash a driver physically holds on behalf of the
// company. It must never go negative as the result of a handover.
type EmployeeWallet struct {
	UserId    string          `db:"user_id"`
	TenantId  string          `db:"tenant_id"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// LedgerEntry is a company cash-book row.
type LedgerEntry struct {
	Id              string          `db:"id"`
	TenantId        string          `db:"tenant_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	AdminId         string          `db:"admin_id"`
	CreatedAt       time.Time       `db:"created_at"`
}

// User is a tenant staff member.
type User struct {
	Id        string    `db:"id"`
	TenantId  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
