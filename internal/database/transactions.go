package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func scanTransaction(scanner interface{ Scan(dest ...any) error }) (*models.Transaction, error) {
	var txn models.Transaction
	var amountStr string
	err := scanner.Scan(&txn.Id, &txn.TenantId, &txn.OrderId, &txn.CustomerId, &txn.UserId,
		&txn.ReceiverId, &txn.Type, &amountStr, &txn.PaymentMethod, &txn.Status,
		&txn.Description, &txn.ProofUrl, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}
	txn.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return &txn, nil
}

// InsertTransaction appends one transaction row. Rows are never deleted;
// only status transitions mutate them afterwards.
func (s *Service) InsertTransaction(ctx context.Context, actor models.Actor, params store.TransactionParams) (*models.Transaction, error) {
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := s.db.QueryRowContext(ctx, queryInsertTransaction,
		uuid.New().String(), actor.TenantId, params.OrderId, params.CustomerId, params.UserId,
		params.ReceiverId, params.Type, params.Amount.String(), params.PaymentMethod,
		params.Status, params.Description, params.ProofUrl, createdAt, createdAt)

	txn, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	zap.L().Info("Transaction recorded",
		zap.String("transaction_id", txn.Id),
		zap.String("type", txn.Type),
		zap.String("amount", txn.Amount.String()))
	return txn, nil
}

func (s *Service) GetTransaction(ctx context.Context, actor models.Actor, transactionId string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, queryGetTransaction, transactionId, actor.TenantId)
	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// UpdateTransactionStatus performs a conditional fromStatus -> toStatus
// transition. ErrAlreadyProcessed means the row was not in fromStatus.
func (s *Service) UpdateTransactionStatus(ctx context.Context, actor models.Actor, transactionId, fromStatus, toStatus string) error {
	result, err := s.db.ExecContext(ctx, queryUpdateTransactionStatus,
		toStatus, time.Now(), transactionId, actor.TenantId, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrAlreadyProcessed
	}
	return nil
}

// RecordHandoverAssets writes the explicit request<->cylinder join rows so
// approval and rejection know exactly which assets belong to the request and
// what status each held before locking.
func (s *Service) RecordHandoverAssets(ctx context.Context, actor models.Actor, transactionId string, locked []store.LockedCylinder) error {
	for _, lc := range locked {
		if _, err := s.db.ExecContext(ctx, queryInsertHandoverAsset, transactionId, lc.Id, lc.PreviousStatus); err != nil {
			return fmt.Errorf("failed to record handover asset %s: %w", lc.SerialNumber, err)
		}
	}
	return nil
}

// ListHandoverAssets returns the cylinders joined to a handover request with
// their pre-lock statuses. Empty for requests recorded before the join table.
func (s *Service) ListHandoverAssets(ctx context.Context, actor models.Actor, transactionId string) ([]store.LockedCylinder, error) {
	rows, err := s.db.QueryContext(ctx, queryGetHandoverAssets, transactionId, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list handover assets: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var locked []store.LockedCylinder
	for rows.Next() {
		var lc store.LockedCylinder
		if err := rows.Scan(&lc.Id, &lc.SerialNumber, &lc.PreviousStatus); err != nil {
			return nil, fmt.Errorf("failed to scan handover asset: %w", err)
		}
		locked = append(locked, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating handover assets: %w", err)
	}
	return locked, nil
}

func (s *Service) ListPendingHandovers(ctx context.Context, actor models.Actor) ([]models.Transaction, error) {
	return s.listTransactions(ctx, queryListPendingHandovers, actor.TenantId)
}

func (s *Service) ListPendingPayments(ctx context.Context, actor models.Actor) ([]models.Transaction, error) {
	return s.listTransactions(ctx, queryListPendingPayments, actor.TenantId)
}

// ListCustomerTransactions returns a customer's statement, oldest first.
func (s *Service) ListCustomerTransactions(ctx context.Context, actor models.Actor, customerId string) ([]models.Transaction, error) {
	return s.listTransactions(ctx, queryListCustomerTransactions, customerId, actor.TenantId)
}

func (s *Service) listTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}
