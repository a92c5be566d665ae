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

// ApproveDriverHandover finalizes a pending handover request as one unit:
// mark the request approved, receive every locked cylinder into the
// warehouse, debit the driver's wallet and credit the company cash book.
// This is the only multi-statement transaction in the store; everything else
// in the core is sequential per-call. A logic refusal (request missing,
// already processed, wallet short) is reported through the result, not as an
// error, mirroring the hosted procedure's success/message contract.
func (s *Service) ApproveDriverHandover(ctx context.Context, actor models.Actor, transactionId string) (*store.HandoverResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback()

	var id, driverId, receiverId, status string
	var amountStr string
	err = tx.QueryRowContext(ctx, queryGetHandoverForApproval, transactionId, actor.TenantId).
		Scan(&id, &driverId, &receiverId, &amountStr, &status)
	if err == sql.ErrNoRows {
		return &store.HandoverResult{Success: false, Message: "Handover request not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load handover request: %w", err)
	}
	if status != models.TransactionStatusPending {
		return &store.HandoverResult{Success: false, Message: "Handover request already processed"}, nil
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse handover amount '%s': %w", amountStr, err)
	}

	now := time.Now()

	result, err := tx.ExecContext(ctx, queryApproveHandoverTxn, now, transactionId, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to mark request approved: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return &store.HandoverResult{Success: false, Message: "Handover request already processed"}, nil
	}

	cylinderIds, err := handoverCylinderIds(ctx, tx, transactionId, driverId, actor.TenantId)
	if err != nil {
		return nil, err
	}

	received := 0
	for _, cylinderId := range cylinderIds {
		res, err := tx.ExecContext(ctx, queryReceiveHandoverCylinder, now, cylinderId, actor.TenantId)
		if err != nil {
			return nil, fmt.Errorf("failed to receive cylinder: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		received += int(n)
	}

	if amount.IsPositive() {
		var balanceStr string
		var version int64
		err := tx.QueryRowContext(ctx, queryGetWalletForUpdate, driverId, actor.TenantId).
			Scan(&balanceStr, &version)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to read driver wallet: %w", err)
		}

		balance := decimal.Zero
		if err == nil {
			balance, err = decimal.NewFromString(balanceStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse wallet balance '%s': %w", balanceStr, err)
			}
		}
		if balance.LessThan(amount) {
			// The whole approval rolls back rather than driving the wallet
			// negative.
			return &store.HandoverResult{Success: false, Message: "Driver wallet balance is below the handover amount"}, nil
		}

		res, err := tx.ExecContext(ctx, queryUpdateWalletBalance,
			balance.Sub(amount).String(), now, driverId, actor.TenantId, version)
		if err != nil {
			return nil, fmt.Errorf("failed to debit driver wallet: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("driver wallet changed during approval")
		}

		_, err = tx.ExecContext(ctx, queryInsertLedgerEntry,
			uuid.New().String(), actor.TenantId, amount.String(), models.TransactionTypeCredit,
			"driver_handover", fmt.Sprintf("Driver handover approved (Txn #%.8s)", transactionId),
			actor.UserId, now)
		if err != nil {
			return nil, fmt.Errorf("failed to credit company ledger: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	zap.L().Info("Handover approved",
		zap.String("transaction_id", transactionId),
		zap.String("driver_id", driverId),
		zap.Int("cylinders_received", received),
		zap.String("amount", amount.String()))

	return &store.HandoverResult{
		Success: true,
		Message: fmt.Sprintf("Handover approved: %d cylinders received, Rs %s deposited", received, amount.String()),
	}, nil
}

// handoverCylinderIds resolves the cylinders belonging to a request: the
// explicit join rows when present, otherwise every handover_pending cylinder
// still held by the driver (requests recorded before the join table existed).
func handoverCylinderIds(ctx context.Context, tx *sql.Tx, transactionId, driverId, tenantId string) ([]string, error) {
	ids, err := collectIds(ctx, tx, queryGetHandoverAssetIds, transactionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load handover assets: %w", err)
	}
	if len(ids) > 0 {
		return ids, nil
	}

	ids, err = collectIds(ctx, tx, queryListDriverPendingIds, driverId, tenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cylinders: %w", err)
	}
	return ids, nil
}

func collectIds(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
