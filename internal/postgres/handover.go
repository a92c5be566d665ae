package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pgErrCodeCheckViolation is raised by approve_driver_handover when the
// driver's wallet cannot cover the deposit.
const pgErrCodeCheckViolation = "23514"

// ApproveDriverHandover delegates to the approve_driver_handover database
// function, which marks the request approved, receives every locked cylinder
// into the warehouse, debits the driver's wallet and credits the company cash
// book in one server-side transaction. Logic refusals come back through the
// result, not as errors.
func (s *Service) ApproveDriverHandover(ctx context.Context, actor models.Actor, transactionId string) (*store.HandoverResult, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, queryApproveDriverHandover,
		transactionId, actor.TenantId, actor.UserId).Scan(&payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeCheckViolation {
			return &store.HandoverResult{Success: false, Message: "Driver wallet balance is below the handover amount"}, nil
		}
		return nil, fmt.Errorf("failed to run approval procedure: %w", err)
	}

	var result store.HandoverResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode approval result: %w", err)
	}

	if result.Success {
		zap.L().Info("Handover approved",
			zap.String("transaction_id", transactionId),
			zap.String("message", result.Message))
	}
	return &result, nil
}
