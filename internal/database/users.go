package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"go.uber.org/zap"
)

// ListReceivers returns the tenant's staff eligible to receive a handover.
func (s *Service) ListReceivers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, queryListReceivers, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivers: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Id, &u.TenantId, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (s *Service) CountUsersByRole(ctx context.Context, actor models.Actor, role string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, queryCountUsersByRole, role, actor.TenantId).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
