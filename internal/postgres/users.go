package postgres

import (
	"context"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
)

// ListReceivers lists the staff members who may receive a handover.
func (s *Service) ListReceivers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, queryListReceivers, actor.TenantId)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivers: %w", err)
	}
	defer rows.Close()

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
	if err := s.pool.QueryRow(ctx, queryCountUsersByRole, role, actor.TenantId).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
