package common

import (
	"fmt"
	"os"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
)

// ResolveActor builds the acting identity for a command. Flags win; the
// ERP_USER_ID, ERP_TENANT_ID and ERP_ROLE environment variables fill the
// gaps so operators can export a session once.
func ResolveActor(userId, tenantId, role string) (models.Actor, error) {
	if userId == "" {
		userId = os.Getenv("ERP_USER_ID")
	}
	if tenantId == "" {
		tenantId = os.Getenv("ERP_TENANT_ID")
	}
	if role == "" {
		role = os.Getenv("ERP_ROLE")
	}

	actor := models.Actor{UserId: userId, TenantId: tenantId, Role: role}
	if !actor.Resolved() {
		return models.Actor{}, fmt.Errorf("acting user and tenant are required (set -user/-tenant or ERP_USER_ID/ERP_TENANT_ID)")
	}
	return actor, nil
}
