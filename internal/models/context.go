package models

// Actor is the resolved identity every core operation runs as. It is supplied
// by the session layer; core code never accepts a caller-provided tenant id.
type Actor struct {
	UserId   string
	TenantId string
	Role     string
}

// Resolved reports whether the actor carries both a user and a tenant.
// Operations fail closed when it returns false.
func (a Actor) Resolved() bool {
	return a.UserId != "" && a.TenantId != ""
}

// IsStaff reports whether the actor may act as a handover receiver or
// approve/verify on behalf of the office.
func (a Actor) IsStaff() bool {
	switch a.Role {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}
