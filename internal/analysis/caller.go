package analysis

import "github.com/stratocost/stratocost/internal/common/cnst"

// Caller identifies who is performing an operation. Authentication happens
// upstream; the service only enforces tenant isolation and admin gates.
type Caller struct {
	UserID   string
	TenantID string
	Role     cnst.UserRole
}

// IsAdmin reports whether the caller bypasses tenant isolation.
func (c Caller) IsAdmin() bool {
	return c.Role == cnst.RoleAdmin
}
