package dto

import "github.com/stratocost/stratocost/internal/common/cnst"

// CreateTenantRequest registers a new tenant.
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`
}

// UpdateTenantStatusRequest flips a tenant between ACTIVE and INACTIVE.
type UpdateTenantStatusRequest struct {
	Status cnst.TenantStatus `json:"status" binding:"required"`
}

// CreateUserRequest registers a user under a tenant.
type CreateUserRequest struct {
	TenantID string        `json:"tenantId" binding:"required"`
	Email    string        `json:"email" binding:"required"`
	Role     cnst.UserRole `json:"role"`
}
