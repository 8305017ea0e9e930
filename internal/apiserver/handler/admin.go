package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/common/dto"
	"github.com/stratocost/stratocost/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) createTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	now := time.Now()
	tenant := &database.Tenant{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Domain:    req.Domain,
		Status:    cnst.TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.db.CreateTenant(c.Request.Context(), tenant); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

func (h *Handler) listTenants(c *gin.Context) {
	tenants, err := h.db.ListTenants(c.Request.Context())
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (h *Handler) updateTenantStatus(c *gin.Context) {
	var req dto.UpdateTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}
	if req.Status != cnst.TenantStatusActive && req.Status != cnst.TenantStatusInactive {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("status must be ACTIVE or INACTIVE"))
		return
	}

	id := c.Param("id")
	if err := h.db.UpdateTenantStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errs.HandleError(c, errorx.ErrTenantNotFound.WithDetail("tenant_id", id))
			return
		}
		h.errs.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	if _, err := h.db.GetTenant(c.Request.Context(), req.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errs.HandleError(c, errorx.ErrTenantNotFound.WithDetail("tenant_id", req.TenantID))
			return
		}
		h.errs.HandleError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = cnst.RoleUser
	}
	now := time.Now()
	user := &database.User{
		ID:        uuid.New().String(),
		TenantID:  req.TenantID,
		Email:     req.Email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errs.HandleError(c, errorx.ErrUserNotFound.WithDetail("user_id", c.Param("id")))
			return
		}
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
