package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/common/dto"
	"github.com/stratocost/stratocost/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) getActivePricing(c *gin.Context) {
	providerName := c.Param("provider")

	v, err := h.db.GetActivePricingVersion(c.Request.Context(), providerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errs.HandleError(c, errorx.ErrPricingVersionNotFound.WithDetail("provider", providerName))
			return
		}
		h.errs.HandleError(c, err)
		return
	}

	entries, err := h.db.ListPricingEntries(c.Request.Context(), v.ID)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version": dto.PricingVersionResponse{
			ID:        v.ID,
			Provider:  v.Provider,
			Name:      v.Name,
			IsActive:  v.IsActive,
			CreatedAt: v.CreatedAt,
		},
		"entries": entries,
	})
}

func (h *Handler) createPricingVersion(c *gin.Context) {
	var req dto.CreatePricingVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	v := &database.PricingVersion{
		ID:        uuid.New().String(),
		Provider:  req.Provider,
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	entries := make([]*database.PricingEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, &database.PricingEntry{
			ServiceType:      e.ServiceType,
			Tier:             e.Tier,
			Region:           e.Region,
			UnitType:         e.UnitType,
			UnitPrice:        e.UnitPrice,
			AnnualMultiplier: e.AnnualMultiplier,
		})
	}

	if err := h.db.CreatePricingVersion(c.Request.Context(), v, entries); err != nil {
		h.errs.HandleError(c, err)
		return
	}

	h.logger.Info("pricing version created",
		zap.String("provider", req.Provider),
		zap.String("version_id", v.ID),
		zap.Int("entries", len(entries)))
	c.JSON(http.StatusCreated, dto.PricingVersionResponse{
		ID:        v.ID,
		Provider:  v.Provider,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
	})
}

func (h *Handler) activatePricingVersion(c *gin.Context) {
	var req struct {
		Provider string `json:"provider" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}
	versionID := c.Param("id")

	if err := h.db.ActivatePricingVersion(c.Request.Context(), req.Provider, versionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errs.HandleError(c, errorx.ErrPricingVersionNotFound.WithDetail("version_id", versionID))
			return
		}
		h.errs.HandleError(c, err)
		return
	}

	// Activation changes what the next computation must see.
	h.catalogs.Invalidate(c.Request.Context(), req.Provider)

	h.logger.Info("pricing version activated",
		zap.String("provider", req.Provider),
		zap.String("version_id", versionID))
	c.Status(http.StatusNoContent)
}
