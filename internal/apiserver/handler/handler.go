// Package handler wires the HTTP API: analysis lifecycle, versions, and
// pricing administration.
package handler

import (
	"net/http"

	"github.com/stratocost/stratocost/internal/analysis"
	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/apiserver/middleware"
	"github.com/stratocost/stratocost/internal/common/dto"
	"github.com/stratocost/stratocost/internal/common/errorx"
	"github.com/stratocost/stratocost/internal/pricing/provider"
	"github.com/stratocost/stratocost/pkg/metrics"
	"github.com/stratocost/stratocost/pkg/version"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the HTTP API over the analysis service and pricing store.
type Handler struct {
	svc      *analysis.Service
	catalogs *provider.Provider
	db       database.Database
	jwt      *middleware.JWTService
	metrics  *metrics.Metrics
	errs     *errorx.ErrorHandler
	logger   *zap.Logger
}

// New creates a new API handler
func New(svc *analysis.Service, catalogs *provider.Provider, db database.Database, jwt *middleware.JWTService, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		catalogs: catalogs,
		db:       db,
		jwt:      jwt,
		metrics:  m,
		errs:     errorx.NewErrorHandler(logger),
		logger:   logger,
	}
}

// RegisterRoutes mounts all routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api", h.metrics.GinMiddleware(), middleware.AuthMiddleware(h.jwt))

	analyses := api.Group("/analyses")
	analyses.POST("", h.createAnalysis)
	analyses.GET("", h.listAnalyses)
	analyses.GET("/:id", h.getAnalysis)
	analyses.PUT("/:id/inputs", h.updateInputs)
	analyses.POST("/:id/save", h.saveAnalysis)
	analyses.POST("/:id/lock", h.lockAnalysis)
	analyses.POST("/:id/unlock", h.unlockAnalysis)
	analyses.POST("/:id/reassign", h.reassignAnalysis)
	analyses.GET("/:id/versions", h.listVersions)
	analyses.GET("/:id/versions/:number", h.getVersion)

	pricing := api.Group("/pricing")
	pricing.GET("/:provider/active", h.getActivePricing)
	pricing.POST("/versions", middleware.AdminOnly(), h.createPricingVersion)
	pricing.POST("/versions/:id/activate", middleware.AdminOnly(), h.activatePricingVersion)

	admin := api.Group("/admin", middleware.AdminOnly())
	admin.POST("/tenants", h.createTenant)
	admin.GET("/tenants", h.listTenants)
	admin.PUT("/tenants/:id/status", h.updateTenantStatus)
	admin.POST("/users", h.createUser)
	admin.GET("/users/:id", h.getUser)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
}

func toAnalysisResponse(a *database.Analysis) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		ID:                   a.ID,
		TenantID:             a.TenantID,
		Title:                a.Title,
		Status:               a.Status,
		CurrentVersionNumber: a.CurrentVersionNumber,
		CreatedBy:            a.CreatedBy,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
		SavedAt:              a.SavedAt,
		LockedAt:             a.LockedAt,
	}
}
