// Package analysis implements the analysis lifecycle: a LIVE → SAVED →
// LOCKED state machine over a tenant-isolated store, with append-only
// version snapshots produced on every save.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/calc"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/common/errorx"
	"github.com/stratocost/stratocost/internal/insights"
	"github.com/stratocost/stratocost/internal/pricing"
	"github.com/stratocost/stratocost/internal/report"
	"github.com/stratocost/stratocost/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogProvider resolves a cloud provider's active pricing catalog.
type CatalogProvider interface {
	Catalog(ctx context.Context, provider string) (*pricing.Catalog, error)
}

// Results bundles everything derived from one computation pass. It is what
// a version snapshot stores under "results".
type Results struct {
	Breakdown *calc.Breakdown         `json:"breakdown"`
	Scenario  calc.ScenarioComparison `json:"scenario"`
	Insights  []insights.Insight      `json:"insights"`
}

// VersionSummary is the listing form of a version snapshot.
type VersionSummary struct {
	VersionNumber int       `json:"versionNumber"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// Service orchestrates computation, reconciliation, and persistence for
// analyses. All persistence goes through the injected Database; computation
// itself is pure.
//
// Saves are deliberately not guarded by an optimistic lock: two concurrent
// savers of the same analysis both succeed and produce two versions, the
// later write winning the current-version pointer. That is accepted behavior
// for a single-operator editing tool, not a defect to fix here.
type Service struct {
	db       database.Database
	catalogs CatalogProvider
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new analysis service
func NewService(db database.Database, catalogs CatalogProvider, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		catalogs: catalogs,
		metrics:  m,
		logger:   logger,
	}
}

// Create creates a new LIVE analysis owned by the caller's tenant.
func (s *Service) Create(ctx context.Context, caller Caller, title string) (*database.Analysis, error) {
	if title == "" {
		title = "Untitled analysis"
	}
	now := time.Now()
	a := &database.Analysis{
		ID:        uuid.New().String(),
		TenantID:  caller.TenantID,
		Status:    cnst.AnalysisStatusLive,
		Title:     title,
		CreatedBy: caller.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.CreateAnalysis(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("analysis created",
		zap.String("analysis_id", a.ID),
		zap.String("tenant_id", a.TenantID))
	return a, nil
}

// Get returns an analysis, subject to tenant isolation.
func (s *Service) Get(ctx context.Context, caller Caller, analysisID string) (*database.Analysis, error) {
	return s.load(ctx, caller, analysisID)
}

// List returns the caller's tenant's analyses; admins see every tenant's.
func (s *Service) List(ctx context.Context, caller Caller) ([]*database.Analysis, error) {
	if caller.IsAdmin() {
		return s.db.ListAnalyses(ctx)
	}
	return s.db.ListAnalysesByTenant(ctx, caller.TenantID)
}

// UpdateInputs replaces the analysis's live inputs wholesale and returns a
// fresh computation. No version is created; this is the live-recompute path.
func (s *Service) UpdateInputs(ctx context.Context, caller Caller, analysisID string, inputs calc.Inputs) (*Results, error) {
	a, err := s.load(ctx, caller, analysisID)
	if err != nil {
		return nil, err
	}
	if a.Status == cnst.AnalysisStatusLocked {
		return nil, errorx.ErrAnalysisLocked.WithDetail("analysis_id", analysisID)
	}

	raw, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("marshal inputs: %w", err)
	}
	a.Inputs = string(raw)
	a.UpdatedAt = time.Now()
	if err := s.db.UpdateAnalysis(ctx, a); err != nil {
		return nil, err
	}

	return s.compute(ctx, inputs)
}

// Save computes from the analysis's live inputs, reconciles the resulting
// default report content against the caller's edits, and appends an
// immutable version snapshot. LIVE transitions to SAVED on first save;
// subsequent saves stay SAVED and only grow the version list.
func (s *Service) Save(ctx context.Context, caller Caller, analysisID, title string, edits *report.EditableContent) (*database.AnalysisVersion, error) {
	a, err := s.load(ctx, caller, analysisID)
	if err != nil {
		return nil, err
	}
	if a.Status == cnst.AnalysisStatusLocked {
		s.metrics.IncSave(false)
		return nil, errorx.ErrAnalysisLocked.WithDetail("analysis_id", analysisID)
	}

	inputs, err := s.liveInputs(a)
	if err != nil {
		return nil, err
	}

	results, err := s.compute(ctx, inputs)
	if err != nil {
		return nil, err
	}

	defaults := report.BuildDefaults(results.Breakdown, results.Insights)
	prior := edits
	if prior == nil {
		// No edits supplied: reconcile against the previous version's
		// content so row deletions and custom rows still survive.
		prior, err = s.priorContent(ctx, a)
		if err != nil {
			return nil, err
		}
	}
	merged := report.Merge(defaults, prior)

	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("marshal inputs: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	contentJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("marshal editable content: %w", err)
	}

	number, err := s.db.NextVersionNumber(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	version := &database.AnalysisVersion{
		AnalysisID:      analysisID,
		VersionNumber:   number,
		CreatedBy:       caller.UserID,
		CreatedAt:       time.Now(),
		Inputs:          string(inputsJSON),
		Results:         string(resultsJSON),
		EditableContent: string(contentJSON),
	}
	if err := s.db.CreateAnalysisVersion(ctx, version); err != nil {
		return nil, err
	}

	now := time.Now()
	a.Status = cnst.AnalysisStatusSaved
	a.SavedAt = &now
	a.UpdatedAt = now
	a.CurrentVersionNumber = number
	if title != "" {
		a.Title = title
	}
	if err := s.db.UpdateAnalysis(ctx, a); err != nil {
		return nil, err
	}

	s.metrics.IncSave(true)
	s.logger.Info("analysis saved",
		zap.String("analysis_id", analysisID),
		zap.Int("version", number))
	return version, nil
}

// Lock transitions SAVED → LOCKED. Admin only; a LOCKED analysis rejects
// every input mutation and save until unlocked.
func (s *Service) Lock(ctx context.Context, caller Caller, analysisID string) error {
	if !caller.IsAdmin() {
		return errorx.ErrForbidden
	}
	a, err := s.load(ctx, caller, analysisID)
	if err != nil {
		return err
	}
	if a.Status != cnst.AnalysisStatusSaved {
		return errorx.ErrInvalidTransition.
			WithDetail("from", string(a.Status)).
			WithDetail("to", string(cnst.AnalysisStatusLocked))
	}
	now := time.Now()
	a.Status = cnst.AnalysisStatusLocked
	a.LockedAt = &now
	a.UpdatedAt = now
	return s.db.UpdateAnalysis(ctx, a)
}

// Unlock transitions LOCKED → SAVED. Admin only.
func (s *Service) Unlock(ctx context.Context, caller Caller, analysisID string) error {
	if !caller.IsAdmin() {
		return errorx.ErrForbidden
	}
	a, err := s.load(ctx, caller, analysisID)
	if err != nil {
		return err
	}
	if a.Status != cnst.AnalysisStatusLocked {
		return errorx.ErrInvalidTransition.
			WithDetail("from", string(a.Status)).
			WithDetail("to", string(cnst.AnalysisStatusSaved))
	}
	a.Status = cnst.AnalysisStatusSaved
	a.LockedAt = nil
	a.UpdatedAt = time.Now()
	return s.db.UpdateAnalysis(ctx, a)
}

// ListVersions lists an analysis's version history, oldest first.
func (s *Service) ListVersions(ctx context.Context, caller Caller, analysisID string) ([]VersionSummary, error) {
	if _, err := s.load(ctx, caller, analysisID); err != nil {
		return nil, err
	}
	versions, err := s.db.ListAnalysisVersions(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	out := make([]VersionSummary, 0, len(versions))
	for _, v := range versions {
		out = append(out, VersionSummary{
			VersionNumber: v.VersionNumber,
			CreatedAt:     v.CreatedAt,
			CreatedBy:     v.CreatedBy,
		})
	}
	return out, nil
}

// GetVersion returns one version snapshot verbatim. Nothing is recomputed:
// the snapshot is immutable regardless of pricing changes since the save.
func (s *Service) GetVersion(ctx context.Context, caller Caller, analysisID string, versionNumber int) (*database.AnalysisVersion, error) {
	if _, err := s.load(ctx, caller, analysisID); err != nil {
		return nil, err
	}
	v, err := s.db.GetAnalysisVersion(ctx, analysisID, versionNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrVersionNotFound.
				WithDetail("analysis_id", analysisID).
				WithDetail("version", versionNumber)
		}
		return nil, err
	}
	return v, nil
}

// ReassignTenant moves an analysis to another tenant. Admin only; the move
// changes ownership without creating a version.
func (s *Service) ReassignTenant(ctx context.Context, caller Caller, analysisID, newTenantID string) error {
	if !caller.IsAdmin() {
		return errorx.ErrForbidden
	}
	a, err := s.load(ctx, caller, analysisID)
	if err != nil {
		return err
	}
	if _, err := s.db.GetTenant(ctx, newTenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.ErrTenantNotFound.WithDetail("tenant_id", newTenantID)
		}
		return err
	}
	a.TenantID = newTenantID
	a.UpdatedAt = time.Now()
	if err := s.db.UpdateAnalysis(ctx, a); err != nil {
		return err
	}
	s.logger.Info("analysis reassigned",
		zap.String("analysis_id", analysisID),
		zap.String("tenant_id", newTenantID))
	return nil
}

// load fetches an analysis and enforces tenant isolation. A cross-tenant
// read is reported as not-found, never as forbidden, so existence does not
// leak across tenants.
func (s *Service) load(ctx context.Context, caller Caller, analysisID string) (*database.Analysis, error) {
	a, err := s.db.GetAnalysis(ctx, analysisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrAnalysisNotFound.WithDetail("analysis_id", analysisID)
		}
		return nil, err
	}
	if !caller.IsAdmin() && a.TenantID != caller.TenantID {
		return nil, errorx.ErrAnalysisNotFound.WithDetail("analysis_id", analysisID)
	}
	return a, nil
}

// compute runs the pure calculation pipeline over the inputs.
func (s *Service) compute(ctx context.Context, inputs calc.Inputs) (*Results, error) {
	catalog, err := s.catalogs.Catalog(ctx, inputs.Provider)
	if err != nil {
		return nil, err
	}

	breakdown := calc.Compute(inputs, catalog)
	s.metrics.IncCompute()
	if len(breakdown.Misses) > 0 {
		s.metrics.AddPricingMisses(len(breakdown.Misses))
		for _, m := range breakdown.Misses {
			s.logger.Warn("pricing miss, line item contributes 0",
				zap.String("component_id", m.ComponentID),
				zap.String("tier", m.TierName))
		}
	}

	return &Results{
		Breakdown: breakdown,
		Scenario:  breakdown.Optimized(),
		Insights:  insights.Evaluate(breakdown),
	}, nil
}

// liveInputs decodes the analysis's live inputs document.
func (s *Service) liveInputs(a *database.Analysis) (calc.Inputs, error) {
	var inputs calc.Inputs
	if a.Inputs == "" {
		return inputs, nil
	}
	if err := json.Unmarshal([]byte(a.Inputs), &inputs); err != nil {
		return inputs, fmt.Errorf("decode live inputs: %w", err)
	}
	return inputs, nil
}

// priorContent decodes the current version's editable content, if any.
func (s *Service) priorContent(ctx context.Context, a *database.Analysis) (*report.EditableContent, error) {
	if a.CurrentVersionNumber == 0 {
		return nil, nil
	}
	v, err := s.db.GetAnalysisVersion(ctx, a.ID, a.CurrentVersionNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var content report.EditableContent
	if err := json.Unmarshal([]byte(v.EditableContent), &content); err != nil {
		return nil, fmt.Errorf("decode prior content: %w", err)
	}
	return &content, nil
}
