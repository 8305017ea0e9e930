// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"encoding/json"
	"time"

	"github.com/stratocost/stratocost/internal/calc"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/report"
)

// CreateAnalysisRequest creates a new LIVE analysis.
type CreateAnalysisRequest struct {
	Title string `json:"title"`
}

// UpdateInputsRequest replaces an analysis's live inputs wholesale.
type UpdateInputsRequest struct {
	Inputs calc.Inputs `json:"inputs" binding:"required"`
}

// SaveAnalysisRequest persists a new version snapshot. EditableContent is
// optional; when omitted, the previous version's edits are carried forward.
type SaveAnalysisRequest struct {
	Title           string                  `json:"title"`
	EditableContent *report.EditableContent `json:"editableContent"`
}

// ReassignTenantRequest moves an analysis to another tenant.
type ReassignTenantRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
}

// AnalysisResponse is the listing and detail form of an analysis.
type AnalysisResponse struct {
	ID                   string              `json:"id"`
	TenantID             string              `json:"tenantId"`
	Title                string              `json:"title"`
	Status               cnst.AnalysisStatus `json:"status"`
	CurrentVersionNumber int                 `json:"currentVersionNumber"`
	CreatedBy            string              `json:"createdBy"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
	SavedAt              *time.Time          `json:"savedAt,omitempty"`
	LockedAt             *time.Time          `json:"lockedAt,omitempty"`

	// Inputs is the live inputs document, superseded wholesale on every
	// update. Omitted in listings.
	Inputs json.RawMessage `json:"inputs,omitempty"`
}

// VersionResponse is a full version snapshot. The three documents are
// returned as stored, without recomputation.
type VersionResponse struct {
	AnalysisID      string          `json:"analysisId"`
	VersionNumber   int             `json:"versionNumber"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	Inputs          json.RawMessage `json:"inputs"`
	Results         json.RawMessage `json:"results"`
	EditableContent json.RawMessage `json:"editableContent"`
}
