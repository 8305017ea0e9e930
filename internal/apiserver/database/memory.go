package database

import (
	"context"
	"sort"
	"sync"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"gorm.io/gorm"
)

// Memory implements Database entirely in process. It backs tests and local
// development; it reports the same gorm.ErrRecordNotFound as the SQL
// implementations so callers behave identically against either.
type Memory struct {
	mu              sync.RWMutex
	tenants         map[string]*Tenant
	users           map[string]*User
	analyses        map[string]*Analysis
	versions        map[string][]*AnalysisVersion // analysis id → versions
	pricingVersions map[string]*PricingVersion
	pricingEntries  map[string][]*PricingEntry // pricing version id → entries
	nextEntryID     uint
}

// NewMemory creates a new in-memory Database
func NewMemory() *Memory {
	return &Memory{
		tenants:         make(map[string]*Tenant),
		users:           make(map[string]*User),
		analyses:        make(map[string]*Analysis),
		versions:        make(map[string][]*AnalysisVersion),
		pricingVersions: make(map[string]*PricingVersion),
		pricingEntries:  make(map[string][]*PricingEntry),
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) CreateTenant(_ context.Context, tenant *Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *tenant
	m.tenants[tenant.ID] = &clone
	return nil
}

func (m *Memory) GetTenant(_ context.Context, id string) (*Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (m *Memory) ListTenants(_ context.Context) ([]*Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateTenantStatus(_ context.Context, id string, status cnst.TenantStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tenants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (m *Memory) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *Memory) CreateAnalysis(_ context.Context, analysis *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *analysis
	m.analyses[analysis.ID] = &clone
	return nil
}

func (m *Memory) GetAnalysis(_ context.Context, id string) (*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.analyses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (m *Memory) UpdateAnalysis(_ context.Context, analysis *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.analyses[analysis.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *analysis
	m.analyses[analysis.ID] = &clone
	return nil
}

func (m *Memory) ListAnalysesByTenant(_ context.Context, tenantID string) ([]*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Analysis
	for _, a := range m.analyses {
		if a.TenantID == tenantID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *Memory) ListAnalyses(_ context.Context) ([]*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Analysis, 0, len(m.analyses))
	for _, a := range m.analyses {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *Memory) CreateAnalysisVersion(_ context.Context, version *AnalysisVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *version
	m.versions[version.AnalysisID] = append(m.versions[version.AnalysisID], &clone)
	return nil
}

func (m *Memory) GetAnalysisVersion(_ context.Context, analysisID string, versionNumber int) (*AnalysisVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.versions[analysisID] {
		if v.VersionNumber == versionNumber {
			clone := *v
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Memory) ListAnalysisVersions(_ context.Context, analysisID string) ([]*AnalysisVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	versions := m.versions[analysisID]
	out := make([]*AnalysisVersion, 0, len(versions))
	for _, v := range versions {
		clone := *v
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (m *Memory) NextVersionNumber(_ context.Context, analysisID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	max := 0
	for _, v := range m.versions[analysisID] {
		if v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max + 1, nil
}

func (m *Memory) CreatePricingVersion(_ context.Context, version *PricingVersion, entries []*PricingEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *version
	m.pricingVersions[version.ID] = &clone
	for _, e := range entries {
		m.nextEntryID++
		ec := *e
		ec.ID = m.nextEntryID
		ec.PricingVersionID = version.ID
		ec.Provider = version.Provider
		m.pricingEntries[version.ID] = append(m.pricingEntries[version.ID], &ec)
	}
	return nil
}

func (m *Memory) ActivatePricingVersion(_ context.Context, provider, versionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.pricingVersions[versionID]
	if !ok || target.Provider != provider {
		return gorm.ErrRecordNotFound
	}
	for _, v := range m.pricingVersions {
		if v.Provider == provider {
			v.IsActive = false
		}
	}
	target.IsActive = true
	return nil
}

func (m *Memory) GetActivePricingVersion(_ context.Context, provider string) (*PricingVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.pricingVersions {
		if v.Provider == provider && v.IsActive {
			clone := *v
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Memory) ListPricingEntries(_ context.Context, versionID string) ([]*PricingEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.pricingEntries[versionID]
	out := make([]*PricingEntry, 0, len(entries))
	for _, e := range entries {
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
