package database

import (
	"context"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"gorm.io/gorm"
)

// gormDB implements Database on top of a gorm dialector. The sqlite,
// postgres, and mysql constructors all share this implementation.
type gormDB struct {
	db *gorm.DB
}

func newGormDB(dialector gorm.Dialector) (*gormDB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&Tenant{},
		&User{},
		&Analysis{},
		&AnalysisVersion{},
		&PricingVersion{},
		&PricingEntry{},
	); err != nil {
		return nil, err
	}

	return &gormDB{db: db}, nil
}

func (d *gormDB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *gormDB) CreateTenant(ctx context.Context, tenant *Tenant) error {
	return d.db.WithContext(ctx).Create(tenant).Error
}

func (d *gormDB) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	var tenant Tenant
	if err := d.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (d *gormDB) ListTenants(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := d.db.WithContext(ctx).Order("created_at asc").Find(&tenants).Error
	return tenants, err
}

func (d *gormDB) UpdateTenantStatus(ctx context.Context, id string, status cnst.TenantStatus) error {
	result := d.db.WithContext(ctx).
		Model(&Tenant{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *gormDB) CreateUser(ctx context.Context, user *User) error {
	return d.db.WithContext(ctx).Create(user).Error
}

func (d *gormDB) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *gormDB) CreateAnalysis(ctx context.Context, analysis *Analysis) error {
	return d.db.WithContext(ctx).Create(analysis).Error
}

func (d *gormDB) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	var analysis Analysis
	if err := d.db.WithContext(ctx).First(&analysis, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (d *gormDB) UpdateAnalysis(ctx context.Context, analysis *Analysis) error {
	return d.db.WithContext(ctx).Save(analysis).Error
}

func (d *gormDB) ListAnalysesByTenant(ctx context.Context, tenantID string) ([]*Analysis, error) {
	var analyses []*Analysis
	err := d.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("updated_at desc").
		Find(&analyses).Error
	return analyses, err
}

func (d *gormDB) ListAnalyses(ctx context.Context) ([]*Analysis, error) {
	var analyses []*Analysis
	err := d.db.WithContext(ctx).Order("updated_at desc").Find(&analyses).Error
	return analyses, err
}

func (d *gormDB) CreateAnalysisVersion(ctx context.Context, version *AnalysisVersion) error {
	return d.db.WithContext(ctx).Create(version).Error
}

func (d *gormDB) GetAnalysisVersion(ctx context.Context, analysisID string, versionNumber int) (*AnalysisVersion, error) {
	var version AnalysisVersion
	err := d.db.WithContext(ctx).
		Where("analysis_id = ? AND version_number = ?", analysisID, versionNumber).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (d *gormDB) ListAnalysisVersions(ctx context.Context, analysisID string) ([]*AnalysisVersion, error) {
	var versions []*AnalysisVersion
	err := d.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Order("version_number asc").
		Find(&versions).Error
	return versions, err
}

func (d *gormDB) NextVersionNumber(ctx context.Context, analysisID string) (int, error) {
	var latest int
	err := d.db.WithContext(ctx).
		Model(&AnalysisVersion{}).
		Where("analysis_id = ?", analysisID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&latest).Error
	if err != nil {
		return 0, err
	}
	return latest + 1, nil
}

func (d *gormDB) CreatePricingVersion(ctx context.Context, version *PricingVersion, entries []*PricingEntry) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		for _, e := range entries {
			e.PricingVersionID = version.ID
			e.Provider = version.Provider
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(entries).Error
	})
}

func (d *gormDB) ActivatePricingVersion(ctx context.Context, provider, versionID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var version PricingVersion
		if err := tx.First(&version, "id = ? AND provider = ?", versionID, provider).Error; err != nil {
			return err
		}
		if err := tx.Model(&PricingVersion{}).
			Where("provider = ? AND is_active = ?", provider, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&PricingVersion{}).
			Where("id = ?", versionID).
			Update("is_active", true).Error
	})
}

func (d *gormDB) GetActivePricingVersion(ctx context.Context, provider string) (*PricingVersion, error) {
	var version PricingVersion
	err := d.db.WithContext(ctx).
		Where("provider = ? AND is_active = ?", provider, true).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (d *gormDB) ListPricingEntries(ctx context.Context, versionID string) ([]*PricingEntry, error) {
	var entries []*PricingEntry
	err := d.db.WithContext(ctx).
		Where("pricing_version_id = ?", versionID).
		Order("id asc").
		Find(&entries).Error
	return entries, err
}
