package pricing

import (
	"testing"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{
			ServiceType:      "compute",
			Tier:             "vCPU (with 3-yr CUD)",
			UnitType:         cnst.UnitTypeHourly,
			UnitPrice:        decimal.RequireFromString("0.02"),
			AnnualMultiplier: decimal.NewFromInt(8760),
		},
		{
			ServiceType:      "infrastructure",
			Tier:             "Cluster Management",
			UnitType:         cnst.UnitTypeHourly,
			UnitPrice:        decimal.RequireFromString("0.10"),
			AnnualMultiplier: decimal.NewFromInt(8760),
		},
		{
			ServiceType:      "support",
			Tier:             "Support & Services",
			UnitType:         cnst.UnitTypePercentage,
			UnitPrice:        decimal.NewFromInt(5),
			AnnualMultiplier: decimal.NewFromInt(1),
		},
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := NewCatalog("gcp", "pv-1", testEntries())

	e, ok := c.Lookup("vCPU (with 3-yr CUD)")
	require.True(t, ok)
	assert.Equal(t, "compute", e.ServiceType)
}

func TestCatalog_LookupAlias(t *testing.T) {
	c := NewCatalog("gcp", "pv-1", testEntries())

	// Display name differs from the catalog key.
	e, ok := c.Lookup("GKE Cluster Management")
	require.True(t, ok)
	assert.Equal(t, "Cluster Management", e.Tier)
}

func TestCatalog_LookupCaseInsensitive(t *testing.T) {
	c := NewCatalog("gcp", "pv-1", testEntries())

	_, ok := c.Lookup("cluster management")
	assert.True(t, ok)
}

func TestCatalog_LookupMiss(t *testing.T) {
	c := NewCatalog("gcp", "pv-1", testEntries())

	_, ok := c.Lookup("No Such Tier")
	assert.False(t, ok)

	_, ok = c.Lookup("")
	assert.False(t, ok)
}

func TestCatalog_LastEntryWinsOnCollision(t *testing.T) {
	entries := testEntries()
	entries = append(entries, Entry{
		ServiceType: "compute",
		Tier:        "vCPU (with 3-yr CUD)",
		UnitType:    cnst.UnitTypeHourly,
		UnitPrice:   decimal.RequireFromString("0.03"),
	})
	c := NewCatalog("gcp", "pv-1", entries)

	e, ok := c.Lookup("vCPU (with 3-yr CUD)")
	require.True(t, ok)
	assert.True(t, e.UnitPrice.Equal(decimal.RequireFromString("0.03")))
}
