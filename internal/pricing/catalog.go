// Package pricing provides immutable, provider-scoped snapshots of pricing
// data and tier-name resolution for the cost calculator.
package pricing

import (
	"strings"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
)

// Entry represents a single priced tier within a pricing version.
type Entry struct {
	ServiceType      string          `json:"service_type"`
	Tier             string          `json:"tier"`
	Region           string          `json:"region,omitempty"`
	UnitType         cnst.UnitType   `json:"unit_type"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	AnnualMultiplier decimal.Decimal `json:"annual_multiplier"`
}

// Catalog is a read-only snapshot of the pricing entries of one provider's
// active pricing version. Snapshots are never mutated in place; publishing
// new prices means building a new catalog from a new pricing version.
type Catalog struct {
	provider  string
	versionID string
	entries   map[string]Entry
}

// tierAliases maps display names used by the calculator's component
// selections to the keys stored in the catalog. Lookup falls back to the
// raw name when no alias is registered.
var tierAliases = map[string]string{
	"GKE Cluster Management":  "Cluster Management",
	"EKS Cluster Management":  "Cluster Management",
	"AKS Cluster Management":  "Cluster Management",
	"Persistent Disk SSD":     "Block Storage SSD",
	"EBS gp3":                 "Block Storage SSD",
	"Internet Egress":         "Data Transfer Out",
	"Network Egress":          "Data Transfer Out",
	"Premium Support Plan":    "Support & Services",
	"Enterprise Support Plan": "Support & Services",
}

// NewCatalog builds a catalog snapshot from a pricing version's entries.
// Later entries win when tier names collide ("last known value wins").
func NewCatalog(provider, versionID string, entries []Entry) *Catalog {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[normalizeTier(e.Tier)] = e
	}
	return &Catalog{
		provider:  provider,
		versionID: versionID,
		entries:   m,
	}
}

// Provider returns the provider this catalog snapshot belongs to.
func (c *Catalog) Provider() string {
	return c.provider
}

// VersionID returns the pricing version this snapshot was built from.
func (c *Catalog) VersionID() string {
	return c.versionID
}

// Entries returns all entries in the snapshot.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

// Lookup resolves a tier display name to its pricing entry. A miss is not
// fatal to callers: the calculator treats it as "cost unknown, contributes
// zero" and surfaces a diagnostic instead of aborting the estimate.
func (c *Catalog) Lookup(tierName string) (Entry, bool) {
	if tierName == "" {
		return Entry{}, false
	}
	if alias, ok := tierAliases[tierName]; ok {
		tierName = alias
	}
	e, ok := c.entries[normalizeTier(tierName)]
	return e, ok
}

func normalizeTier(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
