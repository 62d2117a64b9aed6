// Package trust maps free text onto canonical brand identity, a trust tier,
// and the official-channel/trusted-seller heuristics. The alias tables are
// injected read-only data so tests can substitute them.
package trust

import (
	"sort"
	"strings"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/tables"
)

// Resolver resolves canonical brands and trust tiers from evidence text.
type Resolver struct {
	topCorp tables.BrandTable
	midTier tables.BrandTable
	otc     tables.BrandTable

	topNames []string
	midNames []string
	otcNames []string

	officialMarkers []string
	trustedSellers  []string
}

// NewResolver creates a resolver over the given alias tables and heuristics.
func NewResolver(topCorp, midTier, otc tables.BrandTable, officialMarkers, trustedSellers []string) *Resolver {
	return &Resolver{
		topCorp:         topCorp,
		midTier:         midTier,
		otc:             otc,
		topNames:        sortedNames(topCorp),
		midNames:        sortedNames(midTier),
		otcNames:        sortedNames(otc),
		officialMarkers: lowered(officialMarkers),
		trustedSellers:  lowered(trustedSellers),
	}
}

// NewDefaultResolver creates a resolver over the built-in tables.
func NewDefaultResolver() *Resolver {
	return NewResolver(
		tables.TopCorpBrands(),
		tables.MidTierBrands(),
		tables.OTCBrands(),
		tables.OfficialChannelMarkers(),
		tables.TrustedSellerNames(),
	)
}

// Canonicalize finds the first brand whose alias appears in text, scanning
// the top-tier table, then mid-tier, then OTC. Only the returned name is
// affected by this scan order; the trust tier is resolved separately by
// TierOf with its own explicit priority.
func (r *Resolver) Canonicalize(text string) string {
	lower := strings.ToLower(text)
	if name := matchTable(lower, r.topCorp, r.topNames); name != "" {
		return name
	}
	if name := matchTable(lower, r.midTier, r.midNames); name != "" {
		return name
	}
	if name := matchTable(lower, r.otc, r.otcNames); name != "" {
		return name
	}
	return ""
}

// TierOf returns the trust tier for a canonical brand name. Tier priority is
// TopCorp > OTC > KnownMid regardless of which alias table matched first
// during canonicalization.
func (r *Resolver) TierOf(brand string) core.Tier {
	if brand == "" {
		return core.TierUnknown
	}
	if _, ok := r.topCorp[brand]; ok {
		return core.TierTopCorp
	}
	if _, ok := r.otc[brand]; ok {
		return core.TierOTC
	}
	if _, ok := r.midTier[brand]; ok {
		return core.TierKnownMid
	}
	return core.TierUnknown
}

// ResolveFlags computes the full set of trust flags for one evidence text.
// Flags are derived fresh per call and never persisted.
func (r *Resolver) ResolveFlags(text string) core.TrustFlags {
	lower := strings.ToLower(text)
	brand := r.Canonicalize(text)
	return core.TrustFlags{
		CanonicalBrand:    brand,
		Tier:              r.TierOf(brand),
		IsOfficialChannel: containsAny(lower, r.officialMarkers),
		IsTrustedSeller:   containsAny(lower, r.trustedSellers),
	}
}

// matchTable scans canonical names in sorted order so ties break
// deterministically despite map iteration order.
func matchTable(lowerText string, table tables.BrandTable, names []string) string {
	for _, name := range names {
		for _, alias := range table[name] {
			if strings.Contains(lowerText, strings.ToLower(alias)) {
				return name
			}
		}
	}
	return ""
}

func sortedNames(table tables.BrandTable) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(lowerText string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lowerText, n) {
			return true
		}
	}
	return false
}
