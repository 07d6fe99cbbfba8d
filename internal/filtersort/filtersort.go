// Package filtersort is the pure filter pipeline applied to the cached
// station set: brand allow-list, price ceiling, radius cutoff, then a
// deterministic price sort. No I/O, inputs are never mutated.
package filtersort

import (
	"sort"
	"strings"

	"fuelsmart/internal/station"
)

type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// Criteria is the active filter selection. Zero value is the identity.
type Criteria struct {
	// Brands is an allow-list; empty means all brands pass.
	Brands []string

	// Subtype selects the exact fuel to price against. When only
	// Category is set, its regular subtype is used instead.
	Subtype  *station.FuelSubtype
	Category *station.FuelCategory

	PriceCeiling *float64

	// RadiusKm needs Origin (the user's last known location); without
	// it the radius criterion is a no-op.
	RadiusKm *float64
	Origin   *station.Coordinate

	// Order is only meaningful when an effective subtype resolves.
	Order SortOrder
}

// EffectiveSubtype resolves which subtype prices are read from: the
// explicit subtype, or the category default, or none.
func (c Criteria) EffectiveSubtype() (station.FuelSubtype, bool) {
	if c.Subtype != nil {
		return *c.Subtype, true
	}
	if c.Category != nil {
		return c.Category.Default(), true
	}
	return "", false
}

// Apply runs the pipeline and returns a new slice. The input slice and
// its records are left untouched.
func Apply(records []station.Record, c Criteria) []station.Record {
	out := make([]station.Record, 0, len(records))

	allow := brandSet(c.Brands)
	sub, hasSub := c.EffectiveSubtype()

	for _, rec := range records {
		if len(allow) > 0 {
			if _, ok := allow[strings.ToLower(rec.Brand)]; !ok {
				continue
			}
		}

		if c.PriceCeiling != nil && hasSub {
			price, known := rec.Prices.Resolved(sub)
			if !known || price > *c.PriceCeiling {
				continue
			}
		}

		if c.RadiusKm != nil && c.Origin != nil {
			d := Haversine(c.Origin.Lat, c.Origin.Lon, rec.Lat, rec.Lon)
			if d > *c.RadiusKm {
				continue
			}
		}

		out = append(out, rec)
	}

	if c.Order != SortNone && hasSub {
		sortByPrice(out, sub, c.Order)
	}
	return out
}

// sortByPrice stable-sorts by resolved price; records without a usable
// price for the subtype always land last regardless of direction.
func sortByPrice(records []station.Record, sub station.FuelSubtype, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, iKnown := records[i].Prices.Resolved(sub)
		pj, jKnown := records[j].Prices.Resolved(sub)

		if iKnown != jKnown {
			return iKnown
		}
		if !iKnown {
			return false
		}
		if order == SortDesc {
			return pi > pj
		}
		return pi < pj
	})
}

func brandSet(brands []string) map[string]struct{} {
	if len(brands) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		b = strings.TrimSpace(strings.ToLower(b))
		if b != "" {
			set[b] = struct{}{}
		}
	}
	return set
}
