package station

import "time"

// FuelSubtype is one of the five priced fuel categories tracked per station.
type FuelSubtype string

const (
	RegularGas    FuelSubtype = "regular_gas"
	PremiumGas    FuelSubtype = "premium_gas"
	SportsGas     FuelSubtype = "sports_gas"
	RegularDiesel FuelSubtype = "regular_diesel"
	PremiumDiesel FuelSubtype = "premium_diesel"
)

// AllSubtypes returns the full fuel-subtype set in a fixed order.
// Price writes always name every member of this set.
func AllSubtypes() []FuelSubtype {
	return []FuelSubtype{
		RegularGas,
		PremiumGas,
		SportsGas,
		RegularDiesel,
		PremiumDiesel,
	}
}

func (s FuelSubtype) Valid() bool {
	switch s {
	case RegularGas, PremiumGas, SportsGas, RegularDiesel, PremiumDiesel:
		return true
	}
	return false
}

func (s FuelSubtype) Category() FuelCategory {
	switch s {
	case RegularDiesel, PremiumDiesel:
		return CategoryDiesel
	default:
		return CategoryGas
	}
}

// FuelCategory groups subtypes for coarse filter selections.
type FuelCategory string

const (
	CategoryGas    FuelCategory = "gas"
	CategoryDiesel FuelCategory = "diesel"
)

func (c FuelCategory) Valid() bool {
	return c == CategoryGas || c == CategoryDiesel
}

// Default returns the representative subtype used when a filter names
// only a category.
func (c FuelCategory) Default() FuelSubtype {
	if c == CategoryDiesel {
		return RegularDiesel
	}
	return RegularGas
}

// PriceMap holds per-subtype pump prices. A value of 0 or a missing key
// means "unknown", never "free".
type PriceMap map[FuelSubtype]float64

// Resolved returns the usable price for a subtype. ok is false when the
// price is absent or zero.
func (p PriceMap) Resolved(sub FuelSubtype) (float64, bool) {
	v, exists := p[sub]
	if !exists || v <= 0 {
		return 0, false
	}
	return v, true
}

// Clone copies the map so cached records can be handed out safely.
func (p PriceMap) Clone() PriceMap {
	out := make(PriceMap, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Record is a known fuel station. Records are never hard-deleted in
// normal flow; only pending reports are deletable.
type Record struct {
	ID           string    `json:"id"`
	Brand        string    `json:"brand"`
	Municipality string    `json:"municipality"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Prices       PriceMap  `json:"prices"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    *string   `json:"updated_by,omitempty"`
}

// Clone returns a copy whose price map is independent of the original.
func (r Record) Clone() Record {
	out := r
	out.Prices = r.Prices.Clone()
	return out
}

// UpdaterInfo is the contributor joined onto a point read.
type UpdaterInfo struct {
	ID          string
	DisplayName string
	ShowName    bool
}

// Detail is a point read with the last updater's masked label resolved.
type Detail struct {
	Record
	UpdatedByLabel string `json:"updated_by_label,omitempty"`
}

// BoundingBox is an axis-aligned query window.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}
