package pricestats

import (
	"time"

	"fuelsmart/internal/station"
)

// Snapshot is an aggregated price view for one municipality and fuel
// subtype, recomputed from current station rows. Unknown (0/NULL)
// prices never enter the aggregates.
type Snapshot struct {
	ID           int                 `json:"id"`
	Municipality string              `json:"municipality"`
	Subtype      station.FuelSubtype `json:"subtype"`
	AvgPrice     float64             `json:"avg_price"`
	MinPrice     float64             `json:"min_price"`
	SampleSize   int                 `json:"sample_size"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
