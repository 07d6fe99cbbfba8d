package station

import "context"

// Repository defines the data-access contract against the remote store.
// Service and scheduler depend ONLY on this interface.
type Repository interface {
	ListInBoundingBox(ctx context.Context, box BoundingBox, limit int) ([]Record, error)

	// GetWithContributor joins the last-updating contributor onto the
	// record. Returns core.ErrStationGone when the id no longer exists.
	GetWithContributor(ctx context.Context, id string) (*Record, *UpdaterInfo, error)

	// SubmitPriceReport atomically replaces the full fuel-subtype price
	// set for a station and records the reporting contributor.
	SubmitPriceReport(ctx context.Context, stationID, userID string, prices PriceMap) error

	Insert(ctx context.Context, rec *Record) error
}
