package station

import (
	"context"

	"fuelsmart/internal/contributor"
	"fuelsmart/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Point read (joined contributor, masked)
// --------------------------------------------------
func (s *Service) GetStation(ctx context.Context, id string) (*Detail, error) {
	if id == "" {
		return nil, core.Invalid("station id is required")
	}

	rec, updater, err := s.repo.GetWithContributor(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Record: *rec}
	if updater != nil {
		detail.UpdatedByLabel = contributor.MaskDisplayName(
			updater.DisplayName,
			updater.ShowName,
		)
	}
	return detail, nil
}

// --------------------------------------------------
// Price report (atomic, names the full subtype set)
// --------------------------------------------------
func (s *Service) SubmitPriceReport(
	ctx context.Context,
	stationID string,
	userID string,
	prices PriceMap,
) error {

	if stationID == "" || userID == "" {
		return core.Invalid("missing required fields")
	}

	full := make(PriceMap, 5)
	for sub, v := range prices {
		if !sub.Valid() {
			return core.Invalidf("unknown fuel subtype %q", sub)
		}
		if v < 0 {
			return core.Invalidf("negative price for %s", sub)
		}
		full[sub] = v
	}
	// Unreported subtypes are written as 0 ("unknown") so every update
	// names the full set.
	for _, sub := range AllSubtypes() {
		if _, ok := full[sub]; !ok {
			full[sub] = 0
		}
	}

	return s.repo.SubmitPriceReport(ctx, stationID, userID, full)
}

// --------------------------------------------------
// Direct seed (admin only, enforced at the route)
// --------------------------------------------------
func (s *Service) SeedStation(
	ctx context.Context,
	brand string,
	municipality string,
	lat float64,
	lon float64,
	prices PriceMap,
) (*Record, error) {

	if brand == "" || municipality == "" {
		return nil, core.Invalid("missing required fields")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, core.Invalid("coordinates out of range")
	}
	for sub, v := range prices {
		if !sub.Valid() || v < 0 {
			return nil, core.Invalid("invalid price entry")
		}
	}

	rec := &Record{
		Brand:        brand,
		Municipality: municipality,
		Lat:          lat,
		Lon:          lon,
		Prices:       prices.Clone(),
	}
	if rec.Prices == nil {
		rec.Prices = make(PriceMap)
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
