package station

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fuelsmart/internal/core"
)

// InMemoryRepository backs tests; it mirrors the remote store contract.
type InMemoryRepository struct {
	records  map[string]Record
	updaters map[string]UpdaterInfo

	// FailNext forces the next call to fail, for remote-error paths.
	FailNext error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records:  make(map[string]Record),
		updaters: make(map[string]UpdaterInfo),
	}
}

func (r *InMemoryRepository) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *InMemoryRepository) ListInBoundingBox(
	_ context.Context,
	box BoundingBox,
	limit int,
) ([]Record, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	var out []Record
	for _, rec := range r.records {
		if !box.Contains(rec.Lat, rec.Lon) {
			continue
		}
		out = append(out, rec.Clone())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetWithContributor(
	_ context.Context,
	id string,
) (*Record, *UpdaterInfo, error) {
	if err := r.takeFailure(); err != nil {
		return nil, nil, err
	}

	rec, ok := r.records[id]
	if !ok {
		return nil, nil, core.ErrStationGone
	}
	clone := rec.Clone()

	if rec.UpdatedBy != nil {
		if info, ok := r.updaters[*rec.UpdatedBy]; ok {
			return &clone, &info, nil
		}
	}
	return &clone, nil, nil
}

func (r *InMemoryRepository) SubmitPriceReport(
	_ context.Context,
	stationID string,
	userID string,
	prices PriceMap,
) error {
	if err := r.takeFailure(); err != nil {
		return err
	}

	rec, ok := r.records[stationID]
	if !ok {
		return core.ErrStationGone
	}
	rec.Prices = prices.Clone()
	rec.UpdatedAt = time.Now().UTC()
	rec.UpdatedBy = &userID
	r.records[stationID] = rec
	return nil
}

func (r *InMemoryRepository) Insert(_ context.Context, rec *Record) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	r.records[rec.ID] = rec.Clone()
	return nil
}

// Seed places a record directly, bypassing the contract.
func (r *InMemoryRepository) Seed(rec Record) {
	r.records[rec.ID] = rec.Clone()
}

// SeedUpdater registers contributor info for the point-read join.
func (r *InMemoryRepository) SeedUpdater(info UpdaterInfo) {
	r.updaters[info.ID] = info
}
