package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fuelsmart/internal/station"
)

// InMemoryRepository backs tests. It owns the quorum policy the way the
// remote procedure does in production, so the service under test can
// stay policy-free.
type InMemoryRepository struct {
	reports map[string]*Report

	confirmQuorum int
	denyQuorum    int

	// Promoted collects stations created by promotion.
	Promoted []station.Record

	FailNext error
}

func NewInMemoryRepository(confirmQuorum, denyQuorum int) *InMemoryRepository {
	return &InMemoryRepository{
		reports:       make(map[string]*Report),
		confirmQuorum: confirmQuorum,
		denyQuorum:    denyQuorum,
	}
}

func (r *InMemoryRepository) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *InMemoryRepository) Create(_ context.Context, rep *Report) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	clone := *rep
	r.reports[rep.ID] = &clone
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Report, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	rep, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	clone := *rep
	return &clone, nil
}

func (r *InMemoryRepository) FindPendingByReporter(
	_ context.Context,
	reporterID string,
) (*Report, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for _, rep := range r.reports {
		if rep.ReporterID == reporterID {
			clone := *rep
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) ListPending(_ context.Context) ([]*Report, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	var out []*Report
	for _, rep := range r.reports {
		clone := *rep
		out = append(out, &clone)
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.reports[id]; !ok {
		return ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *InMemoryRepository) SetPhotoURL(_ context.Context, id, url string) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	rep, ok := r.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	rep.PhotoURL = url
	return nil
}

func (r *InMemoryRepository) AddVote(
	_ context.Context,
	reportID string,
	voterID string,
	confirm bool,
) (Outcome, *station.Record, error) {
	if err := r.takeFailure(); err != nil {
		return "", nil, err
	}

	rep, ok := r.reports[reportID]
	if !ok {
		return "", nil, ErrReportNotFound
	}
	if rep.HasVoted(voterID) {
		return OutcomeAlreadyVoted, nil, nil
	}

	if confirm {
		rep.Verifiers = append(rep.Verifiers, voterID)
		if len(rep.Verifiers) >= r.confirmQuorum {
			rec := station.Record{
				ID:           uuid.New().String(),
				Brand:        rep.Brand,
				Municipality: rep.Municipality,
				Lat:          rep.Lat,
				Lon:          rep.Lon,
				Prices:       make(station.PriceMap),
				UpdatedAt:    time.Now().UTC(),
			}
			r.Promoted = append(r.Promoted, rec)
			delete(r.reports, reportID)
			return OutcomePromoted, &rec, nil
		}
		return OutcomeVerificationAdded, nil, nil
	}

	rep.Deniers = append(rep.Deniers, voterID)
	if len(rep.Deniers) >= r.denyQuorum {
		delete(r.reports, reportID)
		return OutcomeDeleted, nil, nil
	}
	return OutcomeDenialAdded, nil, nil
}

// Seed places a report directly.
func (r *InMemoryRepository) Seed(rep Report) {
	clone := rep
	r.reports[rep.ID] = &clone
}

// Count reports currently pending.
func (r *InMemoryRepository) Count() int {
	return len(r.reports)
}
