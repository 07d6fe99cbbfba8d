package report

import (
	"context"

	"fuelsmart/internal/station"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error

	GetByID(ctx context.Context, id string) (*Report, error)

	// FindPendingByReporter returns (nil, nil) when the reporter has no
	// outstanding report.
	FindPendingByReporter(ctx context.Context, reporterID string) (*Report, error)

	ListPending(ctx context.Context) ([]*Report, error)

	Delete(ctx context.Context, id string) error

	SetPhotoURL(ctx context.Context, id, url string) error

	// AddVote runs the remote verify-or-deny procedure. The quorum
	// policy is owned by that procedure; callers only see the outcome
	// tag, plus the promoted station record when the tag is promoted.
	AddVote(ctx context.Context, reportID, voterID string, confirm bool) (Outcome, *station.Record, error)
}
