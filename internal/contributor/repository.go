package contributor

import (
	"context"
	"errors"
)

// ErrDuplicateVote maps the remote unique-constraint violation. It is an
// expected "already voted" condition, not a hard failure.
var ErrDuplicateVote = errors.New("already voted on this contributor")

type Repository interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)

	// IncorrectReportCount reads the server-owned counter used to gate
	// location-report submissions. The client never writes it.
	IncorrectReportCount(ctx context.Context, id string) (int, error)

	// AddVote records a like/dislike. Returns ErrDuplicateVote when the
	// voter already voted on this target.
	AddVote(ctx context.Context, voterID, targetID string, vote VoteType) error
}
