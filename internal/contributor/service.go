package contributor

import (
	"context"
	"sync"

	"fuelsmart/internal/core"
)

// Tally is the locally tracked like/dislike count for a contributor.
type Tally struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// tallyBoard holds tentative vote counts so the UI can reflect a vote
// before the remote write confirms. apply returns an undo closure; the
// caller keeps the change on success and reverts on failure.
type tallyBoard struct {
	mu      sync.Mutex
	tallies map[string]Tally
}

func newTallyBoard() *tallyBoard {
	return &tallyBoard{tallies: make(map[string]Tally)}
}

func (b *tallyBoard) seed(targetID string, t Tally) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tallies[targetID] = t
}

func (b *tallyBoard) get(targetID string) Tally {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tallies[targetID]
}

func (b *tallyBoard) apply(targetID string, vote VoteType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := b.tallies[targetID]
	after := before
	if vote == VoteLike {
		after.Likes++
	} else {
		after.Dislikes++
	}
	b.tallies[targetID] = after

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.tallies[targetID] = before
	}
}

type Service struct {
	repo    Repository
	tallies *tallyBoard
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		tallies: newTallyBoard(),
	}
}

func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, core.Invalid("contributor id is required")
	}
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	s.tallies.seed(p.ID, Tally{Likes: p.Likes, Dislikes: p.Dislikes})
	return p, nil
}

// Vote records a like/dislike with an optimistic local tally: the count
// is bumped before the remote call and reverted if it fails.
func (s *Service) Vote(
	ctx context.Context,
	voterID string,
	targetID string,
	vote VoteType,
) (Tally, error) {

	if voterID == "" || targetID == "" {
		return s.tallies.get(targetID), core.Invalid("missing required fields")
	}
	if voterID == targetID {
		return s.tallies.get(targetID), core.Invalid("cannot vote on yourself")
	}
	if !vote.Valid() {
		return s.tallies.get(targetID), core.Invalid("vote must be like or dislike")
	}

	undo := s.tallies.apply(targetID, vote)

	if err := s.repo.AddVote(ctx, voterID, targetID, vote); err != nil {
		undo()
		return s.tallies.get(targetID), err
	}
	return s.tallies.get(targetID), nil
}

// Tally exposes the best-known local count for a contributor.
func (s *Service) Tally(targetID string) Tally {
	return s.tallies.get(targetID)
}
