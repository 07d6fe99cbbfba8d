package contributor

import (
	"context"
	"errors"
)

type voteKey struct {
	voter  string
	target string
}

type InMemoryRepository struct {
	profiles map[string]*Profile
	votes    map[voteKey]VoteType

	FailNext error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
		votes:    make(map[voteKey]VoteType),
	}
}

func (r *InMemoryRepository) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *InMemoryRepository) GetProfile(_ context.Context, id string) (*Profile, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.New("contributor not found")
	}
	clone := *p
	return &clone, nil
}

func (r *InMemoryRepository) IncorrectReportCount(_ context.Context, id string) (int, error) {
	if err := r.takeFailure(); err != nil {
		return 0, err
	}
	if p, ok := r.profiles[id]; ok {
		return p.IncorrectReports, nil
	}
	return 0, nil
}

func (r *InMemoryRepository) AddVote(
	_ context.Context,
	voterID string,
	targetID string,
	vote VoteType,
) error {
	if err := r.takeFailure(); err != nil {
		return err
	}

	key := voteKey{voter: voterID, target: targetID}
	if _, exists := r.votes[key]; exists {
		return ErrDuplicateVote
	}
	r.votes[key] = vote

	if p, ok := r.profiles[targetID]; ok {
		if vote == VoteLike {
			p.Likes++
		} else {
			p.Dislikes++
		}
	}
	return nil
}

func (r *InMemoryRepository) Seed(p Profile) {
	clone := p
	r.profiles[p.ID] = &clone
}
