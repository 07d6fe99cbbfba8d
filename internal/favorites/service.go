package favorites

import (
	"context"
	"errors"

	"fuelsmart/internal/core"
)

const DefaultCap = 5

// ErrCapacityExceeded is returned before any write when the set is full.
var ErrCapacityExceeded = errors.New("favorites limit reached")

type Service struct {
	repo Repository
	cap  int
}

func NewService(repo Repository, capacity int) *Service {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Service{repo: repo, cap: capacity}
}

func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, core.Invalid("user must be authenticated")
	}
	return s.repo.Get(ctx, userID)
}

// Toggle adds or removes a station id and writes the whole resulting
// set back. Adding to a full set fails with ErrCapacityExceeded and
// performs no write.
func (s *Service) Toggle(ctx context.Context, userID, stationID string) ([]string, error) {
	if userID == "" || stationID == "" {
		return nil, core.Invalid("missing required fields")
	}

	current, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == stationID {
			removed = true
			continue
		}
		next = append(next, id)
	}

	if !removed {
		if len(current) >= s.cap {
			return current, ErrCapacityExceeded
		}
		next = append(next, stationID)
	}

	if err := s.repo.SaveAll(ctx, userID, next); err != nil {
		return current, err
	}
	return next, nil
}
