package favorites

import "context"

type InMemoryRepository struct {
	sets map[string][]string

	FailNext  error
	FailWrite error
	// Writes counts SaveAll calls, so tests can assert no write happened.
	Writes int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sets: make(map[string][]string)}
}

func (r *InMemoryRepository) Get(_ context.Context, userID string) ([]string, error) {
	if err := r.FailNext; err != nil {
		r.FailNext = nil
		return nil, err
	}
	return append([]string(nil), r.sets[userID]...), nil
}

func (r *InMemoryRepository) SaveAll(_ context.Context, userID string, stationIDs []string) error {
	if err := r.FailWrite; err != nil {
		r.FailWrite = nil
		return err
	}
	r.Writes++
	r.sets[userID] = append([]string(nil), stationIDs...)
	return nil
}
