package favorites

import "context"

// Repository reads and writes the favorite set on the remote profile
// record. Writes always carry the entire set; there are no delta
// updates, so other readers only ever see whole states.
type Repository interface {
	Get(ctx context.Context, userID string) ([]string, error)
	SaveAll(ctx context.Context, userID string, stationIDs []string) error
}
