package favorites

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/core"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.QueryRow(ctx, `
		SELECT favorite_stations FROM users WHERE id::text = $1
	`, userID).Scan(&ids)
	if err != nil {
		return nil, core.Remote("read favorites", err)
	}
	return ids, nil
}

func (r *PostgresRepository) SaveAll(
	ctx context.Context,
	userID string,
	stationIDs []string,
) error {
	if stationIDs == nil {
		stationIDs = []string{}
	}

	_, err := r.db.Exec(ctx, `
		UPDATE users SET favorite_stations = $2 WHERE id::text = $1
	`, userID, stationIDs)
	if err != nil {
		return core.Remote("save favorites", err)
	}
	return nil
}
