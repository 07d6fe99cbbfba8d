package pricestats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/core"
	"fuelsmart/internal/station"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Recompute rebuilds every (municipality, subtype) aggregate from the
// station rows in one statement per subtype. Zero prices are treated as
// unknown and excluded.
func (r *Repository) Recompute(ctx context.Context) error {
	for _, sub := range station.AllSubtypes() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO price_snapshots (municipality, subtype, avg_price, min_price, sample_size)
			SELECT
				municipality,
				$1,
				AVG(`+string(sub)+`),
				MIN(`+string(sub)+`),
				COUNT(*)
			FROM stations
			WHERE `+string(sub)+` > 0
			GROUP BY municipality
			ON CONFLICT (municipality, subtype)
			DO UPDATE SET
				avg_price   = EXCLUDED.avg_price,
				min_price   = EXCLUDED.min_price,
				sample_size = EXCLUDED.sample_size,
				updated_at  = now()
		`, string(sub))
		if err != nil {
			return core.Remote("recompute price snapshots", err)
		}
	}
	return nil
}

func (r *Repository) GetByMunicipality(
	ctx context.Context,
	municipality string,
) ([]Snapshot, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			municipality,
			subtype,
			avg_price,
			min_price,
			sample_size,
			updated_at
		FROM price_snapshots
		WHERE municipality = $1
		ORDER BY subtype
	`, municipality)
	if err != nil {
		return nil, core.Remote("read price snapshots", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		err := rows.Scan(
			&s.ID,
			&s.Municipality,
			&s.Subtype,
			&s.AvgPrice,
			&s.MinPrice,
			&s.SampleSize,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, core.Remote("scan price snapshot", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
