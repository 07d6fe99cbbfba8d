package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/station"
)

// PostgresSource reads the reference tables hosted by the remote store.
type PostgresSource struct {
	db *pgxpool.Pool
}

func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) FetchBrands(ctx context.Context) ([]BrandEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT brand, subtype, offered, label
		FROM brand_catalog
		ORDER BY brand
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := make(map[string]*BrandEntry)
	var order []string
	for rows.Next() {
		var (
			brand, subtype, label string
			offered               bool
		)
		if err := rows.Scan(&brand, &subtype, &offered, &label); err != nil {
			return nil, err
		}
		entry, ok := byName[brand]
		if !ok {
			entry = &BrandEntry{
				Name:    brand,
				Offered: make(map[station.FuelSubtype]bool),
				Labels:  make(map[station.FuelSubtype]string),
			}
			byName[brand] = entry
			order = append(order, brand)
		}
		sub := station.FuelSubtype(subtype)
		entry.Offered[sub] = offered
		if label != "" {
			entry.Labels[sub] = label
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]BrandEntry, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func (s *PostgresSource) FetchMunicipalities(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM municipalities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
