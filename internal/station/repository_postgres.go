package station

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/core"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Bounded-box read
// --------------------------------------------------
func (r *PostgresRepository) ListInBoundingBox(
	ctx context.Context,
	box BoundingBox,
	limit int,
) ([]Record, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			brand,
			municipality,
			lat,
			lon,
			regular_gas,
			premium_gas,
			sports_gas,
			regular_diesel,
			premium_diesel,
			updated_at,
			updated_by
		FROM stations
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4
		LIMIT $5
	`, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, limit)
	if err != nil {
		return nil, core.Remote("list stations", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, core.Remote("scan station", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// --------------------------------------------------
// Point read with contributor join
// --------------------------------------------------
func (r *PostgresRepository) GetWithContributor(
	ctx context.Context,
	id string,
) (*Record, *UpdaterInfo, error) {

	row := r.db.QueryRow(ctx, `
		SELECT
			s.id,
			s.brand,
			s.municipality,
			s.lat,
			s.lon,
			s.regular_gas,
			s.premium_gas,
			s.sports_gas,
			s.regular_diesel,
			s.premium_diesel,
			s.updated_at,
			s.updated_by,
			u.id,
			u.name,
			u.show_name
		FROM stations s
		LEFT JOIN users u ON u.id::text = s.updated_by
		WHERE s.id = $1
	`, id)

	var (
		rec       Record
		prices    [5]*float64
		updaterID *string
		name      *string
		showName  *bool
	)
	err := row.Scan(
		&rec.ID,
		&rec.Brand,
		&rec.Municipality,
		&rec.Lat,
		&rec.Lon,
		&prices[0], &prices[1], &prices[2], &prices[3], &prices[4],
		&rec.UpdatedAt,
		&rec.UpdatedBy,
		&updaterID,
		&name,
		&showName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, core.ErrStationGone
	}
	if err != nil {
		return nil, nil, core.Remote("get station", err)
	}

	rec.Prices = pricesFromColumns(prices)

	var info *UpdaterInfo
	if updaterID != nil && name != nil {
		info = &UpdaterInfo{ID: *updaterID, DisplayName: *name}
		if showName != nil {
			info.ShowName = *showName
		}
	}
	return &rec, info, nil
}

// --------------------------------------------------
// Atomic price update (full subtype set)
// --------------------------------------------------
func (r *PostgresRepository) SubmitPriceReport(
	ctx context.Context,
	stationID string,
	userID string,
	prices PriceMap,
) error {

	tag, err := r.db.Exec(ctx, `
		UPDATE stations SET
			regular_gas    = $2,
			premium_gas    = $3,
			sports_gas     = $4,
			regular_diesel = $5,
			premium_diesel = $6,
			updated_at     = $7,
			updated_by     = $8
		WHERE id = $1
	`,
		stationID,
		prices[RegularGas],
		prices[PremiumGas],
		prices[SportsGas],
		prices[RegularDiesel],
		prices[PremiumDiesel],
		time.Now().UTC(),
		userID,
	)
	if err != nil {
		return core.Remote("submit price report", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrStationGone
	}

	// Contribution counter is maintained remotely alongside the write.
	_, err = r.db.Exec(ctx, `
		UPDATE users SET contributions = contributions + 1 WHERE id::text = $1
	`, userID)
	if err != nil {
		return core.Remote("bump contributions", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO stations (
			id, brand, municipality, lat, lon,
			regular_gas, premium_gas, sports_gas, regular_diesel, premium_diesel,
			updated_at, updated_by
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		rec.Brand,
		rec.Municipality,
		rec.Lat,
		rec.Lon,
		rec.Prices[RegularGas],
		rec.Prices[PremiumGas],
		rec.Prices[SportsGas],
		rec.Prices[RegularDiesel],
		rec.Prices[PremiumDiesel],
		rec.UpdatedAt,
		rec.UpdatedBy,
	)
	if err != nil {
		return core.Remote("insert station", err)
	}
	return nil
}

func scanRecord(rows pgx.Rows) (Record, error) {
	var (
		rec    Record
		prices [5]*float64
	)
	err := rows.Scan(
		&rec.ID,
		&rec.Brand,
		&rec.Municipality,
		&rec.Lat,
		&rec.Lon,
		&prices[0], &prices[1], &prices[2], &prices[3], &prices[4],
		&rec.UpdatedAt,
		&rec.UpdatedBy,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Prices = pricesFromColumns(prices)
	return rec, nil
}

// pricesFromColumns maps the five nullable price columns back onto the
// subtype set. NULL and 0 both read as "unknown".
func pricesFromColumns(cols [5]*float64) PriceMap {
	prices := make(PriceMap, 5)
	for i, sub := range AllSubtypes() {
		if cols[i] != nil {
			prices[sub] = *cols[i]
		} else {
			prices[sub] = 0
		}
	}
	return prices
}
