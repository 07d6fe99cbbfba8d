package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/core"
	"fuelsmart/internal/station"
)

var ErrReportNotFound = errors.New("pending report not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rep *Report) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}

	offered := make([]string, 0, len(rep.Offered))
	for sub, on := range rep.Offered {
		if on {
			offered = append(offered, string(sub))
		}
	}
	marketing, err := json.Marshal(rep.Marketing)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO pending_reports (
			id, reporter_id, lat, lon, brand, municipality,
			offered_subtypes, marketing_names, photo_url, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		rep.ID,
		rep.ReporterID,
		rep.Lat,
		rep.Lon,
		rep.Brand,
		rep.Municipality,
		offered,
		marketing,
		rep.PhotoURL,
		rep.CreatedAt,
	)
	if err != nil {
		return core.Remote("submit location report", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	rep, err := r.scanOne(r.db.QueryRow(ctx, selectReport+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, core.Remote("get pending report", err)
	}
	return rep, nil
}

func (r *PostgresRepository) FindPendingByReporter(
	ctx context.Context,
	reporterID string,
) (*Report, error) {

	rep, err := r.scanOne(r.db.QueryRow(ctx,
		selectReport+` WHERE reporter_id = $1 LIMIT 1`, reporterID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.Remote("find pending report", err)
	}
	return rep, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*Report, error) {
	rows, err := r.db.Query(ctx, selectReport+` ORDER BY created_at`)
	if err != nil {
		return nil, core.Remote("list pending reports", err)
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		rep, err := r.scanOne(rows)
		if err != nil {
			return nil, core.Remote("scan pending report", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pending_reports WHERE id = $1`, id)
	if err != nil {
		return core.Remote("delete pending report", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPhotoURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE pending_reports SET photo_url = $2 WHERE id = $1
	`, id, url)
	if err != nil {
		return core.Remote("attach photo", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

// AddVote delegates to the verify_or_deny_report procedure, which owns
// the quorum thresholds and performs promotion/deletion itself.
func (r *PostgresRepository) AddVote(
	ctx context.Context,
	reportID string,
	voterID string,
	confirm bool,
) (Outcome, *station.Record, error) {

	var (
		outcome   string
		stationID *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT outcome, station_id FROM verify_or_deny_report($1, $2, $3)
	`, reportID, voterID, confirm).Scan(&outcome, &stationID)
	if err != nil {
		return "", nil, core.Remote("verify or deny report", err)
	}

	tag := Outcome(outcome)
	if tag != OutcomePromoted || stationID == nil {
		return tag, nil, nil
	}

	// Mirror the promoted record so the caller can patch its cache.
	row := r.db.QueryRow(ctx, `
		SELECT
			id, brand, municipality, lat, lon,
			regular_gas, premium_gas, sports_gas, regular_diesel, premium_diesel,
			updated_at, updated_by
		FROM stations
		WHERE id = $1
	`, *stationID)

	var (
		rec    station.Record
		prices [5]*float64
	)
	err = row.Scan(
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
		return tag, nil, core.Remote("read promoted station", err)
	}
	rec.Prices = make(station.PriceMap, 5)
	for i, sub := range station.AllSubtypes() {
		if prices[i] != nil {
			rec.Prices[sub] = *prices[i]
		} else {
			rec.Prices[sub] = 0
		}
	}
	return tag, &rec, nil
}

const selectReport = `
	SELECT
		id, reporter_id, lat, lon, brand, municipality,
		offered_subtypes, marketing_names, photo_url,
		verifiers, deniers, created_at
	FROM pending_reports
`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOne(row rowScanner) (*Report, error) {
	var (
		rep       Report
		offered   []string
		marketing []byte
		photoURL  *string
	)
	err := row.Scan(
		&rep.ID,
		&rep.ReporterID,
		&rep.Lat,
		&rep.Lon,
		&rep.Brand,
		&rep.Municipality,
		&offered,
		&marketing,
		&photoURL,
		&rep.Verifiers,
		&rep.Deniers,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rep.Offered = make(map[station.FuelSubtype]bool, len(offered))
	for _, sub := range offered {
		rep.Offered[station.FuelSubtype(sub)] = true
	}
	if len(marketing) > 0 {
		if err := json.Unmarshal(marketing, &rep.Marketing); err != nil {
			return nil, err
		}
	}
	if photoURL != nil {
		rep.PhotoURL = *photoURL
	}
	return &rep, nil
}
