package contributor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelsmart/internal/core"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetProfile(
	ctx context.Context,
	id string,
) (*Profile, error) {

	p := &Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			name,
			show_name,
			show_gcash,
			show_maya,
			contributions,
			no_incorrect_location_report,
			likes,
			dislikes
		FROM users
		WHERE id::text = $1
	`, id).Scan(
		&p.ID,
		&p.DisplayName,
		&p.ShowName,
		&p.ShowGcash,
		&p.ShowMaya,
		&p.Contributions,
		&p.IncorrectReports,
		&p.Likes,
		&p.Dislikes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("contributor not found")
	}
	if err != nil {
		return nil, core.Remote("get profile", err)
	}
	return p, nil
}

func (r *PostgresRepository) IncorrectReportCount(
	ctx context.Context,
	id string,
) (int, error) {

	var count int
	err := r.db.QueryRow(ctx, `
		SELECT no_incorrect_location_report FROM users WHERE id::text = $1
	`, id).Scan(&count)
	if err != nil {
		return 0, core.Remote("read incorrect-report count", err)
	}
	return count, nil
}

func (r *PostgresRepository) AddVote(
	ctx context.Context,
	voterID string,
	targetID string,
	vote VoteType,
) error {

	_, err := r.db.Exec(ctx, `
		INSERT INTO contributor_votes (voter_id, target_id, vote_type)
		VALUES ($1, $2, $3)
	`, voterID, targetID, string(vote))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateVote
	}
	if err != nil {
		return core.Remote("vote on contributor", err)
	}

	column := "likes"
	if vote == VoteDislike {
		column = "dislikes"
	}
	_, err = r.db.Exec(ctx,
		`UPDATE users SET `+column+` = `+column+` + 1 WHERE id::text = $1`,
		targetID,
	)
	if err != nil {
		return core.Remote("bump vote tally", err)
	}
	return nil
}
