package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'contributor',
			show_name BOOLEAN NOT NULL DEFAULT TRUE,
			show_gcash BOOLEAN NOT NULL DEFAULT FALSE,
			show_maya BOOLEAN NOT NULL DEFAULT FALSE,
			contributions INT NOT NULL DEFAULT 0,
			no_incorrect_location_report INT NOT NULL DEFAULT 0,
			likes INT NOT NULL DEFAULT 0,
			dislikes INT NOT NULL DEFAULT 0,
			favorite_stations TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// STATIONS
	// -------------------------------
	stationsSQL := `
		CREATE TABLE IF NOT EXISTS stations (
			id TEXT PRIMARY KEY,
			brand VARCHAR(255) NOT NULL,
			municipality VARCHAR(255) NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			regular_gas DOUBLE PRECISION,
			premium_gas DOUBLE PRECISION,
			sports_gas DOUBLE PRECISION,
			regular_diesel DOUBLE PRECISION,
			premium_diesel DOUBLE PRECISION,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_by TEXT
		)
	`
	if _, err := db.Exec(ctx, stationsSQL); err != nil {
		return err
	}

	stationIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_stations_lat_lon ON stations (lat, lon)
	`
	if _, err := db.Exec(ctx, stationIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// PENDING REPORTS
	// -------------------------------
	pendingReportsSQL := `
		CREATE TABLE IF NOT EXISTS pending_reports (
			id TEXT PRIMARY KEY,
			reporter_id TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			brand VARCHAR(255) NOT NULL,
			municipality VARCHAR(255) NOT NULL,
			offered_subtypes TEXT[] NOT NULL DEFAULT '{}',
			marketing_names JSONB,
			photo_url TEXT,
			verifiers TEXT[] NOT NULL DEFAULT '{}',
			deniers TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, pendingReportsSQL); err != nil {
		return err
	}

	// -------------------------------
	// CONTRIBUTOR VOTES
	// -------------------------------
	contributorVotesSQL := `
		CREATE TABLE IF NOT EXISTS contributor_votes (
			voter_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			vote_type VARCHAR(10) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (voter_id, target_id)
		)
	`
	if _, err := db.Exec(ctx, contributorVotesSQL); err != nil {
		return err
	}

	// -------------------------------
	// BRAND CATALOG + MUNICIPALITIES
	// -------------------------------
	brandCatalogSQL := `
		CREATE TABLE IF NOT EXISTS brand_catalog (
			brand VARCHAR(255) NOT NULL,
			subtype VARCHAR(50) NOT NULL,
			offered BOOLEAN NOT NULL DEFAULT FALSE,
			label VARCHAR(255) NOT NULL DEFAULT '',
			UNIQUE (brand, subtype)
		)
	`
	if _, err := db.Exec(ctx, brandCatalogSQL); err != nil {
		return err
	}

	municipalitiesSQL := `
		CREATE TABLE IF NOT EXISTS municipalities (
			name VARCHAR(255) PRIMARY KEY
		)
	`
	if _, err := db.Exec(ctx, municipalitiesSQL); err != nil {
		return err
	}

	// -------------------------------
	// PRICE SNAPSHOTS
	// -------------------------------
	priceSnapshotsSQL := `
		CREATE TABLE IF NOT EXISTS price_snapshots (
			id SERIAL PRIMARY KEY,
			municipality VARCHAR(255) NOT NULL,
			subtype VARCHAR(50) NOT NULL,
			avg_price DOUBLE PRECISION NOT NULL,
			min_price DOUBLE PRECISION NOT NULL,
			sample_size INT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (municipality, subtype)
		)
	`
	if _, err := db.Exec(ctx, priceSnapshotsSQL); err != nil {
		return err
	}

	// -------------------------------
	// REPORT VOTING FUNCTION
	// -------------------------------
	// The vote quorum policy lives here so that concurrent voters are
	// serialized on the report row. One confirmation promotes a report
	// into a station; three denials delete it and count against the
	// reporter.
	voteFunctionSQL := `
		CREATE OR REPLACE FUNCTION verify_or_deny_report(
			p_report_id TEXT,
			p_voter_id TEXT,
			p_confirm BOOLEAN
		)
		RETURNS TABLE (outcome TEXT, station_id TEXT)
		LANGUAGE plpgsql
		AS $$
		DECLARE
			r pending_reports%ROWTYPE;
			new_station_id TEXT;
		BEGIN
			SELECT * INTO r
			FROM pending_reports
			WHERE id = p_report_id
			FOR UPDATE;

			IF NOT FOUND THEN
				RAISE EXCEPTION 'report not found';
			END IF;

			IF p_voter_id = ANY(r.verifiers) OR p_voter_id = ANY(r.deniers) THEN
				RETURN QUERY SELECT 'already_voted'::TEXT, NULL::TEXT;
				RETURN;
			END IF;

			IF p_confirm THEN
				r.verifiers := array_append(r.verifiers, p_voter_id);

				IF array_length(r.verifiers, 1) >= 1 THEN
					new_station_id := gen_random_uuid()::TEXT;

					INSERT INTO stations (id, brand, municipality, lat, lon, updated_by)
					VALUES (new_station_id, r.brand, r.municipality, r.lat, r.lon, r.reporter_id);

					UPDATE users
					SET contributions = contributions + 1
					WHERE id::text = r.reporter_id;

					DELETE FROM pending_reports WHERE id = p_report_id;

					RETURN QUERY SELECT 'promoted'::TEXT, new_station_id;
					RETURN;
				END IF;

				UPDATE pending_reports
				SET verifiers = r.verifiers
				WHERE id = p_report_id;

				RETURN QUERY SELECT 'verification_added'::TEXT, NULL::TEXT;
				RETURN;
			END IF;

			r.deniers := array_append(r.deniers, p_voter_id);

			IF array_length(r.deniers, 1) >= 3 THEN
				DELETE FROM pending_reports WHERE id = p_report_id;

				UPDATE users
				SET no_incorrect_location_report = no_incorrect_location_report + 1
				WHERE id::text = r.reporter_id;

				RETURN QUERY SELECT 'deleted'::TEXT, NULL::TEXT;
				RETURN;
			END IF;

			UPDATE pending_reports
			SET deniers = r.deniers
			WHERE id = p_report_id;

			RETURN QUERY SELECT 'denial_added'::TEXT, NULL::TEXT;
		END;
		$$
	`
	if _, err := db.Exec(ctx, voteFunctionSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
