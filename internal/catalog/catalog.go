// Package catalog caches the two read-only reference collaborators the
// app consults constantly: the brand -> fuel-subtype-label catalog and
// the municipality gazetteer. Both are pulled from a remote source and
// persisted in a local sqlite file so the app works from the last good
// copy when the source is unreachable.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"fuelsmart/internal/station"
)

// BrandEntry describes one known brand: which subtypes it offers and
// the marketing label it sells each one under.
type BrandEntry struct {
	Name    string
	Offered map[station.FuelSubtype]bool
	Labels  map[station.FuelSubtype]string
}

// Source is the remote reference collaborator.
type Source interface {
	FetchBrands(ctx context.Context) ([]BrandEntry, error)
	FetchMunicipalities(ctx context.Context) ([]string, error)
}

// Store is an explicit cache instance owned by the composition root.
type Store struct {
	db     *sql.DB
	source Source

	mu             sync.RWMutex
	brands         map[string]BrandEntry // keyed by lowercased name
	municipalities []string
}

func Open(path string, source Source) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS brand_fuels (
		brand   TEXT NOT NULL,
		subtype TEXT NOT NULL,
		offered INTEGER NOT NULL,
		label   TEXT NOT NULL,
		PRIMARY KEY (brand, subtype)
	);

	CREATE TABLE IF NOT EXISTS municipalities (
		name TEXT PRIMARY KEY
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog cache: %w", err)
	}

	return &Store{
		db:     db,
		source: source,
		brands: make(map[string]BrandEntry),
	}, nil
}

// Init loads the last persisted copy, then refreshes from the source
// best-effort. A refresh failure is logged, not fatal.
func (s *Store) Init(ctx context.Context) error {
	if err := s.loadFromDisk(ctx); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("catalog: refresh failed, serving cached copy: %v", err)
	}
	return nil
}

// Refresh pulls both reference sets, replaces the sqlite copy in one
// transaction, and swaps the in-memory maps.
func (s *Store) Refresh(ctx context.Context) error {
	brands, err := s.source.FetchBrands(ctx)
	if err != nil {
		return fmt.Errorf("fetch brands: %w", err)
	}
	municipalities, err := s.source.FetchMunicipalities(ctx)
	if err != nil {
		return fmt.Errorf("fetch municipalities: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM brand_fuels`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM municipalities`); err != nil {
		return err
	}

	for _, entry := range brands {
		for _, sub := range station.AllSubtypes() {
			_, err := tx.Exec(`
				INSERT INTO brand_fuels (brand, subtype, offered, label)
				VALUES (?, ?, ?, ?)
			`, entry.Name, string(sub), boolToInt(entry.Offered[sub]), entry.Labels[sub])
			if err != nil {
				return err
			}
		}
	}
	for _, m := range municipalities {
		if _, err := tx.Exec(`INSERT INTO municipalities (name) VALUES (?)`, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.swap(brands, municipalities)
	return nil
}

// LookupBrand matches case-insensitively.
func (s *Store) LookupBrand(name string) (BrandEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.brands[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}

func (s *Store) Brands() []BrandEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BrandEntry, 0, len(s.brands))
	for _, entry := range s.brands {
		out = append(out, entry)
	}
	return out
}

func (s *Store) Municipalities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.municipalities...)
}

func (s *Store) Dispose() error {
	return s.db.Close()
}

func (s *Store) loadFromDisk(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT brand, subtype, offered, label FROM brand_fuels
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	byName := make(map[string]BrandEntry)
	for rows.Next() {
		var (
			brand, subtype, label string
			offered               int
		)
		if err := rows.Scan(&brand, &subtype, &offered, &label); err != nil {
			return err
		}
		key := strings.ToLower(brand)
		entry, ok := byName[key]
		if !ok {
			entry = BrandEntry{
				Name:    brand,
				Offered: make(map[station.FuelSubtype]bool),
				Labels:  make(map[station.FuelSubtype]string),
			}
		}
		sub := station.FuelSubtype(subtype)
		entry.Offered[sub] = offered != 0
		if label != "" {
			entry.Labels[sub] = label
		}
		byName[key] = entry
	}
	if err := rows.Err(); err != nil {
		return err
	}

	mRows, err := s.db.QueryContext(ctx, `SELECT name FROM municipalities ORDER BY name`)
	if err != nil {
		return err
	}
	defer mRows.Close()

	var municipalities []string
	for mRows.Next() {
		var name string
		if err := mRows.Scan(&name); err != nil {
			return err
		}
		municipalities = append(municipalities, name)
	}
	if err := mRows.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.brands = byName
	s.municipalities = municipalities
	s.mu.Unlock()
	return nil
}

func (s *Store) swap(brands []BrandEntry, municipalities []string) {
	byName := make(map[string]BrandEntry, len(brands))
	for _, entry := range brands {
		byName[strings.ToLower(entry.Name)] = entry
	}

	s.mu.Lock()
	s.brands = byName
	s.municipalities = municipalities
	s.mu.Unlock()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
