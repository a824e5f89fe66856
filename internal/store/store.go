package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/event"
)

// ErrAlreadySeeded is returned by SeedBuildings when the buildings
// collection is not empty. Seeding is one-time; overwriting an alias
// dictionary built up through review would lose the corrections.
var ErrAlreadySeeded = errors.New("buildings already seeded")

// Store persists building and event documents in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SeedBuildings inserts the given canonical names with empty alias lists.
// It refuses to run against a non-empty buildings collection.
func (s *Store) SeedBuildings(ctx context.Context, names []string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM buildings").Scan(&count); err != nil {
		return fmt.Errorf("count buildings: %w", err)
	}
	if count > 0 {
		return ErrAlreadySeeded
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, name := range names {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO buildings (name, aliases, seq) VALUES (?, '[]', ?)", name, i); err != nil {
			return fmt.Errorf("insert building %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// ListBuildings returns all building documents in seed order.
func (s *Store) ListBuildings(ctx context.Context) ([]*building.Building, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, aliases FROM buildings ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*building.Building
	for rows.Next() {
		var name, aliasesJSON string
		if err := rows.Scan(&name, &aliasesJSON); err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}

		var aliases []string
		if err := json.Unmarshal([]byte(aliasesJSON), &aliases); err != nil {
			return nil, fmt.Errorf("decode aliases for %q: %w", name, err)
		}

		buildings = append(buildings, &building.Building{Name: name, Aliases: aliases})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buildings: %w", err)
	}

	return buildings, nil
}

// LoadBuildingSet loads all buildings into an ordered set ready for the
// resolver.
func (s *Store) LoadBuildingSet(ctx context.Context) (*building.Set, error) {
	buildings, err := s.ListBuildings(ctx)
	if err != nil {
		return nil, err
	}
	return building.NewSet(buildings)
}

// AppendAlias appends an alias to the named building's alias list. The name
// must be a known canonical name.
func (s *Store) AppendAlias(ctx context.Context, name, alias string) error {
	var aliasesJSON string
	err := s.db.QueryRowContext(ctx, "SELECT aliases FROM buildings WHERE name = ?", name).Scan(&aliasesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("unknown building: %s", name)
	}
	if err != nil {
		return fmt.Errorf("get building %q: %w", name, err)
	}

	var aliases []string
	if err := json.Unmarshal([]byte(aliasesJSON), &aliases); err != nil {
		return fmt.Errorf("decode aliases for %q: %w", name, err)
	}

	aliases = append(aliases, alias)
	updated, err := json.Marshal(aliases)
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE buildings SET aliases = ? WHERE name = ?", string(updated), name); err != nil {
		return fmt.Errorf("update aliases for %q: %w", name, err)
	}
	return nil
}

// UpsertEvent inserts or replaces an event document by its stable key. A
// re-scraped event with a corrected building updates the existing row.
func (s *Store) UpsertEvent(ctx context.Context, evt *event.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (
			key, title, description, more_info_url,
			start_datetime, end_datetime, building, full_location,
			source_url, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			more_info_url = excluded.more_info_url,
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			building = excluded.building,
			full_location = excluded.full_location,
			source_url = excluded.source_url,
			scraped_at = excluded.scraped_at`,
		evt.Key, evt.Title, evt.Description, evt.MoreInfoURL,
		evt.Start.Format(time.RFC3339), evt.End.Format(time.RFC3339),
		evt.Building, evt.FullLocation,
		evt.SourceURL, evt.ScrapedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert event %s: %w", evt.Key, err)
	}
	return nil
}

// ListEvents returns all stored events ordered by start time. When from or
// to are non-zero they bound the result by start time (inclusive).
func (s *Store) ListEvents(ctx context.Context, from, to time.Time) ([]*event.Event, error) {
	query := "SELECT key, title, description, more_info_url, start_datetime, end_datetime, building, full_location, source_url, scraped_at FROM events"
	var args []interface{}
	switch {
	case !from.IsZero() && !to.IsZero():
		query += " WHERE start_datetime >= ? AND start_datetime <= ?"
		args = append(args, from.Format(time.RFC3339), to.Format(time.RFC3339))
	case !from.IsZero():
		query += " WHERE start_datetime >= ?"
		args = append(args, from.Format(time.RFC3339))
	case !to.IsZero():
		query += " WHERE start_datetime <= ?"
		args = append(args, to.Format(time.RFC3339))
	}
	query += " ORDER BY start_datetime"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

func scanEvent(rows *sql.Rows) (*event.Event, error) {
	var evt event.Event
	var start, end, scrapedAt string

	if err := rows.Scan(&evt.Key, &evt.Title, &evt.Description, &evt.MoreInfoURL,
		&start, &end, &evt.Building, &evt.FullLocation,
		&evt.SourceURL, &scrapedAt); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	var err error
	if evt.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("parse start %q: %w", start, err)
	}
	if evt.End, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, fmt.Errorf("parse end %q: %w", end, err)
	}
	if evt.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt); err != nil {
		return nil, fmt.Errorf("parse scraped_at %q: %w", scrapedAt, err)
	}

	return &evt, nil
}
