// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a recorded session: everything needed to re-simulate it.
type Replay struct {
	ID         int64
	GameID     string
	Seed       int64
	TickRate   int // Platform frames per second the session ran at
	ConfigYAML string
	Ticks      uint64 // Board ticks played
	FinalScore int    // Score at the end, used to verify re-simulation
	CreatedAt  time.Time
	Inputs     []ReplayInput // Loaded by ReplayByID only
}

// ReplayInput is a steering input applied on a given board tick.
type ReplayInput struct {
	Tick      uint64
	Direction string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL DEFAULT 60,
			config_yaml TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and its inputs in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO replays (game_id, seed, tick_rate, config_yaml, ticks, final_score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.TickRate, r.ConfigYAML, int64(r.Ticks), r.FinalScore,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_inputs (replay_id, tick, direction) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range r.Inputs {
		if _, err := stmt.Exec(id, int64(in.Tick), in.Direction); err != nil {
			return 0, fmt.Errorf("storage: cannot save input for tick %d: %w", in.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}

	return id, nil
}

// ReplayByID retrieves a replay with its inputs ordered by tick.
// Returns nil when no replay has that ID.
func (s *Store) ReplayByID(id int64) (*Replay, error) {
	var r Replay
	var ticks int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, tick_rate, config_yaml, ticks, final_score, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.ConfigYAML, &ticks, &r.FinalScore, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tick, direction FROM replay_inputs WHERE replay_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in ReplayInput
		var tick int64
		if err := rows.Scan(&tick, &in.Direction); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		in.Tick = uint64(tick)
		r.Inputs = append(r.Inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// RecentReplays lists the newest replays first, without their inputs.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, config_yaml, ticks, final_score, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		var r Replay
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.ConfigYAML, &ticks, &r.FinalScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return tx.Commit()
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
