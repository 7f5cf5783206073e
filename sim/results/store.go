// Package results keeps finished runs in an SQLite database so that runs
// over many maps and policies can be compared afterwards.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/treasuremap/treasure-sim/sim"
)

// Run status values.
const (
	StatusCompleted = "completed"
	StatusStalled   = "stalled"
)

// Run is one finished simulation.
type Run struct {
	ID         int64
	Input      string // input file name or other caller label
	Policy     string
	Ticks      int
	Status     string
	Collected  int
	RecordedAt time.Time
	Agents     []sim.AgentSnapshot
}

// NewRun summarizes a simulator result. runErr is the error returned by
// Simulator.Run; a stall is recorded, any other error is not expected here.
func NewRun(input, policy string, res *sim.Result, runErr error) Run {
	status := StatusCompleted
	if errors.Is(runErr, sim.ErrStalled) {
		status = StatusStalled
	}
	return Run{
		Input:      input,
		Policy:     policy,
		Ticks:      res.Ticks,
		Status:     status,
		Collected:  res.Collected,
		RecordedAt: time.Now().UTC(),
		Agents:     res.Agents,
	}
}

// Store is an SQLite-backed run store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			policy TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			status TEXT NOT NULL,
			collected INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_agents (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			orientation TEXT NOT NULL,
			treasures INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores run and its agents in one transaction and returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	r, err := tx.ExecContext(ctx,
		`INSERT INTO runs(input, policy, ticks, status, collected, recorded_at) VALUES(?,?,?,?,?,?)`,
		run.Input, run.Policy, run.Ticks, run.Status, run.Collected, recordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	for i, a := range run.Agents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_agents(run_id, seq, name, x, y, orientation, treasures) VALUES(?,?,?,?,?,?,?)`,
			id, i, a.Name, a.Position.X, a.Position.Y, a.Orientation.Letter(), a.TreasuresCollected); err != nil {
			return 0, fmt.Errorf("inserting agent %q: %w", a.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Runs lists stored runs, oldest first, without their agents.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, policy, ticks, status, collected, recorded_at FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var recordedAt string
		if err := rows.Scan(&r.ID, &r.Input, &r.Policy, &r.Ticks, &r.Status, &r.Collected, &recordedAt); err != nil {
			return nil, err
		}
		if r.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("run %d: bad recorded_at %q: %w", r.ID, recordedAt, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Agents returns the final agent states of one run in input order.
func (s *Store) Agents(ctx context.Context, runID int64) ([]sim.AgentSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, x, y, orientation, treasures FROM run_agents WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.AgentSnapshot
	for rows.Next() {
		var a sim.AgentSnapshot
		var letter string
		if err := rows.Scan(&a.Name, &a.Position.X, &a.Position.Y, &letter, &a.TreasuresCollected); err != nil {
			return nil, err
		}
		if a.Orientation, err = sim.ParseOrientation(letter); err != nil {
			return nil, fmt.Errorf("run %d agent %q: %w", runID, a.Name, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
