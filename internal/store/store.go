// Package store provides SQLite persistence for completed runs.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/learner"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// RunRecord is a stored run summary.
type RunRecord struct {
	ID            string
	Dataset       string
	Classifier    string
	Selector      string
	Stopper       string
	Reason        string
	Iterations    int
	Screened      int
	RelevantFound int
	BatchSize     int
	FinalRecall   float64
	FinalWorkSave float64
	Config        string // JSON echo of the resolved configuration
	CreatedAt     time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// Build connection string based on database type
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		classifier TEXT NOT NULL,
		selector TEXT NOT NULL,
		stopper TEXT NOT NULL,
		reason TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		screened INTEGER NOT NULL,
		relevant_found INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		final_recall REAL NOT NULL,
		final_work_save REAL NOT NULL,
		config TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL,
		iteration INTEGER NOT NULL,
		recall REAL NOT NULL,
		work_save REAL NOT NULL,
		PRIMARY KEY (run_id, iteration),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun stores a completed run and its full snapshot history.
// Thread-safe: acquires write lock.
func (s *Store) SaveRun(res learner.RunResult, classifier, selector, stopper, configJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, dataset, classifier, selector, stopper, reason,
			iterations, screened, relevant_found, batch_size,
			final_recall, final_work_save, config, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		res.ID,
		res.Dataset,
		classifier,
		selector,
		stopper,
		res.Reason.String(),
		res.Iterations,
		res.Screened,
		res.RelevantFound,
		res.BatchSize,
		res.FinalRecall(),
		res.FinalWorkSave(),
		configJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshots (run_id, iteration, recall, work_save)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range res.Snapshots {
		if _, err := stmt.Exec(res.ID, snap.Iteration, snap.Recall, snap.WorkSave); err != nil {
			return fmt.Errorf("insert snapshot %d: %w", snap.Iteration, err)
		}
	}

	return tx.Commit()
}

// GetRuns returns stored run summaries, newest first.
func (s *Store) GetRuns(limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, dataset, classifier, selector, stopper, reason,
		       iterations, screened, relevant_found, batch_size,
		       final_recall, final_work_save, config, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(
			&r.ID, &r.Dataset, &r.Classifier, &r.Selector, &r.Stopper,
			&r.Reason, &r.Iterations, &r.Screened, &r.RelevantFound,
			&r.BatchSize, &r.FinalRecall, &r.FinalWorkSave, &r.Config,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetSnapshots returns a run's full metric history in iteration order.
func (s *Store) GetSnapshots(runID string) ([]evaluate.MetricsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT iteration, recall, work_save
		FROM snapshots
		WHERE run_id = ?
		ORDER BY iteration
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []evaluate.MetricsSnapshot
	for rows.Next() {
		var snap evaluate.MetricsSnapshot
		if err := rows.Scan(&snap.Iteration, &snap.Recall, &snap.WorkSave); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
