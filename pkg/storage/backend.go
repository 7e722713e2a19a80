package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sortbench/pkg/common"
)

// ResultStore persists run results grouped by batch.
type ResultStore interface {
	BatchWrite(results []*common.RunResult) error
	LoadAll() ([]*common.RunResult, error)
	LoadBatch(batch string) ([]*common.RunResult, error)
	Batches() ([]string, error)
	Truncate() error
	Close() error
}

type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	batch       TEXT NOT NULL,
	kind        TEXT NOT NULL,
	algorithm   TEXT NOT NULL,
	sort_key    TEXT NOT NULL,
	size        INTEGER NOT NULL,
	comparisons INTEGER NOT NULL,
	movements   INTEGER NOT NULL,
	movement    INTEGER NOT NULL,
	elapsed_ns  INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	valid       INTEGER NOT NULL,
	message     TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_batch ON runs (batch);`

const columns = "id, batch, kind, algorithm, sort_key, size, comparisons, movements, movement, elapsed_ns, outcome, valid, message, created_at"

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("storage: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: pragma: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// BatchWrite inserts results in one transaction. Results without an ID get
// a fresh one.
func (s *SQLiteStore) BatchWrite(results []*common.RunResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO runs (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now()
		}
		if _, err := stmt.Exec(r.ID, r.Batch, r.Kind, r.Algorithm, r.Key, r.Size,
			r.Comparisons, r.Movements, int(r.Movement), r.Elapsed.Nanoseconds(),
			r.Outcome, r.Valid, r.Message, r.CreatedAt.UnixNano()); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadAll() ([]*common.RunResult, error) {
	return s.query("SELECT " + columns + " FROM runs ORDER BY created_at ASC, rowid ASC")
}

func (s *SQLiteStore) LoadBatch(batch string) ([]*common.RunResult, error) {
	return s.query("SELECT "+columns+" FROM runs WHERE batch = ? ORDER BY created_at ASC, rowid ASC", batch)
}

// Batches lists batch ids, oldest first.
func (s *SQLiteStore) Batches() ([]string, error) {
	rows, err := s.db.Query("SELECT batch FROM runs GROUP BY batch ORDER BY MIN(created_at) ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (s *SQLiteStore) query(q string, args ...any) ([]*common.RunResult, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*common.RunResult
	for rows.Next() {
		var (
			r         common.RunResult
			movement  int
			elapsed   int64
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.Batch, &r.Kind, &r.Algorithm, &r.Key, &r.Size,
			&r.Comparisons, &r.Movements, &movement, &elapsed,
			&r.Outcome, &r.Valid, &r.Message, &createdAt); err != nil {
			return nil, err
		}
		r.Movement = common.MovementKind(movement)
		r.Elapsed = time.Duration(elapsed)
		r.CreatedAt = time.Unix(0, createdAt)
		results = append(results, &r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
