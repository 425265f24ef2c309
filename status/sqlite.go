package status

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS requests (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL,
	state        TEXT NOT NULL,
	progress     TEXT NOT NULL DEFAULT '',
	result       TEXT,
	error        TEXT NOT NULL DEFAULT '',
	started_at   TIMESTAMP NOT NULL,
	completed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_requests_state ON requests(state);
`

// SQLiteStore persists request records in a SQLite database so status
// survives a daemon restart.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("status: open database: %w", err)
	}
	// modernc.org/sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("status: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Create(rec *Record) error {
	state := rec.State
	if state == "" {
		state = StateProcessing
	}
	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	var result any
	if rec.Result != nil {
		result = string(rec.Result)
	}
	_, err := s.db.Exec(
		`INSERT INTO requests (id, email, state, progress, result, error, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Email, string(state), rec.Progress, result, rec.Error, startedAt,
	)
	if err != nil {
		return fmt.Errorf("status: create record: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var state string
	var result sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.Email, &state, &rec.Progress, &result, &rec.Error, &rec.StartedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("status: scan record: %w", err)
	}
	rec.State = State(state)
	if result.Valid {
		rec.Result = json.RawMessage(result.String)
	}
	if completedAt.Valid {
		t := completedAt.Time
		rec.CompletedAt = &t
	}
	return &rec, nil
}

const selectColumns = `id, email, state, progress, result, error, started_at, completed_at`

func (s *SQLiteStore) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM requests WHERE id = ?`, id)
	return scanRecord(row)
}

func (s *SQLiteStore) SetProgress(id, progress string) error {
	return s.update(id, `UPDATE requests SET progress = ? WHERE id = ? AND state = ?`, progress, id, string(StateProcessing))
}

func (s *SQLiteStore) Complete(id string, result json.RawMessage) error {
	return s.update(id,
		`UPDATE requests SET state = ?, result = ?, completed_at = ? WHERE id = ? AND state = ?`,
		string(StateCompleted), string(result), time.Now(), id, string(StateProcessing))
}

func (s *SQLiteStore) Fail(id, message string) error {
	return s.update(id,
		`UPDATE requests SET state = ?, error = ?, completed_at = ? WHERE id = ? AND state = ?`,
		string(StateFailed), message, time.Now(), id, string(StateProcessing))
}

// update runs a guarded write and converts a zero-row result into the
// matching sentinel error.
func (s *SQLiteStore) update(id, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("status: update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("status: rows affected: %w", err)
	}
	if n == 0 {
		if _, err := s.Get(id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrTerminal
	}
	return nil
}

func (s *SQLiteStore) List() ([]*Record, error) {
	rows, err := s.db.Query(`SELECT ` + selectColumns + ` FROM requests ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("status: list records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("status: iterate records: %w", err)
	}
	return out, nil
}
