package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Session statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// TimeLayout is a fixed-width RFC3339 layout so stored timestamps sort lexically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists session history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a store for session persistence.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SessionRecord is a row of the sessions table.
type SessionRecord struct {
	SessionID  string
	CreatedAt  string
	RepoURL    string
	Workspace  string
	Status     string
	ReportPath string
	TaskCount  int
	AgentCount int
	EndedAt    string
}

// Event is a timeline entry for a session.
type Event struct {
	Seq      int    `json:"seq"`
	TS       string `json:"ts"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	DataJSON string `json:"data,omitempty"`
}

// Finish holds the final state of a session.
type Finish struct {
	Status     string
	ReportPath string
	TaskCount  int
	AgentCount int
}

// CreateSession inserts the session record and a session_started event.
func (s *Store) CreateSession(ctx context.Context, sessionID, repoURL, workspace string) error {
	createdAt := s.now().Format(TimeLayout)
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO sessions(session_id, created_at, repo_url, workspace, status)
		VALUES(?, ?, ?, ?, ?)`,
		sessionID, createdAt, repoURL, workspace, StatusRunning); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert session: %w", err)
	}
	if err := s.insertEvent(ctx, tx, sessionID, "session_started", "session started", ""); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create session: %w", err)
	}
	return nil
}

// RecordEvent appends an event to the session timeline.
func (s *Store) RecordEvent(ctx context.Context, sessionID, typ, message, dataJSON string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin record event: %w", err)
	}
	if err := s.insertEvent(ctx, tx, sessionID, typ, message, dataJSON); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event: %w", err)
	}
	return nil
}

// FinishSession stores the final status with a closing event in one transaction.
func (s *Store) FinishSession(ctx context.Context, sessionID string, fin Finish) error {
	endedAt := s.now().Format(TimeLayout)
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin finish session: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE sessions SET status=?, report_path=?, task_count=?, agent_count=?, ended_at=? WHERE session_id=?`,
		fin.Status, nullableString(fin.ReportPath), fin.TaskCount, fin.AgentCount, endedAt, sessionID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("finish %s: %w", sessionID, ErrNotFound)
	}
	if err := s.insertEvent(ctx, tx, sessionID, "session_"+fin.Status, "session "+fin.Status, ""); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finish session: %w", err)
	}
	return nil
}

// GetSession returns one session record.
func (s *Store) GetSession(ctx context.Context, sessionID string) (SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT session_id, created_at, repo_url, workspace, status,
		COALESCE(report_path, ''), task_count, agent_count, COALESCE(ended_at, '')
		FROM sessions WHERE session_id=?`, sessionID)
	rec, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, fmt.Errorf("%s: %w", sessionID, ErrNotFound)
		}
		return SessionRecord{}, fmt.Errorf("read session: %w", err)
	}
	return rec, nil
}

// ListSessions returns sessions newest first. A limit <= 0 returns all.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `SELECT session_id, created_at, repo_url, workspace, status,
		COALESCE(report_path, ''), task_count, agent_count, COALESCE(ended_at, '')
		FROM sessions ORDER BY created_at DESC, session_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// Events returns a session's events in sequence order.
func (s *Store) Events(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, ts, type, message, COALESCE(data_json, '')
		FROM events WHERE session_id=? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.Seq, &ev.TS, &ev.Type, &ev.Message, &ev.DataJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	err := row.Scan(&rec.SessionID, &rec.CreatedAt, &rec.RepoURL, &rec.Workspace, &rec.Status,
		&rec.ReportPath, &rec.TaskCount, &rec.AgentCount, &rec.EndedAt)
	return rec, err
}

func (s *Store) insertEvent(ctx context.Context, tx *sql.Tx, sessionID, typ, message, dataJSON string) error {
	seq, err := nextSeq(ctx, tx, sessionID)
	if err != nil {
		return err
	}
	ts := s.now().Format(TimeLayout)
	if _, err := tx.ExecContext(ctx, `INSERT INTO events(session_id, seq, ts, type, message, data_json) VALUES(?, ?, ?, ?, ?, ?)`,
		sessionID, seq, ts, typ, message, nullableString(dataJSON)); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func nextSeq(ctx context.Context, tx *sql.Tx, sessionID string) (int, error) {
	var seq int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events WHERE session_id=?`, sessionID)
	if err := row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("read event seq: %w", err)
	}
	return seq + 1, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
