package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/google/uuid"
)

const sessionColumns = `id, start_time, end_time, duration_seconds, session_type, completed, task_label, xp_awarded`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.SessionRecord) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	var endTime interface{}
	if s.EndTime != nil {
		endTime = formatTimestamp(*s.EndTime)
	}
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		formatTimestamp(s.StartTime),
		endTime,
		s.DurationSeconds,
		string(s.Kind),
		boolToInt(s.Completed),
		nullableString(s.TaskLabel),
		boolToInt(s.XPAwarded),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) Complete(ctx context.Context, id string, endedAt time.Time, durationSeconds int) error {
	query := `UPDATE sessions SET end_time = ?, duration_seconds = ?, completed = 1
		WHERE id = ? AND completed = 0`
	res, err := r.db.ExecContext(ctx, query, formatTimestamp(endedAt), durationSeconds, id)
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("open session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) MarkXPAwarded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET xp_awarded = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking session xp awarded: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking session xp awarded: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListCompletedWork(ctx context.Context, from, to time.Time, limit int) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE session_type = 'work' AND completed = 1
		  AND end_time >= ? AND end_time < ?
		ORDER BY end_time DESC`
	args := []any{formatTimestamp(from), formatTimestamp(to)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completed work sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) CompletedWorkStartTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_time FROM sessions WHERE session_type = 'work' AND completed = 1`)
	if err != nil {
		return nil, fmt.Errorf("listing session start times: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning start time: %w", err)
		}
		t, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing start_time: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating start times: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.SessionRecord, error) {
	s, err := scanSessionRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var sessions []*domain.SessionRecord
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func scanSessionRow(sc rowScanner) (*domain.SessionRecord, error) {
	var s domain.SessionRecord
	var startStr, kind string
	var endStr, label sql.NullString
	var completed, awarded int

	err := sc.Scan(&s.ID, &startStr, &endStr, &s.DurationSeconds, &kind, &completed, &label, &awarded)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.StartTime, err = time.Parse(timestampLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.EndTime = parseNullableTime(endStr, timestampLayout)
	s.Kind = domain.SessionKind(kind)
	s.Completed = intToBool(completed)
	s.TaskLabel = label.String
	s.XPAwarded = intToBool(awarded)
	return &s, nil
}
