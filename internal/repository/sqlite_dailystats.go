package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
)

// SQLiteDailyStatsRepo implements DailyStatsRepo using a SQLite database.
type SQLiteDailyStatsRepo struct {
	db db.DBTX
}

// NewSQLiteDailyStatsRepo creates a new SQLiteDailyStatsRepo.
func NewSQLiteDailyStatsRepo(conn db.DBTX) *SQLiteDailyStatsRepo {
	return &SQLiteDailyStatsRepo{db: conn}
}

func (r *SQLiteDailyStatsRepo) Get(ctx context.Context, day time.Time) (*domain.DailyStats, error) {
	query := `SELECT date, sessions_completed, focus_minutes, xp_earned, tasks_completed
		FROM daily_stats WHERE date = ?`
	d, err := scanDailyStats(r.db.QueryRowContext(ctx, query, formatDate(day)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily stats %s: %w", formatDate(day), ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDailyStatsRepo) Upsert(ctx context.Context, d *domain.DailyStats) error {
	query := `INSERT INTO daily_stats (date, sessions_completed, focus_minutes, xp_earned, tasks_completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			sessions_completed = excluded.sessions_completed,
			focus_minutes = excluded.focus_minutes,
			xp_earned = excluded.xp_earned,
			tasks_completed = excluded.tasks_completed`
	_, err := r.db.ExecContext(ctx, query,
		formatDate(d.Date),
		d.SessionsCompleted,
		d.FocusMinutes,
		d.XPEarned,
		d.TasksCompleted,
	)
	if err != nil {
		return fmt.Errorf("upserting daily stats: %w", err)
	}
	return nil
}

func (r *SQLiteDailyStatsRepo) ListRange(ctx context.Context, from, to time.Time) ([]*domain.DailyStats, error) {
	query := `SELECT date, sessions_completed, focus_minutes, xp_earned, tasks_completed
		FROM daily_stats WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("listing daily stats: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyStats
	for rows.Next() {
		d, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily stats: %w", err)
	}
	return out, nil
}

func (r *SQLiteDailyStatsRepo) CountActiveDays(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_stats WHERE sessions_completed > 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting active days: %w", err)
	}
	return n, nil
}

func scanDailyStats(sc rowScanner) (*domain.DailyStats, error) {
	var d domain.DailyStats
	var date string
	err := sc.Scan(&date, &d.SessionsCompleted, &d.FocusMinutes, &d.XPEarned, &d.TasksCompleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning daily stats: %w", err)
	}
	d.Date, err = time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing daily stats date: %w", err)
	}
	return &d, nil
}
