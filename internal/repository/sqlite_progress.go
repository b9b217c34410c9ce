package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo over the singleton
// user_progress row.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Get(ctx context.Context) (*domain.UserProgress, error) {
	query := `SELECT id, total_xp, current_level, total_sessions_completed, total_focus_minutes,
		current_streak_days, longest_streak_days, last_session_date
		FROM user_progress WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultProgressID)

	var p domain.UserProgress
	var last sql.NullString
	err := row.Scan(
		&p.ID,
		&p.TotalXP,
		&p.CurrentLevel,
		&p.TotalSessionsCompleted,
		&p.TotalFocusMinutes,
		&p.CurrentStreakDays,
		&p.LongestStreakDays,
		&last,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user progress: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user progress: %w", err)
	}
	p.LastSessionDate = parseNullableTime(last, domain.DateLayout)
	return &p, nil
}

func (r *SQLiteProgressRepo) Update(ctx context.Context, p *domain.UserProgress) error {
	var last *time.Time
	if p.LastSessionDate != nil {
		d := domain.DateOf(*p.LastSessionDate)
		last = &d
	}
	query := `UPDATE user_progress SET total_xp = ?, current_level = ?, total_sessions_completed = ?,
		total_focus_minutes = ?, current_streak_days = ?, longest_streak_days = ?, last_session_date = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.TotalXP,
		p.CurrentLevel,
		p.TotalSessionsCompleted,
		p.TotalFocusMinutes,
		p.CurrentStreakDays,
		p.LongestStreakDays,
		nullableTimeToString(last, domain.DateLayout),
		domain.DefaultProgressID,
	)
	if err != nil {
		return fmt.Errorf("updating user progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user progress: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user progress: %w", ErrNotFound)
	}
	return nil
}
