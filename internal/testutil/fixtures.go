package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference instant most fixtures hang off.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// Session options
type SessionOption func(*domain.SessionRecord)

func WithKind(k domain.SessionKind) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Kind = k
	}
}

func WithTaskLabel(label string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.TaskLabel = label
	}
}

func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.SessionRecord) {
		s.StartTime = t
	}
}

// WithCompleted closes the session duration seconds after its start.
func WithCompleted(durationSeconds int) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Complete(s.StartTime.Add(time.Duration(durationSeconds)*time.Second), durationSeconds)
	}
}

func WithXPAwarded() SessionOption {
	return func(s *domain.SessionRecord) {
		s.XPAwarded = true
	}
}

// NewTestSession returns an open work session starting at FixedNow. Options
// apply in order, so WithStartTime must precede WithCompleted.
func NewTestSession(opts ...SessionOption) *domain.SessionRecord {
	s := &domain.SessionRecord{
		ID:        uuid.New().String(),
		StartTime: FixedNow,
		Kind:      domain.KindWork,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Unlock options
type UnlockOption func(*domain.UnlockRecord)

func WithEquipped() UnlockOption {
	return func(u *domain.UnlockRecord) {
		u.Equipped = true
	}
}

func WithUnlockedAt(t time.Time) UnlockOption {
	return func(u *domain.UnlockRecord) {
		u.UnlockedAt = t
	}
}

func NewTestUnlock(category domain.UnlockCategory, key string, opts ...UnlockOption) *domain.UnlockRecord {
	u := &domain.UnlockRecord{
		ID:         uuid.New().String(),
		Category:   category,
		Key:        key,
		UnlockedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SeedProgress overwrites the progress singleton. Only the fields that
// matter to a test need setting; the row must already exist.
func SeedProgress(t *testing.T, conn db.DBTX, p domain.UserProgress) {
	t.Helper()
	var last interface{}
	if p.LastSessionDate != nil {
		last = p.LastSessionDate.Format(domain.DateLayout)
	}
	if p.CurrentLevel == 0 {
		p.CurrentLevel = 1
	}
	_, err := conn.ExecContext(context.Background(),
		`UPDATE user_progress SET total_xp = ?, current_level = ?, total_sessions_completed = ?,
			total_focus_minutes = ?, current_streak_days = ?, longest_streak_days = ?, last_session_date = ?
		 WHERE id = ?`,
		p.TotalXP, p.CurrentLevel, p.TotalSessionsCompleted, p.TotalFocusMinutes,
		p.CurrentStreakDays, p.LongestStreakDays, last, domain.DefaultProgressID)
	if err != nil {
		t.Fatalf("seeding progress: %v", err)
	}
}

// SeedDailyStats inserts or replaces the row for d.Date.
func SeedDailyStats(t *testing.T, conn db.DBTX, d domain.DailyStats) {
	t.Helper()
	_, err := conn.ExecContext(context.Background(),
		`INSERT OR REPLACE INTO daily_stats (date, sessions_completed, focus_minutes, xp_earned, tasks_completed)
		 VALUES (?, ?, ?, ?, ?)`,
		domain.DateOf(d.Date).Format(domain.DateLayout), d.SessionsCompleted, d.FocusMinutes, d.XPEarned, d.TasksCompleted)
	if err != nil {
		t.Fatalf("seeding daily stats: %v", err)
	}
}

// DatePtr returns a pointer to the calendar date of t.
func DatePtr(t time.Time) *time.Time {
	d := domain.DateOf(t)
	return &d
}
