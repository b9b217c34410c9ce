package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
)

type SessionRepo interface {
	// Create inserts s, assigning an ID when s.ID is empty.
	Create(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	// Complete closes an open record. Completing an unknown or already
	// completed record returns ErrNotFound.
	Complete(ctx context.Context, id string, endedAt time.Time, durationSeconds int) error
	MarkXPAwarded(ctx context.Context, id string) error
	// ListCompletedWork returns completed work sessions that ended in
	// [from, to), newest first. limit <= 0 means no limit.
	ListCompletedWork(ctx context.Context, from, to time.Time, limit int) ([]*domain.SessionRecord, error)
	// CompletedWorkStartTimes returns the start time of every completed
	// work session.
	CompletedWorkStartTimes(ctx context.Context) ([]time.Time, error)
}

type ProgressRepo interface {
	Get(ctx context.Context) (*domain.UserProgress, error)
	Update(ctx context.Context, p *domain.UserProgress) error
}

type DailyStatsRepo interface {
	Get(ctx context.Context, day time.Time) (*domain.DailyStats, error)
	Upsert(ctx context.Context, d *domain.DailyStats) error
	// ListRange returns the stored rows for dates in [from, to], oldest first.
	// Days without a row are absent.
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.DailyStats, error)
	CountActiveDays(ctx context.Context) (int, error)
}

type UnlockRepo interface {
	// Grant inserts u unless (category, key) is already present. It reports
	// whether a row was written.
	Grant(ctx context.Context, u *domain.UnlockRecord) (bool, error)
	Get(ctx context.Context, category domain.UnlockCategory, key string) (*domain.UnlockRecord, error)
	List(ctx context.Context) ([]*domain.UnlockRecord, error)
	ListByCategory(ctx context.Context, category domain.UnlockCategory) ([]*domain.UnlockRecord, error)
	// GetEquipped returns ErrNotFound when nothing in category is equipped.
	GetEquipped(ctx context.Context, category domain.UnlockCategory) (*domain.UnlockRecord, error)
	// SetEquipped clears every equipped flag in category, then sets the one
	// on key. Callers run it inside a transaction.
	SetEquipped(ctx context.Context, category domain.UnlockCategory, key string) error
}
