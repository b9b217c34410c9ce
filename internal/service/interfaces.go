package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
)

type XPService interface {
	// AwardSession converts one completed session into XP and applies it
	// to progress and the day's aggregates in a single transaction.
	AwardSession(ctx context.Context, req AwardRequest) (*XPResult, error)
	Subscribe(l XPListener)
}

type UnlockService interface {
	CheckAndUnlock(ctx context.Context, level, totalSessions int) ([]catalog.Item, error)
	Equip(ctx context.Context, category domain.UnlockCategory, key string) error
	EquippedTheme(ctx context.Context) (string, error)
	EquippedCompanion(ctx context.Context) (string, error)
	Unlocked(ctx context.Context) (map[domain.UnlockRef]bool, error)
	IsUnlocked(ctx context.Context, category domain.UnlockCategory, key string) (bool, error)
	// NextUpcoming returns the lowest-level theme or companion not granted yet.
	NextUpcoming(ctx context.Context) (*catalog.Item, error)
	Teasers(ctx context.Context, count int) ([]catalog.Item, error)
	Collection(ctx context.Context) ([]CollectionEntry, error)
}

type StatsService interface {
	Snapshot(ctx context.Context, today time.Time) (*StatsSnapshot, error)
}

type HistoryService interface {
	// Today lists the latest completed work sessions that ended on day.
	Today(ctx context.Context, day time.Time, limit int) ([]*domain.SessionRecord, error)
}
