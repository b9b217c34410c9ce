package app

import (
	"context"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
)

// Notifier is the outer surface told about the results of a completion.
// Award and level-up events come from the XP service it is subscribed to.
// Calls arrive on the goroutine that drives the timer.
type Notifier interface {
	service.XPListener
	OnUnlocks(ctx context.Context, items []catalog.Item)
	OnStreak(ctx context.Context, streak domain.StreakResult)
	OnBreakEndingSoon(ctx context.Context)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) OnXPAwarded(context.Context, service.XPAwardedEvent) {}
func (NopNotifier) OnLevelUp(context.Context, service.LevelUpEvent)     {}
func (NopNotifier) OnUnlocks(context.Context, []catalog.Item)           {}
func (NopNotifier) OnStreak(context.Context, domain.StreakResult)       {}
func (NopNotifier) OnBreakEndingSoon(context.Context)                   {}

// ProgressReader loads the progress singleton.
type ProgressReader interface {
	Get(ctx context.Context) (*domain.UserProgress, error)
}
