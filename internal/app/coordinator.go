package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
	"github.com/alexanderramin/focusquest/internal/timer"
)

var _ timer.Listener = (*Coordinator)(nil)

// Coordinator turns timer completions into XP awards and unlock grants.
// Failures are logged and never returned into the tick path.
type Coordinator struct {
	timer.NopListener

	xp       service.XPService
	unlocks  service.UnlockService
	progress ProgressReader
	notify   Notifier
	logger   *slog.Logger
}

// NewCoordinator wires the collaborators, subscribes notify to the XP
// service and grants the level-1 items so a fresh store has its defaults
// equipped before the first session.
func NewCoordinator(
	ctx context.Context,
	xp service.XPService,
	unlocks service.UnlockService,
	progress ProgressReader,
	notify Notifier,
	logger *slog.Logger,
) (*Coordinator, error) {
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		xp:       xp,
		unlocks:  unlocks,
		progress: progress,
		notify:   notify,
		logger:   logger,
	}
	if _, err := unlocks.CheckAndUnlock(ctx, 1, 0); err != nil {
		return nil, fmt.Errorf("seeding default unlocks: %w", err)
	}
	xp.Subscribe(notify)
	return c, nil
}

func (c *Coordinator) OnSessionCompleted(ctx context.Context, ev timer.Completion) {
	if _, err := c.xp.AwardSession(ctx, service.AwardRequestFromCompletion(ev)); err != nil {
		c.logger.ErrorContext(ctx, "xp award failed",
			"session_id", ev.SessionID,
			"kind", string(ev.Kind),
			"error", err,
		)
		return
	}
	if ev.Kind != domain.KindWork {
		return
	}

	p, err := c.progress.Get(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "loading progress for unlock check failed", "error", err)
		return
	}
	items, err := c.unlocks.CheckAndUnlock(ctx, p.CurrentLevel, p.TotalSessionsCompleted)
	if err != nil {
		c.logger.ErrorContext(ctx, "unlock check failed",
			"level", p.CurrentLevel,
			"sessions", p.TotalSessionsCompleted,
			"error", err,
		)
		return
	}
	if len(items) > 0 {
		c.notify.OnUnlocks(ctx, items)
	}
}

func (c *Coordinator) OnStreakUpdated(ctx context.Context, streak domain.StreakResult) {
	c.notify.OnStreak(ctx, streak)
}

func (c *Coordinator) OnBreakEndingSoon(ctx context.Context) {
	c.notify.OnBreakEndingSoon(ctx)
}
