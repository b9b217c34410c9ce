package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
)

// Completion is the snapshot taken when a session runs down to zero.
// SessionID is empty when persistence is disabled.
type Completion struct {
	Kind            domain.SessionKind
	DurationSeconds int
	StartTime       time.Time
	EndTime         time.Time
	TaskLabel       string
	Round           int
	RoundsPerCycle  int
	Micro           bool
	Extensions      int
	SessionID       string
}

// Listener receives engine events synchronously, in emission order, on the
// goroutine that called the engine. Embed NopListener to pick a subset.
type Listener interface {
	OnStateChanged(ctx context.Context, state domain.TimerState)
	OnTick(ctx context.Context, remaining int)
	OnSessionCompleted(ctx context.Context, c Completion)
	OnStreakUpdated(ctx context.Context, streak domain.StreakResult)
	OnBreakEndingSoon(ctx context.Context)
}

// NopListener ignores all events.
type NopListener struct{}

func (NopListener) OnStateChanged(context.Context, domain.TimerState)    {}
func (NopListener) OnTick(context.Context, int)                          {}
func (NopListener) OnSessionCompleted(context.Context, Completion)       {}
func (NopListener) OnStreakUpdated(context.Context, domain.StreakResult) {}
func (NopListener) OnBreakEndingSoon(context.Context)                    {}

func (e *Engine) emitState(ctx context.Context) {
	for _, l := range e.listeners {
		l.OnStateChanged(ctx, e.state)
	}
}

func (e *Engine) emitTick(ctx context.Context) {
	for _, l := range e.listeners {
		l.OnTick(ctx, e.remaining)
	}
}

func (e *Engine) emitCompleted(ctx context.Context, c Completion) {
	for _, l := range e.listeners {
		l.OnSessionCompleted(ctx, c)
	}
}

func (e *Engine) emitStreak(ctx context.Context, s domain.StreakResult) {
	for _, l := range e.listeners {
		l.OnStreakUpdated(ctx, s)
	}
}

func (e *Engine) emitBreakEndingSoon(ctx context.Context) {
	for _, l := range e.listeners {
		l.OnBreakEndingSoon(ctx)
	}
}
