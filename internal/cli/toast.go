package cli

import (
	"context"

	"github.com/alexanderramin/focusquest/internal/app"
	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
)

var (
	_ app.Notifier       = (*toastFeed)(nil)
	_ service.XPListener = (*toastFeed)(nil)
)

// toastFeed buffers rendered notifications until the UI drains them. It is
// only touched from the goroutine that ticks the engine.
type toastFeed struct {
	pending []string
}

func (f *toastFeed) OnXPAwarded(_ context.Context, ev service.XPAwardedEvent) {
	f.pending = append(f.pending, formatter.FormatXPAwarded(ev))
}

func (f *toastFeed) OnLevelUp(_ context.Context, ev service.LevelUpEvent) {
	f.pending = append(f.pending, formatter.FormatLevelUp(ev.NewLevel, ev.NewTitle))
}

func (f *toastFeed) OnUnlocks(_ context.Context, items []catalog.Item) {
	f.pending = append(f.pending, formatter.FormatUnlocks(items))
}

func (f *toastFeed) OnStreak(_ context.Context, s domain.StreakResult) {
	f.pending = append(f.pending, formatter.FormatStreak(s))
}

func (f *toastFeed) OnBreakEndingSoon(context.Context) {
	f.pending = append(f.pending, formatter.StyleYellow.Render("⏰ Break ends in a minute"))
}

// Drain returns and clears the buffered toasts.
func (f *toastFeed) Drain() []string {
	out := f.pending
	f.pending = nil
	return out
}
