package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/focusquest/internal/app"
	"github.com/alexanderramin/focusquest/internal/service"
	"github.com/alexanderramin/focusquest/internal/timer"
	"github.com/spf13/cobra"
)

// App holds the collaborators used by CLI commands.
type App struct {
	Timer    timer.Config
	Recorder timer.Recorder
	XP       service.XPService
	Unlocks  service.UnlockService
	Stats    service.StatsService
	History  service.HistoryService
	Progress app.ProgressReader
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "focusquest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focusquest",
		Short:         "Pomodoro timer that levels you up",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newFocusCmd(app),
		newStatusCmd(app),
		newStatsCmd(app),
		newHistoryCmd(app),
		newUnlocksCmd(app),
		newEquipCmd(app),
		newLevelCmd(),
		newCommandsCmd(),
	)

	return root
}
