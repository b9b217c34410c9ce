package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/focusquest/internal/app"
	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFocusCmd(a *App) *cobra.Command {
	var (
		micro int
		task  string
		pick  bool
		auto  bool
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the focus timer",
		Long: `Run the focus timer. In a terminal this opens the live timer; otherwise
one session runs to completion and its rewards are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if micro < 0 {
				return fmt.Errorf("--micro must be positive, got %d", micro)
			}
			if pick {
				if !a.interactive() {
					return errors.New("--pick needs an interactive terminal")
				}
				if err := pickSessionForm(a.Timer.WorkSeconds, &task, &micro).Run(); err != nil {
					return err
				}
			}

			cfg := a.Timer
			if cmd.Flags().Changed("auto") {
				cfg.AutoAdvance = auto
			}

			feed := &toastFeed{}
			coord, err := app.NewCoordinator(ctx, a.XP, a.Unlocks, a.Progress, feed, a.Logger)
			if err != nil {
				return err
			}
			engine := timer.New(cfg, timer.WithRecorder(a.Recorder), timer.WithListener(coord))
			engine.SetTaskLabel(strings.TrimSpace(task))

			if a.interactive() {
				_, err := tea.NewProgram(
					newFocusModel(ctx, engine, feed, micro),
					tea.WithAltScreen(),
					tea.WithContext(ctx),
				).Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			}

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			return runHeadless(ctx, cmd.OutOrStdout(), engine, feed, micro, ticker.C)
		},
	}

	cmd.Flags().IntVar(&micro, "micro", 0, "Run a micro session of N minutes")
	cmd.Flags().StringVarP(&task, "task", "t", "", "Label the session with a task")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose task and length interactively")
	cmd.Flags().BoolVar(&auto, "auto", false, "Start the next session automatically")

	return cmd
}

// runHeadless runs one session against the given tick source, or keeps
// cycling while auto-advance starts the next one, and prints progress once
// a minute. Cancelling ctx abandons the running session.
func runHeadless(ctx context.Context, out io.Writer, engine *timer.Engine, feed *toastFeed, micro int, ticks <-chan time.Time) error {
	var err error
	if micro > 0 {
		err = engine.StartMicro(ctx, micro)
	} else {
		err = engine.Start(ctx)
	}
	if err != nil {
		return err
	}

	kind := engine.Kind()
	fmt.Fprintf(out, "%s  %s\n", formatter.StateBadge(engine.State(), kind), formatter.FormatClock(engine.Remaining()))

	for engine.IsRunning() {
		select {
		case <-ctx.Done():
			engine.Reset(context.WithoutCancel(ctx))
			fmt.Fprintln(out, formatter.Dim("Session abandoned."))
			return nil
		case <-ticks:
			if err := engine.Tick(ctx); err != nil {
				fmt.Fprintln(out, formatter.StyleRed.Render("Error: "+err.Error()))
			}
			for _, t := range feed.Drain() {
				fmt.Fprintln(out, t)
			}
			if !engine.IsRunning() || engine.Kind() != kind {
				fmt.Fprintf(out, "%s complete.\n", kind.Label())
				kind = engine.Kind()
				continue
			}
			if engine.Remaining()%60 == 0 {
				fmt.Fprintf(out, "  %s left\n", formatter.FormatClock(engine.Remaining()))
			}
		}
	}
	return nil
}
