package cli

import (
	"fmt"

	"github.com/alexanderramin/focusquest/internal/app"
	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP progress and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.LoadStatus(cmd.Context(), a.Progress, a.Unlocks)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(v))
			return nil
		},
	}
}
