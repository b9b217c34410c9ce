package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/leveling"
	"github.com/spf13/cobra"
)

func newLevelCmd() *cobra.Command {
	var maxLevel int

	cmd := &cobra.Command{
		Use:   "level [xp]",
		Short: "Show the level curve, or the level for an XP total",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, formatter.FormatLevelCurve(min(max(maxLevel, 1), leveling.MaxLevel)))
				return nil
			}
			xp, err := strconv.Atoi(args[0])
			if err != nil || xp < 0 {
				return fmt.Errorf("xp must be a non-negative integer, got %q", args[0])
			}
			if xp > leveling.MaxXP {
				return fmt.Errorf("xp must be at most %d (level %d), got %d", leveling.MaxXP, leveling.MaxLevel, xp)
			}
			fmt.Fprint(out, formatter.FormatLevelFor(xp))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLevel, "max", 30, "Highest level shown in the curve table")
	return cmd
}
