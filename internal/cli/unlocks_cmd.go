package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
	"github.com/spf13/cobra"
)

func newUnlocksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "unlocks",
		Aliases: []string{"collection"},
		Short:   "Show every theme, companion and title with its lock state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Unlocks.Collection(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCollection(entries))
			return nil
		},
	}
}

func newEquipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "equip <theme|companion|title> <key>",
		Short: "Equip an unlocked item",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return []string{"theme", "companion", "title"}, cobra.ShellCompDirectiveNoFileComp
			case 1:
				var keys []string
				for _, it := range catalog.Default().ByCategory(domain.UnlockCategory(args[0])) {
					keys = append(keys, it.Key)
				}
				return keys, cobra.ShellCompDirectiveNoFileComp
			default:
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			category, key := domain.UnlockCategory(args[0]), args[1]
			err := app.Unlocks.Equip(cmd.Context(), category, key)
			switch {
			case errors.Is(err, service.ErrUnknownCategory):
				return fmt.Errorf("unknown category %q (use theme, companion or title)", args[0])
			case errors.Is(err, service.ErrNotUnlocked):
				if it, ok := catalog.Default().Get(category, key); ok {
					return fmt.Errorf("%s is still locked: %s", it.Name, lockHint(it))
				}
				return fmt.Errorf("no %s named %q", category, key)
			case err != nil:
				return err
			}

			name := key
			if it, ok := catalog.Default().Get(category, key); ok {
				name = it.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Equipped "+string(category)+":"), formatter.Bold(name))
			return nil
		},
	}
}

func lockHint(it catalog.Item) string {
	if it.Category == domain.CategoryTitle {
		return fmt.Sprintf("complete %d sessions", it.RequiredSessions)
	}
	return fmt.Sprintf("reach level %d", it.RequiredLevel)
}
