package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandSpec is a structured listing of the command tree, printed by
// `focusquest commands` for scripts and shell integrations.
type CommandSpec struct {
	Commands []CommandEntry `json:"commands"`
}

// CommandEntry describes a single command or subcommand.
type CommandEntry struct {
	FullPath string      `json:"full_path"`
	Short    string      `json:"short"`
	Args     string      `json:"args,omitempty"`
	Flags    []FlagEntry `json:"flags,omitempty"`
}

// FlagEntry describes a single flag on a command.
type FlagEntry struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

// BuildCommandSpec walks the cobra tree below root. Hidden commands and
// cobra's own help/completion commands are left out.
func BuildCommandSpec(root *cobra.Command) *CommandSpec {
	spec := &CommandSpec{}
	var walk func(c *cobra.Command, prefix string)
	walk = func(c *cobra.Command, prefix string) {
		for _, sub := range c.Commands() {
			if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
				continue
			}
			path := strings.TrimSpace(prefix + " " + sub.Name())
			entry := CommandEntry{FullPath: path, Short: sub.Short}
			if _, args, ok := strings.Cut(sub.Use, " "); ok {
				entry.Args = args
			}
			sub.LocalFlags().VisitAll(func(f *pflag.Flag) {
				if f.Hidden {
					return
				}
				entry.Flags = append(entry.Flags, FlagEntry{
					Name:        f.Name,
					Shorthand:   f.Shorthand,
					Type:        f.Value.Type(),
					Default:     f.DefValue,
					Description: f.Usage,
				})
			})
			spec.Commands = append(spec.Commands, entry)
			walk(sub, path)
		}
	}
	walk(root, "")
	sort.Slice(spec.Commands, func(i, j int) bool {
		return spec.Commands[i].FullPath < spec.Commands[j].FullPath
	})
	return spec
}

// FindCommand returns the CommandEntry for a given path, or nil.
func (spec *CommandSpec) FindCommand(path string) *CommandEntry {
	for i := range spec.Commands {
		if spec.Commands[i].FullPath == path {
			return &spec.Commands[i]
		}
	}
	return nil
}

// FuzzyMatch returns up to n commands whose paths or descriptions
// contain any of the query terms (case-insensitive), most hits first.
func (spec *CommandSpec) FuzzyMatch(query string, n int) []CommandEntry {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		entry CommandEntry
		hits  int
	}

	var matches []scored
	for _, cmd := range spec.Commands {
		lowerPath := strings.ToLower(cmd.FullPath)
		lowerShort := strings.ToLower(cmd.Short)
		hits := 0
		for _, term := range terms {
			if strings.Contains(lowerPath, term) || strings.Contains(lowerShort, term) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{entry: cmd, hits: hits})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].hits > matches[j].hits })

	result := make([]CommandEntry, 0, n)
	for i := 0; i < len(matches) && i < n; i++ {
		result = append(result, matches[i].entry)
	}
	return result
}

func newCommandsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "commands [query]",
		Short: "List every command with its flags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := BuildCommandSpec(cmd.Root())
			if len(args) == 1 {
				spec = &CommandSpec{Commands: spec.FuzzyMatch(args[0], len(spec.Commands))}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(spec)
			}

			rows := make([][]string, 0, len(spec.Commands))
			for _, c := range spec.Commands {
				flags := make([]string, 0, len(c.Flags))
				for _, f := range c.Flags {
					flags = append(flags, "--"+f.Name)
				}
				rows = append(rows, []string{
					formatter.Bold(strings.TrimSpace(c.FullPath + " " + c.Args)),
					c.Short,
					formatter.Dim(strings.Join(flags, " ")),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"COMMAND", "DESCRIPTION", "FLAGS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the listing as JSON")
	return cmd
}
