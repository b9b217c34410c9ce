package cli

import (
	"fmt"

	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/timer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focusHuhTheme returns a huh theme matching the formatter palette.
func focusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// sessionLengthOptions offers the full session first, then the micro presets.
// The value is the micro length in minutes, 0 for a full session.
func sessionLengthOptions(workSeconds int) []huh.Option[int] {
	opts := []huh.Option[int]{
		huh.NewOption(fmt.Sprintf("Full session (%s)", formatter.FormatMinutes(workSeconds/60)), 0),
	}
	for _, m := range timer.MicroPresets {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Micro session (%dm)", m), m))
	}
	return opts
}

// pickSessionForm asks for the task label and the session length.
func pickSessionForm(workSeconds int, task *string, micro *int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you working on?").
				Placeholder("optional").
				CharLimit(120).
				Value(task),
			huh.NewSelect[int]().
				Title("Session length").
				Options(sessionLengthOptions(workSeconds)...).
				Value(micro),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}
