package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindStyle returns the accent used for a session kind: red for focus,
// green for a short break, blue for a long one.
func KindStyle(kind domain.SessionKind) lipgloss.Style {
	switch kind {
	case domain.KindWork:
		return StyleRed
	case domain.KindShortBreak:
		return StyleGreen
	case domain.KindLongBreak:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StateBadge renders the timer state as a colored pill such as "● FOCUS".
// Idle and paused states show the pending kind.
func StateBadge(state domain.TimerState, kind domain.SessionKind) string {
	label := strings.ToUpper(kind.Label())
	switch state {
	case domain.StatePaused:
		return StyleYellow.Render("❚❚ PAUSED") + Dim(" · "+label)
	case domain.StateIdle:
		return StyleDim.Render("○ READY") + Dim(" · "+label)
	default:
		return KindStyle(kind).Render("● " + label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
