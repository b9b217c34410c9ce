package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
)

// FormatXPAwarded renders the XP toast for one completed session, e.g.
// "+265 XP  Session +65 · Streak x5 +50 · Full Cycle! +150".
func FormatXPAwarded(ev service.XPAwardedEvent) string {
	parts := make([]string, 0, len(ev.Bonuses))
	for _, bonus := range ev.Bonuses {
		parts = append(parts, fmt.Sprintf("%s +%d", bonus.Name, bonus.Amount))
	}
	out := StylePurple.Render(fmt.Sprintf("+%d XP", ev.Amount))
	if len(parts) > 0 {
		out += "  " + Dim(strings.Join(parts, " · "))
	}
	return out
}

func FormatLevelUp(level int, title string) string {
	return StyleHeader.Render(fmt.Sprintf("★ LEVEL UP! Level %d", level)) + " " + Bold(title)
}

// FormatUnlocks renders one line per newly granted item.
func FormatUnlocks(items []catalog.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, StyleGreen.Render("🔓 Unlocked "+string(it.Category)+": ")+Bold(it.Name))
	}
	return strings.Join(lines, "\n")
}

func FormatStreak(s domain.StreakResult) string {
	return StyleYellow.Render("🔥 Streak: "+Plural(s.Current, "day", "days")) + Dim(fmt.Sprintf(" (best %d)", s.Longest))
}
