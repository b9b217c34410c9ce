package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/app"
	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
)

const xpBarWidth = 20

// FormatStatus formats the player card.
func FormatStatus(v *app.StatusView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n",
		StyleHeader.Render(fmt.Sprintf("LEVEL %d", v.Level.Level)),
		Bold(v.Level.Title))
	fmt.Fprintf(&b, "%s\n", renderLevelBar(v.Level))
	if v.Level.Maxed {
		fmt.Fprintf(&b, "%s\n\n", Dim(fmt.Sprintf("%d XP total", v.Level.TotalXP)))
	} else {
		fmt.Fprintf(&b, "%s\n\n", Dim(fmt.Sprintf("%d XP total · %d to next level", v.Level.TotalXP, v.Level.ToNext)))
	}

	rows := [][]string{
		{"Streak", streakLabel(v.CurrentStreak) + Dim(fmt.Sprintf("  (best %d)", v.LongestStreak))},
		{"Sessions", fmt.Sprintf("%d", v.TotalSessions)},
		{"Focus time", FormatMinutes(v.TotalMinutes)},
		{"Theme", itemName(domain.CategoryTheme, v.Theme)},
		{"Companion", itemName(domain.CategoryCompanion, v.Companion)},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-12s %s\n", Dim(r[0]), r[1])
	}
	return b.String()
}

func streakLabel(days int) string {
	if days <= 0 {
		return Dim("no streak")
	}
	return StyleYellow.Render("🔥 " + Plural(days, "day", "days"))
}

func itemName(category domain.UnlockCategory, key string) string {
	if it, ok := catalog.Default().Get(category, key); ok {
		return it.Name
	}
	return key
}
