package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/service"
)

const weekBarWidth = 24

// heatLevels shade a day of the 30-day strip by its focus minutes.
var heatLevels = []struct {
	minMinutes int
	glyph      string
}{
	{100, "█"},
	{50, "▓"},
	{25, "▒"},
	{1, "░"},
}

// FormatStats renders the full stats snapshot.
func FormatStats(s *service.StatsSnapshot) string {
	var b strings.Builder

	b.WriteString(Header("Today"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · %s · %s\n\n",
		Plural(s.TodaySessions, "session", "sessions"),
		FormatMinutes(s.TodayMinutes),
		StylePurple.Render(fmt.Sprintf("%d XP", s.TodayXP)))

	b.WriteString(Header("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(formatWeek(s.Weekly))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Total"), FormatMinutes(s.WeeklyTotalMinutes))

	b.WriteString(Header("Last 30 days"))
	b.WriteString("\n")
	b.WriteString(formatMonth(s.Monthly))
	b.WriteString("\n\n")

	b.WriteString(Header("All time"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-18s %s\n", Dim("Level"), fmt.Sprintf("%d · %s · %d XP", s.Level, s.Title, s.TotalXP))
	fmt.Fprintf(&b, "%-18s %d\n", Dim("Sessions"), s.TotalSessions)
	fmt.Fprintf(&b, "%-18s %s\n", Dim("Focus time"), FormatMinutes(s.TotalMinutes))
	fmt.Fprintf(&b, "%-18s %d %s\n", Dim("Streak"), s.CurrentStreak, Dim(fmt.Sprintf("(best %d)", s.LongestStreak)))
	fmt.Fprintf(&b, "%-18s %.1f\n", Dim("Sessions per day"), s.AvgSessionsPerDay)
	fav := Dim("--")
	if s.FavoriteHour != nil {
		fav = FormatHour(*s.FavoriteHour)
	}
	fmt.Fprintf(&b, "%-18s %s\n", Dim("Favorite hour"), fav)

	if s.NextUnlock != nil {
		b.WriteString("\n")
		b.WriteString(Header("Coming up"))
		b.WriteString("\n")
		b.WriteString(FormatTeasers(s.Teasers))
	}
	return b.String()
}

func formatWeek(days []service.DayMinutes) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Minutes)
	}
	var b strings.Builder
	for _, d := range days {
		pct := 0.0
		if peak > 0 {
			pct = float64(d.Minutes) / float64(peak)
		}
		label := d.Label
		if d.IsToday {
			label = StyleHeader.Render(label)
		}
		fmt.Fprintf(&b, "%s  %s %s\n", label, RenderCompactBar(pct, weekBarWidth, !d.IsToday), Dim(FormatMinutes(d.Minutes)))
	}
	return b.String()
}

func formatMonth(days []service.DayTotals) string {
	var strip strings.Builder
	sessions, minutes, active := 0, 0, 0
	for _, d := range days {
		strip.WriteString(heatGlyph(d.Minutes))
		sessions += d.Sessions
		minutes += d.Minutes
		if d.Sessions > 0 {
			active++
		}
	}
	return StyleGreen.Render(strip.String()) + "\n" +
		Dim(fmt.Sprintf("%s · %s · %s active",
			Plural(sessions, "session", "sessions"), FormatMinutes(minutes), Plural(active, "day", "days")))
}

func heatGlyph(minutes int) string {
	for _, l := range heatLevels {
		if minutes >= l.minMinutes {
			return l.glyph
		}
	}
	return "·"
}

// FormatTeasers lists upcoming items with the level that unlocks them.
func FormatTeasers(items []catalog.Item) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleYellow.Render(fmt.Sprintf("Lv %2d", it.RequiredLevel)),
			Bold(it.Name),
			Dim(it.PreviewDescription))
	}
	return b.String()
}
