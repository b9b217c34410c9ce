package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/leveling"
)

// FormatLevelCurve renders the cumulative XP table for levels 1..maxLevel.
func FormatLevelCurve(maxLevel int) string {
	rows := make([][]string, 0, maxLevel)
	maxLevel = min(maxLevel, leveling.MaxLevel)
	for l := 1; l <= maxLevel; l++ {
		toNext := "-"
		if l < leveling.MaxLevel {
			toNext = fmt.Sprintf("%d", leveling.XPDeltaForLevel(l))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", l),
			fmt.Sprintf("%d", leveling.XPForLevel(l)),
			toNext,
			leveling.TitleForLevel(l),
		})
	}
	return RenderTable([]string{"LEVEL", "TOTAL XP", "TO NEXT", "TITLE"}, rows)
}

// FormatLevelFor explains where total sits on the curve.
func FormatLevelFor(total int) string {
	p := leveling.ProgressInLevel(total)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(fmt.Sprintf("LEVEL %d", p.Level)), Bold(p.Title))
	fmt.Fprintf(&b, "%s\n", renderLevelBar(p))
	if p.Maxed {
		fmt.Fprintf(&b, "%s\n", Dim("Top of the curve"))
	} else {
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d XP to level %d", p.ToNext, p.Level+1)))
	}
	return b.String()
}

func renderLevelBar(p leveling.LevelProgress) string {
	if !p.Maxed {
		return RenderXPBar(p.Earned, p.Needed, xpBarWidth)
	}
	_, filled, _ := clampBar(1, xpBarWidth)
	return fmt.Sprintf("[%s] MAX LEVEL", StylePurple.Render(strings.Repeat(filledBlock, filled)))
}
