package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int, int) {
	pct = max(0, min(pct, 1))
	width = max(width, 2)
	filled := min(int(pct*float64(width)), width)
	return pct, filled, width - filled
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, filled, empty := clampBar(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderCompactBar renders only the blocks, without brackets or
// percentage. A dimmed bar carries no color.
func RenderCompactBar(pct float64, width int, dim bool) string {
	_, filled, empty := clampBar(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	if dim {
		return bar
	}
	return StyleBlue.Render(bar)
}

// RenderXPBar renders the in-level XP bar with its "earned / needed" tail.
func RenderXPBar(earned, needed, width int) string {
	pct := 0.0
	if needed > 0 {
		pct = float64(earned) / float64(needed)
	}
	_, filled, empty := clampBar(pct, width)
	bar := StylePurple.Render(strings.Repeat(filledBlock, filled)) + Dim(strings.Repeat(emptyBlock, empty))
	return fmt.Sprintf("[%s] %d / %d XP", bar, earned, needed)
}
