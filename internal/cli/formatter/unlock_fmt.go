package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/service"
)

var collectionSections = []struct {
	category domain.UnlockCategory
	title    string
}{
	{domain.CategoryTheme, "Themes"},
	{domain.CategoryCompanion, "Companions"},
	{domain.CategoryTitle, "Titles"},
}

// FormatCollection renders every catalog item grouped by category, with
// its lock state and requirement.
func FormatCollection(entries []service.CollectionEntry) string {
	var b strings.Builder
	for i, sec := range collectionSections {
		if i > 0 {
			b.WriteString("\n")
		}
		owned, total := 0, 0
		var rows [][]string
		for _, e := range entries {
			if e.Item.Category != sec.category {
				continue
			}
			total++
			if e.Unlocked {
				owned++
			}
			rows = append(rows, []string{unlockState(e), Bold(e.Item.Name), e.Item.Key, requirement(e), Dim(e.Item.Description)})
		}
		fmt.Fprintf(&b, "%s %s\n", Header(sec.title), Dim(fmt.Sprintf("%d/%d", owned, total)))
		b.WriteString(RenderTable([]string{"", "NAME", "KEY", "NEEDS", "ABOUT"}, rows))
	}
	return b.String()
}

func unlockState(e service.CollectionEntry) string {
	switch {
	case e.Equipped:
		return StyleGreen.Render("●")
	case e.Unlocked:
		return StyleFg.Render("○")
	default:
		return StyleDim.Render("🔒")
	}
}

func requirement(e service.CollectionEntry) string {
	if e.Item.Category == domain.CategoryTitle {
		return Plural(e.Item.RequiredSessions, "session", "sessions")
	}
	return fmt.Sprintf("level %d", e.Item.RequiredLevel)
}
