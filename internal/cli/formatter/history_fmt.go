package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusquest/internal/domain"
)

// FormatHistory renders today's completed work sessions, newest first.
func FormatHistory(sessions []*domain.SessionRecord) string {
	if len(sessions) == 0 {
		return Dim("No completed sessions today.") + "\n"
	}

	headers := []string{"ID", "STARTED", "ENDED", "LENGTH", "TASK"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		ended := Dim("--")
		if s.EndTime != nil {
			ended = s.EndTime.Local().Format("15:04")
		}
		task := s.TaskLabel
		if strings.TrimSpace(task) == "" {
			task = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			s.StartTime.Local().Format("15:04"),
			ended,
			FormatMinutes(s.DurationMinutes()),
			task,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s\n", Dim(Plural(len(sessions), "session", "sessions")))
	return b.String()
}
