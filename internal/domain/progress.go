package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage format of calendar dates.
const DateLayout = "2006-01-02"

// DefaultProgressID is the key of the singleton progress row.
const DefaultProgressID = "default"

// UserProgress is the singleton player record.
type UserProgress struct {
	ID                     string
	TotalXP                int
	CurrentLevel           int
	TotalSessionsCompleted int
	TotalFocusMinutes      int
	CurrentStreakDays      int
	LongestStreakDays      int
	LastSessionDate        *time.Time
}

// StreakResult is the (current, longest) pair reported after a streak update.
type StreakResult struct {
	Current int
	Longest int
}

// ApplyStreak folds a completed work session on day into the streak fields.
// Consecutive days extend the streak, the same day leaves it alone and any
// other gap (including a day earlier than the last one) restarts it at 1.
func (p *UserProgress) ApplyStreak(day time.Time) StreakResult {
	day = DateOf(day)
	if p.LastSessionDate == nil {
		p.CurrentStreakDays = 1
	} else {
		switch DaysBetween(*p.LastSessionDate, day) {
		case 0:
		case 1:
			p.CurrentStreakDays++
		default:
			p.CurrentStreakDays = 1
		}
	}
	p.LastSessionDate = &day
	if p.CurrentStreakDays > p.LongestStreakDays {
		p.LongestStreakDays = p.CurrentStreakDays
	}
	return StreakResult{Current: p.CurrentStreakDays, Longest: p.LongestStreakDays}
}

// DailyStats aggregates one calendar day of completed work sessions.
type DailyStats struct {
	Date              time.Time
	SessionsCompleted int
	FocusMinutes      int
	XPEarned          int
	TasksCompleted    int
}

// NewDailyStats returns an empty row for day.
func NewDailyStats(day time.Time) *DailyStats {
	return &DailyStats{Date: DateOf(day)}
}

// IsFirstSession reports whether no work session has been counted yet.
func (d *DailyStats) IsFirstSession() bool {
	return d == nil || d.SessionsCompleted == 0
}

// ApplySession adds one completed work session to the day.
// The task counter only moves when a non-blank label was given.
func (d *DailyStats) ApplySession(minutes, xp int, taskLabel string) {
	d.SessionsCompleted++
	d.FocusMinutes += minutes
	d.XPEarned += xp
	if strings.TrimSpace(taskLabel) != "" {
		d.TasksCompleted++
	}
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
