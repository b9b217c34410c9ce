package domain

import "time"

// SessionRecord is one persisted timer session, work or break.
// A record whose Completed flag is false was either still running or
// abandoned by a reset/skip; abandoned records are never completed later.
type SessionRecord struct {
	ID              string
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds int
	Kind            SessionKind
	Completed       bool
	TaskLabel       string
	XPAwarded       bool
}

// Complete marks the record finished at end with the final duration,
// extensions included.
func (s *SessionRecord) Complete(end time.Time, durationSeconds int) {
	s.EndTime = &end
	s.DurationSeconds = durationSeconds
	s.Completed = true
}

// DurationMinutes returns the whole minutes of the recorded duration.
func (s *SessionRecord) DurationMinutes() int {
	return s.DurationSeconds / 60
}
