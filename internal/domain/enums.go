package domain

// SessionKind is the kind of countdown interval the timer runs.
type SessionKind string

const (
	KindWork       SessionKind = "work"
	KindShortBreak SessionKind = "short_break"
	KindLongBreak  SessionKind = "long_break"
)

// ValidSessionKinds is the canonical set of accepted session kind strings.
var ValidSessionKinds = map[string]bool{
	"work": true, "short_break": true, "long_break": true,
}

// IsBreak reports whether k is one of the two break kinds.
func (k SessionKind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// Label returns a human-readable name for the kind.
func (k SessionKind) Label() string {
	switch k {
	case KindWork:
		return "Focus"
	case KindShortBreak:
		return "Short Break"
	case KindLongBreak:
		return "Long Break"
	default:
		return string(k)
	}
}

type TimerState string

const (
	StateIdle       TimerState = "idle"
	StateWorking    TimerState = "working"
	StateShortBreak TimerState = "short_break"
	StateLongBreak  TimerState = "long_break"
	StatePaused     TimerState = "paused"
)

// IsRunning reports whether the state counts down on every tick.
func (s TimerState) IsRunning() bool {
	switch s {
	case StateWorking, StateShortBreak, StateLongBreak:
		return true
	default:
		return false
	}
}

// RunningStateFor maps a session kind to the timer state that runs it.
func RunningStateFor(k SessionKind) TimerState {
	switch k {
	case KindShortBreak:
		return StateShortBreak
	case KindLongBreak:
		return StateLongBreak
	default:
		return StateWorking
	}
}

type UnlockCategory string

const (
	CategoryTheme     UnlockCategory = "theme"
	CategoryCompanion UnlockCategory = "companion"
	CategoryTitle     UnlockCategory = "title"
)

// ValidUnlockCategories is the canonical set of accepted unlock categories.
var ValidUnlockCategories = map[string]bool{
	"theme": true, "companion": true, "title": true,
}
