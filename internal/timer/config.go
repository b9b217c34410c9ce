package timer

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
)

const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
	DefaultRoundsPerCycle    = 4

	// MinDurationSeconds is the floor applied to every configured duration.
	MinDurationSeconds = 60

	// ExtendSeconds is the default flow-state extension.
	ExtendSeconds = 5 * 60

	// breakWarningSeconds opens the "break ending soon" window.
	breakWarningSeconds = 60
)

// MicroPresets are the suggested micro-session lengths in minutes.
var MicroPresets = []int{10, 15}

// ErrPersistence marks every store failure surfaced by an engine operation.
var ErrPersistence = errors.New("timer persistence failed")

// Config is the plain configuration the engine consumes.
type Config struct {
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int
	RoundsPerCycle    int
	AutoAdvance       bool
	// Persist gates every Recorder call, streak updates included.
	Persist bool
}

// DefaultConfig returns the classic 25/5/15 x4 cycle with persistence on.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:       DefaultWorkSeconds,
		ShortBreakSeconds: DefaultShortBreakSeconds,
		LongBreakSeconds:  DefaultLongBreakSeconds,
		RoundsPerCycle:    DefaultRoundsPerCycle,
		Persist:           true,
	}
}

// Recorder is the persistence collaborator of the engine.
type Recorder interface {
	// StartSession creates an open record and returns its identifier.
	StartSession(ctx context.Context, kind domain.SessionKind, startedAt time.Time, taskLabel string) (string, error)
	// CompleteSession closes the record with its final duration.
	CompleteSession(ctx context.Context, id string, endedAt time.Time, durationSeconds int) error
	// UpdateStreak folds a completed work session on day into the streak.
	UpdateStreak(ctx context.Context, day time.Time) (domain.StreakResult, error)
}

// Option configures an Engine at construction.
type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

func clampDuration(seconds int) int {
	if seconds < MinDurationSeconds {
		return MinDurationSeconds
	}
	return seconds
}
