// Package timer implements the Pomodoro state machine.
//
//	IDLE -> WORKING | SHORT_BREAK | LONG_BREAK   (Start, StartMicro)
//	running -> PAUSED -> running                  (Pause, Resume)
//	running -> IDLE or next session               (Tick reaching zero)
//	any -> IDLE                                   (Reset, Skip)
//
// The engine never schedules anything itself: an external clock calls Tick
// once per second while a running state is active, and every call runs to
// completion before returning. Commands that are not valid in the current
// state are silent no-ops.
package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
)

// Engine is the session state machine. It is not safe for concurrent use;
// a single driver owns it.
type Engine struct {
	durations      map[domain.SessionKind]int
	roundsPerCycle int
	autoAdvance    bool
	persist        bool

	recorder  Recorder
	now       func() time.Time
	listeners []Listener

	state      domain.TimerState
	pausedFrom domain.TimerState // empty unless state is PAUSED
	kind       domain.SessionKind
	round      int

	remaining   int
	total       int // grows with Extend
	startTime   time.Time
	taskLabel   string
	micro       bool
	extensions  int
	sessionID   string
	breakWarned bool
}

// New returns an idle engine with WORK pending at round 1.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		durations: map[domain.SessionKind]int{
			domain.KindWork:       clampDuration(cfg.WorkSeconds),
			domain.KindShortBreak: clampDuration(cfg.ShortBreakSeconds),
			domain.KindLongBreak:  clampDuration(cfg.LongBreakSeconds),
		},
		roundsPerCycle: max(1, cfg.RoundsPerCycle),
		autoAdvance:    cfg.AutoAdvance,
		persist:        cfg.Persist,
		now:            time.Now,
		state:          domain.StateIdle,
		kind:           domain.KindWork,
		round:          1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.remaining = e.durations[e.kind]
	e.total = e.remaining
	return e
}

// Subscribe registers l after any listener already registered.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// ── accessors ────────────────────────────────────────────────────────────────

func (e *Engine) State() domain.TimerState      { return e.state }
func (e *Engine) PausedFrom() domain.TimerState { return e.pausedFrom }

// Kind is the kind of the running session, or the pending one when idle.
func (e *Engine) Kind() domain.SessionKind { return e.kind }

func (e *Engine) Remaining() int      { return e.remaining }
func (e *Engine) TotalDuration() int  { return e.total }
func (e *Engine) Round() int          { return e.round }
func (e *Engine) RoundsPerCycle() int { return e.roundsPerCycle }
func (e *Engine) IsRunning() bool     { return e.state.IsRunning() }
func (e *Engine) IsMicro() bool       { return e.micro }
func (e *Engine) Extensions() int     { return e.extensions }
func (e *Engine) SessionID() string   { return e.sessionID }
func (e *Engine) TaskLabel() string   { return e.taskLabel }
func (e *Engine) AutoAdvance() bool   { return e.autoAdvance }

func (e *Engine) SetTaskLabel(label string) { e.taskLabel = label }
func (e *Engine) SetAutoAdvance(on bool)    { e.autoAdvance = on }

// PercentComplete is the elapsed share of the current session in [0, 1].
func (e *Engine) PercentComplete() float64 {
	if e.total <= 0 {
		return 0
	}
	p := float64(e.total-e.remaining) / float64(e.total)
	return min(1, max(0, p))
}

func (e *Engine) DurationFor(kind domain.SessionKind) int {
	return e.durations[kind]
}

// SetDuration overrides the configured duration of kind, floored at one
// minute. An idle engine with kind pending shows the new value at once.
func (e *Engine) SetDuration(kind domain.SessionKind, seconds int) {
	e.durations[kind] = clampDuration(seconds)
	if e.state == domain.StateIdle && e.kind == kind {
		e.remaining = e.durations[kind]
		e.total = e.remaining
	}
}

// SetRoundsPerCycle changes the cycle length, floored at 1.
func (e *Engine) SetRoundsPerCycle(n int) {
	e.roundsPerCycle = max(1, n)
}

// ── controls ─────────────────────────────────────────────────────────────────

// Start begins the pending session. Only valid from IDLE.
func (e *Engine) Start(ctx context.Context) error {
	if e.state != domain.StateIdle {
		return nil
	}
	return e.begin(ctx, e.kind, e.durations[e.kind], false)
}

// StartMicro begins a shortened work session regardless of what was
// pending. Only valid from IDLE. Non-positive minutes fall back to the
// smallest preset.
func (e *Engine) StartMicro(ctx context.Context, minutes int) error {
	if e.state != domain.StateIdle {
		return nil
	}
	if minutes <= 0 {
		minutes = MicroPresets[0]
	}
	return e.begin(ctx, domain.KindWork, minutes*60, true)
}

// Pause freezes a running session. It never touches XP or streaks.
func (e *Engine) Pause(ctx context.Context) {
	if !e.state.IsRunning() {
		return
	}
	e.pausedFrom = e.state
	e.setState(ctx, domain.StatePaused)
}

// Resume restores the state the session was paused from.
func (e *Engine) Resume(ctx context.Context) {
	if e.state != domain.StatePaused || e.pausedFrom == "" {
		return
	}
	restore := e.pausedFrom
	e.pausedFrom = ""
	e.setState(ctx, restore)
}

// Reset abandons the current session. The open record, if any, is left
// uncompleted for good.
func (e *Engine) Reset(ctx context.Context) {
	e.clearSession()
	e.rewind()
	e.setState(ctx, domain.StateIdle)
}

// Skip advances the cycle without completing anything. It always notifies,
// even when already idle, so observers see the new pending kind.
func (e *Engine) Skip(ctx context.Context) {
	e.clearSession()
	e.advance()
	e.rewind()
	e.setState(ctx, domain.StateIdle)
}

// Extend adds seconds to an active or paused work session. Breaks and idle
// engines ignore it, as do non-positive amounts.
func (e *Engine) Extend(ctx context.Context, seconds int) {
	active := e.state
	if active == domain.StatePaused {
		active = e.pausedFrom
	}
	if active != domain.StateWorking || seconds <= 0 {
		return
	}
	e.remaining += seconds
	e.total += seconds
	e.extensions++
	e.emitTick(ctx)
}

// Tick consumes one second of a running session. When the countdown hits
// zero the session completes and the cycle advances; store failures during
// that step are returned after the transition has finished, so the next
// Tick always sees a consistent engine.
func (e *Engine) Tick(ctx context.Context) error {
	if !e.state.IsRunning() {
		return nil
	}
	e.remaining = max(0, e.remaining-1)
	e.emitTick(ctx)

	if !e.breakWarned && e.kind.IsBreak() && e.remaining > 0 && e.remaining <= breakWarningSeconds {
		e.breakWarned = true
		e.emitBreakEndingSoon(ctx)
	}

	if e.remaining == 0 {
		return e.finish(ctx)
	}
	return nil
}

// ── internals ────────────────────────────────────────────────────────────────

// begin persists the start first and only then mutates state, so a store
// failure leaves the engine exactly where it was.
func (e *Engine) begin(ctx context.Context, kind domain.SessionKind, duration int, micro bool) error {
	start := e.now()
	id, err := e.persistStart(ctx, kind, start)
	if err != nil {
		return err
	}

	e.kind = kind
	e.remaining = duration
	e.total = duration
	e.startTime = start
	e.micro = micro
	e.extensions = 0
	e.breakWarned = false
	e.sessionID = id
	e.setState(ctx, domain.RunningStateFor(kind))
	return nil
}

func (e *Engine) finish(ctx context.Context) error {
	end := e.now()
	c := Completion{
		Kind:            e.kind,
		DurationSeconds: e.total,
		StartTime:       e.startTime,
		EndTime:         end,
		TaskLabel:       e.taskLabel,
		Round:           e.round,
		RoundsPerCycle:  e.roundsPerCycle,
		Micro:           e.micro,
		Extensions:      e.extensions,
		SessionID:       e.sessionID,
	}

	var errs []error
	if err := e.persistComplete(ctx, c.SessionID, end, c.DurationSeconds); err != nil {
		errs = append(errs, err)
	}
	e.sessionID = ""

	e.emitCompleted(ctx, c)

	if c.Kind == domain.KindWork && e.persistEnabled() {
		streak, err := e.recorder.UpdateStreak(ctx, end)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: updating streak: %w", ErrPersistence, err))
		} else {
			e.emitStreak(ctx, streak)
		}
	}

	e.advance()
	e.micro = false
	e.extensions = 0
	e.rewind()

	if e.autoAdvance {
		err := e.begin(ctx, e.kind, e.durations[e.kind], false)
		if err == nil {
			return errors.Join(errs...)
		}
		// The next session never started; fall back to waiting for a click.
		errs = append(errs, err)
	}
	e.startTime = time.Time{}
	e.setState(ctx, domain.StateIdle)
	return errors.Join(errs...)
}

// advance moves kind and round to the next position in the cycle. The
// round only moves once the break that follows a work session is over.
func (e *Engine) advance() {
	switch e.kind {
	case domain.KindWork:
		if e.round >= e.roundsPerCycle {
			e.kind = domain.KindLongBreak
		} else {
			e.kind = domain.KindShortBreak
		}
	case domain.KindShortBreak:
		e.round++
		e.kind = domain.KindWork
	case domain.KindLongBreak:
		e.round = 1
		e.kind = domain.KindWork
	}
}

func (e *Engine) clearSession() {
	e.pausedFrom = ""
	e.sessionID = ""
	e.startTime = time.Time{}
	e.micro = false
	e.extensions = 0
	e.breakWarned = false
}

// rewind restores the full duration of the pending kind.
func (e *Engine) rewind() {
	e.remaining = e.durations[e.kind]
	e.total = e.remaining
}

func (e *Engine) setState(ctx context.Context, s domain.TimerState) {
	e.state = s
	e.emitState(ctx)
}

func (e *Engine) persistEnabled() bool {
	return e.persist && e.recorder != nil
}

func (e *Engine) persistStart(ctx context.Context, kind domain.SessionKind, start time.Time) (string, error) {
	if !e.persistEnabled() {
		return "", nil
	}
	id, err := e.recorder.StartSession(ctx, kind, start, e.taskLabel)
	if err != nil {
		return "", fmt.Errorf("%w: recording session start: %w", ErrPersistence, err)
	}
	return id, nil
}

func (e *Engine) persistComplete(ctx context.Context, id string, end time.Time, duration int) error {
	if !e.persistEnabled() || id == "" {
		return nil
	}
	if err := e.recorder.CompleteSession(ctx, id, end, duration); err != nil {
		return fmt.Errorf("%w: recording session completion: %w", ErrPersistence, err)
	}
	return nil
}
