package timer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

// fakeRecorder is an in-memory Recorder with injectable failures.
type fakeRecorder struct {
	nextID    int
	started   map[string]domain.SessionKind
	labels    map[string]string
	completed map[string]int
	streakDay []time.Time

	failStart    error
	failComplete error
	failStreak   error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		started:   map[string]domain.SessionKind{},
		labels:    map[string]string{},
		completed: map[string]int{},
	}
}

func (f *fakeRecorder) StartSession(_ context.Context, kind domain.SessionKind, _ time.Time, label string) (string, error) {
	if f.failStart != nil {
		return "", f.failStart
	}
	f.nextID++
	id := fmt.Sprintf("s%d", f.nextID)
	f.started[id] = kind
	f.labels[id] = label
	return id, nil
}

func (f *fakeRecorder) CompleteSession(_ context.Context, id string, _ time.Time, duration int) error {
	if f.failComplete != nil {
		return f.failComplete
	}
	f.completed[id] = duration
	return nil
}

func (f *fakeRecorder) UpdateStreak(_ context.Context, day time.Time) (domain.StreakResult, error) {
	if f.failStreak != nil {
		return domain.StreakResult{}, f.failStreak
	}
	f.streakDay = append(f.streakDay, day)
	return domain.StreakResult{Current: len(f.streakDay), Longest: len(f.streakDay)}, nil
}

// recordingListener captures every event in order.
type recordingListener struct {
	events      []string
	states      []domain.TimerState
	ticks       []int
	completions []Completion
	streaks     []domain.StreakResult
	warnings    int
}

func (r *recordingListener) OnStateChanged(_ context.Context, s domain.TimerState) {
	r.events = append(r.events, "state:"+string(s))
	r.states = append(r.states, s)
}

func (r *recordingListener) OnTick(_ context.Context, remaining int) {
	r.ticks = append(r.ticks, remaining)
}

func (r *recordingListener) OnSessionCompleted(_ context.Context, c Completion) {
	r.events = append(r.events, "completed:"+string(c.Kind))
	r.completions = append(r.completions, c)
}

func (r *recordingListener) OnStreakUpdated(_ context.Context, s domain.StreakResult) {
	r.events = append(r.events, "streak")
	r.streaks = append(r.streaks, s)
}

func (r *recordingListener) OnBreakEndingSoon(context.Context) {
	r.events = append(r.events, "break_ending")
	r.warnings++
}

func shortConfig() Config {
	return Config{
		WorkSeconds:       60,
		ShortBreakSeconds: 60,
		LongBreakSeconds:  120,
		RoundsPerCycle:    4,
		Persist:           true,
	}
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *fakeRecorder, *recordingListener) {
	t.Helper()
	rec := newFakeRecorder()
	lis := &recordingListener{}
	clock := testStart
	e := New(cfg,
		WithRecorder(rec),
		WithListener(lis),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return e, rec, lis
}

func runOut(t *testing.T, e *Engine) error {
	t.Helper()
	ctx := context.Background()
	var last error
	for i := 0; i < 100000 && e.IsRunning(); i++ {
		if err := e.Tick(ctx); err != nil {
			last = err
		}
	}
	require.False(t, e.State() == domain.StatePaused)
	return last
}

func TestNew_Defaults(t *testing.T) {
	e := New(DefaultConfig())
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Equal(t, domain.KindWork, e.Kind())
	assert.Equal(t, 1, e.Round())
	assert.Equal(t, 4, e.RoundsPerCycle())
	assert.Equal(t, 1500, e.Remaining())
	assert.Equal(t, 1500, e.TotalDuration())
	assert.Equal(t, 0.0, e.PercentComplete())
}

func TestNew_ClampsConfig(t *testing.T) {
	e := New(Config{WorkSeconds: 10, ShortBreakSeconds: -5, LongBreakSeconds: 0, RoundsPerCycle: 0})
	assert.Equal(t, 60, e.DurationFor(domain.KindWork))
	assert.Equal(t, 60, e.DurationFor(domain.KindShortBreak))
	assert.Equal(t, 60, e.DurationFor(domain.KindLongBreak))
	assert.Equal(t, 1, e.RoundsPerCycle())
}

func TestStart_OnlyFromIdle(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	assert.Equal(t, domain.StateWorking, e.State())
	assert.Equal(t, "s1", e.SessionID())

	require.NoError(t, e.Start(ctx))
	assert.Len(t, rec.started, 1, "second start is a no-op")
	assert.Equal(t, []domain.TimerState{domain.StateWorking}, lis.states)
}

func TestStart_PersistsTaskLabel(t *testing.T) {
	e, rec, _ := newTestEngine(t, shortConfig())
	e.SetTaskLabel("write report")
	require.NoError(t, e.Start(context.Background()))
	assert.Equal(t, "write report", rec.labels["s1"])
}

func TestStart_StoreFailureLeavesEngineIdle(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	rec.failStart = errors.New("disk full")

	err := e.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Empty(t, e.SessionID())
	assert.Empty(t, lis.states)
}

func TestStartMicro(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	e.Skip(ctx) // queue a short break first
	require.Equal(t, domain.KindShortBreak, e.Kind())

	require.NoError(t, e.StartMicro(ctx, 10))
	assert.Equal(t, domain.StateWorking, e.State())
	assert.Equal(t, domain.KindWork, e.Kind())
	assert.Equal(t, 600, e.Remaining())
	assert.Equal(t, 600, e.TotalDuration())
	assert.True(t, e.IsMicro())

	require.NoError(t, runOut(t, e))
	require.Len(t, lis.completions, 1)
	c := lis.completions[0]
	assert.True(t, c.Micro)
	assert.Equal(t, domain.KindWork, c.Kind)
	assert.Equal(t, 600, c.DurationSeconds)
	assert.Equal(t, 1, c.Round)

	// Advances exactly like a normal work session.
	assert.Equal(t, domain.KindShortBreak, e.Kind())
	assert.Equal(t, 1, e.Round())
	assert.False(t, e.IsMicro())
}

func TestStartMicro_IgnoredWhenNotIdle(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()
	require.NoError(t, e.Start(ctx))
	require.NoError(t, e.StartMicro(ctx, 15))
	assert.Equal(t, 60, e.TotalDuration())
	assert.False(t, e.IsMicro())
}

func TestStartMicro_NonPositiveFallsBackToPreset(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	require.NoError(t, e.StartMicro(context.Background(), 0))
	assert.Equal(t, MicroPresets[0]*60, e.Remaining())
}

func TestPauseResume_NoTimeLostOrGained(t *testing.T) {
	e, _, lis := newTestEngine(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	require.NoError(t, e.Tick(ctx))
	require.NoError(t, e.Tick(ctx))
	e.Pause(ctx)
	atPause := e.Remaining()
	assert.Equal(t, domain.StatePaused, e.State())
	assert.Equal(t, domain.StateWorking, e.PausedFrom())

	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, atPause, e.Remaining(), "paused engines ignore ticks")

	e.Resume(ctx)
	assert.Equal(t, domain.StateWorking, e.State())
	assert.Empty(t, e.PausedFrom())
	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, atPause-1, e.Remaining())

	assert.Equal(t, []domain.TimerState{
		domain.StateWorking, domain.StatePaused, domain.StateWorking,
	}, lis.states)
}

func TestPauseResume_InvalidAreNoOps(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()
	e.Pause(ctx)
	e.Resume(ctx)
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Empty(t, lis.states)
}

func TestPause_FromBreakResumesBreak(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()
	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	e.Pause(ctx)
	assert.Equal(t, domain.StateShortBreak, e.PausedFrom())
	e.Resume(ctx)
	assert.Equal(t, domain.StateShortBreak, e.State())
}

func TestReset_AbandonsWithoutCompleting(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	require.NoError(t, e.StartMicro(ctx, 15))
	e.Extend(ctx, 120)
	require.NoError(t, e.Tick(ctx))
	e.Reset(ctx)

	assert.Equal(t, domain.StateIdle, e.State())
	assert.Equal(t, domain.KindWork, e.Kind())
	assert.Equal(t, 1, e.Round())
	assert.Equal(t, 60, e.Remaining())
	assert.Equal(t, 60, e.TotalDuration())
	assert.False(t, e.IsMicro())
	assert.Zero(t, e.Extensions())
	assert.Empty(t, e.SessionID())
	assert.Empty(t, rec.completed)
	assert.Empty(t, lis.completions)
	assert.Empty(t, rec.streakDay)
}

func TestReset_FromPausedClearsPausedFrom(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()
	require.NoError(t, e.Start(ctx))
	e.Pause(ctx)
	e.Reset(ctx)
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Empty(t, e.PausedFrom())
	e.Resume(ctx)
	assert.Equal(t, domain.StateIdle, e.State())
}

func TestSkip_AdvancesWithoutCompletion(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	e.Skip(ctx)

	assert.Equal(t, domain.StateIdle, e.State())
	assert.Equal(t, domain.KindShortBreak, e.Kind())
	assert.Equal(t, 1, e.Round())
	assert.Equal(t, 60, e.Remaining())
	assert.Empty(t, rec.completed)
	assert.Empty(t, lis.completions)
	assert.Empty(t, lis.streaks)
}

func TestSkip_NotifiesEvenWhenIdle(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	e.Skip(ctx)
	e.Skip(ctx)

	assert.Equal(t, []domain.TimerState{domain.StateIdle, domain.StateIdle}, lis.states)
	assert.Equal(t, domain.KindWork, e.Kind())
	assert.Equal(t, 2, e.Round())
}

func TestExtend(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	e.Extend(ctx, 300)
	assert.Equal(t, 60, e.Remaining(), "idle ignores extend")

	require.NoError(t, e.Start(ctx))
	e.Extend(ctx, 300)
	assert.Equal(t, 360, e.Remaining())
	assert.Equal(t, 360, e.TotalDuration())
	assert.Equal(t, 1, e.Extensions())
	assert.Equal(t, []int{360}, lis.ticks, "extend re-notifies remaining")

	e.Extend(ctx, 0)
	e.Extend(ctx, -30)
	assert.Equal(t, 1, e.Extensions())

	require.NoError(t, runOut(t, e))
	require.Len(t, lis.completions, 1)
	assert.Equal(t, 360, lis.completions[0].DurationSeconds)
	assert.Equal(t, 1, lis.completions[0].Extensions)
	assert.Zero(t, e.Extensions())
}

func TestExtend_PausedOnlyFromWorking(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	e.Pause(ctx)
	e.Extend(ctx, 120)
	assert.Equal(t, 180, e.Remaining())

	e.Reset(ctx)
	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	e.Pause(ctx)
	e.Extend(ctx, 120)
	assert.Equal(t, 60, e.Remaining(), "paused-from-break ignores extend")
}

func TestPercentComplete_StaysInRange(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()
	require.NoError(t, e.Start(ctx))

	for i := 0; i < 59; i++ {
		require.NoError(t, e.Tick(ctx))
		p := e.PercentComplete()
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if i%10 == 0 {
			e.Extend(ctx, 30)
		}
	}
	assert.Greater(t, e.PercentComplete(), 0.0)
}

func TestTick_CompletionOrdering(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()
	e.SetTaskLabel("inbox zero")

	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))

	assert.Equal(t, []string{
		"state:working",
		"completed:work",
		"streak",
		"state:idle",
	}, lis.events)

	require.Len(t, lis.completions, 1)
	c := lis.completions[0]
	assert.Equal(t, "s1", c.SessionID)
	assert.Equal(t, 60, c.DurationSeconds)
	assert.Equal(t, "inbox zero", c.TaskLabel)
	assert.Equal(t, 1, c.Round)
	assert.Equal(t, 4, c.RoundsPerCycle)
	assert.True(t, c.EndTime.After(c.StartTime))
	assert.Equal(t, 60, rec.completed["s1"])
	assert.Len(t, rec.streakDay, 1)

	assert.Empty(t, e.SessionID())
	assert.Equal(t, domain.KindShortBreak, e.Kind())
	assert.Equal(t, 60, e.Remaining())
	assert.Equal(t, 0, lis.ticks[len(lis.ticks)-1])
}

func TestTick_BreakCompletionSkipsStreak(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()
	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))

	require.Len(t, lis.completions, 1)
	assert.Equal(t, domain.KindShortBreak, lis.completions[0].Kind)
	assert.Empty(t, rec.streakDay)
	assert.Empty(t, lis.streaks)
	assert.Equal(t, 2, e.Round())
}

func TestTick_BreakEndingSoonFiresOnce(t *testing.T) {
	cfg := shortConfig()
	cfg.ShortBreakSeconds = 180
	e, _, lis := newTestEngine(t, cfg)
	ctx := context.Background()

	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	for i := 0; i < 119; i++ {
		require.NoError(t, e.Tick(ctx))
	}
	assert.Zero(t, lis.warnings, "61 seconds left is outside the window")

	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, 1, lis.warnings)

	e.Pause(ctx)
	e.Resume(ctx)
	require.NoError(t, runOut(t, e))
	assert.Equal(t, 1, lis.warnings)
}

func TestTick_BreakWarningResetsPerSession(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))
	e.Skip(ctx)
	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))

	assert.Equal(t, 2, lis.warnings)
}

func TestTick_WorkSessionNeverWarns(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	require.NoError(t, e.Start(context.Background()))
	require.NoError(t, runOut(t, e))
	assert.Zero(t, lis.warnings)
}

func TestTick_IdleIsNoOp(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 60, e.Remaining())
	assert.Empty(t, lis.ticks)
}

func TestFullCycle_KindAndRoundSequence(t *testing.T) {
	e, _, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	type step struct {
		kind  domain.SessionKind
		round int
	}
	var seen []step
	for i := 0; i < 8; i++ {
		seen = append(seen, step{e.Kind(), e.Round()})
		require.NoError(t, e.Start(ctx))
		require.NoError(t, runOut(t, e))
		require.Equal(t, domain.StateIdle, e.State())
	}

	assert.Equal(t, []step{
		{domain.KindWork, 1}, {domain.KindShortBreak, 1},
		{domain.KindWork, 2}, {domain.KindShortBreak, 2},
		{domain.KindWork, 3}, {domain.KindShortBreak, 3},
		{domain.KindWork, 4}, {domain.KindLongBreak, 4},
	}, seen)
	assert.Equal(t, domain.KindWork, e.Kind())
	assert.Equal(t, 1, e.Round())
	assert.Len(t, lis.completions, 8)
}

func TestAdvance_RoundsBoundary(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()
	e.SetRoundsPerCycle(2)

	e.Skip(ctx) // work 1 -> short
	assert.Equal(t, domain.KindShortBreak, e.Kind())
	e.Skip(ctx) // short -> work 2
	e.Skip(ctx) // work 2 == rounds -> long
	assert.Equal(t, domain.KindLongBreak, e.Kind())
	assert.Equal(t, 2, e.Round())
	e.Skip(ctx)
	assert.Equal(t, 1, e.Round())
}

func TestAutoAdvance_StartsNextSession(t *testing.T) {
	cfg := shortConfig()
	cfg.AutoAdvance = true
	e, rec, lis := newTestEngine(t, cfg)
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	for i := 0; i < 60; i++ {
		require.NoError(t, e.Tick(ctx))
	}

	assert.Equal(t, domain.StateShortBreak, e.State())
	assert.Equal(t, "s2", e.SessionID())
	assert.Equal(t, domain.KindShortBreak, rec.started["s2"])
	assert.Equal(t, 60, e.Remaining())
	assert.Equal(t, []string{
		"state:working", "completed:work", "streak", "state:short_break",
	}, lis.events)
}

func TestAutoAdvance_StartFailureFallsBackToIdle(t *testing.T) {
	cfg := shortConfig()
	cfg.AutoAdvance = true
	e, rec, _ := newTestEngine(t, cfg)
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	rec.failStart = errors.New("locked")
	err := runOut(t, e)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Equal(t, domain.KindShortBreak, e.Kind())
	assert.Empty(t, e.SessionID())
}

func TestTick_CompletionStoreFailuresDoNotStallTimer(t *testing.T) {
	e, rec, lis := newTestEngine(t, shortConfig())
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	rec.failComplete = errors.New("write failed")
	rec.failStreak = errors.New("progress missing")
	err := runOut(t, e)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "progress missing")

	assert.Len(t, lis.completions, 1, "completion event still fires")
	assert.Empty(t, lis.streaks)
	assert.Equal(t, domain.StateIdle, e.State())
	assert.Equal(t, domain.KindShortBreak, e.Kind())

	rec.failComplete = nil
	rec.failStreak = nil
	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))
	assert.Len(t, lis.completions, 2)
}

func TestPersistDisabled_NoStoreCalls(t *testing.T) {
	cfg := shortConfig()
	cfg.Persist = false
	e, rec, lis := newTestEngine(t, cfg)
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	require.NoError(t, runOut(t, e))

	assert.Empty(t, rec.started)
	assert.Empty(t, rec.completed)
	assert.Empty(t, rec.streakDay)
	assert.Empty(t, lis.streaks)
	require.Len(t, lis.completions, 1)
	assert.Empty(t, lis.completions[0].SessionID)
}

func TestNilRecorder_ActsAsDisabled(t *testing.T) {
	lis := &recordingListener{}
	e := New(shortConfig(), WithListener(lis))
	require.NoError(t, e.Start(context.Background()))
	require.NoError(t, runOut(t, e))
	require.Len(t, lis.completions, 1)
	assert.Empty(t, lis.streaks)
}

func TestSetDuration(t *testing.T) {
	e, _, _ := newTestEngine(t, shortConfig())
	ctx := context.Background()

	e.SetDuration(domain.KindWork, 30)
	assert.Equal(t, 60, e.DurationFor(domain.KindWork), "clamped to a minute")

	e.SetDuration(domain.KindWork, 900)
	assert.Equal(t, 900, e.Remaining(), "idle with matching pending kind updates at once")
	assert.Equal(t, 900, e.TotalDuration())

	e.SetDuration(domain.KindShortBreak, 420)
	assert.Equal(t, 900, e.Remaining(), "other kinds wait their turn")

	require.NoError(t, e.Start(ctx))
	e.SetDuration(domain.KindWork, 1200)
	assert.Equal(t, 900, e.Remaining(), "running sessions keep their length")
}

func TestListeners_ReceiveInRegistrationOrder(t *testing.T) {
	var order []string
	a := &orderListener{name: "a", out: &order}
	b := &orderListener{name: "b", out: &order}
	e := New(shortConfig(), WithListener(a))
	e.Subscribe(b)

	e.Skip(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)
}

type orderListener struct {
	NopListener
	name string
	out  *[]string
}

func (o *orderListener) OnStateChanged(context.Context, domain.TimerState) {
	*o.out = append(*o.out, o.name)
}
