package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func dayPtr(t time.Time) *time.Time {
	d := DateOf(t)
	return &d
}

func TestApplyStreak_FirstSessionStartsAtOne(t *testing.T) {
	p := &UserProgress{}
	got := p.ApplyStreak(testDay)

	assert.Equal(t, StreakResult{Current: 1, Longest: 1}, got)
	require.NotNil(t, p.LastSessionDate)
	assert.Equal(t, DateOf(testDay), *p.LastSessionDate)
}

func TestApplyStreak_Gaps(t *testing.T) {
	cases := []struct {
		name        string
		lastOffset  int
		startStreak int
		startLong   int
		wantCurrent int
		wantLongest int
	}{
		{"same day keeps streak", 0, 3, 5, 3, 5},
		{"next day increments", -1, 3, 3, 4, 4},
		{"two day gap resets", -2, 6, 6, 1, 6},
		{"long gap resets", -30, 9, 12, 1, 12},
		{"date earlier than last resets", 1, 4, 4, 1, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &UserProgress{
				CurrentStreakDays: tc.startStreak,
				LongestStreakDays: tc.startLong,
				LastSessionDate:   dayPtr(testDay.AddDate(0, 0, tc.lastOffset)),
			}
			got := p.ApplyStreak(testDay)
			assert.Equal(t, tc.wantCurrent, got.Current)
			assert.Equal(t, tc.wantLongest, got.Longest)
			assert.Equal(t, DateOf(testDay), *p.LastSessionDate)
		})
	}
}

func TestApplyStreak_LateNightAndEarlyMorningAreConsecutive(t *testing.T) {
	p := &UserProgress{
		CurrentStreakDays: 2,
		LongestStreakDays: 2,
		LastSessionDate:   dayPtr(time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)),
	}
	got := p.ApplyStreak(time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC))
	assert.Equal(t, 3, got.Current)
}

func TestDailyStats_ApplySession(t *testing.T) {
	d := NewDailyStats(testDay)
	assert.True(t, d.IsFirstSession())

	d.ApplySession(25, 150, "write report")
	d.ApplySession(15, 65, "   ")

	assert.False(t, d.IsFirstSession())
	assert.Equal(t, 2, d.SessionsCompleted)
	assert.Equal(t, 40, d.FocusMinutes)
	assert.Equal(t, 215, d.XPEarned)
	assert.Equal(t, 1, d.TasksCompleted, "blank labels are not tasks")
}

func TestDailyStats_NilIsFirstSession(t *testing.T) {
	var d *DailyStats
	assert.True(t, d.IsFirstSession())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 2, 28, 22, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestSessionKindAndState(t *testing.T) {
	assert.True(t, KindShortBreak.IsBreak())
	assert.True(t, KindLongBreak.IsBreak())
	assert.False(t, KindWork.IsBreak())

	assert.Equal(t, StateWorking, RunningStateFor(KindWork))
	assert.Equal(t, StateShortBreak, RunningStateFor(KindShortBreak))
	assert.Equal(t, StateLongBreak, RunningStateFor(KindLongBreak))

	assert.True(t, StateLongBreak.IsRunning())
	assert.False(t, StatePaused.IsRunning())
	assert.False(t, StateIdle.IsRunning())
}

func TestSessionRecord_Complete(t *testing.T) {
	s := &SessionRecord{Kind: KindWork, DurationSeconds: 0}
	end := testDay.Add(30 * time.Minute)
	s.Complete(end, 1800)

	assert.True(t, s.Completed)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, end, *s.EndTime)
	assert.Equal(t, 30, s.DurationMinutes())
}
