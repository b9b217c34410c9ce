package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/leveling"
	"github.com/alexanderramin/focusquest/internal/repository"
	"github.com/alexanderramin/focusquest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStats(database *sql.DB) StatsService {
	return NewStatsService(
		catalog.Default(),
		repository.NewSQLiteProgressRepo(database),
		repository.NewSQLiteDailyStatsRepo(database),
		repository.NewSQLiteSessionRepo(database),
	)
}

func storeSession(t *testing.T, database *sql.DB, s *domain.SessionRecord) {
	t.Helper()
	require.NoError(t, repository.NewSQLiteSessionRepo(database).Create(context.Background(), s))
}

func TestSnapshot_FreshStore(t *testing.T) {
	database := testutil.NewTestDB(t)

	snap, err := newStats(database).Snapshot(context.Background(), testutil.FixedNow)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, "Focus Apprentice", snap.Title)
	assert.Equal(t, 200, snap.NeededForLevel)
	assert.Nil(t, snap.FavoriteHour)
	assert.Zero(t, snap.AvgSessionsPerDay)
	assert.Len(t, snap.Weekly, 7)
	assert.Len(t, snap.Monthly, 30)
	require.NotNil(t, snap.NextUnlock)
	assert.Equal(t, "ocean", snap.NextUnlock.Key)
	assert.Len(t, snap.Teasers, 3)
}

func TestSnapshot_AggregatesProgressAndDays(t *testing.T) {
	database := testutil.NewTestDB(t)
	today := testutil.FixedNow

	testutil.SeedProgress(t, database, domain.UserProgress{
		TotalXP:                450,
		CurrentLevel:           3,
		TotalSessionsCompleted: 7,
		TotalFocusMinutes:      160,
		CurrentStreakDays:      2,
		LongestStreakDays:      4,
	})
	testutil.SeedDailyStats(t, database, domain.DailyStats{Date: today, SessionsCompleted: 3, FocusMinutes: 75, XPEarned: 300})
	testutil.SeedDailyStats(t, database, domain.DailyStats{Date: today.AddDate(0, 0, -1), SessionsCompleted: 2, FocusMinutes: 50, XPEarned: 200})
	testutil.SeedDailyStats(t, database, domain.DailyStats{Date: today.AddDate(0, 0, -10), SessionsCompleted: 2, FocusMinutes: 35, XPEarned: 150})
	testutil.SeedDailyStats(t, database, domain.DailyStats{Date: today.AddDate(0, 0, -40), SessionsCompleted: 1, FocusMinutes: 25, XPEarned: 100})

	snap, err := newStats(database).Snapshot(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Level)
	assert.Equal(t, 450, snap.TotalXP)
	assert.Equal(t, 20, snap.EarnedInLevel)
	assert.Equal(t, leveling.XPDeltaForLevel(3), snap.NeededForLevel)
	assert.Equal(t, 2, snap.CurrentStreak)
	assert.Equal(t, 4, snap.LongestStreak)

	assert.Equal(t, 3, snap.TodaySessions)
	assert.Equal(t, 75, snap.TodayMinutes)
	assert.Equal(t, 300, snap.TodayXP)

	last := snap.Weekly[6]
	assert.True(t, last.IsToday)
	assert.Equal(t, "Sun", last.Label)
	assert.Equal(t, 75, last.Minutes)
	assert.Equal(t, "Mon", snap.Weekly[0].Label)
	assert.Equal(t, 50, snap.Weekly[5].Minutes)
	assert.Equal(t, 125, snap.WeeklyTotalMinutes)

	assert.Equal(t, "2025-05-17", snap.Monthly[0].Date.Format(domain.DateLayout))
	assert.Equal(t, 35, snap.Monthly[19].Minutes)
	monthMinutes := 0
	for _, d := range snap.Monthly {
		monthMinutes += d.Minutes
	}
	assert.Equal(t, 160, monthMinutes, "rows older than 30 days are excluded")

	// 7 sessions over 4 active days.
	assert.InDelta(t, 1.8, snap.AvgSessionsPerDay, 1e-9)

	require.NotNil(t, snap.NextUnlock)
	assert.Equal(t, "forest", snap.NextUnlock.Key)
}

func TestSnapshot_FavoriteHour(t *testing.T) {
	database := testutil.NewTestDB(t)
	at := func(hour int) time.Time {
		return time.Date(2025, 6, 14, hour, 0, 0, 0, time.UTC)
	}

	storeSession(t, database, testutil.NewTestSession(testutil.WithStartTime(at(9)), testutil.WithCompleted(1500)))
	storeSession(t, database, testutil.NewTestSession(testutil.WithStartTime(at(9).AddDate(0, 0, -1)), testutil.WithCompleted(1500)))
	storeSession(t, database, testutil.NewTestSession(testutil.WithStartTime(at(14)), testutil.WithCompleted(1500)))
	// Breaks and unfinished sessions do not count.
	storeSession(t, database, testutil.NewTestSession(testutil.WithKind(domain.KindShortBreak), testutil.WithStartTime(at(20)), testutil.WithCompleted(300)))
	storeSession(t, database, testutil.NewTestSession(testutil.WithStartTime(at(20))))
	storeSession(t, database, testutil.NewTestSession(testutil.WithStartTime(at(20))))

	snap, err := newStats(database).Snapshot(context.Background(), testutil.FixedNow)
	require.NoError(t, err)
	require.NotNil(t, snap.FavoriteHour)
	assert.Equal(t, 9, *snap.FavoriteHour)
}

func TestFavoriteHour_TieGoesToEarlierHour(t *testing.T) {
	starts := []time.Time{
		time.Date(2025, 6, 1, 16, 5, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
	}
	h := favoriteHour(starts, time.UTC)
	require.NotNil(t, h)
	assert.Equal(t, 8, *h)

	loc := time.FixedZone("UTC+2", 2*3600)
	h = favoriteHour(starts[:1], loc)
	require.NotNil(t, h)
	assert.Equal(t, 18, *h)
}

func TestAveragePerDay(t *testing.T) {
	assert.Zero(t, averagePerDay(5, 0))
	assert.Zero(t, averagePerDay(0, 3))
	assert.InDelta(t, 3.3, averagePerDay(10, 3), 1e-9)
	assert.InDelta(t, 2.0, averagePerDay(4, 2), 1e-9)
}

func TestHistoryToday_NewestFirstAndLimited(t *testing.T) {
	database := testutil.NewTestDB(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		storeSession(t, database, testutil.NewTestSession(
			testutil.WithTaskLabel(string(rune('a'+i))),
			testutil.WithStartTime(day.Add(time.Duration(8+i)*time.Hour)),
			testutil.WithCompleted(1500),
		))
	}
	storeSession(t, database, testutil.NewTestSession(
		testutil.WithStartTime(day.Add(-2*time.Hour)),
		testutil.WithCompleted(1500),
	))
	storeSession(t, database, testutil.NewTestSession(
		testutil.WithKind(domain.KindLongBreak),
		testutil.WithStartTime(day.Add(20*time.Hour)),
		testutil.WithCompleted(900),
	))

	svc := NewHistoryService(repository.NewSQLiteSessionRepo(database))

	got, err := svc.Today(context.Background(), day.Add(12*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "g", got[0].TaskLabel)
	assert.Equal(t, "c", got[4].TaskLabel)

	all, err := svc.Today(context.Background(), day, 20)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}
