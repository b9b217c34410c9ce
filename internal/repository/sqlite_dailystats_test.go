package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyStatsRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteDailyStatsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.FixedNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyStatsRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteDailyStatsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	d := domain.NewDailyStats(testutil.FixedNow)
	d.ApplySession(25, 150, "inbox")
	require.NoError(t, repo.Upsert(ctx, d))

	d.ApplySession(25, 100, "")
	require.NoError(t, repo.Upsert(ctx, d))

	// Any instant within the day addresses the same row.
	got, err := repo.Get(ctx, testutil.FixedNow.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, got.SessionsCompleted)
	assert.Equal(t, 50, got.FocusMinutes)
	assert.Equal(t, 250, got.XPEarned)
	assert.Equal(t, 1, got.TasksCompleted)
	assert.Equal(t, "2025-06-15", got.Date.Format(domain.DateLayout))
}

func TestDailyStatsRepo_ListRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDailyStatsRepo(db)
	ctx := context.Background()

	for i, sessions := range []int{1, 0, 3, 2} {
		testutil.SeedDailyStats(t, db, domain.DailyStats{
			Date:              testutil.FixedNow.AddDate(0, 0, -i),
			SessionsCompleted: sessions,
			FocusMinutes:      sessions * 25,
		})
	}

	rows, err := repo.ListRange(ctx, testutil.FixedNow.AddDate(0, 0, -2), testutil.FixedNow)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-06-13", rows[0].Date.Format(domain.DateLayout), "oldest first")
	assert.Equal(t, 3, rows[0].SessionsCompleted)
	assert.Equal(t, "2025-06-15", rows[2].Date.Format(domain.DateLayout))

	active, err := repo.CountActiveDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, active)
}
