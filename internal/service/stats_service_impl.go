package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/leveling"
	"github.com/alexanderramin/focusquest/internal/repository"
)

const (
	weekDays     = 7
	monthDays    = 30
	teaserCount  = 3
	historyLimit = 5
)

// DayMinutes is one bar of the weekly chart.
type DayMinutes struct {
	Label   string
	Date    time.Time
	Minutes int
	IsToday bool
}

// DayTotals is one cell of the monthly heatmap.
type DayTotals struct {
	Date     time.Time
	Sessions int
	Minutes  int
	XP       int
}

type StatsSnapshot struct {
	Level          int
	Title          string
	TotalXP        int
	EarnedInLevel  int
	NeededForLevel int

	CurrentStreak int
	LongestStreak int
	TotalSessions int
	TotalMinutes  int

	TodaySessions int
	TodayMinutes  int
	TodayXP       int

	Weekly             []DayMinutes
	WeeklyTotalMinutes int
	Monthly            []DayTotals

	// FavoriteHour is the most common start hour of completed work
	// sessions, nil before the first one.
	FavoriteHour      *int
	AvgSessionsPerDay float64
	NextUnlock        *catalog.Item
	Teasers           []catalog.Item
}

type statsService struct {
	registry *catalog.Registry
	progress repository.ProgressRepo
	daily    repository.DailyStatsRepo
	sessions repository.SessionRepo
	observer UseCaseObserver
}

func NewStatsService(
	registry *catalog.Registry,
	progress repository.ProgressRepo,
	daily repository.DailyStatsRepo,
	sessions repository.SessionRepo,
	observers ...UseCaseObserver,
) StatsService {
	return &statsService{
		registry: registry,
		progress: progress,
		daily:    daily,
		sessions: sessions,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statsService) Snapshot(ctx context.Context, today time.Time) (snap *StatsSnapshot, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "stats-snapshot", startedAt, &err, map[string]any{
		"today": today.Format(domain.DateLayout),
	})

	snap = &StatsSnapshot{Level: 1, Title: leveling.DefaultTitle}
	p, err := s.progress.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		lp := leveling.ProgressInLevel(p.TotalXP)
		snap.Level = p.CurrentLevel
		snap.Title = leveling.TitleForLevel(p.CurrentLevel)
		snap.TotalXP = p.TotalXP
		snap.EarnedInLevel = lp.Earned
		snap.NeededForLevel = lp.Needed
		snap.CurrentStreak = p.CurrentStreakDays
		snap.LongestStreak = p.LongestStreakDays
		snap.TotalSessions = p.TotalSessionsCompleted
		snap.TotalMinutes = p.TotalFocusMinutes
	}

	day := domain.DateOf(today)
	rows, err := s.daily.ListRange(ctx, day.AddDate(0, 0, -(monthDays-1)), day)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*domain.DailyStats, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format(domain.DateLayout)] = r
	}
	lookup := func(d time.Time) domain.DailyStats {
		if r, ok := byDate[d.Format(domain.DateLayout)]; ok {
			return *r
		}
		return domain.DailyStats{Date: d}
	}

	t := lookup(day)
	snap.TodaySessions = t.SessionsCompleted
	snap.TodayMinutes = t.FocusMinutes
	snap.TodayXP = t.XPEarned

	for offset := weekDays - 1; offset >= 0; offset-- {
		d := day.AddDate(0, 0, -offset)
		r := lookup(d)
		snap.Weekly = append(snap.Weekly, DayMinutes{
			Label:   d.Format("Mon"),
			Date:    d,
			Minutes: r.FocusMinutes,
			IsToday: offset == 0,
		})
		snap.WeeklyTotalMinutes += r.FocusMinutes
	}
	for offset := monthDays - 1; offset >= 0; offset-- {
		d := day.AddDate(0, 0, -offset)
		r := lookup(d)
		snap.Monthly = append(snap.Monthly, DayTotals{
			Date:     d,
			Sessions: r.SessionsCompleted,
			Minutes:  r.FocusMinutes,
			XP:       r.XPEarned,
		})
	}

	starts, err := s.sessions.CompletedWorkStartTimes(ctx)
	if err != nil {
		return nil, err
	}
	snap.FavoriteHour = favoriteHour(starts, today.Location())

	active, err := s.daily.CountActiveDays(ctx)
	if err != nil {
		return nil, err
	}
	snap.AvgSessionsPerDay = averagePerDay(snap.TotalSessions, active)

	if next, ok := s.registry.NextUpcoming(snap.Level); ok {
		snap.NextUnlock = &next
	}
	snap.Teasers = s.registry.Teasers(snap.Level, teaserCount)
	return snap, nil
}

// favoriteHour returns the most frequent hour in loc. Ties go to the
// earlier hour.
func favoriteHour(starts []time.Time, loc *time.Location) *int {
	if len(starts) == 0 {
		return nil
	}
	var counts [24]int
	for _, t := range starts {
		counts[t.In(loc).Hour()]++
	}
	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}
	return &best
}

// averagePerDay is sessions per active day rounded to one decimal.
func averagePerDay(sessions, activeDays int) float64 {
	if activeDays <= 0 || sessions <= 0 {
		return 0
	}
	return math.Round(float64(sessions)/float64(activeDays)*10) / 10
}

type historyService struct {
	sessions repository.SessionRepo
}

func NewHistoryService(sessions repository.SessionRepo) HistoryService {
	return &historyService{sessions: sessions}
}

func (s *historyService) Today(ctx context.Context, day time.Time, limit int) ([]*domain.SessionRecord, error) {
	if limit <= 0 {
		limit = historyLimit
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return s.sessions.ListCompletedWork(ctx, start, start.AddDate(0, 0, 1), limit)
}
