package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/leveling"
	"github.com/alexanderramin/focusquest/internal/repository"
	"github.com/alexanderramin/focusquest/internal/timer"
)

// Award amounts.
const (
	XPLongSession  = 100 // 25 minutes or more
	XPMidSession   = 65  // 15 minutes or more
	XPShortSession = 40
	XPCycleBonus   = 150
	XPDailyKickoff = 50
	XPStreakPerDay = 10
	XPStreakCap    = 100
)

// AwardRequest describes one completed session to be converted into XP.
type AwardRequest struct {
	Kind            domain.SessionKind
	DurationMinutes int
	TaskLabel       string
	Round           int
	RoundsPerCycle  int
	Micro           bool
	// SessionDate selects the DailyStats row; zero means today.
	SessionDate time.Time
	// SessionID enables the double-award guard. Empty disables it.
	SessionID string
}

// AwardRequestFromCompletion builds the request for a timer completion.
// Minutes are whole minutes of the final duration and the date is the
// calendar date the session ended on.
func AwardRequestFromCompletion(c timer.Completion) AwardRequest {
	return AwardRequest{
		Kind:            c.Kind,
		DurationMinutes: c.DurationSeconds / 60,
		TaskLabel:       c.TaskLabel,
		Round:           c.Round,
		RoundsPerCycle:  c.RoundsPerCycle,
		Micro:           c.Micro,
		SessionDate:     c.EndTime,
		SessionID:       c.SessionID,
	}
}

// Bonus is one line of the award breakdown.
type Bonus struct {
	Name   string
	Amount int
}

type XPResult struct {
	XPEarned int
	LevelUp  bool
	OldLevel int
	NewLevel int
	NewTitle string
	TotalXP  int
	Bonuses  []Bonus
}

type XPAwardedEvent struct {
	Amount  int
	Reason  string
	Bonuses []Bonus
	TotalXP int
	Level   int
	Title   string
}

type LevelUpEvent struct {
	OldLevel int
	NewLevel int
	NewTitle string
}

// XPListener receives award events synchronously after the award committed.
type XPListener interface {
	OnXPAwarded(ctx context.Context, ev XPAwardedEvent)
	OnLevelUp(ctx context.Context, ev LevelUpEvent)
}

// BaseXPForDuration maps whole minutes to the base award. Lower bounds are
// inclusive.
func BaseXPForDuration(minutes int) int {
	switch {
	case minutes >= 25:
		return XPLongSession
	case minutes >= 15:
		return XPMidSession
	default:
		return XPShortSession
	}
}

// StreakBonus is ten XP per streak day, capped at 100.
func StreakBonus(days int) int {
	if days <= 0 {
		return 0
	}
	return min(days*XPStreakPerDay, XPStreakCap)
}

// emptyResult is returned for breaks, replays and a missing progress row.
func emptyResult() *XPResult {
	return &XPResult{
		OldLevel: 1,
		NewLevel: 1,
		NewTitle: leveling.TitleForLevel(1),
		Bonuses:  []Bonus{},
	}
}

type xpService struct {
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
	listeners []XPListener
}

func NewXPService(uow db.UnitOfWork, observers ...UseCaseObserver) XPService {
	return &xpService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *xpService) Subscribe(l XPListener) {
	s.listeners = append(s.listeners, l)
}

func (s *xpService) AwardSession(ctx context.Context, req AwardRequest) (result *XPResult, err error) {
	// Breaks are their own reward.
	if req.Kind != domain.KindWork {
		return emptyResult(), nil
	}

	startedAt := time.Now().UTC()
	fields := map[string]any{
		"minutes":    req.DurationMinutes,
		"round":      req.Round,
		"session_id": req.SessionID,
	}
	defer func() {
		if result != nil {
			fields["xp"] = result.XPEarned
		}
		observe(ctx, s.observer, "award-session", startedAt, &err, fields)
	}()

	day := req.SessionDate
	if day.IsZero() {
		day = s.now()
	}

	var (
		applied  bool
		progress *domain.UserProgress
	)
	result = emptyResult()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		progressRepo := repository.NewSQLiteProgressRepo(tx)
		dailyRepo := repository.NewSQLiteDailyStatsRepo(tx)

		guarded := false
		if req.SessionID != "" {
			rec, err := sessions.GetByID(ctx, req.SessionID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				// No durable record: award without a guard.
			case err != nil:
				return err
			case rec.XPAwarded:
				fields["replay"] = true
				return nil
			default:
				guarded = true
			}
		}

		p, err := progressRepo.Get(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			fields["progress_missing"] = true
			return nil
		}
		if err != nil {
			return err
		}

		daily, err := dailyRepo.Get(ctx, day)
		if errors.Is(err, repository.ErrNotFound) {
			daily = nil
		} else if err != nil {
			return err
		}

		r := computeAward(req, p.CurrentStreakDays, daily.IsFirstSession())

		r.OldLevel = p.CurrentLevel
		p.TotalXP += r.XPEarned
		p.CurrentLevel = leveling.LevelForXP(p.TotalXP)
		p.TotalSessionsCompleted++
		p.TotalFocusMinutes += req.DurationMinutes
		r.NewLevel = p.CurrentLevel
		r.LevelUp = r.NewLevel > r.OldLevel
		r.NewTitle = leveling.TitleForLevel(r.NewLevel)
		r.TotalXP = p.TotalXP

		if daily == nil {
			daily = domain.NewDailyStats(day)
		}
		daily.ApplySession(req.DurationMinutes, r.XPEarned, req.TaskLabel)

		if guarded {
			if err := sessions.MarkXPAwarded(ctx, req.SessionID); err != nil {
				return err
			}
		}
		if err := progressRepo.Update(ctx, p); err != nil {
			return err
		}
		if err := dailyRepo.Upsert(ctx, daily); err != nil {
			return err
		}

		result = r
		progress = p
		applied = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("awarding session xp: %w", err)
	}
	if !applied {
		return result, nil
	}

	fields["level"] = progress.CurrentLevel
	s.emit(ctx, result)
	return result, nil
}

// computeAward builds the breakdown. The base entry is always present;
// bonuses only when nonzero.
func computeAward(req AwardRequest, streakDays int, firstToday bool) *XPResult {
	base := BaseXPForDuration(req.DurationMinutes)
	r := &XPResult{Bonuses: []Bonus{{Name: "Session", Amount: base}}}
	r.XPEarned = base

	if bonus := StreakBonus(streakDays); bonus > 0 {
		r.Bonuses = append(r.Bonuses, Bonus{Name: "Streak x" + strconv.Itoa(streakDays), Amount: bonus})
		r.XPEarned += bonus
	}
	if firstToday {
		r.Bonuses = append(r.Bonuses, Bonus{Name: "Daily Kickoff", Amount: XPDailyKickoff})
		r.XPEarned += XPDailyKickoff
	}
	if req.Round >= req.RoundsPerCycle {
		r.Bonuses = append(r.Bonuses, Bonus{Name: "Full Cycle!", Amount: XPCycleBonus})
		r.XPEarned += XPCycleBonus
	}
	return r
}

func (s *xpService) emit(ctx context.Context, r *XPResult) {
	awarded := XPAwardedEvent{
		Amount:  r.XPEarned,
		Reason:  fmt.Sprintf("+%d XP", r.XPEarned),
		Bonuses: r.Bonuses,
		TotalXP: r.TotalXP,
		Level:   r.NewLevel,
		Title:   r.NewTitle,
	}
	for _, l := range s.listeners {
		l.OnXPAwarded(ctx, awarded)
	}
	if !r.LevelUp {
		return
	}
	up := LevelUpEvent{OldLevel: r.OldLevel, NewLevel: r.NewLevel, NewTitle: r.NewTitle}
	for _, l := range s.listeners {
		l.OnLevelUp(ctx, up)
	}
}
