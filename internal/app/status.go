package app

import (
	"context"
	"errors"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/leveling"
	"github.com/alexanderramin/focusquest/internal/repository"
	"github.com/alexanderramin/focusquest/internal/service"
)

// StatusView is the player card shown by `status` and the focus header.
type StatusView struct {
	Level         leveling.LevelProgress
	CurrentStreak int
	LongestStreak int
	TotalSessions int
	TotalMinutes  int
	Theme         string
	Companion     string
}

// LoadStatus assembles the player card. A missing progress row reads as a
// fresh level-1 player.
func LoadStatus(ctx context.Context, progress ProgressReader, unlocks service.UnlockService) (*StatusView, error) {
	v := &StatusView{Level: leveling.ProgressInLevel(0)}

	p, err := progress.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		applyProgress(v, p)
	}

	if v.Theme, err = unlocks.EquippedTheme(ctx); err != nil {
		return nil, err
	}
	if v.Companion, err = unlocks.EquippedCompanion(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func applyProgress(v *StatusView, p *domain.UserProgress) {
	v.Level = leveling.ProgressInLevel(p.TotalXP)
	v.CurrentStreak = p.CurrentStreakDays
	v.LongestStreak = p.LongestStreakDays
	v.TotalSessions = p.TotalSessionsCompleted
	v.TotalMinutes = p.TotalFocusMinutes
}
