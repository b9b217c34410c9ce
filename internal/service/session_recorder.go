package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/repository"
	"github.com/alexanderramin/focusquest/internal/timer"
)

var _ timer.Recorder = (*SessionRecorder)(nil)

// SessionRecorder persists timer sessions and folds work completions into
// the streak.
type SessionRecorder struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSessionRecorder(uow db.UnitOfWork, observers ...UseCaseObserver) *SessionRecorder {
	return &SessionRecorder{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (r *SessionRecorder) StartSession(ctx context.Context, kind domain.SessionKind, startedAt time.Time, taskLabel string) (id string, err error) {
	observedAt := time.Now().UTC()
	fields := map[string]any{"kind": string(kind)}
	defer func() {
		fields["session_id"] = id
		observe(ctx, r.observer, "start-session", observedAt, &err, fields)
	}()

	rec := &domain.SessionRecord{
		StartTime: startedAt,
		Kind:      kind,
		TaskLabel: taskLabel,
	}
	err = r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *SessionRecorder) CompleteSession(ctx context.Context, id string, endedAt time.Time, durationSeconds int) (err error) {
	observedAt := time.Now().UTC()
	defer observe(ctx, r.observer, "complete-session", observedAt, &err, map[string]any{
		"session_id": id,
		"seconds":    durationSeconds,
	})

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Complete(ctx, id, endedAt, durationSeconds)
	})
}

// UpdateStreak applies a completed work session on day to the streak. A
// missing progress row yields a zero result instead of an error.
func (r *SessionRecorder) UpdateStreak(ctx context.Context, day time.Time) (streak domain.StreakResult, err error) {
	observedAt := time.Now().UTC()
	fields := map[string]any{"day": day.Format(domain.DateLayout)}
	defer func() {
		fields["current"] = streak.Current
		fields["longest"] = streak.Longest
		observe(ctx, r.observer, "update-streak", observedAt, &err, fields)
	}()

	err = r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		progress := repository.NewSQLiteProgressRepo(tx)
		p, err := progress.Get(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			fields["progress_missing"] = true
			return nil
		}
		if err != nil {
			return err
		}
		streak = p.ApplyStreak(day)
		return progress.Update(ctx, p)
	})
	if err != nil {
		return domain.StreakResult{}, fmt.Errorf("updating streak: %w", err)
	}
	return streak, nil
}
