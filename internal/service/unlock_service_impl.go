package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/repository"
)

// CollectionEntry is one catalog item with the player's state for it.
type CollectionEntry struct {
	Item     catalog.Item
	Unlocked bool
	Equipped bool
}

type unlockService struct {
	registry *catalog.Registry
	unlocks  repository.UnlockRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewUnlockService(
	registry *catalog.Registry,
	unlocks repository.UnlockRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) UnlockService {
	return &unlockService{
		registry: registry,
		unlocks:  unlocks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *unlockService) CheckAndUnlock(ctx context.Context, level, totalSessions int) (granted []catalog.Item, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"level": level, "sessions": totalSessions}
	defer func() {
		fields["granted"] = len(granted)
		observe(ctx, s.observer, "check-and-unlock", startedAt, &err, fields)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteUnlockRepo(tx)
		existing, err := repo.List(ctx)
		if err != nil {
			return err
		}
		have := make(map[domain.UnlockRef]bool, len(existing))
		equipped := make(map[domain.UnlockCategory]bool)
		for _, u := range existing {
			have[u.Ref()] = true
			if u.Equipped {
				equipped[u.Category] = true
			}
		}

		now := s.now()
		granted = nil
		for _, it := range s.registry.All() {
			if have[it.Ref()] || !eligible(it, level, totalSessions) {
				continue
			}
			// Only the level-1 default is worn on grant, and only when
			// nothing else in its category is.
			wear := it.Key == s.registry.DefaultKey(it.Category) && !equipped[it.Category]
			inserted, err := repo.Grant(ctx, &domain.UnlockRecord{
				Category:   it.Category,
				Key:        it.Key,
				UnlockedAt: now,
				Equipped:   wear,
			})
			if err != nil {
				return err
			}
			if !inserted {
				continue
			}
			if wear {
				equipped[it.Category] = true
			}
			granted = append(granted, it)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checking unlocks: %w", err)
	}
	return granted, nil
}

func eligible(it catalog.Item, level, totalSessions int) bool {
	if it.Category == domain.CategoryTitle {
		return totalSessions >= it.RequiredSessions
	}
	return level >= it.RequiredLevel
}

func (s *unlockService) Equip(ctx context.Context, category domain.UnlockCategory, key string) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "equip", startedAt, &err, map[string]any{
		"category": string(category),
		"key":      key,
	})

	if !domain.ValidUnlockCategories[string(category)] {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteUnlockRepo(tx)
		if _, err := repo.Get(ctx, category, key); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s %q", ErrNotUnlocked, category, key)
			}
			return err
		}
		return repo.SetEquipped(ctx, category, key)
	})
}

func (s *unlockService) EquippedTheme(ctx context.Context) (string, error) {
	return s.equipped(ctx, domain.CategoryTheme)
}

func (s *unlockService) EquippedCompanion(ctx context.Context) (string, error) {
	return s.equipped(ctx, domain.CategoryCompanion)
}

// equipped falls back to the catalog default so the answer is never empty.
func (s *unlockService) equipped(ctx context.Context, category domain.UnlockCategory) (string, error) {
	u, err := s.unlocks.GetEquipped(ctx, category)
	if errors.Is(err, repository.ErrNotFound) {
		return s.registry.DefaultKey(category), nil
	}
	if err != nil {
		return "", err
	}
	return u.Key, nil
}

func (s *unlockService) Unlocked(ctx context.Context) (map[domain.UnlockRef]bool, error) {
	all, err := s.unlocks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.UnlockRef]bool, len(all))
	for _, u := range all {
		out[u.Ref()] = true
	}
	return out, nil
}

func (s *unlockService) IsUnlocked(ctx context.Context, category domain.UnlockCategory, key string) (bool, error) {
	_, err := s.unlocks.Get(ctx, category, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *unlockService) NextUpcoming(ctx context.Context) (*catalog.Item, error) {
	items, err := s.Teasers(ctx, 1)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (s *unlockService) Teasers(ctx context.Context, count int) ([]catalog.Item, error) {
	have, err := s.Unlocked(ctx)
	if err != nil {
		return nil, err
	}
	items := s.registry.Upcoming(func(it catalog.Item) bool { return !have[it.Ref()] })
	if count >= 0 && len(items) > count {
		items = items[:count]
	}
	return items, nil
}

func (s *unlockService) Collection(ctx context.Context) ([]CollectionEntry, error) {
	all, err := s.unlocks.List(ctx)
	if err != nil {
		return nil, err
	}
	state := make(map[domain.UnlockRef]*domain.UnlockRecord, len(all))
	for _, u := range all {
		state[u.Ref()] = u
	}

	items := s.registry.All()
	out := make([]CollectionEntry, 0, len(items))
	for _, it := range items {
		e := CollectionEntry{Item: it}
		if u, ok := state[it.Ref()]; ok {
			e.Unlocked = true
			e.Equipped = u.Equipped
		}
		out = append(out, e)
	}
	return out, nil
}
