package catalog

import (
	"sort"

	"github.com/alexanderramin/focusquest/internal/domain"
)

// Registry indexes every catalog entry. Item order is themes, companions,
// titles, each in declaration order; lookups preserve it.
type Registry struct {
	items []Item
	index map[domain.UnlockRef]int
}

// NewRegistry builds a registry over the given definitions.
func NewRegistry(themes []ThemeDef, companions []CompanionDef, titles []TitleDef) *Registry {
	r := &Registry{index: make(map[domain.UnlockRef]int)}
	for _, t := range themes {
		r.add(Item{
			Category:           domain.CategoryTheme,
			Key:                t.Key,
			Name:               t.Name,
			Description:        t.Description,
			PreviewDescription: t.PreviewDescription,
			RequiredLevel:      t.RequiredLevel,
		})
	}
	for _, c := range companions {
		r.add(Item{
			Category:           domain.CategoryCompanion,
			Key:                c.Key,
			Name:               c.Name,
			Description:        c.Description,
			PreviewDescription: c.PreviewDescription,
			RequiredLevel:      c.RequiredLevel,
		})
	}
	for _, t := range titles {
		r.add(Item{
			Category:           domain.CategoryTitle,
			Key:                t.Key,
			Name:               t.Name,
			Description:        t.Description,
			PreviewDescription: t.Description,
			RequiredSessions:   t.RequiredSessions,
		})
	}
	return r
}

// Default returns the registry over the built-in catalog.
func Default() *Registry {
	return NewRegistry(Themes, Companions, Titles)
}

func (r *Registry) add(it Item) {
	r.index[it.Ref()] = len(r.items)
	r.items = append(r.items, it)
}

func (r *Registry) All() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry) Get(category domain.UnlockCategory, key string) (Item, bool) {
	i, ok := r.index[domain.UnlockRef{Category: category, Key: key}]
	if !ok {
		return Item{}, false
	}
	return r.items[i], true
}

func (r *Registry) ByCategory(category domain.UnlockCategory) []Item {
	var out []Item
	for _, it := range r.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// DefaultKey returns the level-1 entry of a level-gated category, which is
// what counts as equipped before anything was ever equipped.
func (r *Registry) DefaultKey(category domain.UnlockCategory) string {
	switch category {
	case domain.CategoryTheme:
		return DefaultTheme
	case domain.CategoryCompanion:
		return DefaultCompanion
	default:
		return ""
	}
}

// Upcoming returns the level-gated items matching keep, ascending by
// required level. Ties keep catalog order.
func (r *Registry) Upcoming(keep func(Item) bool) []Item {
	var out []Item
	for _, it := range r.items {
		if it.LevelGated() && keep(it) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequiredLevel < out[j].RequiredLevel
	})
	return out
}

// NextUpcoming returns the lowest-level item the player has not reached yet.
func (r *Registry) NextUpcoming(currentLevel int) (Item, bool) {
	items := r.Teasers(currentLevel, 1)
	if len(items) == 0 {
		return Item{}, false
	}
	return items[0], true
}

// Teasers returns up to count level-gated items above currentLevel.
func (r *Registry) Teasers(currentLevel, count int) []Item {
	items := r.Upcoming(func(it Item) bool { return it.RequiredLevel > currentLevel })
	if count >= 0 && len(items) > count {
		items = items[:count]
	}
	return items
}
