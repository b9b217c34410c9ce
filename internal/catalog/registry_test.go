package catalog

import (
	"testing"

	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Counts(t *testing.T) {
	r := Default()
	assert.Len(t, r.All(), 19)
	assert.Len(t, r.ByCategory(domain.CategoryTheme), 9)
	assert.Len(t, r.ByCategory(domain.CategoryCompanion), 6)
	assert.Len(t, r.ByCategory(domain.CategoryTitle), 4)
}

func TestDefault_KeysUniquePerCategory(t *testing.T) {
	seen := map[domain.UnlockRef]bool{}
	for _, it := range Default().All() {
		assert.False(t, seen[it.Ref()], "duplicate %v", it.Ref())
		seen[it.Ref()] = true
	}
}

func TestDefault_DefaultsAreLevelOne(t *testing.T) {
	r := Default()
	theme, ok := r.Get(domain.CategoryTheme, r.DefaultKey(domain.CategoryTheme))
	require.True(t, ok)
	assert.Equal(t, 1, theme.RequiredLevel)

	comp, ok := r.Get(domain.CategoryCompanion, r.DefaultKey(domain.CategoryCompanion))
	require.True(t, ok)
	assert.Equal(t, 1, comp.RequiredLevel)

	assert.Empty(t, r.DefaultKey(domain.CategoryTitle))
}

func TestGet(t *testing.T) {
	r := Default()
	it, ok := r.Get(domain.CategoryTitle, "centurion")
	require.True(t, ok)
	assert.Equal(t, "Centurion", it.Name)
	assert.Equal(t, 100, it.RequiredSessions)
	assert.Zero(t, it.RequiredLevel)
	assert.False(t, it.LevelGated())

	_, ok = r.Get(domain.CategoryTheme, "centurion")
	assert.False(t, ok)
}

func TestNextUpcoming(t *testing.T) {
	r := Default()

	it, ok := r.NextUpcoming(1)
	require.True(t, ok)
	assert.Equal(t, "ocean", it.Key)

	// Level 4: forest (theme) and ember (companion) both need 5; catalog order wins.
	it, ok = r.NextUpcoming(4)
	require.True(t, ok)
	assert.Equal(t, "forest", it.Key)

	_, ok = r.NextUpcoming(30)
	assert.False(t, ok)
}

func TestTeasers(t *testing.T) {
	r := Default()
	items := r.Teasers(4, 3)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"forest", "ember", "sunset"}, []string{items[0].Key, items[1].Key, items[2].Key})

	for _, it := range r.Teasers(0, 100) {
		assert.NotEqual(t, domain.CategoryTitle, it.Category)
	}
	assert.Empty(t, r.Teasers(50, 3))
}
