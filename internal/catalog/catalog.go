// Package catalog holds the immutable set of unlockable items and the
// thresholds that gate them. Themes and companions unlock by level,
// titles by completed session count.
package catalog

import "github.com/alexanderramin/focusquest/internal/domain"

type ThemeDef struct {
	Key                string
	Name               string
	RequiredLevel      int
	Description        string
	PreviewDescription string
}

type CompanionDef struct {
	Key                string
	Name               string
	RequiredLevel      int
	Description        string
	PreviewDescription string
}

type TitleDef struct {
	Key              string
	Name             string
	RequiredSessions int
	Description      string
}

// Default keys seeded as equipped on the first grant.
const (
	DefaultTheme     = "midnight"
	DefaultCompanion = "sprout"
)

var Themes = []ThemeDef{
	{"midnight", "Midnight", 1, "The classic FocusQuest look.", "Dark and warm, the way it all started"},
	{"ocean", "Ocean", 3, "Deep navy with teal and aqua accents.", "Calm blues to keep you focused"},
	{"forest", "Forest", 5, "Dark green with gold and amber accents.", "Nature-inspired tones for deep work"},
	{"sunset", "Sunset", 8, "Dark warm tones with pink, coral and gold gradients.", "Warm energy for evening focus sessions"},
	{"neon", "Neon", 12, "True black with neon cyan and magenta.", "Electric vibes on a pitch-black canvas"},
	{"aurora", "Aurora", 16, "Dark theme with a subtle animated northern-lights gradient.", "Shimmering greens and purples dance behind your timer"},
	{"minimal", "Minimal", 20, "Clean monochrome theme that respects the system appearance.", "Less is more, adapts to your light or dark mode"},
	{"synthwave", "Synthwave", 25, "Retro purple and pink, 80s grid aesthetic.", "Neon grids and chrome sunsets"},
	{"galaxy", "Galaxy", 30, "Deep space background with subtle star particles.", "Focus among the stars"},
}

var Companions = []CompanionDef{
	{"sprout", "Sprout", 1, "A small plant that grows during focus sessions.", "Watch your little sprout grow with every minute of focus"},
	{"ember", "Ember", 5, "A little flame that dances while you work.", "A flickering flame that burns brighter as you focus"},
	{"ripple", "Ripple", 10, "A water droplet that creates expanding circles.", "Ripples that expand with your concentration"},
	{"pixel", "Pixel", 15, "A retro pixel art robot with idle animations.", "A tiny 8-bit buddy that types alongside you"},
	{"nova", "Nova", 20, "A small star that pulses and glows brighter as you focus.", "A celestial companion that shines with your effort"},
	{"zen", "Zen", 25, "A floating lotus that opens petals with each completed pomodoro.", "Petals bloom as you complete rounds"},
}

var Titles = []TitleDef{
	{"first_steps", "First Steps", 1, "Completed your first session."},
	{"on_a_roll", "On a Roll", 10, "10 sessions done!"},
	{"centurion", "Centurion", 100, "100 sessions, legendary!"},
	{"week_warrior", "Week Warrior", 7, "7 sessions logged, a week's worth of focus."},
}

// Item is the uniform view of any catalog entry.
// RequiredLevel is 0 for titles and RequiredSessions is 0 for the rest.
type Item struct {
	Category           domain.UnlockCategory
	Key                string
	Name               string
	Description        string
	PreviewDescription string
	RequiredLevel      int
	RequiredSessions   int
}

func (i Item) Ref() domain.UnlockRef {
	return domain.UnlockRef{Category: i.Category, Key: i.Key}
}

// LevelGated reports whether the item unlocks by level rather than session count.
func (i Item) LevelGated() bool {
	return i.Category != domain.CategoryTitle
}
