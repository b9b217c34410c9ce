package leveling

// titleThreshold pairs the minimum level with the title it earns.
type titleThreshold struct {
	MinLevel int
	Title    string
}

// levelTitles is ordered descending; the first match wins.
var levelTitles = []titleThreshold{
	{30, "Legendary Focuser"},
	{25, "Time Bender"},
	{20, "Pomodoro Master"},
	{15, "Deep Work Sage"},
	{10, "Flow State Warrior"},
	{5, "Concentration Adept"},
	{1, "Focus Apprentice"},
}

// DefaultTitle is the title of a fresh player.
const DefaultTitle = "Focus Apprentice"

// TitleForLevel returns the rank title for level.
func TitleForLevel(level int) string {
	for _, t := range levelTitles {
		if level >= t.MinLevel {
			return t.Title
		}
	}
	return DefaultTitle
}
