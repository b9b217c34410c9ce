// Package leveling maps total XP to player levels and titles.
//
// Going from level 1 to 2 costs BaseXPPerLevel; every later step costs
// LevelScaling times the previous one, rounded to the nearest integer.
// The curve stops at MaxLevel; XP earned past its floor stays there.
package leveling

import "math"

const (
	BaseXPPerLevel = 200
	LevelScaling   = 1.15

	// MaxLevel keeps every cumulative total well inside int64.
	MaxLevel = 200
)

// MaxXP is the cumulative cost of MaxLevel.
var MaxXP = XPForLevel(MaxLevel)

// XPDeltaForLevel returns the XP needed to go from level to level+1.
// Rounding is half-to-even so stored totals stay stable across platforms.
// There is no step past MaxLevel, so levels at or above it return 0.
func XPDeltaForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	if level >= MaxLevel {
		return 0
	}
	return int(math.RoundToEven(BaseXPPerLevel * math.Pow(LevelScaling, float64(level-1))))
}

// XPForLevel returns the cumulative XP required to reach level.
// Levels at or below 1 cost nothing; levels above MaxLevel cost MaxXP.
func XPForLevel(level int) int {
	level = min(level, MaxLevel)
	total := 0
	for l := 1; l < level; l++ {
		total += XPDeltaForLevel(l)
	}
	return total
}

// LevelForXP returns the highest level whose cumulative cost is covered by total.
func LevelForXP(total int) int {
	level, floor := 1, 0
	for level < MaxLevel {
		next := floor + XPDeltaForLevel(level)
		if next > total {
			return level
		}
		floor = next
		level++
	}
	return MaxLevel
}

// XPToNextLevel returns how much XP is still missing for the next level,
// or 0 at MaxLevel.
func XPToNextLevel(total int) int {
	level := LevelForXP(total)
	if level >= MaxLevel {
		return 0
	}
	return XPForLevel(level+1) - total
}

// XPInCurrentLevel returns (earned within the level, size of the level).
// Both are 0 at MaxLevel.
func XPInCurrentLevel(total int) (earned, needed int) {
	level := LevelForXP(total)
	if level >= MaxLevel {
		return 0, 0
	}
	floor := XPForLevel(level)
	return total - floor, XPForLevel(level+1) - floor
}

// LevelProgress is a read model of where a total sits on the curve.
type LevelProgress struct {
	Level    int
	Title    string
	TotalXP  int
	Maxed    bool
	Earned   int
	Needed   int
	ToNext   int
	Fraction float64
}

// ProgressInLevel summarises total for display.
func ProgressInLevel(total int) LevelProgress {
	if total < 0 {
		total = 0
	}
	level := LevelForXP(total)
	earned, needed := XPInCurrentLevel(total)
	frac := 0.0
	if needed > 0 {
		frac = float64(earned) / float64(needed)
	}
	maxed := level >= MaxLevel
	if maxed {
		frac = 1
	}
	return LevelProgress{
		Level:    level,
		Title:    TitleForLevel(level),
		TotalXP:  total,
		Maxed:    maxed,
		Earned:   earned,
		Needed:   needed,
		ToNext:   needed - earned,
		Fraction: frac,
	}
}
