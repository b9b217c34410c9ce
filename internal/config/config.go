package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/focusquest/internal/timer"
)

// Config holds the runtime settings of the CLI.
type Config struct {
	DBPath            string
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int
	RoundsPerCycle    int
	AutoStartBreaks   bool
	AutoStartWork     bool
	Persist           bool
	LogUseCases       bool
}

// DefaultConfig returns a Config with the classic 25/5/15 cycle and the
// database under the user's home directory.
func DefaultConfig() Config {
	return Config{
		DBPath:            defaultDBPath(),
		WorkSeconds:       timer.DefaultWorkSeconds,
		ShortBreakSeconds: timer.DefaultShortBreakSeconds,
		LongBreakSeconds:  timer.DefaultLongBreakSeconds,
		RoundsPerCycle:    timer.DefaultRoundsPerCycle,
		Persist:           true,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusquest.db"
	}
	return filepath.Join(home, ".focusquest", "focusquest.db")
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FOCUSQUEST_DB"); v != "" {
		cfg.DBPath = v
	}
	applyDurationEnv(&cfg.WorkSeconds, "FOCUSQUEST_WORK_SECONDS")
	applyDurationEnv(&cfg.ShortBreakSeconds, "FOCUSQUEST_SHORT_BREAK_SECONDS")
	applyDurationEnv(&cfg.LongBreakSeconds, "FOCUSQUEST_LONG_BREAK_SECONDS")
	if v := os.Getenv("FOCUSQUEST_ROUNDS_PER_CYCLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.RoundsPerCycle = n
		}
	}
	applyBoolEnv(&cfg.AutoStartBreaks, "FOCUSQUEST_AUTO_START_BREAKS")
	applyBoolEnv(&cfg.AutoStartWork, "FOCUSQUEST_AUTO_START_WORK")
	applyBoolEnv(&cfg.Persist, "FOCUSQUEST_PERSIST")
	applyBoolEnv(&cfg.LogUseCases, "FOCUSQUEST_LOG_USE_CASES")

	return cfg
}

// TimerConfig converts to the value the timer engine consumes. Either
// auto-start flag turns on auto-advance.
func (c Config) TimerConfig() timer.Config {
	return timer.Config{
		WorkSeconds:       c.WorkSeconds,
		ShortBreakSeconds: c.ShortBreakSeconds,
		LongBreakSeconds:  c.LongBreakSeconds,
		RoundsPerCycle:    c.RoundsPerCycle,
		AutoAdvance:       c.AutoStartBreaks || c.AutoStartWork,
		Persist:           c.Persist,
	}
}

// applyDurationEnv accepts positive seconds and raises them to the
// engine minimum.
func applyDurationEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = max(n, timer.MinDurationSeconds)
}

func applyBoolEnv(dst *bool, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
