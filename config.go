package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every tunable the solver pipeline needs at runtime.
type Config struct {
	MaxSectionSize    int
	MaxSessionsPerDay int
	TimeBudgetSeconds int
	CSVDirectoryPath  string
	RestrictedSlots   []RestrictedSlot
	Workers           int
	InFile            string
}

// RestrictedSlot is a (day, intra-day index) pair, both 0-indexed, naming
// a slot that is globally off-limits regardless of teacher availability.
type RestrictedSlot struct {
	Day      int
	SlotInDay int
}

// defaultRestrictedSlots is the compiled-in default restriction: day 2
// (Tuesday), intra-day index 2 (12:00-14:00), i.e. slot 13.
func defaultRestrictedSlots() []RestrictedSlot {
	return []RestrictedSlot{{Day: 2, SlotInDay: 2}}
}

// LoadConfig reads the .env file if present, then takes each tunable from
// the SCHEDULE_-prefixed environment, falling back to its default. No
// config file is read and no flags are bound here; buildConfig layers the
// command-line flags on top of the result.
func LoadConfig(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	v.SetEnvPrefix("SCHEDULE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max-section-size", 30)
	v.SetDefault("max-sessions-per-day", 5)
	v.SetDefault("time-budget-seconds", 300)
	v.SetDefault("csv-directory-path", os.Getenv("CSV_DIRECTORY_PATH"))
	v.SetDefault("workers", 4)
	v.SetDefault("in", "dataset.json")

	cfg := Config{
		MaxSectionSize:    v.GetInt("max-section-size"),
		MaxSessionsPerDay: v.GetInt("max-sessions-per-day"),
		TimeBudgetSeconds: v.GetInt("time-budget-seconds"),
		CSVDirectoryPath:  v.GetString("csv-directory-path"),
		RestrictedSlots:   defaultRestrictedSlots(),
		Workers:           v.GetInt("workers"),
		InFile:            v.GetString("in"),
	}
	if cfg.CSVDirectoryPath == "" {
		cfg.CSVDirectoryPath = "."
	}
	return cfg, nil
}
