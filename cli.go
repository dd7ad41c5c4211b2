package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI flags, bound once on the root command and read by every
// subcommand. Each is optional: zero value means "let LoadConfig's
// viper layer decide".
var (
	flagIn         string
	flagWorkers    int
	flagTime       time.Duration
	flagMaxSection int
	flagMaxPerDay  int
	flagCSVDir     string
	flagRestricted []string
	flagVerbose    bool
)

// newLogger builds a single process-wide zerolog logger, console-writer
// output to stderr, stamped with a fresh run ID so two invocations over
// the same dataset can be told apart in the logs.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}

// parseRestrictedFlags turns repeatable "day:slot" pairs into
// RestrictedSlot values, falling back to the compiled-in default when
// the flag was not given at all.
func parseRestrictedFlags(raw []string) ([]RestrictedSlot, error) {
	if len(raw) == 0 {
		return defaultRestrictedSlots(), nil
	}
	out := make([]RestrictedSlot, 0, len(raw))
	for _, s := range raw {
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("--restricted %q: expected day:slot", s)
		}
		day, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("--restricted %q: bad day: %v", s, err)
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("--restricted %q: bad slot: %v", s, err)
		}
		out = append(out, RestrictedSlot{Day: day, SlotInDay: slot})
	}
	return out, nil
}

// buildConfig layers the CLI flags over LoadConfig's viper/.env/default
// chain: a flag set on the command line always wins.
func buildConfig() (Config, error) {
	v := viper.New()
	cfg, err := LoadConfig(v)
	if err != nil {
		return Config{}, err
	}
	if flagIn != "" {
		cfg.InFile = flagIn
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagTime > 0 {
		cfg.TimeBudgetSeconds = int(flagTime.Seconds())
	}
	if flagMaxSection > 0 {
		cfg.MaxSectionSize = flagMaxSection
	}
	if flagMaxPerDay > 0 {
		cfg.MaxSessionsPerDay = flagMaxPerDay
	}
	if flagCSVDir != "" {
		cfg.CSVDirectoryPath = flagCSVDir
	}
	restricted, err := parseRestrictedFlags(flagRestricted)
	if err != nil {
		return Config{}, err
	}
	cfg.RestrictedSlots = restricted
	return cfg, nil
}

// exitForKind maps a PipelineError's Kind to a distinct process exit
// code, so scripts driving `schedule` can branch on failure class
// without scraping log text.
func exitForKind(k Kind) {
	switch k {
	case KindInvalidInput:
		os.Exit(2)
	case KindInfeasible:
		os.Exit(3)
	case KindSolverTimeout:
		os.Exit(4)
	default:
		os.Exit(1)
	}
}

func main() {
	root := &cobra.Command{
		Use:   "schedule",
		Short: "Conflict-free weekly university class timetable generator",
		Long: "A tool to build, solve, validate, and emit a conflict-free weekly\n" +
			"class timetable from a course/teacher/room/student dataset.",
	}
	root.PersistentFlags().StringVar(&flagIn, "in", "", "input dataset JSON file or URL (default dataset.json)")
	root.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "number of concurrent search workers")
	root.PersistentFlags().DurationVar(&flagTime, "time", 0, "total wall-clock budget for the solver")
	root.PersistentFlags().IntVar(&flagMaxSection, "max-section-size", 0, "maximum students per section")
	root.PersistentFlags().IntVar(&flagMaxPerDay, "max-sessions-per-day", 0, "maximum sessions per teacher per day")
	root.PersistentFlags().StringVar(&flagCSVDir, "csv-dir", "", "directory to write the master timetable into")
	root.PersistentFlags().StringSliceVar(&flagRestricted, "restricted", nil, "repeatable day:slot pair that is globally off limits (default 2:2)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(cmdGen(), cmdScore(), cmdCheck())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cmdGen runs the full pipeline and emits the master timetable.
func cmdGen() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "run the full pipeline and emit a conflict-free schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(flagVerbose)
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			result, err := RunPipeline(cfg, log)
			if err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("pipeline failed")
				exitForKind(kindOf(err))
				return nil
			}
			log.Info().
				Str("status", result.Status.String()).
				Int("objective", result.Objective).
				Int("sections", result.Sections).
				Str("report", result.ReportPath).
				Msg("schedule generated")
			return nil
		},
	}
}

// cmdCheck loads a dataset and runs only the Feasibility Guards,
// stopping before the solver is ever invoked.
func cmdCheck() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "run the feasibility guards without invoking the solver",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(flagVerbose)
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			reader, err := openInput(cfg.InFile)
			if err != nil {
				return err
			}
			defer reader.Close()

			ds, _, err := LoadDataset(reader, cfg.MaxSectionSize, slotsPerDay)
			if err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("dataset failed to load")
				exitForKind(kindOf(err))
				return nil
			}
			sections, _, err := BuildSections(ds, cfg.MaxSectionSize)
			if err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("sectioning failed")
				exitForKind(kindOf(err))
				return nil
			}
			if err := RunFeasibilityGuards(sections, ds.Grid, len(ds.Rooms), cfg.MaxSessionsPerDay); err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("dataset is infeasible")
				exitForKind(kindOf(err))
				return nil
			}
			log.Info().Int("sections", len(sections)).Msg("feasibility guards passed")
			return nil
		},
	}
}

// cmdScore loads a dataset plus a previously written master timetable
// and reports the objective value and any clash diagnostics, without
// re-running the solver.
func cmdScore() *cobra.Command {
	var timetablePath string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "score a previously generated master timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(flagVerbose)
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			reader, err := openInput(cfg.InFile)
			if err != nil {
				return err
			}
			defer reader.Close()

			ds, _, err := LoadDataset(reader, cfg.MaxSectionSize, slotsPerDay)
			if err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("dataset failed to load")
				exitForKind(kindOf(err))
				return nil
			}
			sections, studentSections, err := BuildSections(ds, cfg.MaxSectionSize)
			if err != nil {
				return err
			}
			studentSectionsBySection := make(map[string][]*Section, len(studentSections))
			for name, secs := range studentSections {
				studentSectionsBySection[name] = secs
			}
			model := BuildModel(sections, studentSectionsBySection, ds.Teachers, ds.Grid, ds.Rooms, cfg.RestrictedSlots, cfg.MaxSessionsPerDay)

			assignments, err := ReadMasterTimetable(timetablePath, model)
			if err != nil {
				return err
			}
			if err := ValidateAssignment(model, assignments); err != nil {
				log.Error().Err(err).Str("kind", kindOf(err).String()).Msg("timetable has a clash")
				exitForKind(kindOf(err))
				return nil
			}
			objective := computeObjective(model, assignments)
			log.Info().Int("objective", objective).Msg("timetable scored clash-free")
			return nil
		},
	}
	cmd.Flags().StringVar(&timetablePath, "timetable", "Master_Timetable.csv", "path to a previously written master timetable")
	return cmd
}
