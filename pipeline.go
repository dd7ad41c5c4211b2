package main

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const slotsPerDay = 5

// PipelineStage names the states RunPipeline moves through: Loaded ->
// Sectioned -> GuardsPassed -> ModelBuilt -> Solved -> Validated ->
// Emitted. Any stage may terminate the run with a typed failure; there
// are no retries and no partial outputs.
type PipelineStage string

const (
	StageLoaded       PipelineStage = "Loaded"
	StageSectioned    PipelineStage = "Sectioned"
	StageGuardsPassed PipelineStage = "GuardsPassed"
	StageModelBuilt   PipelineStage = "ModelBuilt"
	StageSolved       PipelineStage = "Solved"
	StageValidated    PipelineStage = "Validated"
	StageEmitted      PipelineStage = "Emitted"
)

// PipelineResult is what a successful `gen` run reports.
type PipelineResult struct {
	ReportPath string
	Status     SolveStatus
	Objective  int
	Sections   int
}

// RunPipeline runs the full load-section-guard-model-solve-validate-emit
// sequence linearly. It owns no domain logic itself, only sequencing and
// logging one line as each phase completes.
func RunPipeline(cfg Config, log zerolog.Logger) (PipelineResult, error) {
	reader, err := openInput(cfg.InFile)
	if err != nil {
		return PipelineResult{}, err
	}
	defer reader.Close()

	ds, _, err := LoadDataset(reader, cfg.MaxSectionSize, slotsPerDay)
	if err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageLoaded)).
		Int("courses", len(ds.Courses)).
		Int("teachers", len(ds.Teachers)).
		Int("rooms", len(ds.Rooms)).
		Int("students", len(ds.StudentKeys)).
		Msg("dataset loaded")

	sections, studentSections, err := BuildSections(ds, cfg.MaxSectionSize)
	if err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageSectioned)).Int("sections", len(sections)).Msg("sections built")

	if err := RunFeasibilityGuards(sections, ds.Grid, len(ds.Rooms), cfg.MaxSessionsPerDay); err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageGuardsPassed)).Msg("feasibility guards passed")

	studentSectionsBySection := make(map[string][]*Section)
	for name, secs := range studentSections {
		studentSectionsBySection[name] = secs
	}
	model := BuildModel(sections, studentSectionsBySection, ds.Teachers, ds.Grid, ds.Rooms, cfg.RestrictedSlots, cfg.MaxSessionsPerDay)
	log.Info().Str("stage", string(StageModelBuilt)).Msg("constraint model built")

	budget := time.Duration(cfg.TimeBudgetSeconds) * time.Second
	result, err := Solve(model, cfg.Workers, budget, time.Now().UnixNano())
	if err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageSolved)).
		Str("status", result.Status.String()).
		Int("objective", result.Objective).
		Msg("solver finished")

	if err := ValidateAssignment(model, result.Assignments); err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageValidated)).Msg("assignment validated clash-free")

	path, err := WriteMasterTimetable(cfg.CSVDirectoryPath, model, result.Assignments)
	if err != nil {
		return PipelineResult{}, err
	}
	log.Info().Str("stage", string(StageEmitted)).Str("path", path).Msg("master timetable written")

	for i, sec := range model.Sections {
		log.Debug().Msg(describeAssignment(model, i, result.Assignments[i]))
		_ = sec
	}

	return PipelineResult{
		ReportPath: path,
		Status:     result.Status,
		Objective:  result.Objective,
		Sections:   len(sections),
	}, nil
}

// openInput resolves the dataset source: a bare HTTP(S) URL is
// downloaded, anything else is opened as a local file. Any failure to
// reach the input is the caller's fault, not the solver's, so it's
// reported as InvalidInput rather than left as a raw I/O error.
func openInput(name string) (io.ReadCloser, error) {
	if strings.HasPrefix(name, "http:") || strings.HasPrefix(name, "https:") {
		res, err := http.Get(name)
		if err != nil {
			return nil, invalidInput("fetching %q: %v", name, err)
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, invalidInput("fetching %q: server returned %s", name, res.Status)
		}
		return res.Body, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, invalidInput("opening %q: %v", name, err)
	}
	return f, nil
}
