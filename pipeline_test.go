package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end scenario 1 (trivial) driven through the full RunPipeline
// state machine, not just the Solver Driver in isolation.
func TestRunPipelineTrivialScenario(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "dataset.json")
	require.NoError(t, os.WriteFile(inPath, []byte(trivialDataset()), 0o644))

	cfg := Config{
		MaxSectionSize:    30,
		MaxSessionsPerDay: 5,
		TimeBudgetSeconds: 5,
		CSVDirectoryPath:  dir,
		RestrictedSlots:   defaultRestrictedSlots(),
		Workers:           2,
		InFile:            inPath,
	}
	log := zerolog.Nop()

	result, err := RunPipeline(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	assert.Equal(t, 1, result.Sections)

	contents, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "CS101_S1")
}

func TestRunPipelineRejectsMissingInput(t *testing.T) {
	cfg := Config{
		MaxSectionSize:    30,
		MaxSessionsPerDay: 5,
		TimeBudgetSeconds: 1,
		CSVDirectoryPath:  t.TempDir(),
		RestrictedSlots:   defaultRestrictedSlots(),
		Workers:           1,
		InFile:            filepath.Join(t.TempDir(), "does-not-exist.json"),
	}
	_, err := RunPipeline(cfg, zerolog.Nop())
	require.Error(t, err)
}
