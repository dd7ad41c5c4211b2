package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadMasterTimetableRoundTrip(t *testing.T) {
	teachers := map[string]*Teacher{"alice": {Name: "alice", Unavailable: map[int]bool{}}}
	secA := &Section{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: []string{"s1", "s2"}}
	secB := &Section{ID: "CS102_S1", Course: "CS102", Teacher: "alice", Students: []string{"s3"}}
	sections := []*Section{secA, secB}
	studentSections := map[string][]*Section{"s1": {secA}, "s2": {secA}, "s3": {secB}}
	m := BuildModel(sections, studentSections, teachers, smallGrid(), smallRooms(), nil, 5)

	assignments := []Assignment{{Slot: 1, Room: 0}, {Slot: 7, Room: 1}}

	dir := t.TempDir()
	path, err := WriteMasterTimetable(dir, m, assignments)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Master_Timetable.csv"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Section,Course,Teacher,Students,Day,Time,Room")
	assert.Contains(t, string(contents), "s1, s2")

	roundTripped, err := ReadMasterTimetable(path, m)
	require.NoError(t, err)
	assert.Equal(t, assignments, roundTripped)
}

func TestWriteMasterTimetableCreatesDirectory(t *testing.T) {
	teachers := map[string]*Teacher{"alice": {Name: "alice", Unavailable: map[int]bool{}}}
	sections := []*Section{{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: []string{"s1"}}}
	m := BuildModel(sections, map[string][]*Section{"s1": sections}, teachers, smallGrid(), smallRooms(), nil, 5)

	dir := filepath.Join(t.TempDir(), "nested", "reports")
	_, err := WriteMasterTimetable(dir, m, []Assignment{{Slot: 1, Room: 0}})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
