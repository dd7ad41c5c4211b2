package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseModelForValidation() (*Model, []*Section) {
	teachers := map[string]*Teacher{"alice": {Name: "alice", Unavailable: map[int]bool{}}}
	secA := &Section{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: []string{"s1"}}
	secB := &Section{ID: "CS102_S1", Course: "CS102", Teacher: "alice", Students: []string{"s2"}}
	sections := []*Section{secA, secB}
	studentSections := map[string][]*Section{"s1": {secA}, "s2": {secB}}
	return BuildModel(sections, studentSections, teachers, smallGrid(), smallRooms(), nil, 5), sections
}

func TestValidateAssignmentAcceptsCleanSchedule(t *testing.T) {
	m, _ := baseModelForValidation()
	assignments := []Assignment{{Slot: 1, Room: 0}, {Slot: 2, Room: 0}}
	assert.NoError(t, ValidateAssignment(m, assignments))
}

// P1: no teacher clash.
func TestValidateAssignmentCatchesTeacherClash(t *testing.T) {
	m, _ := baseModelForValidation()
	assignments := []Assignment{{Slot: 1, Room: 0}, {Slot: 1, Room: 1}}
	err := ValidateAssignment(m, assignments)
	require.Error(t, err)
	assert.Equal(t, KindSolverBug, kindOf(err))
}

// P3: no room clash.
func TestValidateAssignmentCatchesRoomClash(t *testing.T) {
	teachers := map[string]*Teacher{
		"alice": {Name: "alice", Unavailable: map[int]bool{}},
		"bob":   {Name: "bob", Unavailable: map[int]bool{}},
	}
	secA := &Section{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: []string{"s1"}}
	secB := &Section{ID: "CS102_S1", Course: "CS102", Teacher: "bob", Students: []string{"s2"}}
	sections := []*Section{secA, secB}
	studentSections := map[string][]*Section{"s1": {secA}, "s2": {secB}}
	m := BuildModel(sections, studentSections, teachers, smallGrid(), smallRooms(), nil, 5)

	assignments := []Assignment{{Slot: 1, Room: 0}, {Slot: 1, Room: 0}}
	err := ValidateAssignment(m, assignments)
	require.Error(t, err)
	assert.Equal(t, KindSolverBug, kindOf(err))
}

// P2: no student clash.
func TestValidateAssignmentCatchesStudentClash(t *testing.T) {
	teachers := map[string]*Teacher{
		"alice": {Name: "alice", Unavailable: map[int]bool{}},
		"bob":   {Name: "bob", Unavailable: map[int]bool{}},
	}
	secA := &Section{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: []string{"shared"}}
	secB := &Section{ID: "CS102_S1", Course: "CS102", Teacher: "bob", Students: []string{"shared"}}
	sections := []*Section{secA, secB}
	studentSections := map[string][]*Section{"shared": {secA, secB}}
	m := BuildModel(sections, studentSections, teachers, smallGrid(), smallRooms(), nil, 5)

	assignments := []Assignment{{Slot: 1, Room: 0}, {Slot: 1, Room: 1}}
	err := ValidateAssignment(m, assignments)
	require.Error(t, err)
	assert.Equal(t, KindSolverBug, kindOf(err))
}

// P4: capacity.
func TestValidateAssignmentCatchesCapacityOverflow(t *testing.T) {
	teachers := map[string]*Teacher{"alice": {Name: "alice", Unavailable: map[int]bool{}}}
	sec := &Section{ID: "CS101_S1", Course: "CS101", Teacher: "alice", Students: mkStudents(2, "x")}
	sections := []*Section{sec}
	studentSections := map[string][]*Section{}
	for _, s := range sec.Students {
		studentSections[s] = []*Section{sec}
	}
	rooms := []Room{{Name: "Tiny", Capacity: 1}}
	m := &Model{Sections: sections, Grid: smallGrid(), Rooms: rooms}

	assignments := []Assignment{{Slot: 1, Room: 0}}
	err := ValidateAssignment(m, assignments)
	require.Error(t, err)
	assert.Equal(t, KindSolverBug, kindOf(err))
}

func TestValidateAssignmentRejectsWrongLength(t *testing.T) {
	m, _ := baseModelForValidation()
	err := ValidateAssignment(m, []Assignment{{Slot: 1, Room: 0}})
	require.Error(t, err)
	assert.Equal(t, KindSolverBug, kindOf(err))
}
