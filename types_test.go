package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSlotNumberAndDayInverse(t *testing.T) {
	grid := Grid{Days: 5, SlotsPerDay: 5}
	assert.Equal(t, 25, grid.TotalSlots())
	for day := 0; day < grid.Days; day++ {
		for slotInDay := 0; slotInDay < grid.SlotsPerDay; slotInDay++ {
			slot := grid.SlotNumber(day, slotInDay)
			assert.Equal(t, day, grid.Day(slot))
		}
	}
}

func TestNewDatasetRejectsCourseWithNoTeacher(t *testing.T) {
	courses := []Course{{Name: "CS101"}}
	teachers := map[string]*Teacher{}
	_, err := NewDataset(courses, teachers, nil, nil, nil, Grid{Days: 5, SlotsPerDay: 5})
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, kindOf(err))
}

func TestNewDatasetRejectsDuplicateCourseOwnership(t *testing.T) {
	courses := []Course{{Name: "CS101"}}
	teachers := map[string]*Teacher{
		"alice": {Name: "alice", Courses: []string{"CS101"}},
		"bob":   {Name: "bob", Courses: []string{"CS101"}},
	}
	_, err := NewDataset(courses, teachers, nil, nil, nil, Grid{Days: 5, SlotsPerDay: 5})
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, kindOf(err))
}

func TestNewDatasetResolvesTeacherOf(t *testing.T) {
	courses := []Course{{Name: "CS101"}}
	teachers := map[string]*Teacher{
		"alice": {Name: "alice", Courses: []string{"CS101"}},
	}
	ds, err := NewDataset(courses, teachers, nil, nil, nil, Grid{Days: 5, SlotsPerDay: 5})
	require.NoError(t, err)
	assert.Equal(t, "alice", ds.TeacherOf("CS101"))
}
