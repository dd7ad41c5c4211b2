package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trivialDataset() string {
	return `{
		"courses": ["CS101"],
		"teachers": {"alice": {"courses": ["CS101"], "unavailable": []}},
		"rooms": ["R1"],
		"room_capacities": {"R1": 30},
		"time_slots": [
			"Slot1","Slot2","Slot3","Slot4","Slot5",
			"Slot6","Slot7","Slot8","Slot9","Slot10",
			"Slot11","Slot12","Slot13","Slot14","Slot15",
			"Slot16","Slot17","Slot18","Slot19","Slot20",
			"Slot21","Slot22","Slot23","Slot24","Slot25"
		],
		"students": {"s1": ["CS101"]}
	}`
}

func TestLoadDatasetTrivial(t *testing.T) {
	ds, _, err := LoadDataset(strings.NewReader(trivialDataset()), 30, 5)
	require.NoError(t, err)
	assert.Len(t, ds.Courses, 1)
	assert.Len(t, ds.Rooms, 1)
	assert.Equal(t, 30, ds.Rooms[0].Capacity)
	assert.Equal(t, 5, ds.Grid.Days)
	assert.Equal(t, []string{"s1"}, ds.StudentKeys)
}

func TestLoadDatasetPreservesStudentOrder(t *testing.T) {
	doc := `{
		"courses": ["CS101"],
		"teachers": {"alice": {"courses": ["CS101"], "unavailable": []}},
		"rooms": ["R1"],
		"room_capacities": {"R1": 30},
		"time_slots": [` + fiveByFiveSlots() + `],
		"students": {"zeta": ["CS101"], "alpha": ["CS101"], "mike": []}
	}`
	ds, _, err := LoadDataset(strings.NewReader(doc), 30, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mike"}, ds.StudentKeys)
}

func TestLoadDatasetMalformedSlotLabel(t *testing.T) {
	doc := `{
		"courses": ["CS101"],
		"teachers": {"alice": {"courses": ["CS101"], "unavailable": ["Period13"]}},
		"rooms": ["R1"],
		"room_capacities": {"R1": 30},
		"time_slots": [` + fiveByFiveSlots() + `],
		"students": {}
	}`
	_, _, err := LoadDataset(strings.NewReader(doc), 30, 5)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, kindOf(err))
}

func TestLoadDatasetBadTimeSlotCount(t *testing.T) {
	doc := `{
		"courses": [],
		"teachers": {},
		"rooms": [],
		"room_capacities": {},
		"time_slots": ["Slot1","Slot2","Slot3"],
		"students": {}
	}`
	_, _, err := LoadDataset(strings.NewReader(doc), 30, 5)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, kindOf(err))
}

func fiveByFiveSlots() string {
	var b strings.Builder
	for i := 1; i <= 25; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		b.WriteString(`"Slot`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`"`)
	}
	return b.String()
}
