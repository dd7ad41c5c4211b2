package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// rawTeacher mirrors the `teachers` object in the dataset document: a
// name-keyed mapping to owned courses and unavailable slot labels.
type rawTeacher struct {
	Courses     []string `json:"courses"`
	Unavailable []string `json:"unavailable"`
}

// rawDataset mirrors the dataset document's top-level fields. It is
// intentionally a thin, dumb transcription of the JSON document and does
// no cross-validation itself beyond what's needed to unmarshal, leaving
// invariant enforcement to Dataset.
type rawDataset struct {
	Courses   []string              `json:"courses"`
	Teachers  map[string]rawTeacher `json:"teachers"`
	Rooms     []string              `json:"rooms"`
	RoomCaps  map[string]int        `json:"room_capacities"`
	TimeSlots []string              `json:"time_slots"`
	Students  json.RawMessage       `json:"students"`
}

// decodeOrderedStudents preserves the order student names appear in the
// JSON object. Go's map type has no stable iteration order, so this walks
// the raw tokens by hand rather than unmarshaling into a map directly;
// later stages depend on students being processed in enrollment order.
func decodeOrderedStudents(raw json.RawMessage) ([]string, map[string][]string, error) {
	if len(raw) == 0 {
		return nil, map[string][]string{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("students: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("students: expected a JSON object")
	}

	var keys []string
	out := make(map[string][]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("students: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("students: expected string key")
		}
		var courses []string
		if err := dec.Decode(&courses); err != nil {
			return nil, nil, fmt.Errorf("students: %q: %v", key, err)
		}
		if _, dup := out[key]; dup {
			return nil, nil, fmt.Errorf("students: duplicate student %q", key)
		}
		keys = append(keys, key)
		out[key] = courses
	}
	return keys, out, nil
}

// LoadDataset reads the dataset document from r and produces the
// immutable Dataset tuple. Slot labels of the form "SlotN" parse by
// stripping the fixed "Slot" prefix and reading the integer; a malformed
// label is InvalidInput.
func LoadDataset(r io.Reader, defaultRoomCapacity int, slotsPerDay int) (*Dataset, []string, error) {
	var raw rawDataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, invalidInput("malformed dataset document: %v", err)
	}

	if len(raw.TimeSlots)%slotsPerDay != 0 || len(raw.TimeSlots) == 0 {
		return nil, nil, invalidInput("time_slots length %d is not a multiple of %d slots/day", len(raw.TimeSlots), slotsPerDay)
	}
	grid := Grid{Days: len(raw.TimeSlots) / slotsPerDay, SlotsPerDay: slotsPerDay}

	courses := make([]Course, 0, len(raw.Courses))
	for _, name := range raw.Courses {
		courses = append(courses, Course{Name: name})
	}

	teachers := make(map[string]*Teacher, len(raw.Teachers))
	for name, rt := range raw.Teachers {
		unavailable := make(map[int]bool, len(rt.Unavailable))
		for _, label := range rt.Unavailable {
			slot, err := parseSlotLabel(label)
			if err != nil {
				return nil, nil, invalidInput("teacher %q: %v", name, err)
			}
			unavailable[slot] = true
		}
		teachers[name] = &Teacher{
			Name:        name,
			Courses:     append([]string(nil), rt.Courses...),
			Unavailable: unavailable,
		}
	}

	rooms := make([]Room, 0, len(raw.Rooms))
	for i, name := range raw.Rooms {
		capacity := defaultRoomCapacity
		if c, present := raw.RoomCaps[name]; present {
			capacity = c
		}
		if capacity < 1 {
			return nil, nil, invalidInput("room %q has invalid capacity %d", name, capacity)
		}
		rooms = append(rooms, Room{Name: name, Capacity: capacity})
	}

	studentKeys, studentCourses, err := decodeOrderedStudents(raw.Students)
	if err != nil {
		return nil, nil, invalidInput("%v", err)
	}
	students := make(map[string]*Student, len(studentKeys))
	for _, name := range studentKeys {
		students[name] = &Student{Name: name, Courses: append([]string(nil), studentCourses[name]...)}
	}

	ds, err := NewDataset(courses, teachers, rooms, students, studentKeys, grid)
	if err != nil {
		return nil, nil, err
	}
	return ds, raw.Courses, nil
}

// parseSlotLabel strips the "Slot" prefix and reads the trailing integer.
func parseSlotLabel(label string) (int, error) {
	const prefix = "Slot"
	if !strings.HasPrefix(label, prefix) {
		return 0, fmt.Errorf("slot label %q does not start with %q", label, prefix)
	}
	n, err := strconv.Atoi(label[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("slot label %q has a non-integer suffix", label)
	}
	return n, nil
}
