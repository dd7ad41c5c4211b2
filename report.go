package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var reportHeader = []string{"Section", "Course", "Teacher", "Students", "Day", "Time", "Room"}

// WriteMasterTimetable writes one row per section to Master_Timetable.csv
// using a buffered CSV writer, creating the target directory first if it
// does not already exist.
func WriteMasterTimetable(dir string, model *Model, assignments []Assignment) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "Master_Timetable.csv")
	fp, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer fp.Close()

	if err := writeMasterTimetable(fp, model, assignments); err != nil {
		return "", err
	}
	return path, nil
}

// ReadMasterTimetable parses a previously written master timetable back
// into an Assignment slice aligned with model.Sections, for the `score`
// command. Row order in the file need not match model.Sections order;
// rows are matched back up by section ID.
func ReadMasterTimetable(path string, model *Model) ([]Assignment, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, invalidInput("opening %q: %v", path, err)
	}
	defer fp.Close()

	r := csv.NewReader(bufio.NewReader(fp))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, invalidInput("reading %q: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, solverBug("master timetable %q is empty", path)
	}

	roomIndex := make(map[string]int, len(model.Rooms))
	for i, room := range model.Rooms {
		roomIndex[room.Name] = i
	}
	sectionIndex := make(map[string]int, len(model.Sections))
	for i, sec := range model.Sections {
		sectionIndex[sec.ID] = i
	}

	assignments := make([]Assignment, len(model.Sections))
	for _, row := range rows[1:] { // skip reportHeader
		if len(row) != len(reportHeader) {
			continue
		}
		id, _, _, _, day, timeRange, roomName := row[0], row[1], row[2], row[3], row[4], row[5], row[6]
		idx, present := sectionIndex[id]
		if !present {
			return nil, solverBug("master timetable references unknown section %q", id)
		}
		slot, ok := encodeSlot(day, timeRange)
		if !ok {
			return nil, solverBug("master timetable has unparseable slot %q %q for section %q", day, timeRange, id)
		}
		room, present := roomIndex[roomName]
		if !present {
			return nil, solverBug("master timetable references unknown room %q", roomName)
		}
		assignments[idx] = Assignment{Slot: slot, Room: room}
	}

	for i := range assignments {
		if assignments[i].Slot == 0 {
			return nil, solverBug("master timetable is missing section %q", model.Sections[i].ID)
		}
	}
	return assignments, nil
}

func writeMasterTimetable(w io.Writer, model *Model, assignments []Assignment) error {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	out := csv.NewWriter(buf)
	defer out.Flush()

	if err := out.Write(reportHeader); err != nil {
		return err
	}

	for i, sec := range model.Sections {
		a := assignments[i]
		day, timeRange := DecodeSlot(a.Slot)
		row := []string{
			sec.ID,
			sec.Course,
			sec.Teacher,
			strings.Join(sec.Students, ", "),
			day,
			timeRange,
			model.Rooms[a.Room].Name,
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	return out.Error()
}
