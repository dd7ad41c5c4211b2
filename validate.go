package main

import "fmt"

// ValidateAssignment is an independent scan of the Assignment table,
// bucketing sections by (slot, room), (slot, teacher), and (slot,
// student). Any duplicate bucket key is a fatal SolverBug, since it
// means the model failed to encode a hard constraint.
//
// This is a wholly separate pass over the solver's own output rather
// than reusing any solver-internal bookkeeping, so a future bug in the
// model's encoding does not also blind the validator.
func ValidateAssignment(model *Model, assignments []Assignment) error {
	if len(assignments) != len(model.Sections) {
		return solverBug("assignment table has %d entries but there are %d sections", len(assignments), len(model.Sections))
	}

	type roomKey struct {
		slot, room int
	}
	type teacherKey struct {
		slot    int
		teacher string
	}
	type studentKey struct {
		slot    int
		student string
	}

	seenRoom := make(map[roomKey]string)
	seenTeacher := make(map[teacherKey]string)
	seenStudent := make(map[studentKey]string)

	for i, sec := range model.Sections {
		a := assignments[i]

		rk := roomKey{a.Slot, a.Room}
		if other, present := seenRoom[rk]; present {
			return solverBug("room clash: %q and %q both placed in slot %d room %d", other, sec.ID, a.Slot, a.Room)
		}
		seenRoom[rk] = sec.ID

		tk := teacherKey{a.Slot, sec.Teacher}
		if other, present := seenTeacher[tk]; present {
			return solverBug("teacher clash: %q and %q both have teacher %q in slot %d", other, sec.ID, sec.Teacher, a.Slot)
		}
		seenTeacher[tk] = sec.ID

		for _, student := range sec.Students {
			sk := studentKey{a.Slot, student}
			if other, present := seenStudent[sk]; present {
				return solverBug("student clash: %q and %q both enroll student %q in slot %d", other, sec.ID, student, a.Slot)
			}
			seenStudent[sk] = sec.ID
		}

		if a.Room < 0 || a.Room >= len(model.Rooms) {
			return solverBug("section %q assigned invalid room index %d", sec.ID, a.Room)
		}
		if len(sec.Students) > model.Rooms[a.Room].Capacity {
			return solverBug("section %q has %d students but room %q holds %d",
				sec.ID, len(sec.Students), model.Rooms[a.Room].Name, model.Rooms[a.Room].Capacity)
		}
		if a.Slot < 1 || a.Slot > model.Grid.TotalSlots() {
			return solverBug("section %q assigned out-of-range slot %d", sec.ID, a.Slot)
		}
	}

	return nil
}

func describeAssignment(model *Model, i int, a Assignment) string {
	sec := model.Sections[i]
	return fmt.Sprintf("%s -> slot %d, room %s", sec.ID, a.Slot, model.Rooms[a.Room].Name)
}
