package main

// Model precomputes, per section, the legal domains and conflict lists
// the search needs: a slot domain (forbidden-slot and restricted-slot
// filtering applied up front), a room domain (capacity filtering), and
// the index lists used to enforce the remaining hard constraints
// incrementally during search.
type Model struct {
	Sections []*Section
	Grid     Grid
	Rooms    []Room

	MaxSessionsPerDay int

	LegalSlots [][]int // per section index, 1-indexed slot numbers
	LegalRooms [][]int // per section index, room indices into Rooms

	TeacherConflicts [][]int // per section index, other sections sharing a teacher
	StudentConflicts [][]int // per section index, other sections sharing a student

	CourseSections  map[string][]int // course name -> section indices, catalogue order
	StudentSections map[string][]int // student name -> section indices

	// RestrictedSlotCount is how many slot numbers are globally off
	// limits regardless of teacher, used by the Solver Driver's
	// search-free capacity precheck.
	RestrictedSlotCount int

	dayOfSlot []int // 1-indexed slot -> day lookup
}

// BuildModel precomputes every section's legal domains and the
// conflict/lookup structures the solver and objective function need.
func BuildModel(sections []*Section, studentSections map[string][]*Section, teachers map[string]*Teacher, grid Grid, rooms []Room, restricted []RestrictedSlot, maxSessionsPerDay int) *Model {
	n := len(sections)
	m := &Model{
		Sections:          sections,
		Grid:              grid,
		Rooms:             rooms,
		MaxSessionsPerDay: maxSessionsPerDay,
		LegalSlots:        make([][]int, n),
		LegalRooms:        make([][]int, n),
		TeacherConflicts:  make([][]int, n),
		StudentConflicts:  make([][]int, n),
		CourseSections:    make(map[string][]int),
		StudentSections:   make(map[string][]int),
	}

	restrictedSlotSet := make(map[int]bool, len(restricted))
	for _, rs := range restricted {
		restrictedSlotSet[grid.SlotNumber(rs.Day, rs.SlotInDay)] = true
	}
	m.RestrictedSlotCount = len(restrictedSlotSet)

	total := grid.TotalSlots()
	m.dayOfSlot = make([]int, total+1) // index 0 unused, slots are 1-indexed
	for slot := 1; slot <= total; slot++ {
		m.dayOfSlot[slot] = grid.Day(slot)
	}

	sectionIndex := make(map[string]int, n)
	teacherSectionIdx := make(map[string][]int)
	for i, sec := range sections {
		sectionIndex[sec.ID] = i
		m.CourseSections[sec.Course] = append(m.CourseSections[sec.Course], i)
		teacherSectionIdx[sec.Teacher] = append(teacherSectionIdx[sec.Teacher], i)

		unavailable := map[int]bool{}
		if t, present := teachers[sec.Teacher]; present {
			unavailable = t.Unavailable
		}
		var slots []int
		for slot := 1; slot <= total; slot++ {
			if restrictedSlotSet[slot] || unavailable[slot] {
				continue
			}
			slots = append(slots, slot)
		}
		m.LegalSlots[i] = slots

		var rs []int
		for ri, room := range rooms {
			if room.Capacity >= len(sec.Students) {
				rs = append(rs, ri)
			}
		}
		m.LegalRooms[i] = rs
	}

	for _, idxs := range teacherSectionIdx {
		for _, i := range idxs {
			for _, j := range idxs {
				if i != j {
					m.TeacherConflicts[i] = append(m.TeacherConflicts[i], j)
				}
			}
		}
	}

	for student, secs := range studentSections {
		var idxs []int
		for _, sec := range secs {
			idxs = append(idxs, sectionIndex[sec.ID])
		}
		m.StudentSections[student] = idxs
		for _, i := range idxs {
			for _, j := range idxs {
				if i != j {
					m.StudentConflicts[i] = append(m.StudentConflicts[i], j)
				}
			}
		}
	}

	return m
}

func (m *Model) Day(slot int) int {
	return m.dayOfSlot[slot]
}
