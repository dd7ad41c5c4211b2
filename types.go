package main

// Value types describing a loaded dataset. Each entity is a thin,
// name-keyed struct; cross-references are resolved once at load time
// rather than carried as pointers, since the constraint model indexes
// everything by small integer position instead of identity.

// Course is a catalogue entry. Its teacher is resolved once at load
// time; there is no back-pointer on Course itself.
type Course struct {
	Name string
}

// Teacher owns a set of courses and a set of slots they cannot teach in.
type Teacher struct {
	Name        string
	Courses     []string
	Unavailable map[int]bool
}

// Room has a name and an integer seating capacity.
type Room struct {
	Name     string
	Capacity int
}

// Student enrolls in a set of courses, in input order.
type Student struct {
	Name    string
	Courses []string
}

// Grid describes the fixed weekly slot layout: Days * SlotsPerDay slots,
// 1-indexed, morning to evening within a day.
type Grid struct {
	Days        int
	SlotsPerDay int
}

func (g Grid) TotalSlots() int {
	return g.Days * g.SlotsPerDay
}

// Day returns the 0-indexed day a 1-indexed slot falls on.
func (g Grid) Day(slot int) int {
	return (slot - 1) / g.SlotsPerDay
}

// SlotNumber is the inverse of Day/intra-day index: day and slotInDay are
// both 0-indexed, the result is the 1-indexed slot number.
func (g Grid) SlotNumber(day, slotInDay int) int {
	return day*g.SlotsPerDay + slotInDay + 1
}

// Dataset is the full, immutable input tuple consumed by the Section
// Builder. Courses and Rooms keep catalogue order: later stages iterate
// them in this order, so a stable input order keeps their output stable.
type Dataset struct {
	Courses     []Course
	Teachers    map[string]*Teacher
	Rooms       []Room
	Students    map[string]*Student
	StudentKeys []string // input order, since map iteration isn't stable
	Grid        Grid

	courseTeacher map[string]string // resolved at NewDataset time
}

// NewDataset validates that every course is owned by exactly one teacher
// and builds the course-to-teacher lookup the rest of the pipeline needs.
// It raises InvalidInput for a course with no owner or with two owners;
// LoadDataset raises it for the other malformed-input cases (document,
// slot labels, time-slot count, room capacity, duplicate students).
func NewDataset(courses []Course, teachers map[string]*Teacher, rooms []Room, students map[string]*Student, studentKeys []string, grid Grid) (*Dataset, error) {
	courseTeacher := make(map[string]string)
	for _, t := range teachers {
		for _, c := range t.Courses {
			if owner, present := courseTeacher[c]; present {
				return nil, invalidInput("course %q is owned by both %q and %q", c, owner, t.Name)
			}
			courseTeacher[c] = t.Name
		}
	}
	for _, c := range courses {
		if _, present := courseTeacher[c.Name]; !present {
			return nil, invalidInput("course %q is not assigned to any teacher", c.Name)
		}
	}

	return &Dataset{
		Courses:       courses,
		Teachers:      teachers,
		Rooms:         rooms,
		Students:      students,
		StudentKeys:   studentKeys,
		Grid:          grid,
		courseTeacher: courseTeacher,
	}, nil
}

func (d *Dataset) TeacherOf(course string) string {
	return d.courseTeacher[course]
}

// Section is a concrete offering of a course, produced by the Section
// Builder. Identity is `<course>_S<k>`, 1-based k.
type Section struct {
	ID       string
	Course   string
	Teacher  string
	Students []string
}

// Assignment is the (slot, room) pair the solver picked for a section.
// Room is an index into Dataset.Rooms.
type Assignment struct {
	Slot int
	Room int
}
