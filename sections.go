package main

import "fmt"

// BuildSections explodes course enrollments into concrete sections of
// bounded size. For each course in catalogue order, it collects enrolled
// students in input order (the order they appear in the Dataset's
// StudentKeys), partitions them into blocks of maxSectionSize, and emits
// one Section per block with id "<course>_S<k>".
//
// The same Dataset always yields the same section list: both courses and
// students are walked in stable, input-derived order, and partitioning
// is a pure block split.
func BuildSections(ds *Dataset, maxSectionSize int) ([]*Section, map[string][]*Section, error) {
	if maxSectionSize < 1 {
		return nil, nil, invalidInput("max section size must be >= 1, got %d", maxSectionSize)
	}

	var sections []*Section
	studentSections := make(map[string][]*Section, len(ds.StudentKeys))
	for _, name := range ds.StudentKeys {
		studentSections[name] = nil
	}

	for _, course := range ds.Courses {
		teacher := ds.TeacherOf(course.Name)
		if teacher == "" {
			return nil, nil, invalidInput("course %q is not assigned to any teacher", course.Name)
		}

		var enrolled []string
		for _, name := range ds.StudentKeys {
			student := ds.Students[name]
			if containsString(student.Courses, course.Name) {
				enrolled = append(enrolled, name)
			}
		}

		numSections := ceilDiv(len(enrolled), maxSectionSize)
		for k := 0; k < numSections; k++ {
			start := k * maxSectionSize
			end := start + maxSectionSize
			if end > len(enrolled) {
				end = len(enrolled)
			}
			sec := &Section{
				ID:       fmt.Sprintf("%s_S%d", course.Name, k+1),
				Course:   course.Name,
				Teacher:  teacher,
				Students: append([]string(nil), enrolled[start:end]...),
			}
			sections = append(sections, sec)
			for _, s := range sec.Students {
				studentSections[s] = append(studentSections[s], sec)
			}
		}
	}

	return sections, studentSections, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}
