package main

import "sort"

// RunFeasibilityGuards performs two cheap arithmetic checks, both
// rejecting with Infeasible before the solver is ever invoked.
func RunFeasibilityGuards(sections []*Section, grid Grid, numRooms int, maxSessionsPerDay int) error {
	if err := slotBudgetGuard(sections, grid, numRooms); err != nil {
		return err
	}
	return teacherCeilingGuard(sections, grid, maxSessionsPerDay)
}

// slotBudgetGuard rejects if the total number of sections exceeds the
// total number of (slot, room) pairs available.
func slotBudgetGuard(sections []*Section, grid Grid, numRooms int) error {
	capacity := grid.TotalSlots() * numRooms
	if len(sections) > capacity {
		shortage := len(sections) - capacity
		return infeasible(
			"increase the number of rooms, time slots, or maximum section size",
			"total sections needed (%d) exceeds total available slots (%d) by %d",
			len(sections), capacity, shortage,
		)
	}
	return nil
}

// teacherCeilingGuard rejects any teacher whose section load exceeds
// min(|slots|, MAX_SESSIONS_PER_DAY * 5), a conservative bound that
// ignores per-teacher unavailability; tighter checks are left to the
// solver.
func teacherCeilingGuard(sections []*Section, grid Grid, maxSessionsPerDay int) error {
	counts := make(map[string]int)
	for _, s := range sections {
		counts[s.Teacher]++
	}

	ceiling := grid.TotalSlots()
	if conservative := maxSessionsPerDay * grid.Days; conservative < ceiling {
		ceiling = conservative
	}

	for _, teacher := range sortedKeys(counts) {
		count := counts[teacher]
		if count > ceiling {
			return infeasible(
				"reduce this teacher's course load or add more teachers",
				"teacher %q has %d sections to teach but the ceiling is %d",
				teacher, count, ceiling,
			)
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
