package main

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// SolveStatus is the outcome classification a solve run reports:
// Optimal if the search provably covered the whole space, Feasible if a
// conflict-free assignment was found but the deadline cut the search
// short before every branch was ruled out.
type SolveStatus int

const (
	StatusOptimal SolveStatus = iota
	StatusFeasible
)

func (s SolveStatus) String() string {
	if s == StatusOptimal {
		return "Optimal"
	}
	return "Feasible"
}

// SolveResult is what the Solver Driver hands to the Clash Validator.
type SolveResult struct {
	Status      SolveStatus
	Assignments []Assignment // indexed by section position in Model.Sections
	Objective   int
}

type candidate struct {
	Slot int
	Room int
}

// Solve invokes the search with a wall-clock budget and classifies the
// outcome. The underlying search is an exhaustive backtracking search over
// the Model's precomputed domains that scores every complete assignment
// and keeps the best; branches are not pruned by objective bound. The
// root section's candidates are
// split into disjoint partitions, one per worker, and each worker
// exhaustively (deadline permitting) explores its own slice of the
// search space.
func Solve(model *Model, workers int, budget time.Duration, seed int64) (SolveResult, error) {
	n := len(model.Sections)
	if n == 0 {
		return SolveResult{Status: StatusOptimal}, nil
	}

	// a cheap, search-free necessary condition: even ignoring every
	// per-teacher and per-room restriction, the all-different constraint
	// over (slot, room) means no more sections can be placed than there
	// are (non-restricted slot, room) pairs in total.
	globalCapacity := (model.Grid.TotalSlots() - model.RestrictedSlotCount) * len(model.Rooms)
	if n > globalCapacity {
		return SolveResult{}, infeasible(
			"reduce restricted slots or add rooms/slots",
			"%d sections cannot fit in %d globally available (slot, room) pairs after restricted slots", n, globalCapacity,
		)
	}

	order := mrvOrder(model)
	root := order[0]
	rootCandidates := allCandidates(model, root, nil, nil)
	if len(rootCandidates) == 0 {
		return SolveResult{}, infeasible(
			"relax teacher unavailability, restricted slots, or room capacities",
			"section %q has no legal (slot, room) option at all", model.Sections[root].ID,
		)
	}

	if workers < 1 {
		workers = 1
	}
	deadline := time.Now().Add(budget)

	// Each worker writes only to its own slot, so the merge below runs
	// single-threaded after wg.Wait() and picks a winner purely as a
	// function of (seed, model, workers), independent of goroutine scheduling
	// order: ties on objective go to the lowest worker index.
	perWorker := make([]*leafResult, workers)
	perWorkerExhaustive := make([]bool, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(w)))
			partition := partitionFor(rootCandidates, w, workers)
			sub := newSearch(model, order, deadline, rng)
			perWorkerExhaustive[w] = sub.run(partition)
			perWorker[w] = sub.best
		}()
	}
	wg.Wait()

	allExhaustive := true
	var best *leafResult
	for w := 0; w < workers; w++ {
		if !perWorkerExhaustive[w] {
			allExhaustive = false
		}
		sub := perWorker[w]
		if sub == nil {
			continue
		}
		if best == nil || sub.objective < best.objective {
			best = sub
		}
	}

	if best == nil {
		if allExhaustive {
			return SolveResult{}, infeasible(
				"relax hard constraints or add capacity",
				"search exhausted every branch and found no conflict-free assignment",
			)
		}
		return SolveResult{}, solverTimeout("no feasible schedule found within the %v time budget", budget)
	}

	status := StatusFeasible
	if allExhaustive {
		status = StatusOptimal
	}
	return SolveResult{Status: status, Assignments: best.assignments, Objective: best.objective}, nil
}

// mrvOrder sorts section indices by ascending domain size (minimum
// remaining values first), computed once up front rather than
// re-sorted during search: an exact backtracking search gains little
// from re-sorting mid-descent relative to the cost of recomputing
// domains.
func mrvOrder(model *Model) []int {
	n := len(model.Sections)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	domainSize := make([]int, n)
	for i := range order {
		domainSize[i] = len(model.LegalSlots[i]) * len(model.LegalRooms[i])
	}
	sort.SliceStable(order, func(a, b int) bool {
		return domainSize[order[a]] < domainSize[order[b]]
	})
	return order
}

type leafResult struct {
	assignments []Assignment
	objective   int
}

type search struct {
	model    *Model
	order    []int
	deadline time.Time
	rng      *rand.Rand

	assign       []Assignment // indexed by section index; Slot == 0 means unassigned
	combUsed     []bool       // indexed by (slot-1)*numRooms+room
	teacherDay   map[string][]int
	best         *leafResult
	nodesVisited int
}

func newSearch(model *Model, order []int, deadline time.Time, rng *rand.Rand) *search {
	n := len(model.Sections)
	assign := make([]Assignment, n)
	teacherDay := make(map[string][]int)
	for _, sec := range model.Sections {
		if _, present := teacherDay[sec.Teacher]; !present {
			teacherDay[sec.Teacher] = make([]int, model.Grid.Days)
		}
	}
	return &search{
		model:      model,
		order:      order,
		deadline:   deadline,
		rng:        rng,
		assign:     assign,
		combUsed:   make([]bool, model.Grid.TotalSlots()*len(model.Rooms)),
		teacherDay: teacherDay,
	}
}

// run explores the subtree rooted at assigning the root section (order[0])
// to each candidate in turn, returning whether that whole subtree was
// explored before the deadline.
func (s *search) run(rootCandidates []candidate) bool {
	if len(rootCandidates) == 0 {
		return true
	}
	root := s.order[0]
	sec := s.model.Sections[root]
	for _, c := range rootCandidates {
		if s.timeUp() {
			return false
		}
		s.place(root, c)
		exhaustive := s.descend(1)
		s.unplace(root, sec.Teacher, c)
		if !exhaustive {
			return false
		}
	}
	return true
}

func (s *search) timeUp() bool {
	s.nodesVisited++
	if s.nodesVisited%256 != 0 {
		return false
	}
	return time.Now().After(s.deadline)
}

func (s *search) place(idx int, c candidate) {
	sec := s.model.Sections[idx]
	s.assign[idx] = Assignment{Slot: c.Slot, Room: c.Room}
	s.combUsed[(c.Slot-1)*len(s.model.Rooms)+c.Room] = true
	s.teacherDay[sec.Teacher][s.model.Day(c.Slot)]++
}

func (s *search) unplace(idx int, teacher string, c candidate) {
	s.assign[idx] = Assignment{}
	s.combUsed[(c.Slot-1)*len(s.model.Rooms)+c.Room] = false
	s.teacherDay[teacher][s.model.Day(c.Slot)]--
}

func (s *search) descend(pos int) bool {
	if s.timeUp() {
		return false
	}
	if pos == len(s.order) {
		s.recordLeaf()
		return true
	}

	idx := s.order[pos]
	sec := s.model.Sections[idx]
	candidates := allCandidates(s.model, idx, s.assign, s.combUsed)
	candidates = s.shuffle(candidates)

	for _, c := range candidates {
		day := s.model.Day(c.Slot)
		if s.teacherDay[sec.Teacher][day] >= s.model.MaxSessionsPerDay {
			continue
		}
		s.place(idx, c)
		exhaustive := s.descend(pos + 1)
		s.unplace(idx, sec.Teacher, c)
		if !exhaustive {
			return false
		}
	}
	return true
}

func (s *search) shuffle(c []candidate) []candidate {
	s.rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	return c
}

func (s *search) recordLeaf() {
	obj := computeObjective(s.model, s.assign)
	if s.best == nil || obj < s.best.objective {
		cp := make([]Assignment, len(s.assign))
		copy(cp, s.assign)
		s.best = &leafResult{assignments: cp, objective: obj}
	}
}

// allCandidates enumerates legal (slot, room) pairs for section idx given
// the current partial assignment: teacher and student slot conflicts and
// the all-different room/slot combination. The per-teacher daily cap is
// checked by the caller, since it depends on search order rather than
// the section alone.
func allCandidates(model *Model, idx int, assign []Assignment, combUsed []bool) []candidate {
	var out []candidate
	for _, slot := range model.LegalSlots[idx] {
		if assign != nil && slotConflicts(model, idx, slot, assign) {
			continue
		}
		for _, room := range model.LegalRooms[idx] {
			if combUsed != nil && combUsed[(slot-1)*len(model.Rooms)+room] {
				continue
			}
			out = append(out, candidate{Slot: slot, Room: room})
		}
	}
	return out
}

func slotConflicts(model *Model, idx int, slot int, assign []Assignment) bool {
	for _, j := range model.TeacherConflicts[idx] {
		if assign[j].Slot == slot {
			return true
		}
	}
	for _, j := range model.StudentConflicts[idx] {
		if assign[j].Slot == slot {
			return true
		}
	}
	return false
}

// partitionFor statically round-robins the root candidate list across
// worker goroutines so their subtrees are disjoint and their union is
// the whole search space.
func partitionFor(all []candidate, worker, workers int) []candidate {
	var out []candidate
	for i := worker; i < len(all); i += workers {
		out = append(out, all[i])
	}
	return out
}

// computeObjective evaluates the total objective for a complete
// assignment: the spread reward (negative count of distinct days used
// per course) plus the student footprint penalty (last slot minus first
// slot, summed over students with at least one section).
func computeObjective(model *Model, assign []Assignment) int {
	total := 0

	for _, idxs := range model.CourseSections {
		days := make(map[int]bool)
		for _, i := range idxs {
			days[model.Day(assign[i].Slot)] = true
		}
		total -= len(days)
	}

	for _, idxs := range model.StudentSections {
		if len(idxs) == 0 {
			continue
		}
		first, last := assign[idxs[0]].Slot, assign[idxs[0]].Slot
		for _, i := range idxs[1:] {
			if assign[i].Slot < first {
				first = assign[i].Slot
			}
			if assign[i].Slot > last {
				last = assign[i].Slot
			}
		}
		total += last - first
	}

	return total
}
