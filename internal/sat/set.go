package sat

import "github.com/rhartert/yagh"

// assignSet is the set of variables currently implied by some active unit
// clause. Pop is deterministic: it always returns the smallest variable in
// the set, which keeps search reproducible for a fixed input.
//
// The heap is keyed by variable index and only ever holds one entry per
// variable. Remove only clears the presence bit; stale heap entries are
// skipped lazily by Pop.
type assignSet struct {
	order   *yagh.IntMap[int]
	present []bool
	size    int
}

func newAssignSet(nVars int) *assignSet {
	s := &assignSet{
		order:   yagh.New[int](0),
		present: make([]bool, nVars),
	}
	s.order.GrowBy(nVars)
	return s
}

func (s *assignSet) Empty() bool {
	return s.size == 0
}

func (s *assignSet) Add(v int) {
	if s.present[v] {
		return
	}
	s.present[v] = true
	s.size++
	s.order.Put(v, v)
}

func (s *assignSet) Remove(v int) {
	if !s.present[v] {
		return
	}
	s.present[v] = false
	s.size--
}

// Pop removes and returns the smallest variable in the set. It must only be
// called when the set is not empty.
func (s *assignSet) Pop() int {
	for {
		e, ok := s.order.Pop()
		if !ok {
			panic("pop on an empty assignment set")
		}
		if !s.present[e.Elem] {
			continue // removed since it was enqueued
		}
		s.present[e.Elem] = false
		s.size--
		return e.Elem
	}
}
