package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignSetPopsSmallestFirst(t *testing.T) {
	s := newAssignSet(10)
	for _, v := range []int{5, 2, 7, 0} {
		s.Add(v)
	}

	got := []int{}
	for !s.Empty() {
		got = append(got, s.Pop())
	}
	if diff := cmp.Diff([]int{0, 2, 5, 7}, got); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignSetAddIsIdempotent(t *testing.T) {
	s := newAssignSet(4)
	s.Add(3)
	s.Add(3)
	if got := s.Pop(); got != 3 {
		t.Errorf("Pop(): got %d, want 3", got)
	}
	if !s.Empty() {
		t.Error("set should be empty after popping the only element")
	}
}

func TestAssignSetRemove(t *testing.T) {
	s := newAssignSet(8)
	s.Add(1)
	s.Add(4)
	s.Remove(1)
	if got := s.Pop(); got != 4 {
		t.Errorf("Pop() after Remove(1): got %d, want 4", got)
	}
	if !s.Empty() {
		t.Error("set should be empty")
	}

	// Re-adding a removed element must work even though the heap may still
	// hold a stale entry for it.
	s.Add(1)
	if s.Empty() {
		t.Fatal("set should not be empty after re-add")
	}
	if got := s.Pop(); got != 1 {
		t.Errorf("Pop() after re-add: got %d, want 1", got)
	}
}
