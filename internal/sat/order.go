package sat

import "github.com/rhartert/yagh"

// varOrder selects the next free decision variable by descending occurrence
// count. The heap is keyed by count alone; ties fall to the heap's internal
// order, which is deterministic for a fixed input. Assigned variables popped from the heap
// are skipped lazily and re-inserted when the search unwinds them.
type varOrder struct {
	order *yagh.IntMap[int]
	cnt   []int
}

func newVarOrder(cnt []int) *varOrder {
	vo := &varOrder{
		order: yagh.New[int](0),
		cnt:   cnt,
	}
	vo.order.GrowBy(len(cnt))
	for v, n := range cnt {
		vo.order.Put(v, -n)
	}
	return vo
}

// next returns the unpropagated variable with the most occurrences.
func (vo *varOrder) next(propagated []bool) int {
	for {
		e, ok := vo.order.Pop()
		if !ok {
			panic("empty variable order")
		}
		if propagated[e.Elem] {
			continue // already assigned
		}
		return e.Elem
	}
}

// reinsert adds variable v back to the set of candidates. It must be called
// when v is being unassigned, i.e. when a backtrack occurs.
func (vo *varOrder) reinsert(v int) {
	if vo.order.Contains(v) {
		return
	}
	vo.order.Put(v, -vo.cnt[v])
}
