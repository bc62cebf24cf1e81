package sat

// expectation tracks the unit-clause demand on a variable: how many active
// unit clauses currently mention it and the value they demand. The value is
// Undef whenever the count is zero.
type expectation struct {
	value Value
	count int
}

// model holds the per-variable state: the current assignment, whether that
// assignment has been propagated through the CNF, and the pending unit-clause
// expectations. It also owns the occurrence index.
type model struct {
	values     []Value
	expected   []expectation
	propagated []bool
	vmap       varMap
}

func (m *model) newVar() {
	m.values = append(m.values, Undef)
	m.expected = append(m.expected, expectation{})
	m.propagated = append(m.propagated, false)
	m.vmap.newVar()
}

func (m *model) len() int {
	return len(m.values)
}
