package sat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyUnsat is returned by AddClause once the solver has latched
// unsatisfiable. Queries remain valid on a latched solver; only ingestion is
// rejected.
var ErrAlreadyUnsat = errors.New("solver is already unsat")

// Solver decides the satisfiability of a CNF formula using chronological
// DPLL backtracking over two-list variable occurrence indices. A Solver is
// exclusively owned by one caller; none of its methods may be called
// concurrently on the same instance.
type Solver struct {
	cnf     cnf
	active  int // number of clauses with sat == 0
	numVars int
	model   model

	// status latches to false once the formula is known unsatisfiable: an
	// empty clause or contradicting units at ingest, a conflict during
	// Simplify, or an exhausted search.
	status bool

	opts     Options
	logEvery int
}

type Options struct {
	// PreferFrequentVars selects free decision variables by descending
	// occurrence count instead of ascending index.
	PreferFrequentVars bool
}

var DefaultOptions = Options{}

// NewDefaultSolver returns a solver configured with default options. This is
// equivalent to calling NewSolver with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func NewSolver(opts Options) *Solver {
	return &Solver{
		status: true,
		opts:   opts,
	}
}

// AddVariable creates a fresh variable and returns its index.
func (s *Solver) AddVariable() int {
	index := s.numVars
	s.model.newVar()
	s.numVars++
	return index
}

// AddVariables creates n fresh variables and returns their indices.
func (s *Solver) AddVariables(n int) []int {
	vars := make([]int, n)
	for i := range vars {
		vars[i] = s.AddVariable()
	}
	return vars
}

func (s *Solver) NumVariables() int {
	return s.numVars
}

func (s *Solver) NumClauses() int {
	return s.cnf.len()
}

// Status returns false once the formula has been found unsatisfiable.
func (s *Solver) Status() bool {
	return s.status
}

// SetIterationLogFrequency makes Solve print a progress line every n
// iterations. Zero disables progress logging.
func (s *Solver) SetIterationLogFrequency(n int) {
	s.logEvery = n
}

// AddClause adds one clause to the solver. Variables are created on demand up
// to the clause's largest variable index. The returned bool is the solver
// status: false means the formula has become unsatisfiable. Adding to a
// solver that already latched unsatisfiable returns ErrAlreadyUnsat.
//
// The clause is stored as given: duplicated literals and tautologies are not
// canonicalised.
func (s *Solver) AddClause(c *Clause) (bool, error) {
	if !s.status {
		return false, ErrAlreadyUnsat
	}
	if c.Len() == 0 {
		// The empty clause is recorded and latches the solver unsatisfiable.
		s.cnf.addClause(c)
		s.status = false
		return false, nil
	}
	for s.numVars <= c.MaxVar() {
		s.AddVariable()
	}
	if c.Len() == 1 {
		l := c.First()
		v := l.VarID()
		switch {
		case !l.Value().Compatible(s.model.values[v]):
			// The unit contradicts an earlier unit assignment. Record the
			// clause and latch.
			s.cnf.addClause(c)
			s.status = false
		case s.model.values[v] == Undef:
			s.model.values[v] = l.Value()
			s.model.vmap.addClause(s.cnf.len(), c)
			s.active++
			s.cnf.addClause(c)
		default:
			// The same unit was asserted before: drop the duplicate.
		}
		return s.status, nil
	}
	s.model.vmap.addClause(s.cnf.len(), c)
	s.active++
	s.cnf.addClause(c)
	return s.status, nil
}

// AddClauseFromLiterals builds a clause from the given literals and adds it
// to the solver.
func (s *Solver) AddClauseFromLiterals(lits []Literal) (bool, error) {
	c := NewClause()
	for _, l := range lits {
		c.Push(l)
	}
	return s.AddClause(c)
}

// Model returns a view of the variable values. It is only meaningful when
// the last Solve returned true; variables left Undef may be read as either
// polarity.
func (s *Solver) Model() []Value {
	return s.model.values
}

// OriginalClauses returns an independent copy of the clauses as pushed, free
// of transient marks.
func (s *Solver) OriginalClauses() []*Clause {
	clauses := make([]*Clause, s.cnf.len())
	for i, c := range s.cnf.clauses {
		clauses[i] = c.Clone()
		clauses[i].RestoreAll()
	}
	return clauses
}

// ModelString renders the model as one character per variable over {T, F, X},
// or "UNSAT" if the solver has latched unsatisfiable.
func (s *Solver) ModelString() string {
	if !s.status {
		return "UNSAT"
	}
	sb := strings.Builder{}
	for _, v := range s.model.values {
		sb.WriteString(v.String())
	}
	return sb.String()
}

func (s *Solver) PrintModel() {
	fmt.Println(s.ModelString())
}

// String renders the conjunction of the currently active clauses. Satisfied
// clauses are omitted.
func (s *Solver) String() string {
	sb := strings.Builder{}
	first := true
	for i, c := range s.cnf.clauses {
		if s.cnf.sat[i] > 0 {
			continue
		}
		if !first {
			sb.WriteString("/\\")
		}
		first = false
		sb.WriteString(c.String())
	}
	return sb.String()
}

// propagate records (forward) or undoes (backward) the effect of binding
// variable v to val on every clause in which v occurs. It is the single
// mutating primitive of the search: sat counters, clause marks, live
// lengths, and unit-clause expectations are all maintained here and nowhere
// else.
//
// implied, when non-nil, observes the set of variables demanded by active
// unit clauses: variables are added as clauses become unit and removed when
// their expectation count drops back to zero.
//
// propagate returns true if and only if the forward pass emptied a clause or
// collided with an opposite unit-clause expectation. The full pass is always
// applied, even after a conflict, so the symmetric undo stays exact.
func (s *Solver) propagate(v int, val Value, forward bool, implied *assignSet) bool {
	s.model.propagated[v] = forward

	satList := s.model.vmap.occurrences(v, val)
	unsatList := s.model.vmap.occurrences(v, val.Opposite())
	conflict := false

	for _, occ := range satList {
		if forward {
			if s.cnf.sat[occ.clause] == 0 {
				s.active--
			}
			s.cnf.sat[occ.clause]++
		} else {
			s.cnf.sat[occ.clause]--
			if s.cnf.sat[occ.clause] == 0 {
				s.active++
			}
		}
	}

	for _, occ := range unsatList {
		c := s.cnf.clauses[occ.clause]
		if forward {
			if s.cnf.sat[occ.clause] > 0 {
				continue // satisfied clause: its marks must not be touched
			}
			c.Remove(occ.pos)
			switch c.Len() {
			case 0:
				conflict = true
			case 1:
				// The clause became unit: demand its sole remaining literal.
				l := c.First()
				lv := l.VarID()
				s.model.expected[lv].count++
				if implied != nil {
					implied.Add(lv)
				}
				if s.model.expected[lv].value.Compatible(l.Value()) {
					s.model.expected[lv].value = l.Value()
				} else {
					conflict = true
				}
			}
		} else {
			if s.cnf.sat[occ.clause] == 0 && c.Len() == 1 {
				lv := c.First().VarID()
				s.model.expected[lv].count--
				if s.model.expected[lv].count == 0 {
					s.model.expected[lv].value = Undef
					if implied != nil {
						implied.Remove(lv)
					}
				}
			}
			c.Restore(occ.pos)
		}
	}

	return conflict
}

// Simplify runs saturating unit propagation on the assignments already
// committed to the model and reports the resulting status. A conflict here
// has no decisions to undo, so it latches the solver unsatisfiable.
func (s *Solver) Simplify() bool {
	if !s.status {
		return false
	}
	for {
		for v := 0; v < s.numVars; v++ {
			if !s.model.propagated[v] && s.model.values[v] != Undef {
				if s.propagate(v, s.model.values[v], true, nil) {
					s.status = false
					return false
				}
			}
		}
		if !s.installUnits() {
			break
		}
	}
	return s.status
}

// installUnits copies the demanded value of every active unit clause into
// the model, leaving propagation to the next Simplify round. It reports
// whether any unit was found.
func (s *Solver) installUnits() bool {
	found := false
	for i, c := range s.cnf.clauses {
		if s.cnf.sat[i] == 0 && c.Len() == 1 {
			found = true
			l := c.First()
			s.model.values[l.VarID()] = l.Value()
		}
	}
	return found
}

// frame is one entry of the search history: the decided literal and, if the
// decision was free to flip, the untried alternative.
type frame struct {
	lit    Literal
	alt    Literal
	hasAlt bool
}

// Solve runs Simplify followed by iterative backtracking search and reports
// satisfiability. On true, Model holds a satisfying assignment; variables
// left Undef are unconstrained either way.
func (s *Solver) Solve() bool {
	if !s.status {
		return false
	}
	if !s.Simplify() {
		return false
	}
	if s.active == 0 {
		// Unit propagation alone satisfied every clause.
		return s.status
	}

	hist := make([]frame, 0, s.numVars)
	implied := newAssignSet(s.numVars)
	pending := frame{}
	havePending := false
	frontPt := 0
	cnt := 0

	var order *varOrder
	if s.opts.PreferFrequentVars {
		order = newVarOrder(s.model.vmap.cnt)
	}

	for {
		cnt++
		if s.logEvery != 0 && cnt%s.logEvery == 0 {
			fmt.Printf("c iterations: %d\n", cnt)
		}

		if !havePending {
			var nextVar int
			switch {
			case !implied.Empty():
				nextVar = implied.Pop()
			case order != nil:
				nextVar = order.next(s.model.propagated)
			default:
				for frontPt < s.numVars && s.model.propagated[frontPt] {
					frontPt++
				}
				nextVar = frontPt
			}
			pending = s.decide(nextVar)
			havePending = true
		}

		lit := pending.lit
		v := lit.VarID()
		var val Value
		if s.model.values[v] == Undef {
			val = lit.Value()
			s.model.values[v] = val
			hist = append(hist, pending)
		} else {
			// The variable is bound by an original unit assignment: reuse its
			// value and record no frame, this was not really a decision.
			val = s.model.values[v]
			havePending = false
		}

		if s.propagate(v, val, true, implied) {
			resolved := false
			for len(hist) > 0 {
				f := hist[len(hist)-1]
				hist = hist[:len(hist)-1]
				fv := f.lit.VarID()
				if fv < frontPt {
					frontPt = fv
				}
				if order != nil {
					order.reinsert(fv)
				}
				s.propagate(fv, f.lit.Value(), false, implied)
				s.model.values[fv] = Undef
				if f.hasAlt {
					// Resume with the forced opposite decision.
					pending = frame{lit: f.alt}
					havePending = true
					resolved = true
					break
				}
			}
			if !resolved {
				s.status = false
				return false
			}
			continue
		}

		if s.active == 0 {
			break // every clause is satisfied
		}
		havePending = false
	}

	if s.logEvery != 0 {
		fmt.Printf("c total iterations: %d\n", cnt)
	}
	return s.status
}

// decide picks the polarity for the next decision variable. A variable with
// occurrences of only one polarity, or with a pending unit expectation, is
// forced; otherwise True is tried first with False as the alternative.
func (s *Solver) decide(v int) frame {
	switch {
	case len(s.model.vmap.occurrences(v, True)) == 0 || s.model.expected[v].value == False:
		return frame{lit: NegativeLiteral(v)}
	case len(s.model.vmap.occurrences(v, False)) == 0 || s.model.expected[v].value == True:
		return frame{lit: PositiveLiteral(v)}
	default:
		l := PositiveLiteral(v)
		return frame{lit: l, alt: l.Opposite(), hasAlt: true}
	}
}

// Reset restores the solver to its pre-solve state: no propagated flags, no
// expectations, no marks, all sat counters zero, and only the values implied
// by original length-1 clauses re-installed. The latched status is kept.
func (s *Solver) Reset() {
	for v := 0; v < s.model.len(); v++ {
		s.model.propagated[v] = false
		s.model.expected[v] = expectation{}
		s.model.values[v] = Undef
	}
	for i, c := range s.cnf.clauses {
		s.cnf.sat[i] = 0
		c.RestoreAll()
		if c.Len() == 1 {
			l := c.First()
			s.model.values[l.VarID()] = l.Value()
		}
	}
	s.active = s.cnf.len()
}
