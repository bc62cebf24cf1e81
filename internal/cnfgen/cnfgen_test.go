package cnfgen

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jiangr/gopll/internal/sat"
)

func render(clauses []*sat.Clause) []string {
	out := make([]string, len(clauses))
	for i, c := range clauses {
		out[i] = c.String()
	}
	return out
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{Vars: 10, MaxClauses: 50, MaxWidth: 5, MaxUnits: 3}

	generate := func() []string {
		s := sat.NewDefaultSolver()
		if err := Generate(rand.New(rand.NewSource(42)), cfg, s); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		return render(s.OriginalClauses())
	}

	if diff := cmp.Diff(generate(), generate()); diff != "" {
		t.Errorf("same seed produced different formulas (-a +b):\n%s", diff)
	}
}

func TestGenerateBounds(t *testing.T) {
	cfg := Config{Vars: 8, MaxClauses: 30, MaxWidth: 4, MaxUnits: 5}
	s := sat.NewDefaultSolver()
	if err := Generate(rand.New(rand.NewSource(7)), cfg, s); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := s.NumVariables(); got != cfg.Vars {
		t.Errorf("NumVariables(): got %d, want %d", got, cfg.Vars)
	}
	clauses := s.OriginalClauses()
	if len(clauses) > cfg.MaxClauses+cfg.MaxUnits {
		t.Errorf("too many clauses: %d", len(clauses))
	}
	for i, c := range clauses {
		if c.Size() < 1 || c.Size() > cfg.MaxWidth {
			t.Errorf("clause %d has width %d, want within [1, %d]", i, c.Size(), cfg.MaxWidth)
		}
		if got := c.MaxVar(); got >= cfg.Vars {
			t.Errorf("clause %d mentions variable %d, want below %d", i, got, cfg.Vars)
		}
	}
}

func TestSatisfies(t *testing.T) {
	c1 := sat.NewClause()
	c1.Push(sat.PositiveLiteral(0))
	c1.Push(sat.NegativeLiteral(1))
	c2 := sat.NewClause()
	c2.Push(sat.PositiveLiteral(1))
	clauses := []*sat.Clause{c1, c2}

	tests := []struct {
		model []sat.Value
		want  bool
	}{
		{[]sat.Value{sat.True, sat.True}, true},
		{[]sat.Value{sat.False, sat.True}, false},
		{[]sat.Value{sat.True, sat.False}, false},
		{[]sat.Value{sat.Undef, sat.True}, false},
	}
	for _, tt := range tests {
		if got := Satisfies(clauses, tt.model); got != tt.want {
			t.Errorf("Satisfies(%v): got %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestProvablyUnsat(t *testing.T) {
	build := func(clauses ...[]sat.Literal) []*sat.Clause {
		out := make([]*sat.Clause, len(clauses))
		for i, lits := range clauses {
			c := sat.NewClause()
			for _, l := range lits {
				c.Push(l)
			}
			out[i] = c
		}
		return out
	}

	unsat := build(
		[]sat.Literal{sat.PositiveLiteral(0), sat.PositiveLiteral(1)},
		[]sat.Literal{sat.NegativeLiteral(0), sat.PositiveLiteral(1)},
		[]sat.Literal{sat.PositiveLiteral(0), sat.NegativeLiteral(1)},
		[]sat.Literal{sat.NegativeLiteral(0), sat.NegativeLiteral(1)},
	)
	got, err := ProvablyUnsat(unsat, 2)
	if err != nil {
		t.Fatalf("ProvablyUnsat: %v", err)
	}
	if !got {
		t.Error("ProvablyUnsat on an unsatisfiable formula: got false")
	}

	satisfiable := build([]sat.Literal{sat.PositiveLiteral(0)})
	got, err = ProvablyUnsat(satisfiable, 1)
	if err != nil {
		t.Fatalf("ProvablyUnsat: %v", err)
	}
	if got {
		t.Error("ProvablyUnsat on a satisfiable formula: got true")
	}

	if _, err := ProvablyUnsat(nil, MaxBruteForceVars+1); err == nil {
		t.Error("ProvablyUnsat above the variable cap: want an error")
	}
}
