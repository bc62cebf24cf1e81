// Package cnfgen generates random CNF formulas for stress testing and
// provides the model checkers used to validate solver answers. Formulas are
// fed through the solver's public API, never built behind its back.
package cnfgen

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jiangr/gopll/internal/sat"
)

// Config bounds the shape of a generated formula.
type Config struct {
	// Vars is the number of variables to create.
	Vars int

	// MaxClauses bounds the number of non-unit clauses; at least one is
	// always generated.
	MaxClauses int

	// MaxWidth bounds the literal count of non-unit clauses. Widths are
	// drawn from [2, MaxWidth].
	MaxWidth int

	// MaxUnits bounds the number of unit clauses generated before the
	// regular ones. Zero disables units.
	MaxUnits int
}

// Generate feeds a random formula drawn from cfg through the solver's public
// API. The result is deterministic for a fixed rng state. Generation stops
// quietly if the formula latches unsatisfiable along the way.
func Generate(rng *rand.Rand, cfg Config, s *sat.Solver) error {
	vars := s.AddVariables(cfg.Vars)

	nUnits := 0
	if cfg.MaxUnits > 0 {
		nUnits = rng.Intn(cfg.MaxUnits + 1)
	}
	for i := 0; i < nUnits; i++ {
		lit := randomLiteral(rng, vars)
		if _, err := s.AddClauseFromLiterals([]sat.Literal{lit}); err != nil {
			if errors.Is(err, sat.ErrAlreadyUnsat) {
				return nil
			}
			return err
		}
	}

	nClauses := rng.Intn(cfg.MaxClauses) + 1
	for i := 0; i < nClauses; i++ {
		width := 2
		if cfg.MaxWidth > 2 {
			width += rng.Intn(cfg.MaxWidth - 1)
		}
		clause := sat.NewClause()
		for j := 0; j < width; j++ {
			clause.Push(randomLiteral(rng, vars))
		}
		if _, err := s.AddClause(clause); err != nil {
			if errors.Is(err, sat.ErrAlreadyUnsat) {
				return nil
			}
			return err
		}
	}
	return nil
}

func randomLiteral(rng *rand.Rand, vars []int) sat.Literal {
	v := vars[rng.Intn(len(vars))]
	if rng.Intn(2) == 0 {
		return sat.PositiveLiteral(v)
	}
	return sat.NegativeLiteral(v)
}

// Satisfies reports whether the model satisfies every clause: each clause
// must contain a literal whose variable is assigned exactly the literal's
// polarity.
func Satisfies(clauses []*sat.Clause, model []sat.Value) bool {
	for _, c := range clauses {
		satisfied := false
		for _, l := range c.Literals() {
			if model[l.VarID()] == l.Value() {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// MaxBruteForceVars bounds the instance size ProvablyUnsat accepts.
const MaxBruteForceVars = 20

// ProvablyUnsat confirms unsatisfiability by enumerating every assignment of
// nVars variables. It returns an error for instances too large to enumerate.
func ProvablyUnsat(clauses []*sat.Clause, nVars int) (bool, error) {
	if nVars > MaxBruteForceVars {
		return false, errors.Errorf("cannot brute-force %d variables (max %d)", nVars, MaxBruteForceVars)
	}
	model := make([]sat.Value, nVars)
	for bits := 0; bits < 1<<nVars; bits++ {
		for v := 0; v < nVars; v++ {
			model[v] = sat.Lift(bits>>v&1 == 0)
		}
		if Satisfies(clauses, model) {
			return false, nil
		}
	}
	return true, nil
}
