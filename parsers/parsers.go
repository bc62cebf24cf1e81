// Package parsers loads CNF instances into a solver.
package parsers

import (
	"compress/gzip"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rhartert/dimacs"

	"github.com/jiangr/gopll/internal/sat"
)

// SATSolver is the surface the loader needs from a solver.
type SATSolver interface {
	AddVariable() int
	AddClauseFromLiterals([]sat.Literal) (bool, error)
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file and loads its formula into the given
// solver. If the solver latches unsatisfiable while loading, the remaining
// clauses are skipped; the caller observes the outcome through the solver
// status.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return errors.Wrapf(err, "error reading file %q", filename)
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return errors.Wrapf(err, "error parsing file %q", filename)
	}
	return nil
}

// builder wraps the solver to implement dimacs.Builder.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return errors.Errorf("instances of type %q are not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	if _, err := b.solver.AddClauseFromLiterals(clause); err != nil {
		if errors.Is(err, sat.ErrAlreadyUnsat) {
			return nil // formula already unsatisfiable, drop the rest
		}
		return err
	}
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}
