package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiangr/gopll/internal/cnfgen"
	"github.com/jiangr/gopll/internal/sat"
	"github.com/jiangr/gopll/internal/sudoku"
	"github.com/jiangr/gopll/parsers"
)

var log = logrus.New()

var (
	flagCPUProfile string
	flagGzip       bool
	flagLogEvery   int
	flagFrequent   bool
	flagRounds     int
	flagVars       int
	flagSeed       int64
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gopll",
		Short:         "gopll is a DPLL SAT solver for CNF formulas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagCPUProfile, "cpuprofile", "", "save a pprof CPU profile to this file")

	solve := &cobra.Command{
		Use:   "solve <instance.cnf>",
		Short: "Solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	solve.Flags().BoolVar(&flagGzip, "gzip", false, "instance file is gzip compressed")
	solve.Flags().IntVar(&flagLogEvery, "log-every", 0, "print a progress line every N search iterations (0 disables)")
	solve.Flags().BoolVar(&flagFrequent, "frequent", false, "decide on frequently occurring variables first")

	test := &cobra.Command{
		Use:   "test",
		Short: "Run deterministic and randomised self-tests",
		Args:  cobra.NoArgs,
		RunE:  runTest,
	}
	test.Flags().IntVar(&flagRounds, "rounds", 1000, "number of random instances to check")
	test.Flags().IntVar(&flagVars, "vars", 10, "variables per random instance")
	test.Flags().Int64Var(&flagSeed, "seed", 1, "random seed")

	sudokuCmd := &cobra.Command{
		Use:   "sudoku <puzzle.txt>",
		Short: "Solve a 9x9 Sudoku puzzle",
		Args:  cobra.ExactArgs(1),
		RunE:  runSudoku,
	}

	root.AddCommand(solve, test, sudokuCmd)
	return root
}

func runSolve(_ *cobra.Command, args []string) error {
	s := sat.NewSolver(sat.Options{PreferFrequentVars: flagFrequent})
	if err := parsers.LoadDIMACS(args[0], flagGzip, s); err != nil {
		return err
	}
	s.SetIterationLogFrequency(flagLogEvery)
	log.WithFields(logrus.Fields{
		"variables": s.NumVariables(),
		"clauses":   s.NumClauses(),
	}).Info("instance loaded")

	start := time.Now()
	ok := s.Solve()
	log.WithFields(logrus.Fields{
		"sat":  ok,
		"time": time.Since(start),
	}).Info("search finished")

	s.PrintModel()
	return nil
}

func runTest(_ *cobra.Command, _ []string) error {
	if err := runScenarios(); err != nil {
		return err
	}
	log.Info("deterministic scenarios passed")

	if flagVars > cnfgen.MaxBruteForceVars {
		return errors.Errorf("--vars must be at most %d to allow brute-force checking", cnfgen.MaxBruteForceVars)
	}
	rng := rand.New(rand.NewSource(flagSeed))
	if err := runRandomRounds(rng, flagRounds, flagVars); err != nil {
		return err
	}
	log.Info("self-tests passed")
	return nil
}

func runSudoku(_ *cobra.Command, args []string) error {
	board, err := sudoku.ReadBoard(args[0])
	if err != nil {
		return err
	}
	fmt.Println(board)

	start := time.Now()
	solved, ok, err := sudoku.Solve(board)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("puzzle has no solution")
	}
	log.WithField("time", time.Since(start)).Info("puzzle solved")
	fmt.Println(solved)
	return nil
}

func main() {
	root := newRootCommand()
	cobra.OnInitialize(func() {
		if flagCPUProfile == "" {
			return
		}
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
	})
	defer pprof.StopCPUProfile()

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// scenario is one deterministic self-test case: a formula fed through the
// public API and its expected satisfiability.
type scenario struct {
	name    string
	clauses [][]sat.Literal
	want    bool
}

func scenarios() []scenario {
	pos := sat.PositiveLiteral
	neg := sat.NegativeLiteral
	return []scenario{
		{
			name:    "contradicting units",
			clauses: [][]sat.Literal{{pos(0)}, {neg(0)}},
			want:    false,
		},
		{
			name:    "trivial units",
			clauses: [][]sat.Literal{{pos(0)}, {neg(1)}},
			want:    true,
		},
		{
			name:    "chained implication",
			clauses: [][]sat.Literal{{pos(0)}, {neg(0), pos(1)}, {neg(1), pos(2)}},
			want:    true,
		},
		{
			name: "forced backtrack",
			clauses: [][]sat.Literal{
				{pos(0), pos(1)}, {neg(0), pos(1)}, {pos(0), neg(1)}, {neg(0), neg(1)},
			},
			want: false,
		},
		{
			name:    "pure variable",
			clauses: [][]sat.Literal{{pos(0), pos(1)}, {pos(0), pos(2)}, {neg(1), neg(2)}},
			want:    true,
		},
	}
}

func runScenarios() error {
	for _, sc := range scenarios() {
		s := sat.NewDefaultSolver()
		for _, lits := range sc.clauses {
			if _, err := s.AddClauseFromLiterals(lits); err != nil {
				return errors.Wrapf(err, "scenario %q", sc.name)
			}
		}
		clauses := s.OriginalClauses()
		got := s.Solve()
		if got != sc.want {
			return errors.Errorf("scenario %q: got %v, want %v", sc.name, got, sc.want)
		}
		if got && !cnfgen.Satisfies(clauses, s.Model()) {
			return errors.Errorf("scenario %q: model does not satisfy the formula", sc.name)
		}
	}
	return nil
}

func runRandomRounds(rng *rand.Rand, rounds, vars int) error {
	cfg := cnfgen.Config{
		Vars:       vars,
		MaxClauses: 50,
		MaxWidth:   5,
	}
	nSat, nUnsat := 0, 0
	for i := 0; i < rounds; i++ {
		s := sat.NewDefaultSolver()
		if err := cnfgen.Generate(rng, cfg, s); err != nil {
			return err
		}
		clauses := s.OriginalClauses()
		if s.Solve() {
			nSat++
			if !cnfgen.Satisfies(clauses, s.Model()) {
				return errors.Errorf("round %d: wrong model", i)
			}
		} else {
			nUnsat++
			unsat, err := cnfgen.ProvablyUnsat(clauses, vars)
			if err != nil {
				return errors.Wrapf(err, "round %d", i)
			}
			if !unsat {
				return errors.Errorf("round %d: formula is satisfiable", i)
			}
		}
	}
	log.WithFields(logrus.Fields{"sat": nSat, "unsat": nUnsat}).Info("random rounds done")
	return nil
}
