// Package sudoku encodes 9x9 Sudoku boards as CNF and decodes solver models
// back into grids.
package sudoku

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jiangr/gopll/internal/sat"
)

const (
	gridSize = 9
	boxSize  = 3
)

// Board is a 9x9 grid of digits; zero marks an empty cell.
type Board [gridSize][gridSize]int

// variable returns the solver variable for "cell (i,j) holds k", with i, j
// and k all 1-based. The index is the base-10 composite ijk, so the encoding
// uses variables 111 through 999 and relies on the solver auto-creating
// variables up to the largest index pushed.
func variable(i, j, k int) int {
	return 100*i + 10*j + k
}

// Encode adds the full Sudoku CNF for the given board to the solver: every
// cell holds exactly one digit, every row, column and box holds each digit
// exactly once, plus one unit clause per given cell.
func Encode(s *sat.Solver, givens Board) error {
	// Each cell holds at least one digit, and never two.
	for i := 1; i <= gridSize; i++ {
		for j := 1; j <= gridSize; j++ {
			lits := make([]sat.Literal, 0, gridSize)
			for k := 1; k <= gridSize; k++ {
				lits = append(lits, sat.PositiveLiteral(variable(i, j, k)))
			}
			if err := addClause(s, lits); err != nil {
				return err
			}
			if err := atMostOne(s, lits); err != nil {
				return err
			}
		}
	}

	// Each digit appears exactly once per row and per column.
	for k := 1; k <= gridSize; k++ {
		for i := 1; i <= gridSize; i++ {
			row := make([]sat.Literal, 0, gridSize)
			col := make([]sat.Literal, 0, gridSize)
			for j := 1; j <= gridSize; j++ {
				row = append(row, sat.PositiveLiteral(variable(i, j, k)))
				col = append(col, sat.PositiveLiteral(variable(j, i, k)))
			}
			if err := addClause(s, row); err != nil {
				return err
			}
			if err := atMostOne(s, row); err != nil {
				return err
			}
			if err := addClause(s, col); err != nil {
				return err
			}
			if err := atMostOne(s, col); err != nil {
				return err
			}
		}
	}

	// Each digit appears exactly once per box.
	for k := 1; k <= gridSize; k++ {
		for bi := 1; bi <= gridSize; bi += boxSize {
			for bj := 1; bj <= gridSize; bj += boxSize {
				box := make([]sat.Literal, 0, gridSize)
				for di := 0; di < boxSize; di++ {
					for dj := 0; dj < boxSize; dj++ {
						box = append(box, sat.PositiveLiteral(variable(bi+di, bj+dj, k)))
					}
				}
				if err := addClause(s, box); err != nil {
					return err
				}
				if err := atMostOne(s, box); err != nil {
					return err
				}
			}
		}
	}

	// Givens.
	for i := 1; i <= gridSize; i++ {
		for j := 1; j <= gridSize; j++ {
			if k := givens[i-1][j-1]; k != 0 {
				lit := sat.PositiveLiteral(variable(i, j, k))
				if err := addClause(s, []sat.Literal{lit}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func addClause(s *sat.Solver, lits []sat.Literal) error {
	_, err := s.AddClauseFromLiterals(lits)
	return err
}

// atMostOne adds the pairwise encoding: no two of the literals may hold.
func atMostOne(s *sat.Solver, lits []sat.Literal) error {
	for a := 0; a < len(lits); a++ {
		for b := a + 1; b < len(lits); b++ {
			pair := []sat.Literal{lits[a].Opposite(), lits[b].Opposite()}
			if err := addClause(s, pair); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decode reads the solved board out of a model.
func Decode(model []sat.Value) Board {
	var b Board
	for i := 1; i <= gridSize; i++ {
		for j := 1; j <= gridSize; j++ {
			for k := 1; k <= gridSize; k++ {
				if model[variable(i, j, k)] == sat.True {
					b[i-1][j-1] = k
				}
			}
		}
	}
	return b
}

// Solve encodes the board, runs the solver and returns the completed grid.
// ok is false when the givens admit no solution.
func Solve(givens Board) (solved Board, ok bool, err error) {
	s := sat.NewDefaultSolver()
	if err := Encode(s, givens); err != nil && !errors.Is(err, sat.ErrAlreadyUnsat) {
		return Board{}, false, err
	}
	if !s.Solve() {
		return Board{}, false, nil
	}
	return Decode(s.Model()), true, nil
}

// ReadBoard parses a puzzle file: one "i j k" triple per given cell (1-based
// row, column, digit), with blank lines and lines starting with 'c' ignored.
func ReadBoard(path string) (Board, error) {
	file, err := os.Open(path)
	if err != nil {
		return Board{}, errors.Wrapf(err, "error reading puzzle %q", path)
	}
	defer file.Close()

	var b Board
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "c") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return Board{}, errors.Errorf("%s:%d: want \"row col digit\", got %q", path, line, text)
		}
		nums := make([]int, 3)
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil || n < 1 || n > gridSize {
				return Board{}, errors.Errorf("%s:%d: invalid cell %q", path, line, text)
			}
			nums[i] = n
		}
		b[nums[0]-1][nums[1]-1] = nums[2]
	}
	if err := scanner.Err(); err != nil {
		return Board{}, errors.Wrapf(err, "error reading puzzle %q", path)
	}
	return b, nil
}

// String renders the board with the dashed-border layout; empty cells print
// as spaces.
func (b Board) String() string {
	border := strings.Repeat("-", 4*gridSize+1)
	sb := strings.Builder{}
	for i := 0; i < gridSize; i++ {
		sb.WriteString(border)
		sb.WriteByte('\n')
		for j := 0; j < gridSize; j++ {
			cell := " "
			if b[i][j] != 0 {
				cell = strconv.Itoa(b[i][j])
			}
			sb.WriteString("| ")
			sb.WriteString(cell)
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
