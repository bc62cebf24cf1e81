package sat

import "fmt"

// Literal represents a literal, which either represents a boolean variable or
// its negation. Literal 2v is variable v, literal 2v+1 its negation.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// LiteralOf returns the literal of variable v demanding the given value.
// The value must not be Undef.
func LiteralOf(v int, val Value) Literal {
	if val == True {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Value returns the value the literal demands of its variable: True for a
// positive literal, False for a negative one.
func (l Literal) Value() Value {
	if l.IsPositive() {
		return True
	}
	return False
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("~%d", l.VarID())
}
