package sat

import "testing"

func TestLiterals(t *testing.T) {
	tests := []struct {
		lit      Literal
		varID    int
		positive bool
		value    Value
		str      string
	}{
		{PositiveLiteral(0), 0, true, True, "0"},
		{NegativeLiteral(0), 0, false, False, "~0"},
		{PositiveLiteral(7), 7, true, True, "7"},
		{NegativeLiteral(42), 42, false, False, "~42"},
		{LiteralOf(3, True), 3, true, True, "3"},
		{LiteralOf(3, False), 3, false, False, "~3"},
	}
	for _, tt := range tests {
		if got := tt.lit.VarID(); got != tt.varID {
			t.Errorf("%v.VarID(): got %d, want %d", tt.lit, got, tt.varID)
		}
		if got := tt.lit.IsPositive(); got != tt.positive {
			t.Errorf("%v.IsPositive(): got %v, want %v", tt.lit, got, tt.positive)
		}
		if got := tt.lit.Value(); got != tt.value {
			t.Errorf("%v.Value(): got %v, want %v", tt.lit, got, tt.value)
		}
		if got := tt.lit.String(); got != tt.str {
			t.Errorf("String(): got %q, want %q", got, tt.str)
		}
	}
}

func TestLiteralOpposite(t *testing.T) {
	l := PositiveLiteral(5)
	if got := l.Opposite(); got != NegativeLiteral(5) {
		t.Errorf("%v.Opposite(): got %v, want %v", l, got, NegativeLiteral(5))
	}
	if got := l.Opposite().Opposite(); got != l {
		t.Errorf("double Opposite(): got %v, want %v", got, l)
	}
}
