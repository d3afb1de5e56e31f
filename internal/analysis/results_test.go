package analysis

import (
	"testing"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/test"
)

// ----------------------------------------------------------------------------
// Result Predicates
// ----------------------------------------------------------------------------

func TestResultsMatch(t *testing.T) {
	tests := []struct {
		src string
		all bool
		any bool
	}{
		{"1", true, true},
		{"x", false, false},
		{"x = 1", true, true},
		{"1, x", false, false},
		{"x, 1", true, true},
		{"1 && x", false, true},
		{"1 || 2", true, true},
		{"c ? 1 : x", false, true},
		{"c ? x : y", false, false},
		{"c ? (x = 1) : (y, 2)", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			tr := a.Tree()
			isNumber := func(c ast.NodeID) bool { return tr.Kind(c) == ast.Number }
			test.AssertEqual(t, AllResultsMatch(tr, n, isNumber), tt.all)
			test.AssertEqual(t, AnyResultsMatch(tr, n, isNumber), tt.any)
		})
	}
}

func TestIsNumericResult(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1", true},
		{"NaN", true},
		{"Infinity", true},
		{"x", false},
		{"1 + 2", true},
		{"a + 1", false},
		{"(a - b) + 1", true},
		{"x - y", true},
		{"x * y", true},
		{"x | 0", true},
		{"~x", true},
		{"-x", true},
		{"+x", true},
		{"x++", true},
		{"a ? 1 : 2", true},
		{"a ? 1 : 'x'", false},
		{"a = 1", true},
		{"a, 1", true},
		{"true", false},
		{"'1'", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, IsNumericResult(a.Tree(), n), tt.want)
		})
	}
}

func TestIsBooleanResult(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"true", true},
		{"a == b", true},
		{"a !== b", true},
		{"a < b", true},
		{"a in b", true},
		{"a instanceof B", true},
		{"!x", true},
		{"delete a.b", true},
		{"a && b", false},
		{"!a || b > c", true},
		{"x", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, IsBooleanResult(a.Tree(), n), tt.want)
		})
	}
}

func TestMayBeString(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"'a'", true},
		{"x", true},
		{"a.b", true},
		{"f()", true},
		{"1", false},
		{"true", false},
		{"null", false},
		{"undefined", false},
		{"void 0", false},
		{"1 + 2", false},
		{"1 + x", true},
		{"a ? 1 : 'b'", true},
		{"a ? 1 : null", false},
		{"a = 'x'", true},
		{"x - 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, MayBeString(a.Tree(), n), tt.want)
		})
	}
}
