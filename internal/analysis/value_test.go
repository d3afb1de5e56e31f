package analysis

import (
	"math"
	"testing"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/test"
	"github.com/HugoDaniel/minijs/internal/tristate"
)

// ----------------------------------------------------------------------------
// Boolean Value
// ----------------------------------------------------------------------------

func TestImpureBooleanValue(t *testing.T) {
	tests := []struct {
		src  string
		want tristate.Value
	}{
		{"x = true", tristate.True},
		{"a, 0", tristate.False},
		{"!0", tristate.True},
		{"[]", tristate.True},
		{"[f()]", tristate.True},
		{"{}", tristate.True},
		{"void f()", tristate.False},
		{"a ? 1 : 2", tristate.True},
		{"a ? 1 : 0", tristate.Unknown},
		{"x && 0", tristate.False},
		{"x || 1", tristate.True},
		{"x && 1", tristate.Unknown},
		{"x", tristate.Unknown},
		{"f()", tristate.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, a.ImpureBooleanValue(n), tt.want)
		})
	}
}

func TestPureBooleanValue(t *testing.T) {
	tests := []struct {
		src  string
		want tristate.Value
	}{
		{`""`, tristate.False},
		{`"a"`, tristate.True},
		{"0", tristate.False},
		{"-0", tristate.False},
		{"1", tristate.True},
		{"NaN", tristate.False},
		{"undefined", tristate.False},
		{"Infinity", tristate.True},
		{"null", tristate.False},
		{"true", tristate.True},
		{"false", tristate.False},
		{"/a/", tristate.True},
		{"[]", tristate.True},
		{"[f()]", tristate.Unknown},
		{"{a: 1}", tristate.True},
		{"{a: f()}", tristate.Unknown},
		{"void 0", tristate.False},
		{"void f()", tristate.Unknown},
		{"!1", tristate.False},
		{"x = 1", tristate.Unknown},
		{"0 / 0", tristate.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, a.PureBooleanValue(n), tt.want)
		})
	}
}

func TestDoubleNegation(t *testing.T) {
	for _, src := range []string{"x", "0", "1", "''", "'a'", "[]", "void f()", "a ? 1 : 2", "null", "x = 0"} {
		a, n := parseExpr(t, "!!("+src+")")
		inner := a.Tree().FirstChild(n)
		if a.ImpureBooleanValue(n) != a.ImpureBooleanValue(inner).Not() {
			t.Errorf("%s: !!x disagrees with not(!x)", src)
		}
	}
}

// ----------------------------------------------------------------------------
// String Value
// ----------------------------------------------------------------------------

func TestStringValue(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{`"abc"`, "abc", true},
		{"1", "1", true},
		{"1.5", "1.5", true},
		{"-0", "0", true},
		{"1e21", "1e+21", true},
		{"true", "true", true},
		{"false", "false", true},
		{"null", "null", true},
		{"void 0", "undefined", true},
		{"undefined", "undefined", true},
		{"NaN", "NaN", true},
		{"Infinity", "Infinity", true},
		{"!0", "true", true},
		{"!'a'", "false", true},
		{"!x", "", false},
		{`[1, null, , "a", undefined]`, "1,,,a,", true},
		{"[[1, 2], 3]", "1,2,3", true},
		{"[]", "", true},
		{"[x]", "", false},
		{"{}", "[object Object]", true},
		{"x", "", false},
		{"a + b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			got, ok := a.StringValue(n)
			test.AssertEqual(t, ok, tt.ok)
			test.AssertEqual(t, got, tt.want)
		})
	}
}

func TestStringValueOfKey(t *testing.T) {
	tr := ast.NewTree()
	key := tr.NewStringNode(ast.StringKey, "k", tr.NewNumber(1))
	got, ok := New(tr, nil, nil).StringValue(key)
	test.AssertEqual(t, ok, true)
	test.AssertEqual(t, got, "k")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{100, "100"},
		{-1.5, "-1.5"},
		{0.1, "0.1"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{1.23e-18, "1.23e-18"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{123456789012345680000, "123456789012345680000"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		test.AssertEqual(t, FormatNumber(tt.in), tt.want)
	}
}

// ----------------------------------------------------------------------------
// Number Value
// ----------------------------------------------------------------------------

func sameNumber(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

func TestNumberValue(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		src  string
		want float64
		ok   bool
	}{
		{"true", 1, true},
		{"false", 0, true},
		{"null", 0, true},
		{"42", 42, true},
		{"-3", -3, true},
		{"void 0", nan, true},
		{"void f()", 0, false},
		{"undefined", nan, true},
		{"NaN", nan, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"-x", 0, false},
		{"!1", 0, true},
		{"!0", 1, true},
		{"!x", 0, false},
		{`"12"`, 12, true},
		{`"abc"`, nan, true},
		{"[]", 0, true},
		{"[5]", 5, true},
		{"[1, 2]", nan, true},
		{"{}", nan, true},
		{"x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			got, ok := a.NumberValue(n)
			test.AssertEqual(t, ok, tt.ok)
			if ok && !sameNumber(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringToNumber(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"  0x1F ", 31, true},
		{"0X10", 16, true},
		{"0x", nan, true},
		{"0xg", nan, true},
		{"0x1FFFFFFFFF", 0x1FFFFFFFFF, true},
		{"+0x1", 0, false},
		{"-0x1", 0, false},
		{"infinity", 0, false},
		{"-infinity", 0, false},
		{"+infinity", 0, false},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"+Infinity", math.Inf(1), true},
		{"INFINITY", nan, true},
		{"inf", nan, true},
		{"1e3", 1000, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"-.5e-1", -0.05, true},
		{"+7", 7, true},
		{"1e", nan, true},
		{".", nan, true},
		{"1_0", nan, true},
		{"12px", nan, true},
		{"1e400", math.Inf(1), true},
		{"\v1", 0, false},
		{"1\v", 0, false},
		{"\u00a0 1\t\n", 1, true},
		{"\u30001\u2028", 1, true},
		{"\ufeff2", 2, true},
		{"\u200b1", nan, true},
	}

	for _, tt := range tests {
		got, ok := StringToNumber(tt.in)
		if ok != tt.ok || (ok && !sameNumber(got, tt.want)) {
			t.Errorf("StringToNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsStrWhiteSpaceChar(t *testing.T) {
	tests := []struct {
		in   rune
		want tristate.Value
	}{
		{' ', tristate.True},
		{'\t', tristate.True},
		{'\n', tristate.True},
		{'\r', tristate.True},
		{'\f', tristate.True},
		{'\u00a0', tristate.True},
		{'\u2028', tristate.True},
		{'\u2029', tristate.True},
		{'\ufeff', tristate.True},
		{'\u3000', tristate.True},
		{'\u2003', tristate.True},
		{'\v', tristate.Unknown},
		{'a', tristate.False},
		{'\u200b', tristate.False},
	}

	for _, tt := range tests {
		test.AssertEqual(t, IsStrWhiteSpaceChar(tt.in), tt.want)
	}
}

// ----------------------------------------------------------------------------
// Literal Classification
// ----------------------------------------------------------------------------

func TestIsImmutableValue(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1", true},
		{"'a'", true},
		{"null", true},
		{"true", true},
		{"!x", false},
		{"!1", true},
		{"void 0", true},
		{"-Infinity", true},
		{"undefined", true},
		{"x", false},
		{"[]", false},
		{"1 + 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, IsImmutableValue(a.Tree(), n), tt.want)
		})
	}
}

func TestIsLiteralValue(t *testing.T) {
	tests := []struct {
		src       string
		withFuncs bool
		want      bool
	}{
		{"[1, , 'a']", false, true},
		{"[x]", false, false},
		{"{a: 1, b: [2]}", false, true},
		{"{a: x}", false, false},
		{"/a/g", false, true},
		{"function() {}", true, true},
		{"function() {}", false, false},
		{"[function() {}]", true, true},
		{"x", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, IsLiteralValue(a.Tree(), n, tt.withFuncs), tt.want)
		})
	}

	// A function declaration is never a literal value.
	a, fn := parseStmt(t, "function f() {}")
	test.AssertEqual(t, IsLiteralValue(a.Tree(), fn, true), false)
}

func TestIsValidDefineValue(t *testing.T) {
	defines := map[string]bool{"DEBUG": true, "goog.LOCALE": true}
	tests := []struct {
		src  string
		want bool
	}{
		{"1", true},
		{"'en'", true},
		{"true", true},
		{"!DEBUG", true},
		{"DEBUG && 1", false},
		{"DEBUG + 1", true},
		{"-1 * 2", true},
		{"goog.LOCALE == 'en'", true},
		{"OTHER", false},
		{"f()", false},
		{"null", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			a, n := parseExpr(t, tt.src)
			test.AssertEqual(t, IsValidDefineValue(a.Tree(), n, defines), tt.want)
		})
	}
}

func TestIsNullOrUndefined(t *testing.T) {
	for src, want := range map[string]bool{"null": true, "undefined": true, "void f()": true, "0": false, "x": false} {
		a, n := parseExpr(t, src)
		test.AssertEqual(t, IsNullOrUndefined(a.Tree(), n), want)
	}
}
