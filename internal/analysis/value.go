package analysis

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/tristate"
)

// ----------------------------------------------------------------------------
// Boolean Value
// ----------------------------------------------------------------------------

// ImpureBooleanValue computes the boolean coercion of n, ignoring whether
// evaluating n has side effects.
func (a *Analyzer) ImpureBooleanValue(n ast.NodeID) tristate.Value {
	t := a.tree
	switch t.Kind(n) {
	case ast.Assign, ast.Comma:
		return a.ImpureBooleanValue(t.LastChild(n))
	case ast.Not:
		return a.ImpureBooleanValue(t.LastChild(n)).Not()
	case ast.And:
		return a.ImpureBooleanValue(t.FirstChild(n)).And(a.ImpureBooleanValue(t.LastChild(n)))
	case ast.Or:
		return a.ImpureBooleanValue(t.FirstChild(n)).Or(a.ImpureBooleanValue(t.LastChild(n)))
	case ast.Hook:
		whenTrue := a.ImpureBooleanValue(t.SecondChild(n))
		whenFalse := a.ImpureBooleanValue(t.LastChild(n))
		if whenTrue == whenFalse {
			return whenTrue
		}
		return tristate.Unknown
	case ast.ArrayLit, ast.ObjectLit:
		return tristate.True
	case ast.Void:
		return tristate.False
	}
	return a.PureBooleanValue(n)
}

// PureBooleanValue computes the boolean coercion of n, the way Boolean(n)
// would, for forms whose evaluation is free of side effects.
func (a *Analyzer) PureBooleanValue(n ast.NodeID) tristate.Value {
	t := a.tree
	switch t.Kind(n) {
	case ast.String:
		return tristate.ForBool(len(t.Text(n)) > 0)
	case ast.Number:
		v := t.Number(n)
		return tristate.ForBool(v != 0 && !math.IsNaN(v))
	case ast.Not:
		return a.PureBooleanValue(t.LastChild(n)).Not()
	case ast.Null, ast.False:
		return tristate.False
	case ast.Void:
		if !a.MayHaveSideEffects(t.FirstChild(n)) {
			return tristate.False
		}
	case ast.Name:
		switch t.Text(n) {
		case "undefined", "NaN":
			return tristate.False
		case "Infinity":
			return tristate.True
		}
	case ast.True, ast.RegExp:
		return tristate.True
	case ast.ArrayLit, ast.ObjectLit:
		if !a.MayHaveSideEffects(n) {
			return tristate.True
		}
	}
	return tristate.Unknown
}

// ----------------------------------------------------------------------------
// String Value
// ----------------------------------------------------------------------------

// StringValue computes String(n). The second result is false when the value
// is not statically known.
func (a *Analyzer) StringValue(n ast.NodeID) (string, bool) {
	t := a.tree
	switch t.Kind(n) {
	case ast.String, ast.StringKey:
		return t.Text(n), true
	case ast.Name:
		switch name := t.Text(n); name {
		case "undefined", "Infinity", "NaN":
			return name, true
		}
	case ast.Number:
		return FormatNumber(t.Number(n)), true
	case ast.False:
		return "false", true
	case ast.True:
		return "true", true
	case ast.Null:
		return "null", true
	case ast.Void:
		return "undefined", true
	case ast.Not:
		switch a.PureBooleanValue(t.FirstChild(n)) {
		case tristate.True:
			return "false", true
		case tristate.False:
			return "true", true
		}
	case ast.ArrayLit:
		return a.ArrayToString(n)
	case ast.ObjectLit:
		return "[object Object]", true
	}
	return "", false
}

// ArrayToString computes the string an array literal converts to: elements
// joined by commas, with null, undefined and holes as empty strings.
func (a *Analyzer) ArrayToString(n ast.NodeID) (string, bool) {
	t := a.tree
	var sb strings.Builder
	for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
		if c != t.FirstChild(n) {
			sb.WriteByte(',')
		}
		if IsNullOrUndefined(t, c) || t.Kind(c) == ast.Empty {
			continue
		}
		s, ok := a.StringValue(c)
		if !ok {
			return "", false
		}
		sb.WriteString(s)
	}
	return sb.String(), true
}

// FormatNumber renders v the way JavaScript's Number.prototype.toString
// does: integral values have no fraction, very large and very small
// magnitudes use exponent notation.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	// Shortest round-trip digits as d.ddde+x or d.ddde-x.
	e := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, expStr, _ := strings.Cut(e, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expStr)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	frac := ""
	if k > 1 {
		frac = "." + digits[1:]
	}
	return sign + digits[:1] + frac + "e" + expSign + strconv.Itoa(abs(n-1))
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// ----------------------------------------------------------------------------
// Number Value
// ----------------------------------------------------------------------------

// NumberValue computes Number(n). The second result is false when the value
// is not statically known.
func (a *Analyzer) NumberValue(n ast.NodeID) (float64, bool) {
	t := a.tree
	switch t.Kind(n) {
	case ast.True:
		return 1, true
	case ast.False, ast.Null:
		return 0, true
	case ast.Number:
		return t.Number(n), true
	case ast.Void:
		if a.MayHaveSideEffects(t.FirstChild(n)) {
			return 0, false
		}
		return math.NaN(), true
	case ast.Name:
		switch t.Text(n) {
		case "undefined", "NaN":
			return math.NaN(), true
		case "Infinity":
			return math.Inf(1), true
		}
	case ast.Neg:
		c := t.FirstChild(n)
		if t.ChildCount(n) == 1 && t.Kind(c) == ast.Name && t.Text(c) == "Infinity" {
			return math.Inf(-1), true
		}
	case ast.Not:
		switch a.PureBooleanValue(t.FirstChild(n)) {
		case tristate.True:
			return 0, true
		case tristate.False:
			return 1, true
		}
	case ast.String:
		return StringToNumber(t.Text(n))
	case ast.ArrayLit, ast.ObjectLit:
		if s, ok := a.StringValue(n); ok {
			return StringToNumber(s)
		}
	}
	return 0, false
}

// StringToNumber converts a string the way Number(s) does, leaving
// undecided the inputs JavaScript engines disagree on: any vertical tab,
// signed hexadecimal, and the lower-case "infinity" spellings.
func StringToNumber(s string) (float64, bool) {
	if strings.ContainsRune(s, '\v') {
		return 0, false
	}

	s = TrimJSWhiteSpace(s)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return parseHex(s[2:]), true
	}

	if len(s) > 3 && (s[0] == '-' || s[0] == '+') && s[1] == '0' && (s[2] == 'x' || s[2] == 'X') {
		return 0, false
	}

	switch s {
	case "infinity", "-infinity", "+infinity":
		return 0, false
	}

	if !isStrDecimalLiteral(s) {
		return math.NaN(), true
	}
	switch strings.TrimLeft(s, "+-") {
	case "Infinity":
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return math.NaN(), true
	}
	return v, true
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// parseHex reads hexadecimal digits of any length, or yields NaN.
func parseHex(digits string) float64 {
	v := 0.0
	for i := 0; i < len(digits); i++ {
		var d byte
		switch c := digits[i]; {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return math.NaN()
		}
		v = v*16 + float64(d)
	}
	return v
}

// isStrDecimalLiteral matches
//
//	[+-]? ( "Infinity" | digits [ "." digits? ] exp? | "." digits exp? )
//	exp = [eE] [+-]? digits
func isStrDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if s[i:] == "Infinity" {
		return true
	}
	intDigits := scanDigits(s, i)
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = scanDigits(s, i)
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := scanDigits(s, i)
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}
	return i == len(s)
}

func scanDigits(s string, i int) int {
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i - start
}

// IsStrWhiteSpaceChar classifies c under the StrWhiteSpaceChar production.
// Vertical tab is Unknown because engines disagree on it.
func IsStrWhiteSpaceChar(c rune) tristate.Value {
	switch c {
	case '\v':
		return tristate.Unknown
	case ' ', '\n', '\r', '\t', '\u00a0', '\f', '\u2028', '\u2029', '\ufeff':
		return tristate.True
	}
	return tristate.ForBool(unicode.Is(unicode.Zs, c))
}

// TrimJSWhiteSpace strips characters that are definitely white space from
// both ends of s.
func TrimJSWhiteSpace(s string) string {
	return strings.TrimFunc(s, func(c rune) bool {
		return IsStrWhiteSpaceChar(c) == tristate.True
	})
}

// ----------------------------------------------------------------------------
// Literal Classification
// ----------------------------------------------------------------------------

// IsUndefined reports whether n is "void x" or the name undefined.
func IsUndefined(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.Void:
		return true
	case ast.Name:
		return t.Text(n) == "undefined"
	}
	return false
}

// IsNullOrUndefined reports whether n is null or IsUndefined.
func IsNullOrUndefined(t *ast.Tree, n ast.NodeID) bool {
	return t.Kind(n) == ast.Null || IsUndefined(t, n)
}

// IsImmutableValue reports whether n is a primitive constant, possibly
// under !, void or unary minus.
func IsImmutableValue(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.String, ast.Number, ast.Null, ast.True, ast.False:
		return true
	case ast.Not, ast.Void, ast.Neg:
		return IsImmutableValue(t, t.FirstChild(n))
	case ast.Name:
		switch t.Text(n) {
		case "undefined", "Infinity", "NaN":
			return true
		}
	}
	return false
}

// IsLiteralValue reports whether n evaluates to the same value wherever and
// whenever it is evaluated. Array, object and regex literals qualify when
// their parts do. Function expressions qualify only with includeFunctions.
func IsLiteralValue(t *ast.Tree, n ast.NodeID, includeFunctions bool) bool {
	switch t.Kind(n) {
	case ast.ArrayLit:
		for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
			if t.Kind(c) != ast.Empty && !IsLiteralValue(t, c, includeFunctions) {
				return false
			}
		}
		return true
	case ast.RegExp:
		for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
			if !IsLiteralValue(t, c, includeFunctions) {
				return false
			}
		}
		return true
	case ast.ObjectLit:
		for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
			if !IsLiteralValue(t, t.FirstChild(c), includeFunctions) {
				return false
			}
		}
		return true
	case ast.Function:
		return includeFunctions && !t.IsFunctionDeclaration(n)
	}
	return IsImmutableValue(t, n)
}

// IsValidDefineValue reports whether n may initialize a compile-time define:
// literals, operators over valid values, and names of other defines.
func IsValidDefineValue(t *ast.Tree, n ast.NodeID, defines map[string]bool) bool {
	switch t.Kind(n) {
	case ast.String, ast.Number, ast.True, ast.False:
		return true
	case ast.Add, ast.BitAnd, ast.BitNot, ast.BitOr, ast.BitXor, ast.Div,
		ast.Eq, ast.Ge, ast.Gt, ast.Le, ast.Lsh, ast.Lt, ast.Mod, ast.Mul,
		ast.Ne, ast.Rsh, ast.Sheq, ast.Shne, ast.Sub, ast.URsh:
		return IsValidDefineValue(t, t.FirstChild(n), defines) &&
			IsValidDefineValue(t, t.LastChild(n), defines)
	case ast.Not, ast.Neg, ast.Pos:
		return IsValidDefineValue(t, t.FirstChild(n), defines)
	case ast.Name, ast.GetProp:
		if q, ok := t.QualifiedName(n); ok {
			return defines[q]
		}
	}
	return false
}
