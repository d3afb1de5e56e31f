package analysis

import "github.com/HugoDaniel/minijs/internal/ast"

// ----------------------------------------------------------------------------
// Result Predicates
// ----------------------------------------------------------------------------

// AllResultsMatch reports whether p holds for every node whose value n can
// evaluate to. Assignments and commas forward their last operand, && and ||
// either operand, and ?: either branch.
func AllResultsMatch(t *ast.Tree, n ast.NodeID, p func(ast.NodeID) bool) bool {
	switch t.Kind(n) {
	case ast.Assign, ast.Comma:
		return AllResultsMatch(t, t.LastChild(n), p)
	case ast.And, ast.Or:
		return AllResultsMatch(t, t.FirstChild(n), p) && AllResultsMatch(t, t.LastChild(n), p)
	case ast.Hook:
		return AllResultsMatch(t, t.SecondChild(n), p) && AllResultsMatch(t, t.LastChild(n), p)
	}
	return p(n)
}

// AnyResultsMatch reports whether p holds for some node whose value n can
// evaluate to.
func AnyResultsMatch(t *ast.Tree, n ast.NodeID, p func(ast.NodeID) bool) bool {
	switch t.Kind(n) {
	case ast.Assign, ast.Comma:
		return AnyResultsMatch(t, t.LastChild(n), p)
	case ast.And, ast.Or:
		return AnyResultsMatch(t, t.FirstChild(n), p) || AnyResultsMatch(t, t.LastChild(n), p)
	case ast.Hook:
		return AnyResultsMatch(t, t.SecondChild(n), p) || AnyResultsMatch(t, t.LastChild(n), p)
	}
	return p(n)
}

// IsNumericResult reports whether n always evaluates to a number.
func IsNumericResult(t *ast.Tree, n ast.NodeID) bool {
	return AllResultsMatch(t, n, func(c ast.NodeID) bool { return isNumericResultNode(t, c) })
}

func isNumericResultNode(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.Add:
		return !MayBeString(t, t.FirstChild(n)) && !MayBeString(t, t.LastChild(n))
	case ast.BitNot, ast.BitOr, ast.BitXor, ast.BitAnd, ast.Lsh, ast.Rsh,
		ast.URsh, ast.Sub, ast.Mul, ast.Mod, ast.Div, ast.Inc, ast.Dec,
		ast.Pos, ast.Neg, ast.Number:
		return true
	case ast.Name:
		switch t.Text(n) {
		case "NaN", "Infinity":
			return true
		}
	}
	return false
}

// IsBooleanResult reports whether n always evaluates to a boolean.
func IsBooleanResult(t *ast.Tree, n ast.NodeID) bool {
	return AllResultsMatch(t, n, func(c ast.NodeID) bool { return isBooleanResultNode(t, c) })
}

func isBooleanResultNode(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.True, ast.False,
		ast.Eq, ast.Ne, ast.Sheq, ast.Shne, ast.Lt, ast.Gt, ast.Le, ast.Ge,
		ast.In, ast.Instanceof,
		ast.Not,
		ast.DelProp:
		return true
	}
	return false
}

// MayBeString reports whether any result of n may be a string.
func MayBeString(t *ast.Tree, n ast.NodeID) bool {
	return AnyResultsMatch(t, n, func(c ast.NodeID) bool { return mayBeStringNode(t, c) })
}

func mayBeStringNode(t *ast.Tree, n ast.NodeID) bool {
	return !IsNumericResult(t, n) && !IsBooleanResult(t, n) &&
		!IsUndefined(t, n) && t.Kind(n) != ast.Null
}
