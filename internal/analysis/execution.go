package analysis

import "github.com/HugoDaniel/minijs/internal/ast"

// ----------------------------------------------------------------------------
// Execution Shape
// ----------------------------------------------------------------------------

// IsExecutedExactlyOnce reports whether n runs exactly once each time its
// enclosing function or script runs.
func IsExecutedExactlyOnce(t *ast.Tree, n ast.NodeID) bool {
	for parent := t.Parent(n); parent != ast.NoNode; n, parent = parent, t.Parent(parent) {
		switch t.Kind(parent) {
		case ast.If, ast.Hook, ast.And, ast.Or:
			if t.FirstChild(parent) != n {
				return false
			}
		case ast.For:
			if t.IsForIn(parent) {
				if t.SecondChild(parent) != n {
					return false
				}
			} else if t.FirstChild(parent) != n {
				return false
			}
		case ast.While, ast.Do:
			return false
		case ast.Try:
			// Only the finally block is guaranteed to run.
			if !t.HasFinally(parent) || t.LastChild(parent) != n {
				return false
			}
		case ast.Case, ast.DefaultCase:
			return false
		case ast.Script, ast.Function:
			return true
		}
	}
	return true
}

// IsExpressionResultUsed reports whether the value of the expression n is
// consumed by its context.
func IsExpressionResultUsed(t *ast.Tree, n ast.NodeID) bool {
	parent := t.Parent(n)
	switch t.Kind(parent) {
	case ast.Block, ast.ExprResult:
		return false
	case ast.Hook, ast.And, ast.Or:
		if n == t.FirstChild(parent) {
			return true
		}
		return IsExpressionResultUsed(t, parent)
	case ast.Comma:
		if isIndirectEvalGuard(t, n, parent) {
			return true
		}
		if n == t.FirstChild(parent) {
			return false
		}
		return IsExpressionResultUsed(t, parent)
	case ast.For:
		if !t.IsForIn(parent) {
			// Only the condition's value is read.
			return t.SecondChild(parent) == n
		}
	}
	return true
}

// isIndirectEvalGuard matches a in (a, eval)(...), which turns a direct
// eval call into an indirect one.
func isIndirectEvalGuard(t *ast.Tree, n, comma ast.NodeID) bool {
	gramps := t.Parent(comma)
	if t.Kind(gramps) != ast.Call || t.FirstChild(gramps) != comma {
		return false
	}
	if n != t.FirstChild(comma) || t.ChildCount(comma) != 2 {
		return false
	}
	next := t.Next(n)
	return t.Kind(next) == ast.Name && t.Text(next) == "eval"
}
