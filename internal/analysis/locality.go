package analysis

import (
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/ops"
)

func noLocals(ast.NodeID) bool { return false }

// EvaluatesToLocalValue reports whether the value of n cannot be referenced
// by anything other than the expression containing it.
func EvaluatesToLocalValue(t *ast.Tree, n ast.NodeID) bool {
	return EvaluatesToLocalValueWith(t, n, noLocals)
}

// EvaluatesToLocalValueWith is EvaluatesToLocalValue where locals decides
// the names, this references and property reads that are known local.
func EvaluatesToLocalValueWith(t *ast.Tree, n ast.NodeID, locals func(ast.NodeID) bool) bool {
	switch t.Kind(n) {
	case ast.Assign:
		// An immutable value cannot be aliased through the target.
		return IsImmutableValue(t, t.LastChild(n)) ||
			(locals(n) && EvaluatesToLocalValueWith(t, t.LastChild(n), locals))
	case ast.Comma:
		return EvaluatesToLocalValueWith(t, t.LastChild(n), locals)
	case ast.And, ast.Or:
		return EvaluatesToLocalValueWith(t, t.FirstChild(n), locals) &&
			EvaluatesToLocalValueWith(t, t.LastChild(n), locals)
	case ast.Hook:
		return EvaluatesToLocalValueWith(t, t.SecondChild(n), locals) &&
			EvaluatesToLocalValueWith(t, t.LastChild(n), locals)
	case ast.Inc, ast.Dec:
		if t.HasFlag(n, ast.FlagPostfix) {
			return EvaluatesToLocalValueWith(t, t.FirstChild(n), locals)
		}
		return true
	case ast.This:
		return locals(n)
	case ast.Name:
		return IsImmutableValue(t, n) || locals(n)
	case ast.GetElem, ast.GetProp:
		return locals(n)
	case ast.Call:
		return CallHasLocalResult(t, n) || isToStringMethodCall(t, n) || locals(n)
	case ast.New:
		return NewHasLocalResult(t, n) || locals(n)
	case ast.Function, ast.RegExp, ast.ArrayLit, ast.ObjectLit:
		return true
	case ast.DelProp, ast.In:
		return true
	}

	// x = '' + g and x -= g both leave a fresh primitive.
	k := t.Kind(n)
	if ops.IsAssignmentOp(k) || ops.IsSimple(k) || IsImmutableValue(t, n) {
		return true
	}
	ast.Violation("EvaluatesToLocalValue", k, "unexpected expression")
	return false
}

// CallHasLocalResult reports whether the call site is annotated as
// returning a fresh value.
func CallHasLocalResult(t *ast.Tree, n ast.NodeID) bool {
	return t.CallEffects(n).LocalResult
}

// NewHasLocalResult reports whether the constructor only modifies the new
// object, which then cannot be aliased.
func NewHasLocalResult(t *ast.Tree, n ast.NodeID) bool {
	return t.CallEffects(n).OnlyModifiesReceiver
}

func isToStringMethodCall(t *ast.Tree, call ast.NodeID) bool {
	callee := t.FirstChild(call)
	if !t.IsGet(callee) {
		return false
	}
	prop := t.LastChild(callee)
	return t.Kind(prop) == ast.String && t.Text(prop) == "toString"
}
