package analysis

import (
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/ops"
)

// ----------------------------------------------------------------------------
// Side Effects
// ----------------------------------------------------------------------------

// MayHaveSideEffects reports whether evaluating n may change state that is
// observable after n finishes.
func (a *Analyzer) MayHaveSideEffects(n ast.NodeID) bool {
	return a.checkForStateChange(n, false)
}

// MayEffectMutableState is MayHaveSideEffects with the creation of objects,
// arrays and regular expressions also counted as a state change.
func (a *Analyzer) MayEffectMutableState(n ast.NodeID) bool {
	return a.checkForStateChange(n, true)
}

func (a *Analyzer) checkForStateChange(n ast.NodeID, checkForNewObjects bool) bool {
	t := a.tree
	switch t.Kind(n) {
	case ast.And, ast.Block, ast.ExprResult, ast.Hook, ast.If, ast.In,
		ast.ParamList, ast.Number, ast.Or, ast.This, ast.True, ast.False,
		ast.Null, ast.String, ast.StringKey, ast.Switch, ast.Try, ast.Empty:
		// Scaffolding; only the children matter.

	case ast.Throw:
		return true

	case ast.ObjectLit:
		if checkForNewObjects {
			return true
		}
		// Keys are never evaluated.
		for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
			if a.checkForStateChange(t.FirstChild(c), checkForNewObjects) {
				return true
			}
		}
		return false

	case ast.ArrayLit, ast.RegExp:
		if checkForNewObjects {
			return true
		}

	case ast.Var, ast.Name:
		if t.HasChildren(n) {
			return true
		}

	case ast.Function:
		// The body does not run at definition time.
		return checkForNewObjects || !t.IsFunctionExpression(n)

	case ast.New:
		if checkForNewObjects {
			return true
		}
		if a.ConstructorCallHasSideEffects(n) {
			return true
		}

	case ast.Call:
		if a.FunctionCallHasSideEffects(n) {
			return true
		}

	default:
		if ops.IsSimple(t.Kind(n)) {
			break
		}
		if ops.IsAssignmentOp(t.Kind(n)) {
			return a.assignmentHasSideEffects(n, checkForNewObjects)
		}
		return true
	}

	for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
		if a.checkForStateChange(c, checkForNewObjects) {
			return true
		}
	}
	return false
}

// assignmentHasSideEffects treats a property store as invisible when the
// stored-to object cannot be referenced outside the expression.
func (a *Analyzer) assignmentHasSideEffects(n ast.NodeID, checkForNewObjects bool) bool {
	t := a.tree
	target := t.FirstChild(n)
	if t.Kind(target) == ast.Name {
		return true
	}
	if a.checkForStateChange(target, checkForNewObjects) ||
		a.checkForStateChange(t.LastChild(n), checkForNewObjects) {
		return true
	}
	if !t.IsGet(target) {
		return !IsLiteralValue(t, target, true)
	}

	current := t.FirstChild(target)
	if EvaluatesToLocalValue(t, current) {
		return false
	}
	for t.IsGet(current) {
		current = t.FirstChild(current)
	}
	return !IsLiteralValue(t, current, true)
}

// ----------------------------------------------------------------------------
// Calls
// ----------------------------------------------------------------------------

// ConstructorCallHasSideEffects reports whether the NEW node n may have
// side effects beyond producing its object. Arguments are not inspected.
func (a *Analyzer) ConstructorCallHasSideEffects(n ast.NodeID) bool {
	t := a.tree
	if t.Kind(n) != ast.New {
		ast.Violation("ConstructorCallHasSideEffects", t.Kind(n), "expected NEW")
	}
	if t.CallEffects(n).NoSideEffects {
		return false
	}
	callee := t.FirstChild(n)
	return !(t.Kind(callee) == ast.Name && a.tables.IsPureConstructor(t.Text(callee)))
}

// FunctionCallHasSideEffects reports whether the CALL node n may have side
// effects beyond computing its result. Arguments are not inspected.
func (a *Analyzer) FunctionCallHasSideEffects(n ast.NodeID) bool {
	t := a.tree
	if t.Kind(n) != ast.Call {
		ast.Violation("FunctionCallHasSideEffects", t.Kind(n), "expected CALL")
	}
	if t.CallEffects(n).NoSideEffects {
		return false
	}

	callee := t.FirstChild(n)
	switch t.Kind(callee) {
	case ast.Name:
		return !a.tables.IsPureFunction(t.Text(callee))

	case ast.GetProp:
		receiver := t.FirstChild(callee)
		method := t.Text(t.LastChild(callee))

		if t.ChildCount(n) == 1 && a.tables.IsReceiverFreeMethod(method) {
			return false
		}
		if t.CallEffects(n).OnlyModifiesReceiver && EvaluatesToLocalValue(t, receiver) {
			return false
		}
		if t.Kind(receiver) == ast.Name {
			if q, ok := t.QualifiedName(callee); ok && a.tables.IsPureQualifiedFunction(q) {
				return false
			}
		}

		if !a.regexGlobalsFree() {
			return true
		}
		switch t.Kind(receiver) {
		case ast.RegExp:
			if a.tables.IsRegExpMethod(method) {
				return false
			}
		case ast.String:
			if a.tables.IsStringRegExpMethod(method) {
				switch t.Kind(t.Next(callee)) {
				case ast.String, ast.RegExp:
					return false
				}
			}
		}
	}
	return true
}

// NodeTypeMayHaveSideEffects reports whether the node itself, ignoring its
// children, may have side effects.
func (a *Analyzer) NodeTypeMayHaveSideEffects(n ast.NodeID) bool {
	t := a.tree
	if ops.IsAssignmentOp(t.Kind(n)) {
		return true
	}
	switch t.Kind(n) {
	case ast.DelProp, ast.Dec, ast.Inc, ast.Throw:
		return true
	case ast.Call:
		return a.FunctionCallHasSideEffects(n)
	case ast.New:
		return a.ConstructorCallHasSideEffects(n)
	case ast.Name:
		return t.HasChildren(n)
	}
	return false
}

// ----------------------------------------------------------------------------
// External Influence
// ----------------------------------------------------------------------------

// CanBeSideEffected reports whether code outside n could change the value n
// evaluates to. Names are immune when flagged constant or listed in
// knownConstants; calls and property reads never are.
func CanBeSideEffected(t *ast.Tree, n ast.NodeID, knownConstants map[string]bool) bool {
	switch t.Kind(n) {
	case ast.Call, ast.New:
		return true
	case ast.Name:
		return !t.HasFlag(n, ast.FlagConstantName) && !knownConstants[t.Text(n)]
	case ast.GetProp, ast.GetElem:
		return true
	case ast.Function:
		if !t.IsFunctionExpression(n) {
			ast.Violation("CanBeSideEffected", ast.Function, "expected a function expression")
		}
		return false
	}
	for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
		if CanBeSideEffected(t, c, knownConstants) {
			return true
		}
	}
	return false
}
