package fold

import (
	"github.com/HugoDaniel/minijs/internal/analysis"
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/tristate"
)

// ----------------------------------------------------------------------------
// Useless Statements
// ----------------------------------------------------------------------------

// RemoveUselessStatements drops expression statements whose expression has
// no side effects, and EMPTY statements of a script or block. Directive
// prologues ("use strict") are kept.
func RemoveUselessStatements(a *analysis.Analyzer, root ast.NodeID) int {
	t := a.Tree()
	candidates := collect(t, root, func(n ast.NodeID) bool {
		if !t.IsStatementBlock(t.Parent(n)) {
			return false
		}
		switch t.Kind(n) {
		case ast.Empty:
			return true
		case ast.ExprResult:
			return !isDirective(t, n) && !a.MayHaveSideEffects(t.FirstChild(n))
		}
		return false
	})

	removed := 0
	for _, n := range candidates {
		if !attached(t, root, n) {
			continue
		}
		t.RemoveChild(t.Parent(n), n)
		removed++
	}
	return removed
}

// isDirective reports whether stmt is a string literal statement in the
// prologue of a script or function body.
func isDirective(t *ast.Tree, stmt ast.NodeID) bool {
	parent := t.Parent(stmt)
	if t.Kind(parent) != ast.Script && t.Kind(t.Parent(parent)) != ast.Function {
		return false
	}
	for s := stmt; s != ast.NoNode; s = t.Prev(s) {
		if t.Kind(s) != ast.ExprResult || t.Kind(t.FirstChild(s)) != ast.String {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// Comma Operands
// ----------------------------------------------------------------------------

// SimplifyCommas replaces "a, b" by "b" when a has no side effects and its
// value is unused. The "(0, eval)" indirect-eval guard keeps its operand.
func SimplifyCommas(a *analysis.Analyzer, root ast.NodeID) int {
	t := a.Tree()
	candidates := collect(t, root, func(n ast.NodeID) bool {
		return t.Kind(n) == ast.Comma
	})

	folded := 0
	for _, comma := range candidates {
		if !attached(t, root, comma) {
			continue
		}
		first := t.FirstChild(comma)
		if a.MayHaveSideEffects(first) || analysis.IsExpressionResultUsed(t, first) {
			continue
		}
		if keepsReference(t, comma) {
			continue
		}
		t.ReplaceChild(t.Parent(comma), comma, t.LastChild(comma))
		folded++
	}
	return folded
}

// keepsReference reports whether dropping the comma would turn its value
// back into a reference: a method callee would regain its receiver, eval
// would become direct, and delete would act on the property.
func keepsReference(t *ast.Tree, comma ast.NodeID) bool {
	parent := t.Parent(comma)
	last := t.LastChild(comma)
	switch t.Kind(parent) {
	case ast.Call:
		if t.FirstChild(parent) != comma {
			return false
		}
		return t.IsGet(last) || (t.Kind(last) == ast.Name && t.Text(last) == "eval")
	case ast.DelProp, ast.Typeof:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Constant Conditions
// ----------------------------------------------------------------------------

// FoldConditions replaces an IF whose condition is side-effect free and
// statically true or false by the branch that is taken, and removes WHILE
// loops whose condition is statically false. Variables declared in a
// dropped branch are redeclared at the top of the enclosing function or
// script first.
func FoldConditions(a *analysis.Analyzer, root ast.NodeID) int {
	t := a.Tree()
	candidates := collect(t, root, func(n ast.NodeID) bool {
		k := t.Kind(n)
		return k == ast.If || k == ast.While
	})

	folded := 0
	for _, n := range candidates {
		if !attached(t, root, n) {
			continue
		}
		cond := t.FirstChild(n)
		if a.MayHaveSideEffects(cond) {
			continue
		}
		value := a.ImpureBooleanValue(cond)
		if !value.IsKnown() {
			continue
		}

		if t.Kind(n) == ast.While {
			if value == tristate.True {
				continue
			}
			t.RedeclareVarsInsideBranch(t.LastChild(n))
			removeStatement(t, n)
			folded++
			continue
		}

		thenBranch := t.SecondChild(n)
		elseBranch := ast.NoNode
		if t.ChildCount(n) == 3 {
			elseBranch = t.LastChild(n)
		}
		taken, dropped := thenBranch, elseBranch
		if value == tristate.False {
			taken, dropped = elseBranch, thenBranch
		}
		if dropped != ast.NoNode {
			t.RedeclareVarsInsideBranch(dropped)
		}
		if taken == ast.NoNode {
			removeStatement(t, n)
		} else {
			t.ReplaceChild(t.Parent(n), n, taken)
		}
		folded++
	}
	return folded
}

// ----------------------------------------------------------------------------
// Blocks
// ----------------------------------------------------------------------------

// MergeBlocks splices blocks that are plain statements of a script or block
// into their parent.
func MergeBlocks(a *analysis.Analyzer, root ast.NodeID) int {
	t := a.Tree()
	candidates := collect(t, root, func(n ast.NodeID) bool {
		return n != root && t.Kind(n) == ast.Block && t.IsStatementBlock(t.Parent(n))
	})

	merged := 0
	for _, b := range candidates {
		if !attached(t, root, b) || !t.IsStatementBlock(t.Parent(b)) {
			continue
		}
		if t.TryMergeBlock(b) {
			merged++
		}
	}
	return merged
}

// ----------------------------------------------------------------------------
// Try Statements
// ----------------------------------------------------------------------------

// PruneTry simplifies TRY statements:
//   - a catch that can never run, because the body is empty, is removed;
//   - an empty finally is removed when a catch handler remains;
//   - a TRY left with neither handler nor a non-empty finally becomes its
//     body, and one with an empty body becomes its finally block.
func PruneTry(a *analysis.Analyzer, root ast.NodeID) int {
	t := a.Tree()
	candidates := collect(t, root, func(n ast.NodeID) bool {
		return t.Kind(n) == ast.Try
	})

	edits := 0
	for _, try := range candidates {
		if !attached(t, root, try) {
			continue
		}
		body := t.FirstChild(try)
		catches := t.CatchBlock(try)

		if t.IsEmptyBlock(body) && t.HasCatchHandler(try) {
			handler := t.FirstChild(catches)
			t.RedeclareVarsInsideBranch(handler)
			t.MaybeAddFinally(try)
			t.RemoveChild(catches, handler)
			edits++
		}

		if t.HasFinally(try) && t.HasCatchHandler(try) && t.IsEmptyBlock(t.LastChild(try)) {
			t.RemoveChild(try, t.LastChild(try))
			edits++
			continue
		}

		if t.HasCatchHandler(try) {
			continue
		}
		switch {
		case !t.HasFinally(try) || t.IsEmptyBlock(t.LastChild(try)):
			t.ReplaceChild(t.Parent(try), try, body)
			edits++
		case t.IsEmptyBlock(body):
			t.ReplaceChild(t.Parent(try), try, t.LastChild(try))
			edits++
		}
	}
	return edits
}
