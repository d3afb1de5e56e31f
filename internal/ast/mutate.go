package ast

// ----------------------------------------------------------------------------
// Structural Mutation
// ----------------------------------------------------------------------------
//
// These are the only exported edits. Each one keeps the fixed arities of
// TRY, FOR, FUNCTION and the catch container intact, so a tree that passes
// Validate before an edit still passes it afterwards.

func (t *Tree) expectParent(op string, parent, n NodeID) {
	if n == NoNode || t.Parent(n) != parent {
		Violation(op, t.Kind(n), "node is not a child of %s", t.Kind(parent))
	}
}

// RemoveChild removes node from parent, or empties it when the surrounding
// structure requires the slot to stay filled:
//   - a finally block is removed only when the TRY has a catch handler,
//     otherwise it is emptied;
//   - a CATCH, or the contents of the catch container, may be removed only
//     when the TRY has a finally block;
//   - any other BLOCK is emptied in place;
//   - a statement of a SCRIPT or BLOCK, and a switch case, is removed;
//   - a VAR child is removed, and an emptied VAR is removed in turn;
//   - the statement of a LABEL is removed together with the label;
//   - a clause of a classic FOR becomes EMPTY.
//
// Any other combination is a ContractError.
func (t *Tree) RemoveChild(parent, node NodeID) {
	t.expectParent("RemoveChild", parent, node)

	switch {
	case t.IsTryFinallyNode(parent, node):
		if t.HasCatchHandler(parent) {
			t.detach(node)
		} else {
			t.detachChildren(node)
		}

	case t.Kind(node) == Catch:
		try := t.Parent(parent)
		if t.Kind(try) != Try || !t.HasFinally(try) {
			Violation("RemoveChild", Catch, "catch can only be removed when the try has a finally block")
		}
		t.detach(node)

	case t.IsTryCatchNodeContainer(node):
		if !t.HasFinally(parent) {
			Violation("RemoveChild", Block, "catch container can only be emptied when the try has a finally block")
		}
		t.detachChildren(node)

	case t.Kind(node) == Block:
		t.detachChildren(node)

	case t.IsStatementBlock(parent) || t.IsSwitchCase(node):
		t.detach(node)

	case t.Kind(parent) == Var:
		t.detach(node)
		if !t.HasChildren(parent) {
			t.RemoveChild(t.Parent(parent), parent)
		}

	case t.Kind(parent) == Label && t.LastChild(parent) == node:
		t.detach(node)
		t.RemoveChild(t.Parent(parent), parent)

	case t.Kind(parent) == For && t.ChildCount(parent) == 4:
		t.replace(node, t.CopyLoc(t.NewEmpty(), node))

	default:
		Violation("RemoveChild", t.Kind(node), "cannot remove from %s", t.Kind(parent))
	}
}

// TryMergeBlock splices the statements of block into its parent in place of
// the block. It returns false, leaving the tree unchanged, when the parent
// is not a SCRIPT or BLOCK.
func (t *Tree) TryMergeBlock(block NodeID) bool {
	t.expectKind("TryMergeBlock", block, Block)
	parent := t.Parent(block)
	if !t.IsStatementBlock(parent) {
		return false
	}
	prev := block
	for _, c := range t.detachChildren(block) {
		t.insertAfter(prev, c)
		prev = c
	}
	t.detach(block)
	return true
}

// MaybeAddFinally gives a TRY an empty finally block if it has none.
func (t *Tree) MaybeAddFinally(try NodeID) {
	if !t.HasFinally(try) {
		t.appendChild(try, t.CopyLoc(t.NewBlock(), try))
	}
}

// ReplaceChild puts replacement in the slot of old under parent. The
// replacement must be detached or a descendant of old; a descendant is
// lifted out of old first.
func (t *Tree) ReplaceChild(parent, old, replacement NodeID) {
	t.expectParent("ReplaceChild", parent, old)
	if t.Parent(replacement) != NoNode {
		if !t.isDescendant(replacement, old) {
			Violation("ReplaceChild", t.Kind(replacement), "replacement is attached elsewhere")
		}
		t.detach(replacement)
	}
	t.replace(old, replacement)
}

func (t *Tree) isDescendant(n, ancestor NodeID) bool {
	for p := t.Parent(n); p != NoNode; p = t.Parent(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// RedeclareVarsInsideBranch adds "var x;" at the top of the enclosing
// function body or script for every variable declared in branch, so the
// declarations survive when branch is removed.
func (t *Tree) RedeclareVarsInsideBranch(branch NodeID) {
	vars := t.VarsDeclaredInBranch(branch)
	if len(vars) == 0 {
		return
	}
	root := t.addingRoot(branch)
	for _, name := range vars {
		v := t.NewVar(t.Text(name), NoNode)
		t.CopyLoc(t.FirstChild(v), name)
		t.prependChild(root, t.CopyLoc(v, name))
	}
}

func (t *Tree) addingRoot(n NodeID) NodeID {
	for p := t.Parent(n); p != NoNode; p = t.Parent(p) {
		switch t.Kind(p) {
		case Script:
			return p
		case Function:
			return t.LastChild(p)
		}
	}
	Violation("RedeclareVarsInsideBranch", t.Kind(n), "branch is not inside a script or function")
	return NoNode
}
