package ast

import "strings"

// ----------------------------------------------------------------------------
// Statement structure
// ----------------------------------------------------------------------------

// IsStatementBlock reports whether n is a SCRIPT or BLOCK.
func (t *Tree) IsStatementBlock(n NodeID) bool {
	k := t.Kind(n)
	return k == Script || k == Block
}

// IsStatementParent reports whether children of n are statements.
func (t *Tree) IsStatementParent(n NodeID) bool {
	switch t.Kind(n) {
	case Script, Block, Label:
		return true
	}
	return false
}

// IsStatement reports whether n sits in statement position.
func (t *Tree) IsStatement(n NodeID) bool {
	return t.IsStatementParent(t.Parent(n))
}

// IsForIn reports whether n is the three-child for-in form of FOR.
func (t *Tree) IsForIn(n NodeID) bool {
	return t.Kind(n) == For && t.ChildCount(n) == 3
}

// IsLoopStructure reports whether n is FOR, DO or WHILE.
func (t *Tree) IsLoopStructure(n NodeID) bool {
	switch t.Kind(n) {
	case For, Do, While:
		return true
	}
	return false
}

// IsControlStructure reports whether n owns nested statement blocks.
func (t *Tree) IsControlStructure(n NodeID) bool {
	switch t.Kind(n) {
	case If, For, Do, While, With, Block, Label, Try, Catch, Switch, Case, DefaultCase:
		return true
	}
	return false
}

// IsControlStructureCodeBlock reports whether n is a code block of the
// control structure parent, as opposed to a condition or other operand.
func (t *Tree) IsControlStructureCodeBlock(parent, n NodeID) bool {
	switch t.Kind(parent) {
	case For, While, Label, With:
		return t.LastChild(parent) == n
	case Do:
		return t.FirstChild(parent) == n
	case If:
		return t.FirstChild(parent) != n
	case Try:
		return t.FirstChild(parent) == n || t.LastChild(parent) == n
	case Catch:
		return t.LastChild(parent) == n
	case Switch, Case:
		return t.FirstChild(parent) != n
	case DefaultCase:
		return true
	}
	return false
}

// ConditionExpression returns the condition of IF, WHILE, DO or a
// four-child FOR. For-in has no condition and yields NoNode.
func (t *Tree) ConditionExpression(n NodeID) NodeID {
	switch t.Kind(n) {
	case If, While:
		return t.FirstChild(n)
	case Do:
		return t.LastChild(n)
	case For:
		if t.ChildCount(n) == 4 {
			return t.SecondChild(n)
		}
		return NoNode
	}
	Violation("ConditionExpression", t.Kind(n), "expected a control structure")
	return NoNode
}

// LoopCodeBlock returns the body of a loop, or NoNode for other kinds.
func (t *Tree) LoopCodeBlock(n NodeID) NodeID {
	switch t.Kind(n) {
	case For, While:
		return t.LastChild(n)
	case Do:
		return t.FirstChild(n)
	}
	return NoNode
}

// IsWithinLoop reports whether n is inside a loop of its own function.
func (t *Tree) IsWithinLoop(n NodeID) bool {
	for p := t.Parent(n); p != NoNode; p = t.Parent(p) {
		if t.IsLoopStructure(p) {
			return true
		}
		if t.Kind(p) == Function {
			break
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func (t *Tree) expectKind(op string, n NodeID, k Kind) {
	if t.Kind(n) != k {
		Violation(op, t.Kind(n), "expected %s", k)
	}
}

// IsFunctionDeclaration reports whether n is a function in statement position.
func (t *Tree) IsFunctionDeclaration(n NodeID) bool {
	return t.Kind(n) == Function && t.IsStatement(n)
}

// IsHoistedFunctionDeclaration reports whether n is a declaration at the top
// of a script or function body.
func (t *Tree) IsHoistedFunctionDeclaration(n NodeID) bool {
	if !t.IsFunctionDeclaration(n) {
		return false
	}
	p := t.Parent(n)
	return t.Kind(p) == Script || t.Kind(t.Parent(p)) == Function
}

// IsFunctionExpression reports whether n is a function in expression position.
func (t *Tree) IsFunctionExpression(n NodeID) bool {
	return t.Kind(n) == Function && !t.IsStatement(n)
}

// IsBleedingFunctionName reports whether n is the name of a named function
// expression, visible only inside that function.
func (t *Tree) IsBleedingFunctionName(n NodeID) bool {
	if t.Kind(n) != Name || t.Text(n) == "" {
		return false
	}
	p := t.Parent(n)
	return t.IsFunctionExpression(p) && t.FirstChild(p) == n
}

// IsEmptyBlock reports whether n is a BLOCK holding only EMPTY statements.
func (t *Tree) IsEmptyBlock(n NodeID) bool {
	if t.Kind(n) != Block {
		return false
	}
	for c := t.FirstChild(n); c != NoNode; c = t.Next(c) {
		if t.Kind(c) != Empty {
			return false
		}
	}
	return true
}

// IsEmptyFunctionExpression reports whether n is "function() {}" in
// expression position.
func (t *Tree) IsEmptyFunctionExpression(n NodeID) bool {
	return t.IsFunctionExpression(n) && t.IsEmptyBlock(t.LastChild(n))
}

// FunctionParameters returns the PARAM_LIST of a function.
func (t *Tree) FunctionParameters(fn NodeID) NodeID {
	t.expectKind("FunctionParameters", fn, Function)
	return t.SecondChild(fn)
}

// FunctionBody returns the body BLOCK of a function.
func (t *Tree) FunctionBody(fn NodeID) NodeID {
	t.expectKind("FunctionBody", fn, Function)
	return t.LastChild(fn)
}

// FunctionName returns the name a function is known by: its own name, the
// variable it initializes, or the qualified name it is assigned to.
func (t *Tree) FunctionName(fn NodeID) string {
	t.expectKind("FunctionName", fn, Function)
	if name := t.Text(t.FirstChild(fn)); name != "" {
		return name
	}
	p := t.Parent(fn)
	switch t.Kind(p) {
	case Name:
		return t.Text(p)
	case Assign:
		if q, ok := t.QualifiedName(t.FirstChild(p)); ok {
			return q
		}
	}
	return ""
}

// IsVarArgsFunction reports whether the body of fn reads "arguments".
func (t *Tree) IsVarArgsFunction(fn NodeID) bool {
	t.expectKind("IsVarArgsFunction", fn, Function)
	return t.IsNameReferenced(t.LastChild(fn), "arguments", true)
}

// ArgumentForFunction returns the index-th parameter NAME, or NoNode.
func (t *Tree) ArgumentForFunction(fn NodeID, index int) NodeID {
	return t.ChildAt(t.FunctionParameters(fn), index)
}

// ArgumentForCallOrNew returns the index-th argument, or NoNode.
func (t *Tree) ArgumentForCallOrNew(call NodeID, index int) NodeID {
	if k := t.Kind(call); k != Call && k != New {
		Violation("ArgumentForCallOrNew", k, "expected CALL or NEW")
	}
	return t.ChildAt(call, index+1)
}

// ----------------------------------------------------------------------------
// Try/catch
// ----------------------------------------------------------------------------

// CatchBlock returns the catch container BLOCK of a TRY.
func (t *Tree) CatchBlock(try NodeID) NodeID {
	t.expectKind("CatchBlock", try, Try)
	return t.SecondChild(try)
}

// HasCatchHandler reports whether a TRY has a CATCH.
func (t *Tree) HasCatchHandler(try NodeID) bool {
	return t.HasChildren(t.CatchBlock(try))
}

// HasFinally reports whether a TRY has a finally block.
func (t *Tree) HasFinally(try NodeID) bool {
	t.expectKind("HasFinally", try, Try)
	return t.ChildCount(try) == 3
}

// IsTryFinallyNode reports whether n is the finally block of parent.
func (t *Tree) IsTryFinallyNode(parent, n NodeID) bool {
	return t.Kind(parent) == Try && t.ChildCount(parent) == 3 && t.LastChild(parent) == n
}

// IsTryCatchNodeContainer reports whether n is the catch container of its TRY.
func (t *Tree) IsTryCatchNodeContainer(n NodeID) bool {
	p := t.Parent(n)
	return t.Kind(p) == Try && t.SecondChild(p) == n
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// IsGet reports whether n is GETPROP or GETELEM.
func (t *Tree) IsGet(n NodeID) bool {
	k := t.Kind(n)
	return k == GetProp || k == GetElem
}

// IsCallOrNew reports whether n is CALL or NEW.
func (t *Tree) IsCallOrNew(n NodeID) bool {
	k := t.Kind(n)
	return k == Call || k == New
}

// IsVarDeclaration reports whether n is a NAME declared by a VAR.
func (t *Tree) IsVarDeclaration(n NodeID) bool {
	return t.Kind(n) == Name && t.Kind(t.Parent(n)) == Var
}

// IsLValue reports whether n is written to by its parent.
func (t *Tree) IsLValue(n NodeID) bool {
	switch t.Kind(n) {
	case Name, GetProp, GetElem:
	default:
		return false
	}
	p := t.Parent(n)
	switch t.Kind(p) {
	case Var, Inc, Dec, ParamList, Catch:
		return true
	case Function:
		return t.FirstChild(p) == n
	}
	if t.Kind(p).IsAssignment() || t.IsForIn(p) {
		return t.FirstChild(p) == n
	}
	return false
}

// IsVarOrSimpleAssignLhs reports whether n is declared by a VAR or is the
// target of a plain assignment.
func (t *Tree) IsVarOrSimpleAssignLhs(n, parent NodeID) bool {
	switch t.Kind(parent) {
	case Assign:
		return t.FirstChild(parent) == n
	case Var:
		return true
	}
	return false
}

// IsObjectLitKey reports whether n is a key of an object literal.
func (t *Tree) IsObjectLitKey(n NodeID) bool {
	switch t.Kind(n) {
	case StringKey, GetterDef, SetterDef:
		return true
	}
	return false
}

// IsGetOrSetKey reports whether n is an accessor key.
func (t *Tree) IsGetOrSetKey(n NodeID) bool {
	k := t.Kind(n)
	return k == GetterDef || k == SetterDef
}

// IsSwitchCase reports whether n is CASE or DEFAULT_CASE.
func (t *Tree) IsSwitchCase(n NodeID) bool {
	k := t.Kind(n)
	return k == Case || k == DefaultCase
}

// IsReferenceName reports whether n is a non-empty NAME.
func (t *Tree) IsReferenceName(n NodeID) bool {
	return t.Kind(n) == Name && t.Text(n) != ""
}

// IsExprAssign reports whether n is an assignment statement.
func (t *Tree) IsExprAssign(n NodeID) bool {
	return t.Kind(n) == ExprResult && t.Kind(t.FirstChild(n)) == Assign
}

// IsExprCall reports whether n is a call statement.
func (t *Tree) IsExprCall(n NodeID) bool {
	return t.Kind(n) == ExprResult && t.Kind(t.FirstChild(n)) == Call
}

// IsObjectCallMethod reports whether call is "x.method(...)".
func (t *Tree) IsObjectCallMethod(call NodeID, method string) bool {
	if t.Kind(call) != Call {
		return false
	}
	target := t.FirstChild(call)
	return t.Kind(target) == GetProp && t.Text(t.LastChild(target)) == method
}

// IsFunctionObjectCall reports whether n is "f.call(...)".
func (t *Tree) IsFunctionObjectCall(n NodeID) bool {
	return t.IsObjectCallMethod(n, "call")
}

// IsFunctionObjectApply reports whether n is "f.apply(...)".
func (t *Tree) IsFunctionObjectApply(n NodeID) bool {
	return t.IsObjectCallMethod(n, "apply")
}

// QualifiedName returns the dotted name of a NAME, THIS or GETPROP chain.
func (t *Tree) QualifiedName(n NodeID) (string, bool) {
	switch t.Kind(n) {
	case Name:
		if s := t.Text(n); s != "" {
			return s, true
		}
	case This:
		return "this", true
	case GetProp:
		left, ok := t.QualifiedName(t.FirstChild(n))
		if ok {
			return left + "." + t.Text(t.LastChild(n)), true
		}
	}
	return "", false
}

// RootOfQualifiedName returns the NAME or THIS at the base of a GETPROP chain.
func (t *Tree) RootOfQualifiedName(n NodeID) NodeID {
	for t.Kind(n) == GetProp {
		n = t.FirstChild(n)
	}
	switch t.Kind(n) {
	case Name, This:
		return n
	}
	return NoNode
}

// IsPrototypeProperty reports whether n names something on a prototype,
// such as "Foo.prototype.bar".
func (t *Tree) IsPrototypeProperty(n NodeID) bool {
	q, ok := t.QualifiedName(n)
	if !ok {
		return false
	}
	return strings.Contains(q, ".prototype.")
}

// AssignedValue returns the value written to a NAME by its VAR or plain
// assignment parent, or NoNode.
func (t *Tree) AssignedValue(n NodeID) NodeID {
	p := t.Parent(n)
	switch t.Kind(p) {
	case Var:
		return t.FirstChild(n)
	case Assign:
		if t.FirstChild(p) == n {
			return t.Next(n)
		}
	}
	return NoNode
}

// ----------------------------------------------------------------------------
// Traversal
// ----------------------------------------------------------------------------

// VisitPreOrder calls fn on n and its descendants. Returning false from fn
// skips the children of that node.
func (t *Tree) VisitPreOrder(n NodeID, fn func(NodeID) bool) {
	if !fn(n) {
		return
	}
	for c := t.FirstChild(n); c != NoNode; {
		next := t.Next(c)
		t.VisitPreOrder(c, fn)
		c = next
	}
}

// VisitPostOrder calls fn on the descendants of n and then on n. The next
// sibling is read before visiting, so fn may detach the node it is given.
func (t *Tree) VisitPostOrder(n NodeID, fn func(NodeID)) {
	for c := t.FirstChild(n); c != NoNode; {
		next := t.Next(c)
		t.VisitPostOrder(c, fn)
		c = next
	}
	fn(n)
}

// ContainsKind reports whether n or a descendant has kind k.
func (t *Tree) ContainsKind(n NodeID, k Kind) bool {
	found := false
	t.VisitPreOrder(n, func(c NodeID) bool {
		if t.Kind(c) == k {
			found = true
		}
		return !found
	})
	return found
}

// NameReferenceCount counts NAME nodes spelled name under n.
func (t *Tree) NameReferenceCount(n NodeID, name string) int {
	count := 0
	t.VisitPreOrder(n, func(c NodeID) bool {
		if t.Kind(c) == Name && t.Text(c) == name {
			count++
		}
		return true
	})
	return count
}

// IsNameReferenced reports whether a NAME spelled name occurs under n. With
// skipFunctions, nested functions other than n itself are not searched.
func (t *Tree) IsNameReferenced(n NodeID, name string, skipFunctions bool) bool {
	found := false
	t.VisitPreOrder(n, func(c NodeID) bool {
		if found {
			return false
		}
		if t.Kind(c) == Name && t.Text(c) == name {
			found = true
			return false
		}
		return !skipFunctions || c == n || t.Kind(c) != Function
	})
	return found
}

// VarsDeclaredInBranch returns the NAME nodes declared by VARs under root,
// not counting nested functions.
func (t *Tree) VarsDeclaredInBranch(root NodeID) []NodeID {
	var vars []NodeID
	t.VisitPreOrder(root, func(c NodeID) bool {
		switch t.Kind(c) {
		case Function:
			return c == root
		case Var:
			for name := t.FirstChild(c); name != NoNode; name = t.Next(name) {
				vars = append(vars, name)
			}
		}
		return true
	})
	return vars
}
