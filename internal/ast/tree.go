package ast

import (
	"math"
	"strings"
)

// NodeID is a handle to a node in a Tree. The zero value is NoNode.
type NodeID uint32

// NoNode is the absent node. Accessors on NoNode return zero values.
const NoNode NodeID = 0

// IsValid reports whether id refers to a node.
func (id NodeID) IsValid() bool {
	return id != NoNode
}

type node struct {
	kind    Kind
	flags   NodeFlags
	effects CallEffects
	str     string
	num     float64
	loc     Loc
	count   int32

	parent NodeID
	first  NodeID
	last   NodeID
	next   NodeID
	prev   NodeID
}

// Tree owns every node of one program.
type Tree struct {
	nodes []node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	// Slot 0 backs NoNode.
	return &Tree{nodes: make([]node, 1, 256)}
}

// Len returns the number of nodes ever allocated, detached ones included.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// ----------------------------------------------------------------------------
// Builders
// ----------------------------------------------------------------------------

// NewNode creates a node with the given children. Children must be detached.
func (t *Tree) NewNode(kind Kind, children ...NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{kind: kind, loc: NoLoc})
	for _, c := range children {
		t.appendChild(id, c)
	}
	return id
}

// NewStringNode creates a node with a string payload.
func (t *Tree) NewStringNode(kind Kind, s string, children ...NodeID) NodeID {
	id := t.NewNode(kind, children...)
	t.nodes[id].str = s
	return id
}

// NewName creates a NAME node.
func (t *Tree) NewName(name string) NodeID {
	return t.NewStringNode(Name, name)
}

// NewNumber creates a NUMBER node. Use NewNumberValue for values that have
// no literal spelling.
func (t *Tree) NewNumber(v float64) NodeID {
	id := t.NewNode(Number)
	t.nodes[id].num = v
	return id
}

// NewString creates a STRING node.
func (t *Tree) NewString(s string) NodeID {
	return t.NewStringNode(String, s)
}

// NewBool creates a TRUE or FALSE node.
func (t *Tree) NewBool(b bool) NodeID {
	if b {
		return t.NewNode(True)
	}
	return t.NewNode(False)
}

// NewBlock creates a BLOCK holding the given statements.
func (t *Tree) NewBlock(stmts ...NodeID) NodeID {
	return t.NewNode(Block, stmts...)
}

// NewScript creates a SCRIPT holding the given statements.
func (t *Tree) NewScript(stmts ...NodeID) NodeID {
	return t.NewNode(Script, stmts...)
}

// NewExprResult wraps an expression as a statement.
func (t *Tree) NewExprResult(expr NodeID) NodeID {
	return t.NewNode(ExprResult, expr)
}

// NewEmpty creates an EMPTY node.
func (t *Tree) NewEmpty() NodeID {
	return t.NewNode(Empty)
}

// NewUndefined creates "void 0" located at srcref.
func (t *Tree) NewUndefined(srcref NodeID) NodeID {
	zero := t.CopyLoc(t.NewNumber(0), srcref)
	return t.CopyLoc(t.NewNode(Void, zero), srcref)
}

// NewVar creates "var name = value". value may be NoNode.
func (t *Tree) NewVar(name string, value NodeID) NodeID {
	n := t.NewName(name)
	if value != NoNode {
		t.appendChild(n, value)
	}
	return t.NewNode(Var, n)
}

// NewCall creates a CALL, marking it free when the target is not a
// property access.
func (t *Tree) NewCall(target NodeID, args ...NodeID) NodeID {
	call := t.NewNode(Call, target)
	for _, a := range args {
		t.appendChild(call, a)
	}
	if !t.IsGet(target) {
		t.nodes[call].flags |= FlagFreeCall
	}
	return call
}

// NewNumberValue creates a node evaluating to v. NaN and the infinities
// have no numeric literal and become the global names instead.
func (t *Tree) NewNumberValue(v float64, srcref NodeID) NodeID {
	var n NodeID
	switch {
	case math.IsNaN(v):
		n = t.NewName("NaN")
	case math.IsInf(v, 1):
		n = t.NewName("Infinity")
	case math.IsInf(v, -1):
		n = t.NewNode(Neg, t.CopyLoc(t.NewName("Infinity"), srcref))
	default:
		n = t.NewNumber(v)
	}
	return t.CopyLoc(n, srcref)
}

// ConstantConvention decides which names are constants.
type ConstantConvention interface {
	IsConstant(name string) bool
	IsConstantKey(key string) bool
}

// NewQualifiedName builds a NAME or GETPROP chain for a dotted name such as
// "a.b.c", flagging constant parts according to conv.
func (t *Tree) NewQualifiedName(conv ConstantConvention, qname string, srcref NodeID) NodeID {
	parts := strings.Split(qname, ".")
	n := t.CopyLoc(t.NewName(parts[0]), srcref)
	if conv != nil && conv.IsConstant(parts[0]) {
		t.nodes[n].flags |= FlagConstantName
	}
	for _, part := range parts[1:] {
		prop := t.CopyLoc(t.NewString(part), srcref)
		if conv != nil && conv.IsConstantKey(part) {
			t.nodes[prop].flags |= FlagConstantName
		}
		n = t.CopyLoc(t.NewNode(GetProp, n, prop), srcref)
	}
	return n
}

// NewRegExp creates a REGEXP with a pattern and, when non-empty, flags.
func (t *Tree) NewRegExp(pattern, flags string) NodeID {
	re := t.NewNode(RegExp, t.NewString(pattern))
	if flags != "" {
		t.appendChild(re, t.NewString(flags))
	}
	return re
}

// NewFunction creates a FUNCTION. name may be empty.
func (t *Tree) NewFunction(name string, params []NodeID, body NodeID) NodeID {
	return t.NewNode(Function, t.NewName(name), t.NewNode(ParamList, params...), body)
}

// CopyLoc gives dst the location of src and returns dst.
func (t *Tree) CopyLoc(dst, src NodeID) NodeID {
	if src != NoNode {
		t.nodes[dst].loc = t.nodes[src].loc
	}
	return dst
}

// SetLoc sets the source location of n.
func (t *Tree) SetLoc(n NodeID, loc Loc) {
	t.nodes[n].loc = loc
}

// SetFlag sets or clears a flag.
func (t *Tree) SetFlag(n NodeID, flag NodeFlags, on bool) {
	if on {
		t.nodes[n].flags |= flag
	} else {
		t.nodes[n].flags &^= flag
	}
}

// SetCallEffects records the side-effect annotation of a CALL or NEW.
func (t *Tree) SetCallEffects(n NodeID, e CallEffects) {
	if k := t.nodes[n].kind; k != Call && k != New {
		Violation("SetCallEffects", k, "expected CALL or NEW")
	}
	t.nodes[n].effects = e
}

// ----------------------------------------------------------------------------
// Accessors
// ----------------------------------------------------------------------------

func (t *Tree) Kind(n NodeID) Kind         { return t.nodes[n].kind }
func (t *Tree) Parent(n NodeID) NodeID     { return t.nodes[n].parent }
func (t *Tree) FirstChild(n NodeID) NodeID { return t.nodes[n].first }
func (t *Tree) LastChild(n NodeID) NodeID  { return t.nodes[n].last }
func (t *Tree) Next(n NodeID) NodeID       { return t.nodes[n].next }
func (t *Tree) Prev(n NodeID) NodeID       { return t.nodes[n].prev }
func (t *Tree) ChildCount(n NodeID) int    { return int(t.nodes[n].count) }
func (t *Tree) HasChildren(n NodeID) bool  { return t.nodes[n].first != NoNode }
func (t *Tree) Loc(n NodeID) Loc           { return t.nodes[n].loc }
func (t *Tree) Flags(n NodeID) NodeFlags   { return t.nodes[n].flags }

// Text returns the string payload: a name, string value or property name.
func (t *Tree) Text(n NodeID) string { return t.nodes[n].str }

// Number returns the value of a NUMBER node.
func (t *Tree) Number(n NodeID) float64 { return t.nodes[n].num }

// HasFlag reports whether flag is set on n.
func (t *Tree) HasFlag(n NodeID, flag NodeFlags) bool {
	return t.nodes[n].flags.Has(flag)
}

// CallEffects returns the side-effect annotation of a CALL or NEW.
func (t *Tree) CallEffects(n NodeID) CallEffects {
	return t.nodes[n].effects
}

// SecondChild returns the second child or NoNode.
func (t *Tree) SecondChild(n NodeID) NodeID {
	return t.nodes[t.nodes[n].first].next
}

// ChildAt returns the i-th child or NoNode if out of range.
func (t *Tree) ChildAt(n NodeID, i int) NodeID {
	c := t.nodes[n].first
	for ; c != NoNode && i > 0; i-- {
		c = t.nodes[c].next
	}
	return c
}

// IndexOfChild returns the position of child under n, or -1.
func (t *Tree) IndexOfChild(n, child NodeID) int {
	i := 0
	for c := t.nodes[n].first; c != NoNode; c = t.nodes[c].next {
		if c == child {
			return i
		}
		i++
	}
	return -1
}

// Children returns a snapshot of the children of n.
func (t *Tree) Children(n NodeID) []NodeID {
	out := make([]NodeID, 0, t.nodes[n].count)
	for c := t.nodes[n].first; c != NoNode; c = t.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// Ancestors returns the parent chain of n, nearest first.
func (t *Tree) Ancestors(n NodeID) []NodeID {
	var out []NodeID
	for p := t.nodes[n].parent; p != NoNode; p = t.nodes[p].parent {
		out = append(out, p)
	}
	return out
}

// ----------------------------------------------------------------------------
// Low-level linking
// ----------------------------------------------------------------------------

func (t *Tree) checkDetached(op string, c NodeID) {
	if c == NoNode {
		Violation(op, KindInvalid, "child is NoNode")
	}
	if t.nodes[c].parent != NoNode {
		Violation(op, t.nodes[c].kind, "node already has a parent")
	}
}

func (t *Tree) appendChild(parent, c NodeID) {
	t.checkDetached("appendChild", c)
	p := &t.nodes[parent]
	cn := &t.nodes[c]
	cn.parent = parent
	cn.prev = p.last
	if p.last != NoNode {
		t.nodes[p.last].next = c
	} else {
		p.first = c
	}
	p.last = c
	p.count++
}

func (t *Tree) prependChild(parent, c NodeID) {
	t.checkDetached("prependChild", c)
	p := &t.nodes[parent]
	cn := &t.nodes[c]
	cn.parent = parent
	cn.next = p.first
	if p.first != NoNode {
		t.nodes[p.first].prev = c
	} else {
		p.last = c
	}
	p.first = c
	p.count++
}

// insertAfter links c after the sibling after.
func (t *Tree) insertAfter(after, c NodeID) {
	t.checkDetached("insertAfter", c)
	parent := t.nodes[after].parent
	next := t.nodes[after].next
	cn := &t.nodes[c]
	cn.parent = parent
	cn.prev = after
	cn.next = next
	t.nodes[after].next = c
	if next != NoNode {
		t.nodes[next].prev = c
	} else {
		t.nodes[parent].last = c
	}
	t.nodes[parent].count++
}

// detach unlinks n from its parent.
func (t *Tree) detach(n NodeID) {
	nn := &t.nodes[n]
	parent := nn.parent
	if parent == NoNode {
		return
	}
	if nn.prev != NoNode {
		t.nodes[nn.prev].next = nn.next
	} else {
		t.nodes[parent].first = nn.next
	}
	if nn.next != NoNode {
		t.nodes[nn.next].prev = nn.prev
	} else {
		t.nodes[parent].last = nn.prev
	}
	t.nodes[parent].count--
	nn.parent, nn.prev, nn.next = NoNode, NoNode, NoNode
}

// detachChildren unlinks all children of n and returns them in order.
func (t *Tree) detachChildren(n NodeID) []NodeID {
	kids := t.Children(n)
	for _, c := range kids {
		cn := &t.nodes[c]
		cn.parent, cn.prev, cn.next = NoNode, NoNode, NoNode
	}
	nn := &t.nodes[n]
	nn.first, nn.last, nn.count = NoNode, NoNode, 0
	return kids
}

// replace puts replacement where old was. replacement must be detached.
func (t *Tree) replace(old, replacement NodeID) {
	t.checkDetached("replace", replacement)
	o := t.nodes[old]
	if o.parent == NoNode {
		Violation("replace", o.kind, "node has no parent")
	}
	r := &t.nodes[replacement]
	r.parent, r.prev, r.next = o.parent, o.prev, o.next
	if o.prev != NoNode {
		t.nodes[o.prev].next = replacement
	} else {
		t.nodes[o.parent].first = replacement
	}
	if o.next != NoNode {
		t.nodes[o.next].prev = replacement
	} else {
		t.nodes[o.parent].last = replacement
	}
	on := &t.nodes[old]
	on.parent, on.prev, on.next = NoNode, NoNode, NoNode
}
