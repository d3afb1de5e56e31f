package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the subtree at n, one node per line, children indented by
// two spaces. It is stable and used to compare trees.
func (t *Tree) Dump(n NodeID) string {
	var sb strings.Builder
	t.dump(&sb, n, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, n NodeID, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(t.Label(n))
	sb.WriteByte('\n')
	for c := t.FirstChild(n); c != NoNode; c = t.Next(c) {
		t.dump(sb, c, depth+1)
	}
}

// Label describes a single node: kind, payload and flags.
func (t *Tree) Label(n NodeID) string {
	k := t.Kind(n)
	s := k.String()
	switch k {
	case Name, StringKey, GetterDef, SetterDef, LabelName:
		if text := t.Text(n); text != "" {
			s += " " + text
		}
	case String:
		s += " " + strconv.Quote(t.Text(n))
	case Number:
		s += " " + strconv.FormatFloat(t.Number(n), 'g', -1, 64)
	}

	var flags []string
	f := t.Flags(n)
	if f.Has(FlagConstantName) {
		flags = append(flags, "constant")
	}
	if f.Has(FlagFreeCall) {
		flags = append(flags, "free_call")
	}
	if f.Has(FlagPostfix) {
		flags = append(flags, "postfix")
	}
	e := t.CallEffects(n)
	if e.NoSideEffects {
		flags = append(flags, "no_side_effects")
	}
	if e.OnlyModifiesReceiver {
		flags = append(flags, "modifies_this")
	}
	if e.LocalResult {
		flags = append(flags, "local_result")
	}
	if len(flags) > 0 {
		s += " [" + strings.Join(flags, " ") + "]"
	}
	return s
}

// ----------------------------------------------------------------------------
// Validation
// ----------------------------------------------------------------------------

type arity struct{ min, max int }

const many = -1

func arityOf(k Kind) arity {
	switch k {
	case Script, Block, ArrayLit, ObjectLit, ParamList:
		return arity{0, many}
	case Name, Return, Break, Continue:
		return arity{0, 1}
	case Number, String, True, False, Null, This, LabelName, Empty, Debugger:
		return arity{0, 0}
	case ExprResult, StringKey, GetterDef, SetterDef, Throw, DefaultCase:
		return arity{1, 1}
	case Var, Call, New, Switch:
		return arity{1, many}
	case RegExp:
		return arity{1, 2}
	case Function, Hook:
		return arity{3, 3}
	case If:
		return arity{2, 3}
	case For:
		return arity{3, 4}
	case Try:
		return arity{2, 3}
	case While, Do, Case, Catch, Label, With, GetProp, GetElem:
		return arity{2, 2}
	case Not, Neg, Pos, BitNot, Typeof, Void, DelProp, Inc, Dec:
		return arity{1, 1}
	}
	if k.IsAssignment() || k.Family() == FamilyExpression {
		return arity{2, 2}
	}
	return arity{0, many}
}

// Validate checks links and arities under root and reports the first
// problem found.
func (t *Tree) Validate(root NodeID) error {
	var err error
	t.VisitPreOrder(root, func(n NodeID) bool {
		if err != nil {
			return false
		}
		err = t.validateNode(n)
		return err == nil
	})
	return err
}

func (t *Tree) validateNode(n NodeID) error {
	k := t.Kind(n)
	if k == KindInvalid || k >= kindCount {
		return fmt.Errorf("node %d: invalid kind", n)
	}

	count := 0
	prev := NoNode
	for c := t.FirstChild(n); c != NoNode; c = t.Next(c) {
		if t.Parent(c) != n {
			return fmt.Errorf("%s: child %s has wrong parent", k, t.Kind(c))
		}
		if t.Prev(c) != prev {
			return fmt.Errorf("%s: broken sibling links at child %d", k, count)
		}
		prev = c
		count++
	}
	if prev != t.LastChild(n) || count != t.ChildCount(n) {
		return fmt.Errorf("%s: child count or last child out of sync", k)
	}

	a := arityOf(k)
	if count < a.min || (a.max != many && count > a.max) {
		return fmt.Errorf("%s: has %d children", k, count)
	}

	switch k {
	case Function:
		if t.Kind(t.FirstChild(n)) != Name {
			return fmt.Errorf("FUNCTION: first child must be NAME")
		}
		if t.Kind(t.SecondChild(n)) != ParamList || t.Kind(t.LastChild(n)) != Block {
			return fmt.Errorf("FUNCTION: expected PARAM_LIST and BLOCK")
		}
	case Try:
		for c := t.FirstChild(n); c != NoNode; c = t.Next(c) {
			if t.Kind(c) != Block {
				return fmt.Errorf("TRY: child %s is not a BLOCK", t.Kind(c))
			}
		}
		catches := t.CatchBlock(n)
		if t.ChildCount(catches) > 1 {
			return fmt.Errorf("TRY: catch container holds %d children", t.ChildCount(catches))
		}
		if c := t.FirstChild(catches); c != NoNode && t.Kind(c) != Catch {
			return fmt.Errorf("TRY: catch container holds %s", t.Kind(c))
		}
	case ExprResult:
		if t.Kind(t.FirstChild(n)).Family() != FamilyExpression {
			return fmt.Errorf("EXPR_RESULT: child %s is not an expression", t.Kind(t.FirstChild(n)))
		}
	case Var:
		for c := t.FirstChild(n); c != NoNode; c = t.Next(c) {
			if t.Kind(c) != Name {
				return fmt.Errorf("VAR: child %s is not a NAME", t.Kind(c))
			}
		}
	}
	return nil
}
