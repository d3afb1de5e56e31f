package frontend

import (
	"fmt"
	"math"

	"github.com/HugoDaniel/minijs/internal/ast"

	js "github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/file"
	"github.com/robertkrimen/otto/token"
)

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

var binaryKinds = map[token.Token]ast.Kind{
	token.PLUS:                 ast.Add,
	token.MINUS:                ast.Sub,
	token.MULTIPLY:             ast.Mul,
	token.SLASH:                ast.Div,
	token.REMAINDER:            ast.Mod,
	token.AND:                  ast.BitAnd,
	token.OR:                   ast.BitOr,
	token.EXCLUSIVE_OR:         ast.BitXor,
	token.SHIFT_LEFT:           ast.Lsh,
	token.SHIFT_RIGHT:          ast.Rsh,
	token.UNSIGNED_SHIFT_RIGHT: ast.URsh,
	token.LOGICAL_AND:          ast.And,
	token.LOGICAL_OR:           ast.Or,
	token.EQUAL:                ast.Eq,
	token.NOT_EQUAL:            ast.Ne,
	token.STRICT_EQUAL:         ast.Sheq,
	token.STRICT_NOT_EQUAL:     ast.Shne,
	token.LESS:                 ast.Lt,
	token.LESS_OR_EQUAL:        ast.Le,
	token.GREATER:              ast.Gt,
	token.GREATER_OR_EQUAL:     ast.Ge,
	token.IN:                   ast.In,
	token.INSTANCEOF:           ast.Instanceof,
}

// otto reports compound assignments by their binary operator.
var assignKinds = map[token.Token]ast.Kind{
	token.ASSIGN:               ast.Assign,
	token.PLUS:                 ast.AssignAdd,
	token.MINUS:                ast.AssignSub,
	token.MULTIPLY:             ast.AssignMul,
	token.SLASH:                ast.AssignDiv,
	token.REMAINDER:            ast.AssignMod,
	token.AND:                  ast.AssignBitAnd,
	token.OR:                   ast.AssignBitOr,
	token.EXCLUSIVE_OR:         ast.AssignBitXor,
	token.SHIFT_LEFT:           ast.AssignLsh,
	token.SHIFT_RIGHT:          ast.AssignRsh,
	token.UNSIGNED_SHIFT_RIGHT: ast.AssignURsh,
}

var unaryKinds = map[token.Token]ast.Kind{
	token.NOT:         ast.Not,
	token.MINUS:       ast.Neg,
	token.PLUS:        ast.Pos,
	token.BITWISE_NOT: ast.BitNot,
	token.TYPEOF:      ast.Typeof,
	token.VOID:        ast.Void,
	token.DELETE:      ast.DelProp,
	token.INCREMENT:   ast.Inc,
	token.DECREMENT:   ast.Dec,
}

func (c *converter) name(name string, idx file.Idx, children ...ast.NodeID) ast.NodeID {
	n := c.at(c.tree.NewStringNode(ast.Name, name, children...), idx)
	c.markConstant(n)
	return n
}

func (c *converter) markConstant(n ast.NodeID) {
	if c.conv != nil && c.conv.IsConstant(c.tree.Text(n)) {
		c.tree.SetFlag(n, ast.FlagConstantName, true)
	}
}

func (c *converter) expressions(list []js.Expression) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(list))
	for _, e := range list {
		out = append(out, c.expression(e))
	}
	return out
}

func (c *converter) expression(e js.Expression) ast.NodeID {
	t := c.tree
	switch e := e.(type) {
	case *js.Identifier:
		return c.name(e.Name, e.Idx)

	case *js.NumberLiteral:
		return c.at(t.NewNumber(numberValue(e.Value)), e.Idx)

	case *js.StringLiteral:
		return c.at(t.NewString(e.Value), e.Idx)

	case *js.BooleanLiteral:
		return c.at(t.NewBool(e.Value), e.Idx)

	case *js.NullLiteral:
		return c.at(t.NewNode(ast.Null), e.Idx)

	case *js.ThisExpression:
		return c.at(t.NewNode(ast.This), e.Idx)

	case *js.RegExpLiteral:
		re := c.at(t.NewRegExp(e.Pattern, e.Flags), e.Idx)
		for ch := t.FirstChild(re); ch != ast.NoNode; ch = t.Next(ch) {
			c.at(ch, e.Idx)
		}
		c.checkRegExp(e)
		return re

	case *js.ArrayLiteral:
		elems := make([]ast.NodeID, 0, len(e.Value))
		for _, v := range e.Value {
			if v == nil {
				elems = append(elems, c.at(t.NewEmpty(), e.LeftBracket))
				continue
			}
			elems = append(elems, c.expression(v))
		}
		return c.at(t.NewNode(ast.ArrayLit, elems...), e.LeftBracket)

	case *js.ObjectLiteral:
		props := make([]ast.NodeID, 0, len(e.Value))
		for _, p := range e.Value {
			kind := ast.StringKey
			switch p.Kind {
			case "get":
				kind = ast.GetterDef
			case "set":
				kind = ast.SetterDef
			}
			value := c.expression(p.Value)
			key := t.NewStringNode(kind, p.Key, value)
			props = append(props, t.CopyLoc(key, value))
		}
		return c.at(t.NewNode(ast.ObjectLit, props...), e.LeftBrace)

	case *js.FunctionLiteral:
		return c.function(e)

	case *js.DotExpression:
		prop := c.at(t.NewString(e.Identifier.Name), e.Identifier.Idx)
		return c.at(t.NewNode(ast.GetProp, c.expression(e.Left), prop), e.Idx0())

	case *js.BracketExpression:
		return c.at(t.NewNode(ast.GetElem, c.expression(e.Left), c.expression(e.Member)), e.Idx0())

	case *js.CallExpression:
		call := t.NewCall(c.expression(e.Callee), c.expressions(e.ArgumentList)...)
		return c.at(call, e.Idx0())

	case *js.NewExpression:
		children := append([]ast.NodeID{c.expression(e.Callee)}, c.expressions(e.ArgumentList)...)
		return c.at(t.NewNode(ast.New, children...), e.New)

	case *js.AssignExpression:
		kind, ok := assignKinds[e.Operator]
		if !ok {
			return c.unsupported(e.Idx0(), fmt.Sprintf("unsupported assignment %s", e.Operator))
		}
		return c.at(t.NewNode(kind, c.expression(e.Left), c.expression(e.Right)), e.Idx0())

	case *js.BinaryExpression:
		kind, ok := binaryKinds[e.Operator]
		if !ok {
			return c.unsupported(e.Idx0(), fmt.Sprintf("unsupported operator %s", e.Operator))
		}
		return c.at(t.NewNode(kind, c.expression(e.Left), c.expression(e.Right)), e.Idx0())

	case *js.UnaryExpression:
		kind, ok := unaryKinds[e.Operator]
		if !ok {
			return c.unsupported(e.Idx0(), fmt.Sprintf("unsupported operator %s", e.Operator))
		}
		// Negative numeric literals are a single NUMBER.
		if lit, isNum := e.Operand.(*js.NumberLiteral); isNum && kind == ast.Neg {
			return c.at(t.NewNumber(-numberValue(lit.Value)), e.Idx0())
		}
		n := c.at(t.NewNode(kind, c.expression(e.Operand)), e.Idx0())
		if e.Postfix {
			t.SetFlag(n, ast.FlagPostfix, true)
		}
		return n

	case *js.ConditionalExpression:
		return c.at(t.NewNode(ast.Hook,
			c.expression(e.Test),
			c.expression(e.Consequent),
			c.expression(e.Alternate)), e.Idx0())

	case *js.SequenceExpression:
		if len(e.Sequence) == 0 {
			return c.unsupported(e.Idx0(), "empty sequence")
		}
		// a, b, c is (a, b), c.
		n := c.expression(e.Sequence[0])
		for _, next := range e.Sequence[1:] {
			n = t.CopyLoc(t.NewNode(ast.Comma, n, c.expression(next)), n)
		}
		return n

	case *js.EmptyExpression:
		// An array hole.
		return c.at(t.NewEmpty(), e.Begin)

	case *js.VariableExpression:
		return c.unsupported(e.Idx, "declaration in expression position")
	}
	return c.unsupported(e.Idx0(), fmt.Sprintf("unsupported expression %T", e))
}

// numberValue widens the value otto computed for a numeric literal.
func numberValue(v any) float64 {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	}
	return math.NaN()
}
