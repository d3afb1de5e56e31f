package frontend

import (
	"fmt"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/diagnostic"

	js "github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/file"
	"github.com/robertkrimen/otto/token"
)

// converter rewrites an otto syntax tree into an ast.Tree.
type converter struct {
	prog *Program
	tree *ast.Tree
	base int
	conv ast.ConstantConvention
}

func (c *converter) offset(idx file.Idx) int {
	return int(idx) - c.base
}

func (c *converter) at(n ast.NodeID, idx file.Idx) ast.NodeID {
	c.tree.SetLoc(n, ast.Loc{Start: int32(c.offset(idx))})
	return n
}

func (c *converter) unsupported(idx file.Idx, what string) ast.NodeID {
	c.prog.Diagnostics.AddError(c.offset(idx), diagnostic.CodeUnsupported, what)
	return c.at(c.tree.NewEmpty(), idx)
}

func (c *converter) script(p *js.Program) ast.NodeID {
	root := c.tree.NewScript(c.statements(p.Body)...)
	c.tree.SetLoc(root, ast.Loc{Start: 0})
	return root
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (c *converter) statements(list []js.Statement) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(list))
	for _, s := range list {
		out = append(out, c.statement(s))
	}
	return out
}

// block converts s into a BLOCK, wrapping a single statement.
func (c *converter) block(s js.Statement) ast.NodeID {
	if b, ok := s.(*js.BlockStatement); ok {
		return c.at(c.tree.NewBlock(c.statements(b.List)...), b.LeftBrace)
	}
	return c.at(c.tree.NewBlock(c.statement(s)), s.Idx0())
}

func (c *converter) label(id *js.Identifier) ast.NodeID {
	return c.at(c.tree.NewStringNode(ast.LabelName, id.Name), id.Idx)
}

func (c *converter) statement(s js.Statement) ast.NodeID {
	t := c.tree
	switch s := s.(type) {
	case *js.BlockStatement:
		return c.block(s)

	case *js.EmptyStatement:
		return c.at(t.NewEmpty(), s.Semicolon)

	case *js.ExpressionStatement:
		c.annotateAssignment(s)
		return c.at(t.NewExprResult(c.expression(s.Expression)), s.Idx0())

	case *js.VariableStatement:
		c.annotateVariables(s)
		return c.at(c.variables(s.List), s.Var)

	case *js.FunctionStatement:
		c.annotateFunction(s.Function)
		return c.function(s.Function)

	case *js.IfStatement:
		children := []ast.NodeID{c.expression(s.Test), c.block(s.Consequent)}
		if s.Alternate != nil {
			children = append(children, c.block(s.Alternate))
		}
		return c.at(t.NewNode(ast.If, children...), s.If)

	case *js.WhileStatement:
		return c.at(t.NewNode(ast.While, c.expression(s.Test), c.block(s.Body)), s.While)

	case *js.DoWhileStatement:
		return c.at(t.NewNode(ast.Do, c.block(s.Body), c.expression(s.Test)), s.Do)

	case *js.ForStatement:
		return c.at(t.NewNode(ast.For,
			c.forInit(s.Initializer, s.For),
			c.optional(s.Test, s.For),
			c.optional(s.Update, s.For),
			c.block(s.Body)), s.For)

	case *js.ForInStatement:
		var target ast.NodeID
		if v, ok := s.Into.(*js.VariableExpression); ok {
			target = c.at(c.variables([]js.Expression{v}), v.Idx)
		} else {
			target = c.expression(s.Into)
		}
		return c.at(t.NewNode(ast.For, target, c.expression(s.Source), c.block(s.Body)), s.For)

	case *js.SwitchStatement:
		children := []ast.NodeID{c.expression(s.Discriminant)}
		for i, cs := range s.Body {
			body := c.at(t.NewBlock(c.statements(cs.Consequent)...), cs.Case)
			var arm ast.NodeID
			if i == s.Default || cs.Test == nil {
				arm = t.NewNode(ast.DefaultCase, body)
			} else {
				arm = t.NewNode(ast.Case, c.expression(cs.Test), body)
			}
			children = append(children, c.at(arm, cs.Case))
		}
		return c.at(t.NewNode(ast.Switch, children...), s.Switch)

	case *js.TryStatement:
		var catches ast.NodeID
		if s.Catch != nil {
			param := c.at(t.NewName(s.Catch.Parameter.Name), s.Catch.Parameter.Idx)
			catch := c.at(t.NewNode(ast.Catch, param, c.block(s.Catch.Body)), s.Catch.Catch)
			catches = t.NewBlock(catch)
		} else {
			catches = t.NewBlock()
		}
		children := []ast.NodeID{c.block(s.Body), c.at(catches, s.Try)}
		if s.Finally != nil {
			children = append(children, c.block(s.Finally))
		}
		return c.at(t.NewNode(ast.Try, children...), s.Try)

	case *js.ThrowStatement:
		return c.at(t.NewNode(ast.Throw, c.expression(s.Argument)), s.Throw)

	case *js.ReturnStatement:
		if s.Argument == nil {
			return c.at(t.NewNode(ast.Return), s.Return)
		}
		return c.at(t.NewNode(ast.Return, c.expression(s.Argument)), s.Return)

	case *js.BranchStatement:
		kind := ast.Break
		if s.Token == token.CONTINUE {
			kind = ast.Continue
		}
		if s.Label == nil {
			return c.at(t.NewNode(kind), s.Idx)
		}
		return c.at(t.NewNode(kind, c.label(s.Label)), s.Idx)

	case *js.LabelledStatement:
		return c.at(t.NewNode(ast.Label, c.label(s.Label), c.statement(s.Statement)), s.Label.Idx)

	case *js.WithStatement:
		return c.at(t.NewNode(ast.With, c.expression(s.Object), c.block(s.Body)), s.With)

	case *js.DebuggerStatement:
		return c.at(t.NewNode(ast.Debugger), s.Debugger)
	}
	return c.unsupported(s.Idx0(), fmt.Sprintf("unsupported statement %T", s))
}

// variables converts declarators into one VAR.
func (c *converter) variables(list []js.Expression) ast.NodeID {
	names := make([]ast.NodeID, 0, len(list))
	for _, e := range list {
		v, ok := e.(*js.VariableExpression)
		if !ok {
			names = append(names, c.unsupported(e.Idx0(), fmt.Sprintf("unexpected declarator %T", e)))
			continue
		}
		var init []ast.NodeID
		if v.Initializer != nil {
			init = append(init, c.expression(v.Initializer))
		}
		names = append(names, c.name(v.Name, v.Idx, init...))
	}
	return c.tree.NewNode(ast.Var, names...)
}

// forInit converts the initializer slot of a three-clause for loop. otto
// always hands over a sequence: empty, a list of declarators, or a single
// expression.
func (c *converter) forInit(e js.Expression, idx file.Idx) ast.NodeID {
	seq, ok := e.(*js.SequenceExpression)
	if !ok {
		return c.optional(e, idx)
	}
	switch {
	case len(seq.Sequence) == 0:
		return c.at(c.tree.NewEmpty(), idx)
	case isDeclaratorList(seq.Sequence):
		return c.at(c.variables(seq.Sequence), seq.Sequence[0].Idx0())
	case len(seq.Sequence) == 1:
		return c.expression(seq.Sequence[0])
	}
	return c.expression(seq)
}

func isDeclaratorList(list []js.Expression) bool {
	for _, e := range list {
		if _, ok := e.(*js.VariableExpression); !ok {
			return false
		}
	}
	return len(list) > 0
}

func (c *converter) optional(e js.Expression, idx file.Idx) ast.NodeID {
	if e == nil {
		return c.at(c.tree.NewEmpty(), idx)
	}
	return c.expression(e)
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func (c *converter) function(f *js.FunctionLiteral) ast.NodeID {
	t := c.tree
	name := ""
	nameIdx := f.Function
	if f.Name != nil {
		name = f.Name.Name
		nameIdx = f.Name.Idx
	}

	var params []ast.NodeID
	paramsIdx := f.Function
	if f.ParameterList != nil {
		paramsIdx = f.ParameterList.Opening
		for _, p := range f.ParameterList.List {
			params = append(params, c.at(t.NewName(p.Name), p.Idx))
		}
	}

	fn := t.NewNode(ast.Function,
		c.at(t.NewName(name), nameIdx),
		c.at(t.NewNode(ast.ParamList, params...), paramsIdx),
		c.block(f.Body))
	return c.at(fn, f.Function)
}
