package frontend

import (
	"strings"
	"unicode"

	"github.com/HugoDaniel/minijs/internal/ast"

	"github.com/dlclark/regexp2"
	js "github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/token"
)

// ----------------------------------------------------------------------------
// JSDoc Side-Effect Annotations
// ----------------------------------------------------------------------------

var modifiesThis = regexp2.MustCompile(`@modifies\s*\{\s*this\s*\}`, regexp2.None)

// jsdocBefore returns the /** */ comment that ends right before offset,
// separated from it only by white space.
func jsdocBefore(src string, offset int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}
	head := strings.TrimRightFunc(src[:offset], unicode.IsSpace)
	if !strings.HasSuffix(head, "*/") {
		return ""
	}
	start := strings.LastIndex(head, "/**")
	if start < 0 {
		return ""
	}
	return head[start:]
}

func parseEffects(doc string) (ast.CallEffects, bool) {
	var e ast.CallEffects
	if strings.Contains(doc, "@nosideeffects") {
		e.NoSideEffects = true
	}
	if ok, _ := modifiesThis.MatchString(doc); ok {
		e.OnlyModifiesReceiver = true
	}
	return e, e != ast.CallEffects{}
}

func (c *converter) record(name string, offset int) {
	if name == "" {
		return
	}
	e, ok := parseEffects(jsdocBefore(c.prog.Source, offset))
	if !ok {
		return
	}
	c.prog.Annotations[name] = e
	if i := strings.Index(name, ".prototype."); i >= 0 {
		c.prog.Annotations[name[i+len(".prototype"):]] = e
	}
}

func (c *converter) annotateFunction(f *js.FunctionLiteral) {
	if f.Name != nil {
		c.record(f.Name.Name, c.offset(f.Function))
	}
}

func (c *converter) annotateVariables(s *js.VariableStatement) {
	for _, e := range s.List {
		if v, ok := e.(*js.VariableExpression); ok {
			if _, isFn := v.Initializer.(*js.FunctionLiteral); isFn {
				c.record(v.Name, c.offset(s.Var))
			}
		}
	}
}

func (c *converter) annotateAssignment(s *js.ExpressionStatement) {
	assign, ok := s.Expression.(*js.AssignExpression)
	if !ok || assign.Operator != token.ASSIGN {
		return
	}
	if _, isFn := assign.Right.(*js.FunctionLiteral); !isFn {
		return
	}
	if name, ok := dottedName(assign.Left); ok {
		c.record(name, c.offset(s.Idx0()))
	}
}

func dottedName(e js.Expression) (string, bool) {
	switch e := e.(type) {
	case *js.Identifier:
		return e.Name, true
	case *js.DotExpression:
		left, ok := dottedName(e.Left)
		if !ok {
			return "", false
		}
		return left + "." + e.Identifier.Name, true
	}
	return "", false
}

// Annotate sets the CallEffects of every call and construction whose
// callee was annotated in JSDoc or is listed in pureNames. Calls of a
// method annotated on a prototype match by method name. It returns the
// number of call sites annotated.
func Annotate(p *Program, pureNames []string) int {
	effects := make(map[string]ast.CallEffects, len(p.Annotations)+len(pureNames))
	for name, e := range p.Annotations {
		effects[name] = e
	}
	for _, name := range pureNames {
		e := effects[name]
		e.NoSideEffects = true
		effects[name] = e
	}
	if len(effects) == 0 {
		return 0
	}

	t := p.Tree
	count := 0
	t.VisitPreOrder(p.Root, func(n ast.NodeID) bool {
		if !t.IsCallOrNew(n) {
			return true
		}
		if e, ok := lookupEffects(t, t.FirstChild(n), effects); ok {
			cur := t.CallEffects(n)
			cur.NoSideEffects = cur.NoSideEffects || e.NoSideEffects
			cur.OnlyModifiesReceiver = cur.OnlyModifiesReceiver || e.OnlyModifiesReceiver
			cur.LocalResult = cur.LocalResult || e.LocalResult
			t.SetCallEffects(n, cur)
			count++
		}
		return true
	})
	return count
}

func lookupEffects(t *ast.Tree, callee ast.NodeID, effects map[string]ast.CallEffects) (ast.CallEffects, bool) {
	if q, ok := t.QualifiedName(callee); ok {
		if e, ok := effects[q]; ok {
			return e, true
		}
	}
	if t.Kind(callee) == ast.GetProp {
		e, ok := effects["."+t.Text(t.LastChild(callee))]
		return e, ok
	}
	return ast.CallEffects{}, false
}
