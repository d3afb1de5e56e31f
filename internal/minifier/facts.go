package minifier

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/HugoDaniel/minijs/internal/analysis"
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/diagnostic"
	"github.com/HugoDaniel/minijs/internal/printer"
)

// ----------------------------------------------------------------------------
// Expression Facts
// ----------------------------------------------------------------------------

// Fact is what the analyzer knows about one top-level expression: the
// expression of a statement, a condition, an initializer or a returned
// value.
type Fact struct {
	Expr    string
	Context string
	Pos     diagnostic.Position

	SideEffects  bool
	MutableState bool

	// Boolean is "true", "false" or "unknown"
	Boolean string

	// Number and String are set when the value is statically known.
	// Number uses the JavaScript spelling, so NaN reads "NaN".
	Number *string
	String *string

	NumericResult bool
	BooleanResult bool
	MayBeString   bool
	LocalValue    bool
	ExecutedOnce  bool
	ResultUsed    bool

	// Error is set when a query rejected the expression
	Error string
}

// Analysis is the report produced by Analyze.
type Analysis struct {
	Facts        []Fact
	Diagnostics  []diagnostic.Diagnostic
	RegexGlobals bool
	Annotated    int
}

// Analyze parses source and reports facts about each top-level expression
// without changing the program.
func (m *Minifier) Analyze(source string) (*Analysis, error) {
	s, err := m.prepare(source)
	if err != nil {
		return nil, err
	}
	t := s.prog.Tree
	out := &Analysis{
		RegexGlobals: s.stats.RegexGlobals,
		Annotated:    s.stats.Annotated,
	}

	t.VisitPreOrder(s.prog.Root, func(n ast.NodeID) bool {
		if context, ok := expressionContext(t, n); ok {
			out.Facts = append(out.Facts, m.fact(s, n, context))
		}
		return true
	})
	out.Diagnostics = s.prog.Diagnostics.Diagnostics()

	m.logger.Debug("analyzed",
		slog.String("file", m.options.Filename),
		slog.Int("facts", len(out.Facts)))
	return out, nil
}

// Analyze is a convenience function using default options.
func Analyze(source string) (*Analysis, error) {
	return New(DefaultOptions()).Analyze(source)
}

// expressionContext reports whether n is a top-level expression, and names
// the construct that holds it.
func expressionContext(t *ast.Tree, n ast.NodeID) (string, bool) {
	parent := t.Parent(n)
	k := t.Kind(n)
	if parent == ast.NoNode || k == ast.Empty || k == ast.Var || k.Family() != ast.FamilyExpression {
		return "", false
	}
	switch t.Kind(parent) {
	case ast.ExprResult:
		return "statement", true
	case ast.If, ast.While, ast.Do:
		return "condition", t.ConditionExpression(parent) == n
	case ast.For:
		if t.IsForIn(parent) {
			return "iterable", t.SecondChild(parent) == n
		}
		switch n {
		case t.FirstChild(parent):
			return "initializer", true
		case t.SecondChild(parent):
			return "condition", true
		case t.ChildAt(parent, 2):
			return "update", true
		}
	case ast.Name:
		if t.Kind(t.Parent(parent)) == ast.Var {
			return "initializer", true
		}
	case ast.Return:
		return "return", true
	case ast.Throw:
		return "throw", true
	case ast.Switch:
		return "switch", t.FirstChild(parent) == n
	case ast.Case:
		return "case", t.FirstChild(parent) == n
	case ast.With:
		return "with", t.FirstChild(parent) == n
	}
	return "", false
}

func (m *Minifier) fact(s *session, n ast.NodeID, context string) (f Fact) {
	t := s.prog.Tree
	a := s.analyzer
	f.Context = context
	f.Pos = s.prog.Diagnostics.MakePosition(int(t.Loc(n).Start))

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ast.ContractError)
			if !ok {
				panic(r)
			}
			f.Error = ce.Error()
		}
	}()

	f.Expr = strings.TrimSpace(printer.Print(t, n, printer.Options{}))
	f.SideEffects = a.MayHaveSideEffects(n)
	f.MutableState = a.MayEffectMutableState(n)
	f.Boolean = a.ImpureBooleanValue(n).String()
	if v, ok := a.NumberValue(n); ok {
		text := analysis.FormatNumber(v)
		f.Number = &text
	}
	if v, ok := a.StringValue(n); ok {
		f.String = &v
	}
	f.NumericResult = analysis.IsNumericResult(t, n)
	f.BooleanResult = analysis.IsBooleanResult(t, n)
	f.MayBeString = analysis.MayBeString(t, n)
	f.ExecutedOnce = analysis.IsExecutedExactlyOnce(t, n)
	f.ResultUsed = analysis.IsExpressionResultUsed(t, n)
	f.LocalValue = analysis.EvaluatesToLocalValue(t, n)
	return f
}

// Format renders a fact on one line.
func (f Fact) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d %s %s:", f.Pos.Line, f.Pos.Column, f.Context, f.Expr)
	if f.Error != "" {
		sb.WriteString(" error=" + f.Error)
		return sb.String()
	}
	fmt.Fprintf(&sb, " sideEffects=%t mutableState=%t boolean=%s", f.SideEffects, f.MutableState, f.Boolean)
	if f.Number != nil {
		sb.WriteString(" number=" + *f.Number)
	}
	if f.String != nil {
		fmt.Fprintf(&sb, " string=%q", *f.String)
	}
	fmt.Fprintf(&sb, " numeric=%t booleanResult=%t maybeString=%t local=%t once=%t used=%t",
		f.NumericResult, f.BooleanResult, f.MayBeString, f.LocalValue, f.ExecutedOnce, f.ResultUsed)
	return sb.String()
}
