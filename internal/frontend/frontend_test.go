package frontend

import (
	"errors"
	"testing"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/diagnostic"
	"github.com/HugoDaniel/minijs/internal/test"
)

// ----------------------------------------------------------------------------
// Test Helpers
// ----------------------------------------------------------------------------

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse("test.js", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if err := p.Tree.Validate(p.Root); err != nil {
		t.Fatalf("invalid tree for %q: %v", src, err)
	}
	return p
}

// expectTree parses input and compares the dumped tree.
func expectTree(t *testing.T, input, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		p := mustParse(t, input)
		test.AssertEqualWithDiff(t, p.Tree.Dump(p.Root), expected)
	})
}

// firstExpr returns the expression of the first statement.
func firstExpr(p *Program) ast.NodeID {
	return p.Tree.FirstChild(p.Tree.FirstChild(p.Root))
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func TestConvertVar(t *testing.T) {
	expectTree(t, "var a = 1, b;", `SCRIPT
  VAR
    NAME a
      NUMBER 1
    NAME b
`)
}

func TestConvertFor(t *testing.T) {
	expectTree(t, "for (var i = 0; ; i++) {}", `SCRIPT
  FOR
    VAR
      NAME i
        NUMBER 0
    EMPTY
    INC [postfix]
      NAME i
    BLOCK
`)
	expectTree(t, "for (;;) x;", `SCRIPT
  FOR
    EMPTY
    EMPTY
    EMPTY
    BLOCK
      EXPR_RESULT
        NAME x
`)
	expectTree(t, "for (k in o) f();", `SCRIPT
  FOR
    NAME k
    NAME o
    BLOCK
      EXPR_RESULT
        CALL [free_call]
          NAME f
`)
}

func TestConvertTry(t *testing.T) {
	expectTree(t, "try { a(); } finally {}", `SCRIPT
  TRY
    BLOCK
      EXPR_RESULT
        CALL [free_call]
          NAME a
    BLOCK
    BLOCK
`)
	expectTree(t, "try {} catch (e) { throw e; }", `SCRIPT
  TRY
    BLOCK
    BLOCK
      CATCH
        NAME e
        BLOCK
          THROW
            NAME e
`)
}

func TestConvertSwitch(t *testing.T) {
	expectTree(t, "switch (x) { case 1: break; default: y(); }", `SCRIPT
  SWITCH
    NAME x
    CASE
      NUMBER 1
      BLOCK
        BREAK
    DEFAULT_CASE
      BLOCK
        EXPR_RESULT
          CALL [free_call]
            NAME y
`)
}

func TestConvertFunctionAndLabel(t *testing.T) {
	expectTree(t, "function f(a) { return a; }", `SCRIPT
  FUNCTION
    NAME f
    PARAM_LIST
      NAME a
    BLOCK
      RETURN
        NAME a
`)
	expectTree(t, "l: while (1) continue l;", `SCRIPT
  LABEL
    LABEL_NAME l
    WHILE
      NUMBER 1
      BLOCK
        CONTINUE
          LABEL_NAME l
`)
}

func TestConvertIfWrapsBranches(t *testing.T) {
	expectTree(t, "if (a) b; else c;", `SCRIPT
  IF
    NAME a
    BLOCK
      EXPR_RESULT
        NAME b
    BLOCK
      EXPR_RESULT
        NAME c
`)
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func TestConvertExpressions(t *testing.T) {
	expectTree(t, "f(x, -2);", `SCRIPT
  EXPR_RESULT
    CALL [free_call]
      NAME f
      NAME x
      NUMBER -2
`)
	expectTree(t, "a.b = c[0]++;", `SCRIPT
  EXPR_RESULT
    ASSIGN
      GETPROP
        NAME a
        STRING "b"
      INC [postfix]
        GETELEM
          NAME c
          NUMBER 0
`)
	expectTree(t, "x += 1, y, z;", `SCRIPT
  EXPR_RESULT
    COMMA
      COMMA
        ASSIGN_ADD
          NAME x
          NUMBER 1
        NAME y
      NAME z
`)
	expectTree(t, "[1, , 2];", `SCRIPT
  EXPR_RESULT
    ARRAYLIT
      NUMBER 1
      EMPTY
      NUMBER 2
`)
	expectTree(t, "a ? !b : void 0;", `SCRIPT
  EXPR_RESULT
    HOOK
      NAME a
      NOT
        NAME b
      VOID
        NUMBER 0
`)
	expectTree(t, "new Foo;", `SCRIPT
  EXPR_RESULT
    NEW
      NAME Foo
`)
}

func TestConvertObjectLiteral(t *testing.T) {
	p := mustParse(t, "x = {a: 1, get b() { return 2; }, set c(v) {}};")
	tr := p.Tree
	obj := tr.LastChild(firstExpr(p))
	test.AssertEqual(t, tr.Kind(obj), ast.ObjectLit)

	var kinds []ast.Kind
	var keys []string
	for c := tr.FirstChild(obj); c != ast.NoNode; c = tr.Next(c) {
		kinds = append(kinds, tr.Kind(c))
		keys = append(keys, tr.Text(c))
	}
	test.AssertDeepEqual(t, "kinds", kinds, []ast.Kind{ast.StringKey, ast.GetterDef, ast.SetterDef})
	test.AssertDeepEqual(t, "keys", keys, []string{"a", "b", "c"})
	test.AssertEqual(t, tr.Kind(tr.FirstChild(tr.SecondChild(obj))), ast.Function)
}

func TestConvertRegExp(t *testing.T) {
	expectTree(t, "/a+/gi;", `SCRIPT
  EXPR_RESULT
    REGEXP
      STRING "a+"
      STRING "gi"
`)
}

func TestConvertLocations(t *testing.T) {
	p := mustParse(t, "var a;\nfoo(bar);")
	tr := p.Tree
	call := tr.FirstChild(tr.LastChild(p.Root))
	test.AssertEqual(t, tr.Loc(call).Start, int32(7))
	test.AssertEqual(t, tr.Loc(tr.LastChild(call)).Start, int32(11))
}

func TestConvertConstantNames(t *testing.T) {
	p, err := ParseWith("", "FOO + bar;", Options{Convention: capsConvention{}})
	if err != nil {
		t.Fatal(err)
	}
	add := firstExpr(p)
	test.AssertEqual(t, p.Tree.HasFlag(p.Tree.FirstChild(add), ast.FlagConstantName), true)
	test.AssertEqual(t, p.Tree.HasFlag(p.Tree.LastChild(add), ast.FlagConstantName), false)
}

type capsConvention struct{}

func (capsConvention) IsConstant(name string) bool   { return name == "FOO" }
func (capsConvention) IsConstantKey(key string) bool { return false }

// ----------------------------------------------------------------------------
// Errors and Diagnostics
// ----------------------------------------------------------------------------

func TestSyntaxError(t *testing.T) {
	_, err := Parse("bad.js", "x = ;")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestRegExpFlagWarning(t *testing.T) {
	p := mustParse(t, "x = /a/gq;")
	warnings := p.Diagnostics.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", p.Diagnostics.Format())
	}
	test.AssertEqual(t, warnings[0].Code, diagnostic.CodeInvalidRegExp)
	test.AssertEqual(t, warnings[0].Pos.Column, 5)
}

func TestRegExpOptions(t *testing.T) {
	tests := []struct {
		flags string
		bad   string
	}{
		{"", ""},
		{"gim", ""},
		{"gg", "g"},
		{"y", "y"},
	}
	for _, tt := range tests {
		_, bad := regExpOptions(tt.flags)
		test.AssertEqual(t, bad, tt.bad)
	}
}

// ----------------------------------------------------------------------------
// Global Match State
// ----------------------------------------------------------------------------

func TestScanRegExpGlobalReferences(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 1;", false},
		{"new RegExp('a');", false},
		{"RegExp('a');", false},
		{"x instanceof RegExp;", false},
		{"x == RegExp;", false},
		{"RegExp.prototype.foo = 1;", false},
		{"x = RegExp.$1;", true},
		{"x = RegExp.lastMatch;", true},
		{"x = RegExp['$&'];", true},
		{"var R = RegExp;", true},
		{"f(RegExp);", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := mustParse(t, tt.src)
			test.AssertEqual(t, p.RegexGlobals, tt.want)
		})
	}
}

// ----------------------------------------------------------------------------
// Annotations
// ----------------------------------------------------------------------------

const annotated = `
/** @nosideeffects */
function pure() {}

/**
 * Grows the counter.
 * @modifies {this}
 */
Counter.prototype.bump = function() {};

/** @nosideeffects */
var helper = function() {};

// @nosideeffects is ignored outside JSDoc.
function plain() {}

pure(); c.bump(); helper(); plain(); other();
`

func TestJSDocAnnotations(t *testing.T) {
	p := mustParse(t, annotated)
	test.AssertEqual(t, p.Annotations["pure"], ast.CallEffects{NoSideEffects: true})
	test.AssertEqual(t, p.Annotations["helper"], ast.CallEffects{NoSideEffects: true})
	test.AssertEqual(t, p.Annotations["Counter.prototype.bump"], ast.CallEffects{OnlyModifiesReceiver: true})
	test.AssertEqual(t, p.Annotations[".bump"], ast.CallEffects{OnlyModifiesReceiver: true})
	_, ok := p.Annotations["plain"]
	test.AssertEqual(t, ok, false)
}

func TestAnnotate(t *testing.T) {
	p := mustParse(t, annotated)
	test.AssertEqual(t, Annotate(p, []string{"other"}), 4)

	tr := p.Tree
	got := map[string]ast.CallEffects{}
	tr.VisitPreOrder(p.Root, func(n ast.NodeID) bool {
		if tr.Kind(n) == ast.Call {
			name, _ := tr.QualifiedName(tr.FirstChild(n))
			got[name] = tr.CallEffects(n)
		}
		return true
	})
	test.AssertDeepEqual(t, "effects", got, map[string]ast.CallEffects{
		"pure":   {NoSideEffects: true},
		"c.bump": {OnlyModifiesReceiver: true},
		"helper": {NoSideEffects: true},
		"plain":  {},
		"other":  {NoSideEffects: true},
	})
}

func TestJSDocBefore(t *testing.T) {
	src := "/** a */ \n f"
	test.AssertEqual(t, jsdocBefore(src, len(src)-1), "/** a */")
	test.AssertEqual(t, jsdocBefore("x; f", 3), "")
	test.AssertEqual(t, jsdocBefore("/* a */ f", 8), "")
}
