package ast

import (
	"errors"
	"math"
	"testing"

	"github.com/HugoDaniel/minijs/internal/test"
)

// expectContract runs fn and fails unless it panics with a ContractError.
func expectContract(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrContract) {
			t.Errorf("expected contract violation, got %v", r)
		}
	}()
	fn()
}

type capsConvention struct{}

func (capsConvention) IsConstant(name string) bool   { return name == "FOO" }
func (capsConvention) IsConstantKey(key string) bool { return key == "BAR" }

// ----------------------------------------------------------------------------
// Kind and Flags Tests
// ----------------------------------------------------------------------------

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		Script:      "SCRIPT",
		ExprResult:  "EXPR_RESULT",
		AssignURsh:  "ASSIGN_URSH",
		DefaultCase: "DEFAULT_CASE",
		Instanceof:  "INSTANCEOF",
		kindCount:   "<invalid>",
	}
	for k, want := range tests {
		test.AssertEqual(t, k.String(), want)
	}
	for k := Kind(1); k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestKindFamily(t *testing.T) {
	if Add.Family() != FamilyExpression || Function.Family() != FamilyExpression {
		t.Error("ADD and FUNCTION should be expressions")
	}
	if If.Family() != FamilyStatement || Var.Family() != FamilyStatement {
		t.Error("IF and VAR should be statements")
	}
	if Block.Family() != FamilyStructural || Case.Family() != FamilyStatement {
		t.Errorf("unexpected families: BLOCK=%d CASE=%d", Block.Family(), Case.Family())
	}
}

func TestIsAssignment(t *testing.T) {
	for _, k := range []Kind{Assign, AssignAdd, AssignMod, AssignURsh} {
		if !k.IsAssignment() {
			t.Errorf("%s should be an assignment", k)
		}
	}
	for _, k := range []Kind{Eq, Comma, Add, Inc} {
		if k.IsAssignment() {
			t.Errorf("%s should not be an assignment", k)
		}
	}
}

func TestNodeFlagsHas(t *testing.T) {
	flags := FlagConstantName | FlagPostfix
	if !flags.Has(FlagConstantName) || !flags.Has(FlagPostfix) {
		t.Error("flags should have FlagConstantName and FlagPostfix")
	}
	if flags.Has(FlagFreeCall) {
		t.Error("flags should NOT have FlagFreeCall")
	}
}

// ----------------------------------------------------------------------------
// Builder Tests
// ----------------------------------------------------------------------------

func TestNoNodeAccessors(t *testing.T) {
	tr := NewTree()
	if tr.Kind(NoNode) != KindInvalid || tr.Parent(NoNode) != NoNode || tr.FirstChild(NoNode) != NoNode {
		t.Error("NoNode accessors should return zero values")
	}
	if NoNode.IsValid() {
		t.Error("NoNode should be invalid")
	}
}

func TestNewNodeLinksChildren(t *testing.T) {
	tr := NewTree()
	a, b, c := tr.NewName("a"), tr.NewName("b"), tr.NewName("c")
	call := tr.NewNode(Call, a, b, c)

	test.AssertEqual(t, tr.ChildCount(call), 3)
	test.AssertEqual(t, tr.FirstChild(call), a)
	test.AssertEqual(t, tr.LastChild(call), c)
	test.AssertEqual(t, tr.SecondChild(call), b)
	test.AssertEqual(t, tr.ChildAt(call, 2), c)
	test.AssertEqual(t, tr.ChildAt(call, 3), NoNode)
	test.AssertEqual(t, tr.IndexOfChild(call, b), 1)
	test.AssertEqual(t, tr.Prev(b), a)
	test.AssertEqual(t, tr.Next(b), c)
	test.AssertEqual(t, tr.Parent(c), call)

	if err := tr.Validate(call); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNewNodeRejectsAttachedChild(t *testing.T) {
	tr := NewTree()
	a := tr.NewName("a")
	tr.NewNode(Not, a)
	expectContract(t, func() { tr.NewNode(Neg, a) })
}

func TestNewCallFreeCall(t *testing.T) {
	tr := NewTree()
	free := tr.NewCall(tr.NewName("f"), tr.NewNumber(1))
	if !tr.HasFlag(free, FlagFreeCall) {
		t.Error("call of a name should be a free call")
	}
	method := tr.NewCall(tr.NewNode(GetProp, tr.NewName("o"), tr.NewString("m")))
	if tr.HasFlag(method, FlagFreeCall) {
		t.Error("method call should not be a free call")
	}
}

func TestNewNumberValue(t *testing.T) {
	tr := NewTree()
	tests := []struct {
		value float64
		dump  string
	}{
		{1.5, "NUMBER 1.5\n"},
		{math.NaN(), "NAME NaN\n"},
		{math.Inf(1), "NAME Infinity\n"},
		{math.Inf(-1), "NEG\n  NAME Infinity\n"},
	}
	for _, tt := range tests {
		test.AssertEqualWithDiff(t, tr.Dump(tr.NewNumberValue(tt.value, NoNode)), tt.dump)
	}
}

func TestNewQualifiedName(t *testing.T) {
	tr := NewTree()
	src := tr.NewName("src")
	tr.SetLoc(src, Loc{Start: 7})

	n := tr.NewQualifiedName(capsConvention{}, "FOO.BAR.baz", src)
	test.AssertEqualWithDiff(t, tr.Dump(n), `GETPROP
  GETPROP
    NAME FOO [constant]
    STRING "BAR" [constant]
  STRING "baz"
`)
	test.AssertEqual(t, tr.Loc(n), Loc{Start: 7})
	q, ok := tr.QualifiedName(n)
	if !ok || q != "FOO.BAR.baz" {
		t.Errorf("QualifiedName = %q, %v", q, ok)
	}
	test.AssertEqual(t, tr.Text(tr.RootOfQualifiedName(n)), "FOO")
}

func TestNewUndefinedAndVar(t *testing.T) {
	tr := NewTree()
	test.AssertEqualWithDiff(t, tr.Dump(tr.NewUndefined(NoNode)), "VOID\n  NUMBER 0\n")
	test.AssertEqualWithDiff(t, tr.Dump(tr.NewVar("x", tr.NewNumber(2))), "VAR\n  NAME x\n    NUMBER 2\n")
	test.AssertEqualWithDiff(t, tr.Dump(tr.NewRegExp("a+", "g")), "REGEXP\n  STRING \"a+\"\n  STRING \"g\"\n")
	test.AssertEqual(t, tr.Loc(tr.NewEmpty()), NoLoc)
}

func TestSetCallEffects(t *testing.T) {
	tr := NewTree()
	call := tr.NewCall(tr.NewName("f"))
	tr.SetCallEffects(call, CallEffects{NoSideEffects: true})
	if !tr.CallEffects(call).NoSideEffects {
		t.Error("annotation was not stored")
	}
	test.AssertEqual(t, tr.Label(call), "CALL [free_call no_side_effects]")
	expectContract(t, func() { tr.SetCallEffects(tr.NewName("f"), CallEffects{}) })
}

// ----------------------------------------------------------------------------
// Validate Tests
// ----------------------------------------------------------------------------

func TestValidateArity(t *testing.T) {
	tr := NewTree()
	bad := []NodeID{
		tr.NewNode(Hook, tr.NewName("a"), tr.NewName("b")),
		tr.NewNode(For, tr.NewEmpty()),
		tr.NewNode(Try, tr.NewBlock()),
		tr.NewNode(Function, tr.NewNode(ParamList), tr.NewName("f"), tr.NewBlock()),
		tr.NewNode(Try, tr.NewBlock(), tr.NewBlock(tr.NewEmpty())),
		tr.NewNode(ExprResult, tr.NewBlock()),
		tr.NewNode(Var, tr.NewNumber(1)),
	}
	for _, n := range bad {
		if err := tr.Validate(n); err == nil {
			t.Errorf("Validate accepted invalid tree:\n%s", tr.Dump(n))
		}
	}

	good := tr.NewScript(
		tr.NewNode(Try, tr.NewBlock(), tr.NewBlock(tr.NewNode(Catch, tr.NewName("e"), tr.NewBlock())), tr.NewBlock()),
		tr.NewNode(For, tr.NewEmpty(), tr.NewEmpty(), tr.NewEmpty(), tr.NewBlock()),
		tr.NewExprResult(tr.NewFunction("", nil, tr.NewBlock())),
	)
	if err := tr.Validate(good); err != nil {
		t.Errorf("Validate rejected valid tree: %v", err)
	}
}
