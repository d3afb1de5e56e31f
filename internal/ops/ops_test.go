package ops

import (
	"errors"
	"testing"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/test"
)

func TestIsSimple(t *testing.T) {
	simple := []ast.Kind{
		ast.Add, ast.BitAnd, ast.BitNot, ast.BitOr, ast.BitXor, ast.Comma,
		ast.Div, ast.Eq, ast.Ge, ast.GetElem, ast.GetProp, ast.Gt,
		ast.Instanceof, ast.Le, ast.Lsh, ast.Lt, ast.Mod, ast.Mul, ast.Ne,
		ast.Not, ast.Rsh, ast.Sheq, ast.Shne, ast.Sub, ast.Typeof, ast.Void,
		ast.Pos, ast.Neg, ast.URsh,
	}
	for _, k := range simple {
		if !IsSimple(k) {
			t.Errorf("%s should be simple", k)
		}
	}
	for _, k := range []ast.Kind{ast.Call, ast.New, ast.Assign, ast.AssignAdd, ast.DelProp, ast.In, ast.Inc, ast.Dec, ast.And, ast.Hook, ast.Name} {
		if IsSimple(k) {
			t.Errorf("%s should not be simple", k)
		}
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind ast.Kind
		want int
	}{
		{ast.Comma, 0},
		{ast.Assign, 1},
		{ast.AssignURsh, 1},
		{ast.Hook, 2},
		{ast.Or, 3},
		{ast.And, 4},
		{ast.BitOr, 5},
		{ast.BitXor, 6},
		{ast.BitAnd, 7},
		{ast.Shne, 8},
		{ast.In, 9},
		{ast.Instanceof, 9},
		{ast.URsh, 10},
		{ast.Sub, 11},
		{ast.Mod, 12},
		{ast.New, 13},
		{ast.DelProp, 13},
		{ast.Call, 15},
		{ast.StringKey, 15},
		{ast.Empty, 15},
	}
	for _, tt := range tests {
		test.AssertEqual(t, Precedence(tt.kind), tt.want)
	}
}

func TestPrecedenceUnknownKind(t *testing.T) {
	for _, k := range []ast.Kind{ast.If, ast.Block, ast.Script, ast.Var} {
		r := test.ExpectPanic(t, func() { Precedence(k) })
		if err, ok := r.(error); !ok || !errors.Is(err, ast.ErrContract) {
			t.Errorf("Precedence(%s) panicked with %v", k, r)
		}
	}
}

func TestAlgebraicLaws(t *testing.T) {
	if IsAssociative(ast.Add) || IsCommutative(ast.Add) {
		t.Error("ADD is neither associative nor commutative")
	}
	for _, k := range []ast.Kind{ast.Mul, ast.BitOr, ast.BitXor, ast.BitAnd} {
		if !IsAssociative(k) || !IsCommutative(k) {
			t.Errorf("%s should be associative and commutative", k)
		}
	}
	for _, k := range []ast.Kind{ast.And, ast.Or} {
		if !IsAssociative(k) || IsCommutative(k) {
			t.Errorf("%s should be associative but not commutative", k)
		}
	}
	if !IsRightAssociative(ast.AssignAdd) || IsRightAssociative(ast.Sub) {
		t.Error("right associativity mismatch")
	}
}

func TestAssignmentOps(t *testing.T) {
	test.AssertEqual(t, OpFromAssignmentOp(ast.AssignAdd), ast.Add)
	test.AssertEqual(t, OpFromAssignmentOp(ast.AssignURsh), ast.URsh)
	if a, ok := AssignmentOpFor(ast.Mod); !ok || a != ast.AssignMod {
		t.Errorf("AssignmentOpFor(MOD) = %s, %v", a, ok)
	}
	if _, ok := AssignmentOpFor(ast.Eq); ok {
		t.Error("EQ has no compound assignment")
	}
	test.ExpectPanic(t, func() { OpFromAssignmentOp(ast.Assign) })
}

func TestInverseAndSymmetric(t *testing.T) {
	if k, ok := InverseOperator(ast.Lt); !ok || k != ast.Gt {
		t.Errorf("InverseOperator(LT) = %s", k)
	}
	if _, ok := InverseOperator(ast.Eq); ok {
		t.Error("EQ has no inverse")
	}
	if !IsSymmetric(ast.Sheq) || IsSymmetric(ast.Lt) || !IsRelational(ast.Ge) {
		t.Error("symmetric/relational mismatch")
	}
}

func TestOpString(t *testing.T) {
	test.AssertEqual(t, OpString(ast.URsh), ">>>")
	test.AssertEqual(t, OpString(ast.AssignBitXor), "^=")
	test.AssertEqual(t, OpString(ast.Instanceof), "instanceof")
	if _, ok := OpStringOK(ast.Call); ok {
		t.Error("CALL has no operator spelling")
	}
}
