// Package ops classifies operator node kinds: which are simple operators,
// how tightly they bind, and which algebraic laws they obey.
package ops

import "github.com/HugoDaniel/minijs/internal/ast"

// ----------------------------------------------------------------------------
// Simple Operators
// ----------------------------------------------------------------------------

// IsSimple reports whether k is an operator whose only effects come from its
// operands. The member accesses are included; calls, assignments, NEW,
// DELPROP, IN, INC and DEC are not.
func IsSimple(k ast.Kind) bool {
	switch k {
	case ast.Add, ast.BitAnd, ast.BitNot, ast.BitOr, ast.BitXor, ast.Comma,
		ast.Div, ast.Eq, ast.Ge, ast.GetElem, ast.GetProp, ast.Gt,
		ast.Instanceof, ast.Le, ast.Lsh, ast.Lt, ast.Mod, ast.Mul, ast.Ne,
		ast.Not, ast.Rsh, ast.Sheq, ast.Shne, ast.Sub, ast.Typeof, ast.Void,
		ast.Pos, ast.Neg, ast.URsh:
		return true
	}
	return false
}

// IsAssignmentOp reports whether k assigns to its first operand.
func IsAssignmentOp(k ast.Kind) bool {
	return k.IsAssignment()
}

var assignOps = map[ast.Kind]ast.Kind{
	ast.AssignBitOr:  ast.BitOr,
	ast.AssignBitXor: ast.BitXor,
	ast.AssignBitAnd: ast.BitAnd,
	ast.AssignLsh:    ast.Lsh,
	ast.AssignRsh:    ast.Rsh,
	ast.AssignURsh:   ast.URsh,
	ast.AssignAdd:    ast.Add,
	ast.AssignSub:    ast.Sub,
	ast.AssignMul:    ast.Mul,
	ast.AssignDiv:    ast.Div,
	ast.AssignMod:    ast.Mod,
}

// OpFromAssignmentOp returns the binary operator of a compound assignment,
// e.g. ADD for ASSIGN_ADD.
func OpFromAssignmentOp(k ast.Kind) ast.Kind {
	op, ok := assignOps[k]
	if !ok {
		ast.Violation("OpFromAssignmentOp", k, "not a compound assignment")
	}
	return op
}

// AssignmentOpFor is the inverse of OpFromAssignmentOp. The second result is
// false when op has no compound form.
func AssignmentOpFor(op ast.Kind) (ast.Kind, bool) {
	for a, o := range assignOps {
		if o == op {
			return a, true
		}
	}
	return ast.KindInvalid, false
}

// ----------------------------------------------------------------------------
// Precedence
// ----------------------------------------------------------------------------

// Precedence levels from loosest to tightest. Level 14 is unused.
const (
	LComma       = 0
	LAssign      = 1
	LConditional = 2
	LLogicalOr   = 3
	LLogicalAnd  = 4
	LBitwiseOr   = 5
	LBitwiseXor  = 6
	LBitwiseAnd  = 7
	LEquals      = 8
	LCompare     = 9
	LShift       = 10
	LAdd         = 11
	LMultiply    = 12
	LPrefix      = 13
	LMember      = 15
)

// Precedence returns the binding strength of k. Kinds that are neither
// operators nor atoms are a ContractError.
func Precedence(k ast.Kind) int {
	if k.IsAssignment() {
		return LAssign
	}
	switch k {
	case ast.Comma:
		return LComma
	case ast.Hook:
		return LConditional
	case ast.Or:
		return LLogicalOr
	case ast.And:
		return LLogicalAnd
	case ast.BitOr:
		return LBitwiseOr
	case ast.BitXor:
		return LBitwiseXor
	case ast.BitAnd:
		return LBitwiseAnd
	case ast.Eq, ast.Ne, ast.Sheq, ast.Shne:
		return LEquals
	case ast.Lt, ast.Gt, ast.Le, ast.Ge, ast.Instanceof, ast.In:
		return LCompare
	case ast.Lsh, ast.Rsh, ast.URsh:
		return LShift
	case ast.Add, ast.Sub:
		return LAdd
	case ast.Mul, ast.Div, ast.Mod:
		return LMultiply
	case ast.Inc, ast.Dec, ast.New, ast.DelProp, ast.Typeof, ast.Void,
		ast.Not, ast.BitNot, ast.Pos, ast.Neg:
		return LPrefix
	case ast.Call, ast.GetElem, ast.GetProp, ast.ArrayLit, ast.Empty,
		ast.False, ast.Function, ast.Name, ast.Null, ast.Number,
		ast.ObjectLit, ast.RegExp, ast.String, ast.StringKey, ast.This,
		ast.True:
		return LMember
	}
	ast.Violation("Precedence", k, "unknown precedence")
	return 0
}

// IsAssociative reports whether (a op b) op c equals a op (b op c).
// ADD is excluded because string concatenation mixes with numeric addition.
func IsAssociative(k ast.Kind) bool {
	switch k {
	case ast.Mul, ast.And, ast.Or, ast.BitOr, ast.BitXor, ast.BitAnd:
		return true
	}
	return false
}

// IsCommutative reports whether a op b equals b op a for all operands.
// Operand evaluation order still matters when operands have side effects.
func IsCommutative(k ast.Kind) bool {
	switch k {
	case ast.Mul, ast.BitOr, ast.BitXor, ast.BitAnd:
		return true
	}
	return false
}

// IsRightAssociative reports whether chains of k group to the right.
func IsRightAssociative(k ast.Kind) bool {
	return k.IsAssignment() || k == ast.Hook
}

// IsSymmetric reports whether swapping the operands keeps the meaning when
// the operands are free of side effects.
func IsSymmetric(k ast.Kind) bool {
	switch k {
	case ast.Eq, ast.Ne, ast.Sheq, ast.Shne, ast.Mul:
		return true
	}
	return false
}

// IsRelational reports whether k is a comparison whose operands can be
// swapped by replacing k with its InverseOperator.
func IsRelational(k ast.Kind) bool {
	switch k {
	case ast.Gt, ast.Ge, ast.Lt, ast.Le:
		return true
	}
	return false
}

// InverseOperator returns the operator that gives the same result with the
// operands swapped: a < b is b > a.
func InverseOperator(k ast.Kind) (ast.Kind, bool) {
	switch k {
	case ast.Gt:
		return ast.Lt, true
	case ast.Lt:
		return ast.Gt, true
	case ast.Ge:
		return ast.Le, true
	case ast.Le:
		return ast.Ge, true
	}
	return ast.KindInvalid, false
}

// ----------------------------------------------------------------------------
// Spelling
// ----------------------------------------------------------------------------

var opStrings = map[ast.Kind]string{
	ast.BitOr:        "|",
	ast.Or:           "||",
	ast.BitXor:       "^",
	ast.And:          "&&",
	ast.BitAnd:       "&",
	ast.Sheq:         "===",
	ast.Eq:           "==",
	ast.Not:          "!",
	ast.Ne:           "!=",
	ast.Shne:         "!==",
	ast.Lsh:          "<<",
	ast.In:           "in",
	ast.Le:           "<=",
	ast.Lt:           "<",
	ast.URsh:         ">>>",
	ast.Rsh:          ">>",
	ast.Ge:           ">=",
	ast.Gt:           ">",
	ast.Mul:          "*",
	ast.Div:          "/",
	ast.Mod:          "%",
	ast.BitNot:       "~",
	ast.Add:          "+",
	ast.Sub:          "-",
	ast.Pos:          "+",
	ast.Neg:          "-",
	ast.Assign:       "=",
	ast.AssignBitOr:  "|=",
	ast.AssignBitXor: "^=",
	ast.AssignBitAnd: "&=",
	ast.AssignLsh:    "<<=",
	ast.AssignRsh:    ">>=",
	ast.AssignURsh:   ">>>=",
	ast.AssignAdd:    "+=",
	ast.AssignSub:    "-=",
	ast.AssignMul:    "*=",
	ast.AssignDiv:    "/=",
	ast.AssignMod:    "%=",
	ast.Void:         "void",
	ast.Typeof:       "typeof",
	ast.Instanceof:   "instanceof",
	ast.DelProp:      "delete",
	ast.Inc:          "++",
	ast.Dec:          "--",
	ast.Comma:        ",",
}

// OpStringOK returns the source spelling of an operator.
func OpStringOK(k ast.Kind) (string, bool) {
	s, ok := opStrings[k]
	return s, ok
}

// OpString returns the source spelling of an operator and panics for kinds
// that are not operators.
func OpString(k ast.Kind) string {
	s, ok := opStrings[k]
	if !ok {
		ast.Violation("OpString", k, "not an operator")
	}
	return s
}
