// Package ast defines the syntax tree for JavaScript programs.
//
// The tree is an arena: every node lives in a Tree and is addressed by a
// NodeID handle. Nodes carry a Kind, an optional string or number payload,
// flags, and parent/child/sibling links so a node can be detached or
// replaced in constant time.
//
// The shapes follow a few fixed rules that the mutation primitives in
// mutate.go preserve:
//   - TRY has a body block, a catch container block holding zero or one
//     CATCH, and optionally a finally block.
//   - FOR has four children (init, condition, update, body), or three for
//     the for-in form (target, object, body).
//   - FUNCTION has a NAME (empty for anonymous functions), a PARAM_LIST and
//     a BLOCK body.
package ast

// ----------------------------------------------------------------------------
// Node Kinds
// ----------------------------------------------------------------------------

// Kind identifies the syntactic category of a node.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Structure
	Script
	Block
	ExprResult
	Var
	ParamList
	StringKey
	GetterDef
	SetterDef
	LabelName
	Empty

	// Atoms
	Name
	Number
	String
	True
	False
	Null
	This
	RegExp
	ArrayLit
	ObjectLit
	Function

	// Calls and member access
	Call
	New
	GetProp
	GetElem

	// Assignment
	Assign
	AssignBitOr
	AssignBitXor
	AssignBitAnd
	AssignLsh
	AssignRsh
	AssignURsh
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod

	// Other expressions
	Comma
	Hook
	And
	Or
	Not
	Neg
	Pos
	BitNot
	Typeof
	Void
	DelProp
	Inc
	Dec
	Add
	Sub
	Mul
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	Lsh
	Rsh
	URsh
	Eq
	Ne
	Sheq
	Shne
	Lt
	Le
	Gt
	Ge
	In
	Instanceof

	// Statements
	If
	For
	While
	Do
	Switch
	Case
	DefaultCase
	Try
	Catch
	Throw
	Return
	Break
	Continue
	Label
	With
	Debugger

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:  "<invalid>",
	Script:       "SCRIPT",
	Block:        "BLOCK",
	ExprResult:   "EXPR_RESULT",
	Var:          "VAR",
	ParamList:    "PARAM_LIST",
	StringKey:    "STRING_KEY",
	GetterDef:    "GETTER_DEF",
	SetterDef:    "SETTER_DEF",
	LabelName:    "LABEL_NAME",
	Empty:        "EMPTY",
	Name:         "NAME",
	Number:       "NUMBER",
	String:       "STRING",
	True:         "TRUE",
	False:        "FALSE",
	Null:         "NULL",
	This:         "THIS",
	RegExp:       "REGEXP",
	ArrayLit:     "ARRAYLIT",
	ObjectLit:    "OBJECTLIT",
	Function:     "FUNCTION",
	Call:         "CALL",
	New:          "NEW",
	GetProp:      "GETPROP",
	GetElem:      "GETELEM",
	Assign:       "ASSIGN",
	AssignBitOr:  "ASSIGN_BITOR",
	AssignBitXor: "ASSIGN_BITXOR",
	AssignBitAnd: "ASSIGN_BITAND",
	AssignLsh:    "ASSIGN_LSH",
	AssignRsh:    "ASSIGN_RSH",
	AssignURsh:   "ASSIGN_URSH",
	AssignAdd:    "ASSIGN_ADD",
	AssignSub:    "ASSIGN_SUB",
	AssignMul:    "ASSIGN_MUL",
	AssignDiv:    "ASSIGN_DIV",
	AssignMod:    "ASSIGN_MOD",
	Comma:        "COMMA",
	Hook:         "HOOK",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	Neg:          "NEG",
	Pos:          "POS",
	BitNot:       "BITNOT",
	Typeof:       "TYPEOF",
	Void:         "VOID",
	DelProp:      "DELPROP",
	Inc:          "INC",
	Dec:          "DEC",
	Add:          "ADD",
	Sub:          "SUB",
	Mul:          "MUL",
	Div:          "DIV",
	Mod:          "MOD",
	BitAnd:       "BITAND",
	BitOr:        "BITOR",
	BitXor:       "BITXOR",
	Lsh:          "LSH",
	Rsh:          "RSH",
	URsh:         "URSH",
	Eq:           "EQ",
	Ne:           "NE",
	Sheq:         "SHEQ",
	Shne:         "SHNE",
	Lt:           "LT",
	Le:           "LE",
	Gt:           "GT",
	Ge:           "GE",
	In:           "IN",
	Instanceof:   "INSTANCEOF",
	If:           "IF",
	For:          "FOR",
	While:        "WHILE",
	Do:           "DO",
	Switch:       "SWITCH",
	Case:         "CASE",
	DefaultCase:  "DEFAULT_CASE",
	Try:          "TRY",
	Catch:        "CATCH",
	Throw:        "THROW",
	Return:       "RETURN",
	Break:        "BREAK",
	Continue:     "CONTINUE",
	Label:        "LABEL",
	With:         "WITH",
	Debugger:     "DEBUGGER",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "<invalid>"
}

// IsAssignment reports whether k is ASSIGN or a compound assignment.
func (k Kind) IsAssignment() bool {
	return k >= Assign && k <= AssignMod
}

// Family groups kinds by where they may appear.
type Family uint8

const (
	FamilyStructural Family = iota
	FamilyExpression
	FamilyStatement
)

// Family classifies the kind. FUNCTION counts as an expression even though a
// function may also appear in statement position.
func (k Kind) Family() Family {
	switch {
	case k >= Name && k <= Instanceof:
		return FamilyExpression
	case k >= If && k <= Debugger, k == ExprResult, k == Var:
		return FamilyStatement
	}
	return FamilyStructural
}

// ----------------------------------------------------------------------------
// Flags and Annotations
// ----------------------------------------------------------------------------

// NodeFlags are bitflags for node properties.
type NodeFlags uint8

const (
	// FlagConstantName marks a NAME or property STRING that the coding
	// convention treats as a constant.
	FlagConstantName NodeFlags = 1 << iota

	// FlagFreeCall marks a CALL whose callee is not a property access, so
	// the callee runs without a receiver.
	FlagFreeCall

	// FlagPostfix marks a postfix INC or DEC.
	FlagPostfix
)

// Has returns true if the flag is set.
func (f NodeFlags) Has(flag NodeFlags) bool {
	return (f & flag) != 0
}

// CallEffects is the side-effect annotation on a CALL or NEW site.
// The zero value makes no claim.
type CallEffects struct {
	// NoSideEffects marks a call known to have no side effects at all.
	NoSideEffects bool

	// OnlyModifiesReceiver marks a call whose only effect is on "this".
	OnlyModifiesReceiver bool

	// LocalResult marks a call whose result is a fresh, unaliased value.
	LocalResult bool
}

// ----------------------------------------------------------------------------
// Source Location
// ----------------------------------------------------------------------------

// Loc represents a location in source code.
type Loc struct {
	Start int32 // Byte offset of start, -1 when synthesized
}

// NoLoc is the location of synthesized nodes.
var NoLoc = Loc{Start: -1}

// IsValid reports whether the location points into source.
func (l Loc) IsValid() bool {
	return l.Start >= 0
}
