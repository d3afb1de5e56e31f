// Package printer outputs JavaScript code from a tree.
//
// The printer can operate in two modes:
// - Pretty: Human-readable output with indentation
// - Minified: Minimal whitespace output
//
// Parentheses are derived from operator precedence and associativity, so
// the tree never stores them. Minification decisions about literals are
// made during printing rather than as a separate tree transformation.
package printer

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/HugoDaniel/minijs/internal/analysis"
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/ops"
	"github.com/HugoDaniel/minijs/internal/sourcemap"
)

// Options controls printer output.
type Options struct {
	// MinifyWhitespace removes unnecessary whitespace
	MinifyWhitespace bool

	// MinifySyntax prints shorter spellings of literals
	MinifySyntax bool

	// SourceMap, when set, receives a mapping for every statement and
	// expression that carries a source location
	SourceMap *sourcemap.Generator
}

// Printer outputs JavaScript code.
type Printer struct {
	options Options
	tree    *ast.Tree

	buf    strings.Builder
	indent int

	// Last byte written, used to keep adjacent tokens apart
	last byte

	// Generated position, tracked only when a source map is requested
	line, col int
	pending   ast.NodeID
}

// New creates a new printer.
func New(options Options) *Printer {
	return &Printer{options: options}
}

// Print outputs the subtree at root. A SCRIPT prints as its statements, an
// expression as itself, anything else as a statement.
func (p *Printer) Print(t *ast.Tree, root ast.NodeID) string {
	p.tree = t
	p.buf.Reset()
	p.indent = 0
	p.last = 0
	p.line, p.col = 0, 0
	p.pending = ast.NoNode

	switch k := t.Kind(root); {
	case k == ast.Script:
		p.printStatements(root)
	case isExpression(t, root):
		p.printExpr(root, ops.LComma)
	default:
		p.printStmt(root)
	}
	return p.buf.String()
}

// Print is a shorthand for New(options).Print(t, root).
func Print(t *ast.Tree, root ast.NodeID, options Options) string {
	return New(options).Print(t, root)
}

func isExpression(t *ast.Tree, n ast.NodeID) bool {
	switch t.Kind(n) {
	case ast.Function:
		return t.IsFunctionExpression(n) || t.Parent(n) == ast.NoNode
	case ast.Empty, ast.StringKey, ast.GetterDef, ast.SetterDef:
		return false
	}
	return t.Kind(n).Family() == ast.FamilyExpression
}

// ----------------------------------------------------------------------------
// Output Helpers
// ----------------------------------------------------------------------------

func (p *Printer) print(s string) {
	if s == "" {
		return
	}
	if p.buf.Len() > 0 && needsSeparator(p.last, s[0]) {
		p.write(" ")
	}
	p.flushMapping()
	p.write(s)
	p.last = s[len(s)-1]
}

// write appends s to the output and advances the generated position.
// Columns count UTF-16 code units.
func (p *Printer) write(s string) {
	p.buf.WriteString(s)
	if p.options.SourceMap == nil {
		return
	}
	for _, r := range s {
		switch {
		case r == '\n':
			p.line++
			p.col = 0
		case r >= 0x10000:
			p.col += 2
		default:
			p.col++
		}
	}
}

// mark queues a mapping for n, emitted at the next printed token.
func (p *Printer) mark(n ast.NodeID) {
	if p.options.SourceMap != nil && p.tree.Loc(n).IsValid() {
		p.pending = n
	}
}

func (p *Printer) flushMapping() {
	if p.pending == ast.NoNode {
		return
	}
	n := p.pending
	p.pending = ast.NoNode
	var name string
	if p.tree.Kind(n) == ast.Name {
		name = p.tree.Text(n)
	}
	p.options.SourceMap.AddMapping(p.line, p.col, int(p.tree.Loc(n).Start), name)
}

func (p *Printer) printSpace() {
	if !p.options.MinifyWhitespace {
		p.write(" ")
		p.last = ' '
	}
}

func (p *Printer) printNewline() {
	if !p.options.MinifyWhitespace {
		p.write("\n")
		p.last = '\n'
	}
}

func (p *Printer) printIndent() {
	if !p.options.MinifyWhitespace {
		for i := 0; i < p.indent; i++ {
			p.write("    ")
		}
		if p.indent > 0 {
			p.last = ' '
		}
	}
}

func (p *Printer) printSemicolon() {
	p.print(";")
}

// needsSeparator reports whether two tokens would fuse without a space:
// identifier characters, "+ +", "- -" and "/ /".
func needsSeparator(last, next byte) bool {
	if isIdentByte(last) && isIdentByte(next) {
		return true
	}
	switch last {
	case '+', '-', '/':
		return next == last
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '\\' || c >= utf8.RuneSelf ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// ----------------------------------------------------------------------------
// Statement Printing
// ----------------------------------------------------------------------------

func (p *Printer) printStatements(parent ast.NodeID) {
	t := p.tree
	for c := t.FirstChild(parent); c != ast.NoNode; c = t.Next(c) {
		p.printStmt(c)
	}
}

func (p *Printer) printStmt(n ast.NodeID) {
	p.printIndent()
	p.printStmtNoTrailingNewline(n)
	p.printNewline()
}

// printStmtNoTrailingNewline prints a statement without indentation or a
// trailing newline.
func (p *Printer) printStmtNoTrailingNewline(n ast.NodeID) {
	t := p.tree
	p.mark(n)
	switch t.Kind(n) {
	case ast.Block:
		p.printBlock(n)

	case ast.Empty:
		p.printSemicolon()

	case ast.ExprResult:
		expr := t.FirstChild(n)
		if p.startsWithBrace(expr) {
			p.print("(")
			p.printExpr(expr, ops.LComma)
			p.print(")")
		} else {
			p.printExpr(expr, ops.LComma)
		}
		p.printSemicolon()

	case ast.Var:
		p.printVar(n, false)
		p.printSemicolon()

	case ast.Function:
		p.printFunction(n)

	case ast.If:
		p.printIf(n)

	case ast.For:
		p.printFor(n)

	case ast.While:
		p.print("while")
		p.printSpace()
		p.printParenExpr(t.FirstChild(n))
		p.printSpace()
		p.printBody(t.LastChild(n))

	case ast.Do:
		p.print("do")
		p.printSpace()
		p.printBody(t.FirstChild(n))
		p.printSpace()
		p.print("while")
		p.printSpace()
		p.printParenExpr(t.LastChild(n))
		p.printSemicolon()

	case ast.Return, ast.Throw:
		if t.Kind(n) == ast.Return {
			p.print("return")
		} else {
			p.print("throw")
		}
		if v := t.FirstChild(n); v != ast.NoNode {
			p.printSpace()
			p.printExpr(v, ops.LComma)
		}
		p.printSemicolon()

	case ast.Break, ast.Continue:
		if t.Kind(n) == ast.Break {
			p.print("break")
		} else {
			p.print("continue")
		}
		if label := t.FirstChild(n); label != ast.NoNode {
			p.printSpace()
			p.print(t.Text(label))
		}
		p.printSemicolon()

	case ast.Label:
		p.print(t.Text(t.FirstChild(n)))
		p.print(":")
		p.printSpace()
		p.printStmtNoTrailingNewline(t.LastChild(n))

	case ast.Switch:
		p.printSwitch(n)

	case ast.Try:
		p.printTry(n)

	case ast.With:
		p.print("with")
		p.printSpace()
		p.printParenExpr(t.FirstChild(n))
		p.printSpace()
		p.printBody(t.LastChild(n))

	case ast.Debugger:
		p.print("debugger")
		p.printSemicolon()

	default:
		ast.Violation("Print", t.Kind(n), "not a statement")
	}
}

func (p *Printer) printBlock(n ast.NodeID) {
	p.print("{")
	if !p.tree.HasChildren(n) {
		p.print("}")
		return
	}
	p.printNewline()
	p.indent++
	p.printStatements(n)
	p.indent--
	p.printIndent()
	p.print("}")
}

// printBody prints the body of a control structure, adding braces when it
// is not a block so a following "else" cannot attach to it.
func (p *Printer) printBody(n ast.NodeID) {
	if p.tree.Kind(n) == ast.Block {
		p.printBlock(n)
		return
	}
	p.print("{")
	p.printNewline()
	p.indent++
	p.printStmt(n)
	p.indent--
	p.printIndent()
	p.print("}")
}

func (p *Printer) printParenExpr(n ast.NodeID) {
	p.print("(")
	p.printExpr(n, ops.LComma)
	p.print(")")
}

func (p *Printer) printIf(n ast.NodeID) {
	t := p.tree
	p.print("if")
	p.printSpace()
	p.printParenExpr(t.FirstChild(n))
	p.printSpace()
	p.printBody(t.SecondChild(n))
	if t.ChildCount(n) < 3 {
		return
	}
	els := t.LastChild(n)
	p.printSpace()
	p.print("else")
	p.printSpace()
	if inner := t.FirstChild(els); t.Kind(els) == ast.Block && t.ChildCount(els) == 1 && t.Kind(inner) == ast.If {
		p.printIf(inner)
		return
	}
	p.printBody(els)
}

func (p *Printer) printVar(n ast.NodeID, inFor bool) {
	t := p.tree
	p.print("var")
	for name := t.FirstChild(n); name != ast.NoNode; name = t.Next(name) {
		if name != t.FirstChild(n) {
			p.print(",")
		}
		p.printSpace()
		p.print(t.Text(name))
		if init := t.FirstChild(name); init != ast.NoNode {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printForbiddingIn(init, ops.LAssign, inFor)
		}
	}
}

// printForbiddingIn parenthesizes n when it sits in a for-loop header and
// contains an "in" operator that would be read as a for-in.
func (p *Printer) printForbiddingIn(n ast.NodeID, level int, inFor bool) {
	if inFor && p.tree.ContainsKind(n, ast.In) {
		p.print("(")
		p.printExpr(n, ops.LComma)
		p.print(")")
		return
	}
	p.printExpr(n, level)
}

func (p *Printer) printFor(n ast.NodeID) {
	t := p.tree
	p.print("for")
	p.printSpace()
	p.print("(")
	if t.IsForIn(n) {
		target := t.FirstChild(n)
		if t.Kind(target) == ast.Var {
			p.printVar(target, true)
		} else {
			p.printExpr(target, ops.LMember)
		}
		p.printSpace()
		p.print("in")
		p.printSpace()
		p.printExpr(t.SecondChild(n), ops.LComma)
	} else {
		init := t.FirstChild(n)
		switch t.Kind(init) {
		case ast.Empty:
		case ast.Var:
			p.printVar(init, true)
		default:
			p.printForbiddingIn(init, ops.LComma, true)
		}
		p.print(";")
		if cond := t.SecondChild(n); t.Kind(cond) != ast.Empty {
			p.printSpace()
			p.printExpr(cond, ops.LComma)
		}
		p.print(";")
		if update := t.ChildAt(n, 2); t.Kind(update) != ast.Empty {
			p.printSpace()
			p.printExpr(update, ops.LComma)
		}
	}
	p.print(")")
	p.printSpace()
	p.printBody(t.LastChild(n))
}

func (p *Printer) printSwitch(n ast.NodeID) {
	t := p.tree
	p.print("switch")
	p.printSpace()
	p.printParenExpr(t.FirstChild(n))
	p.printSpace()
	p.print("{")
	p.printNewline()
	p.indent++
	for c := t.SecondChild(n); c != ast.NoNode; c = t.Next(c) {
		p.printIndent()
		if t.Kind(c) == ast.Case {
			p.print("case")
			p.printSpace()
			p.printExpr(t.FirstChild(c), ops.LComma)
		} else {
			p.print("default")
		}
		p.print(":")
		p.printNewline()
		p.indent++
		p.printStatements(t.LastChild(c))
		p.indent--
	}
	p.indent--
	p.printIndent()
	p.print("}")
}

func (p *Printer) printTry(n ast.NodeID) {
	t := p.tree
	p.print("try")
	p.printSpace()
	p.printBlock(t.FirstChild(n))
	if catch := t.FirstChild(t.CatchBlock(n)); catch != ast.NoNode {
		p.printSpace()
		p.print("catch")
		p.printSpace()
		p.print("(")
		p.print(t.Text(t.FirstChild(catch)))
		p.print(")")
		p.printSpace()
		p.printBlock(t.LastChild(catch))
	}
	if t.HasFinally(n) {
		p.printSpace()
		p.print("finally")
		p.printSpace()
		p.printBlock(t.LastChild(n))
	}
}

func (p *Printer) printFunction(n ast.NodeID) {
	t := p.tree
	p.print("function")
	if name := t.Text(t.FirstChild(n)); name != "" {
		p.printSpace()
		p.print(name)
	}
	p.printParams(t.SecondChild(n))
	p.printSpace()
	p.printBlock(t.LastChild(n))
}

func (p *Printer) printParams(params ast.NodeID) {
	t := p.tree
	p.print("(")
	for c := t.FirstChild(params); c != ast.NoNode; c = t.Next(c) {
		if c != t.FirstChild(params) {
			p.print(",")
			p.printSpace()
		}
		p.print(t.Text(c))
	}
	p.print(")")
}

// startsWithBrace reports whether an expression statement would begin with
// "function" or "{", which would be read as a declaration or a block.
func (p *Printer) startsWithBrace(n ast.NodeID) bool {
	t := p.tree
	for {
		k := t.Kind(n)
		switch {
		case k == ast.Function, k == ast.ObjectLit:
			return true
		case k == ast.Call, k == ast.GetProp, k == ast.GetElem, k == ast.Hook:
			n = t.FirstChild(n)
		case (k == ast.Inc || k == ast.Dec) && t.HasFlag(n, ast.FlagPostfix):
			n = t.FirstChild(n)
		case t.ChildCount(n) == 2 && isOperator(k):
			n = t.FirstChild(n)
		default:
			return false
		}
	}
}

func isOperator(k ast.Kind) bool {
	_, ok := ops.OpStringOK(k)
	return ok
}

// ----------------------------------------------------------------------------
// Expression Printing
// ----------------------------------------------------------------------------

// printExpr prints n, wrapped in parentheses when it binds more loosely
// than level.
func (p *Printer) printExpr(n ast.NodeID, level int) {
	t := p.tree
	k := t.Kind(n)
	p.mark(n)
	if k == ast.Number {
		p.printNumber(n, level)
		return
	}

	wrap := ops.Precedence(k) < level
	if wrap {
		p.print("(")
	}

	switch k {
	case ast.Name:
		p.print(t.Text(n))

	case ast.This:
		p.print("this")

	case ast.True:
		p.print("true")

	case ast.False:
		p.print("false")

	case ast.Null:
		p.print("null")

	case ast.String:
		p.print(quoteString(t.Text(n)))

	case ast.RegExp:
		p.print("/" + t.Text(t.FirstChild(n)) + "/")
		if t.ChildCount(n) == 2 {
			p.print(t.Text(t.LastChild(n)))
		}

	case ast.Empty:
		if p.pending == n {
			p.pending = ast.NoNode
		}

	case ast.ArrayLit:
		p.printArray(n)

	case ast.ObjectLit:
		p.printObject(n)

	case ast.Function:
		p.printFunction(n)

	case ast.GetProp:
		obj := t.FirstChild(n)
		if p.isBareInteger(obj) {
			p.printNumber(obj, ops.LMember)
			p.print(".")
		} else {
			p.printExpr(obj, ops.LMember)
		}
		prop := t.Text(t.LastChild(n))
		if isIdentifierName(prop) {
			p.print(".")
			p.print(prop)
		} else {
			p.print("[")
			p.print(quoteString(prop))
			p.print("]")
		}

	case ast.GetElem:
		p.printExpr(t.FirstChild(n), ops.LMember)
		p.print("[")
		p.printExpr(t.LastChild(n), ops.LComma)
		p.print("]")

	case ast.Call:
		p.printExpr(t.FirstChild(n), ops.LMember)
		p.printArgs(t.Next(t.FirstChild(n)))

	case ast.New:
		p.print("new")
		callee := t.FirstChild(n)
		if p.calleeHasCall(callee) {
			p.print("(")
			p.printExpr(callee, ops.LComma)
			p.print(")")
		} else {
			p.printExpr(callee, ops.LMember)
		}
		p.printArgs(t.Next(callee))

	case ast.Hook:
		p.printExpr(t.FirstChild(n), ops.LLogicalOr)
		p.printSpace()
		p.print("?")
		p.printSpace()
		p.printExpr(t.SecondChild(n), ops.LAssign)
		p.printSpace()
		p.print(":")
		p.printSpace()
		p.printExpr(t.LastChild(n), ops.LAssign)

	case ast.Inc, ast.Dec:
		if t.HasFlag(n, ast.FlagPostfix) {
			p.printExpr(t.FirstChild(n), ops.LMember)
			p.print(ops.OpString(k))
		} else {
			p.print(ops.OpString(k))
			p.printExpr(t.FirstChild(n), ops.LPrefix)
		}

	case ast.Not, ast.Neg, ast.Pos, ast.BitNot, ast.Typeof, ast.Void, ast.DelProp:
		p.print(ops.OpString(k))
		p.printExpr(t.FirstChild(n), ops.LPrefix)

	case ast.Comma:
		p.printExpr(t.FirstChild(n), ops.LComma)
		p.print(",")
		p.printSpace()
		p.printExpr(t.LastChild(n), ops.LAssign)

	default:
		p.printBinary(n)
	}

	if wrap {
		p.print(")")
	}
}

func (p *Printer) printBinary(n ast.NodeID) {
	t := p.tree
	k := t.Kind(n)
	prec := ops.Precedence(k)
	left, right := prec, prec+1
	if ops.IsRightAssociative(k) {
		left, right = prec+1, prec
	}
	p.printExpr(t.FirstChild(n), left)
	p.printSpace()
	p.print(ops.OpString(k))
	p.printSpace()
	p.printExpr(t.LastChild(n), right)
}

func (p *Printer) printArgs(first ast.NodeID) {
	t := p.tree
	p.print("(")
	for c := first; c != ast.NoNode; c = t.Next(c) {
		if c != first {
			p.print(",")
			p.printSpace()
		}
		p.printExpr(c, ops.LAssign)
	}
	p.print(")")
}

// calleeHasCall reports whether a NEW callee contains a call on its member
// chain, which would otherwise take the NEW's arguments.
func (p *Printer) calleeHasCall(n ast.NodeID) bool {
	t := p.tree
	for {
		switch t.Kind(n) {
		case ast.Call:
			return true
		case ast.GetProp, ast.GetElem:
			n = t.FirstChild(n)
		default:
			return false
		}
	}
}

func (p *Printer) printArray(n ast.NodeID) {
	t := p.tree
	p.print("[")
	for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
		if c != t.FirstChild(n) {
			p.print(",")
			if t.Kind(c) != ast.Empty {
				p.printSpace()
			}
		}
		p.printExpr(c, ops.LAssign)
	}
	if t.Kind(t.LastChild(n)) == ast.Empty {
		p.print(",")
	}
	p.print("]")
}

func (p *Printer) printObject(n ast.NodeID) {
	t := p.tree
	p.print("{")
	for c := t.FirstChild(n); c != ast.NoNode; c = t.Next(c) {
		if c != t.FirstChild(n) {
			p.print(",")
			p.printSpace()
		}
		value := t.FirstChild(c)
		switch t.Kind(c) {
		case ast.GetterDef, ast.SetterDef:
			if t.Kind(c) == ast.GetterDef {
				p.print("get")
			} else {
				p.print("set")
			}
			p.printSpace()
			p.printKey(t.Text(c))
			p.printParams(t.SecondChild(value))
			p.printSpace()
			p.printBlock(t.LastChild(value))
		default:
			p.printKey(t.Text(c))
			p.print(":")
			p.printSpace()
			p.printExpr(value, ops.LAssign)
		}
	}
	p.print("}")
}

func (p *Printer) printKey(key string) {
	switch {
	case isIdentifierName(key):
		p.print(key)
	case isCanonicalNumber(key):
		p.print(key)
	default:
		p.print(quoteString(key))
	}
}

// ----------------------------------------------------------------------------
// Literals
// ----------------------------------------------------------------------------

func (p *Printer) printNumber(n ast.NodeID, level int) {
	v := p.tree.Number(n)
	var text string
	prec := ops.LMember
	switch {
	case math.IsNaN(v):
		text, prec = "0/0", ops.LMultiply
	case math.IsInf(v, 1):
		text, prec = "1/0", ops.LMultiply
	case math.IsInf(v, -1):
		text, prec = "-1/0", ops.LMultiply
	case v < 0 || math.Signbit(v):
		text, prec = "-"+p.numberText(-v), ops.LPrefix
	default:
		text = p.numberText(v)
	}
	if prec < level {
		p.print("(" + text + ")")
		return
	}
	p.print(text)
}

func (p *Printer) numberText(v float64) string {
	s := analysis.FormatNumber(v)
	if p.options.MinifySyntax {
		s = optimizeNumericLiteral(s)
	}
	return s
}

// isBareInteger reports whether n prints as digits only, so a following
// "." would be read as a decimal point.
func (p *Printer) isBareInteger(n ast.NodeID) bool {
	t := p.tree
	if t.Kind(n) != ast.Number {
		return false
	}
	v := t.Number(n)
	if v < 0 || math.Signbit(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return false
	}
	s := p.numberText(v)
	return strings.Trim(s, "0123456789") == ""
}

// quoteString quotes s with whichever quote character needs fewer escapes.
func quoteString(s string) string {
	quote := byte('"')
	if strings.Count(s, `"`) > strings.Count(s, "'") {
		quote = '\''
	}

	var sb strings.Builder
	sb.WriteByte(quote)
	for i, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		case rune(quote):
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case utf8.RuneError:
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				sb.WriteString(`\ufffd`)
				continue
			}
			sb.WriteRune(r)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\x`)
				sb.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				sb.WriteString(strconv.FormatInt(int64(r)&0xf, 16))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// isIdentifierName reports whether s can be written as a bare property name.
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '$' || r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
			unicode.Is(unicode.Pc, r) || r == '\u200c' || r == '\u200d'):
		default:
			return false
		}
	}
	return true
}

// isCanonicalNumber reports whether key is the spelling JavaScript gives a
// number, so printing it bare names the same property.
func isCanonicalNumber(key string) bool {
	if key == "" || key[0] == '-' {
		return false
	}
	v, ok := analysis.StringToNumber(key)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return analysis.FormatNumber(v) == key
}

// ----------------------------------------------------------------------------
// Minification Helpers
// ----------------------------------------------------------------------------

// optimizeNumericLiteral shortens a number spelling:
// - 0.5 -> .5
// - 1e+21 -> 1e21
// - 1000000 -> 1e6
func optimizeNumericLiteral(value string) string {
	if strings.HasPrefix(value, "0.") {
		return value[1:]
	}
	if i := strings.Index(value, "e+"); i >= 0 {
		return value[:i+1] + value[i+2:]
	}
	if strings.ContainsAny(value, ".e") {
		return value
	}
	zeros := len(value) - len(strings.TrimRight(value, "0"))
	if zeros >= 3 {
		return value[:len(value)-zeros] + "e" + strconv.Itoa(zeros)
	}
	return value
}
