package frontend

import (
	"fmt"
	"strings"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/diagnostic"

	"github.com/dlclark/regexp2"
	js "github.com/robertkrimen/otto/ast"
)

// ----------------------------------------------------------------------------
// Regular Expression Literals
// ----------------------------------------------------------------------------

// checkRegExp compiles a literal with the ECMAScript dialect of regexp2.
// Problems are reported as warnings and the literal is kept unchanged.
func (c *converter) checkRegExp(e *js.RegExpLiteral) {
	opts, bad := regExpOptions(e.Flags)
	offset := c.offset(e.Idx)
	if bad != "" {
		c.prog.Diagnostics.AddWarning(offset, diagnostic.CodeInvalidRegExp,
			fmt.Sprintf("invalid regular expression flags %q in /%s/%s", bad, e.Pattern, e.Flags))
		return
	}
	if _, err := regexp2.Compile(e.Pattern, opts); err != nil {
		c.prog.Diagnostics.AddWarning(offset, diagnostic.CodeInvalidRegExp,
			fmt.Sprintf("invalid regular expression /%s/: %v", e.Pattern, err))
	}
}

// regExpOptions maps literal flags to regexp2 options. Unknown or repeated
// flags are returned in bad.
func regExpOptions(flags string) (opts regexp2.RegexOptions, bad string) {
	opts = regexp2.ECMAScript
	seen := ""
	for _, f := range flags {
		if strings.ContainsRune(seen, f) {
			bad += string(f)
			continue
		}
		seen += string(f)
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 'g':
		default:
			bad += string(f)
		}
	}
	return opts, bad
}

// ----------------------------------------------------------------------------
// Global Match State
// ----------------------------------------------------------------------------

// regExpStateProperties are the legacy static properties of RegExp that
// expose the result of the last successful match.
var regExpStateProperties = map[string]bool{
	"$1": true, "$2": true, "$3": true, "$4": true, "$5": true,
	"$6": true, "$7": true, "$8": true, "$9": true,
	"input": true, "$_": true,
	"lastMatch": true, "$&": true,
	"lastParen": true, "$+": true,
	"leftContext": true, "$`": true,
	"rightContext": true, "$'": true,
	"multiline": true, "$*": true,
}

// ScanRegExpGlobalReferences reports whether code under root may observe
// the global match state updated by regular expression methods. Reading a
// state property of RegExp counts, and so does any use of the name RegExp
// other than calling it, constructing with it, testing instanceof against
// it, comparing it, or reading an unrelated property, since an alias could
// read the state later.
func ScanRegExpGlobalReferences(t *ast.Tree, root ast.NodeID) bool {
	found := false
	t.VisitPreOrder(root, func(n ast.NodeID) bool {
		if found {
			return false
		}
		if t.Kind(n) == ast.Name && t.Text(n) == "RegExp" && !t.HasChildren(n) {
			found = regExpReferenceEscapes(t, n)
		}
		return !found
	})
	return found
}

func regExpReferenceEscapes(t *ast.Tree, n ast.NodeID) bool {
	parent := t.Parent(n)
	first := t.FirstChild(parent) == n
	switch t.Kind(parent) {
	case ast.New, ast.Call:
		return !first
	case ast.Instanceof:
		return first
	case ast.Eq, ast.Ne, ast.Sheq, ast.Shne, ast.Case:
		return false
	case ast.GetProp:
		return first && regExpStateProperties[t.Text(t.LastChild(parent))]
	case ast.GetElem:
		if !first {
			return true
		}
		key := t.LastChild(parent)
		return t.Kind(key) != ast.String || regExpStateProperties[t.Text(key)]
	case ast.Var, ast.Function, ast.ParamList, ast.Catch:
		// A declaration shadows the global.
		return false
	}
	return true
}
