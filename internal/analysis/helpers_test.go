package analysis

import (
	"testing"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/frontend"
)

// ----------------------------------------------------------------------------
// Test Helpers
// ----------------------------------------------------------------------------

var noRegexGlobals = StaticContext{RegexGlobals: false}

func parse(t *testing.T, src string) *frontend.Program {
	t.Helper()
	p, err := frontend.Parse("test.js", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return p
}

// parseExpr parses src as a parenthesized expression statement and
// returns an analyzer over it and the expression.
func parseExpr(t *testing.T, src string) (*Analyzer, ast.NodeID) {
	t.Helper()
	p := parse(t, "("+src+");")
	stmt := p.Tree.FirstChild(p.Root)
	if p.Tree.Kind(stmt) != ast.ExprResult {
		t.Fatalf("%q: expected an expression statement, got %s", src, p.Tree.Kind(stmt))
	}
	return New(p.Tree, noRegexGlobals, nil), p.Tree.FirstChild(stmt)
}

// parseStmt parses src and returns the analyzer and the first statement.
func parseStmt(t *testing.T, src string) (*Analyzer, ast.NodeID) {
	t.Helper()
	p := parse(t, src)
	return New(p.Tree, noRegexGlobals, nil), p.Tree.FirstChild(p.Root)
}

// findName returns the first NAME spelled name under root in source order.
func findName(tr *ast.Tree, root ast.NodeID, name string) ast.NodeID {
	found := ast.NoNode
	tr.VisitPreOrder(root, func(n ast.NodeID) bool {
		if found != ast.NoNode {
			return false
		}
		if tr.Kind(n) == ast.Name && tr.Text(n) == name {
			found = n
			return false
		}
		return true
	})
	return found
}
