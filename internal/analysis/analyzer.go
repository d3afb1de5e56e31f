// Package analysis answers the questions an optimizer asks before it
// rewrites code: does evaluating an expression change program state, what
// is its statically known value, is its result used, and does it run
// exactly once.
//
// Every answer is local, syntactic and conservative. When a question
// cannot be decided the result is tristate.Unknown, or false in the second
// result of the (value, ok) forms. No query modifies the tree.
package analysis

import "github.com/HugoDaniel/minijs/internal/ast"

// CompilationContext is the whole-program oracle consulted by the purity
// queries.
type CompilationContext interface {
	// HasGlobalRegexReferences reports whether any code reads the legacy
	// global match state (RegExp.$1, RegExp.lastMatch and friends). When it
	// does, regex test/exec and string match/replace/search/split are
	// effectful because they update that state.
	HasGlobalRegexReferences() bool
}

// StaticContext is a CompilationContext with a precomputed answer.
type StaticContext struct {
	RegexGlobals bool
}

func (c StaticContext) HasGlobalRegexReferences() bool {
	return c.RegexGlobals
}

// Analyzer runs queries over one tree. It holds no mutable state, so it can
// be reused across passes as long as the tree is not edited concurrently.
type Analyzer struct {
	tree   *ast.Tree
	ctx    CompilationContext
	tables *Tables
}

// New creates an analyzer. A nil ctx assumes global regex state is
// referenced; nil tables selects DefaultTables.
func New(tree *ast.Tree, ctx CompilationContext, tables *Tables) *Analyzer {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Analyzer{tree: tree, ctx: ctx, tables: tables}
}

// Tree returns the tree under analysis.
func (a *Analyzer) Tree() *ast.Tree {
	return a.tree
}

// Tables returns the pure-call tables in use.
func (a *Analyzer) Tables() *Tables {
	return a.tables
}

func (a *Analyzer) regexGlobalsFree() bool {
	return a.ctx != nil && !a.ctx.HasGlobalRegexReferences()
}
