// Package frontend reads JavaScript source into an ast.Tree.
//
// Parsing is delegated to the otto parser. The converter then rewrites the
// otto syntax tree into the arena representation the analysis and fold
// packages work on, validates regular expression literals against the
// ECMAScript dialect of regexp2, and records the JSDoc side-effect
// annotations found in the source.
package frontend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/diagnostic"

	"github.com/robertkrimen/otto/parser"
)

// ErrSyntax is wrapped by every error caused by malformed source.
var ErrSyntax = errors.New("syntax error")

// Options configures Parse.
type Options struct {
	// Convention flags constant names. Nil flags nothing.
	Convention ast.ConstantConvention

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Program is a parsed source file.
type Program struct {
	Filename    string
	Source      string
	Tree        *ast.Tree
	Root        ast.NodeID
	Diagnostics *diagnostic.List

	// RegexGlobals is set when some code may read the legacy RegExp match
	// state, such as RegExp.$1.
	RegexGlobals bool

	// Annotations maps a function name to the effects declared in its
	// JSDoc. Method names from prototype assignments are stored with a
	// leading ".".
	Annotations map[string]ast.CallEffects
}

// Parse parses source with default options.
func Parse(filename, source string) (*Program, error) {
	return ParseWith(filename, source, Options{})
}

// ParseWith parses source into a Program. Malformed source returns an
// error wrapping ErrSyntax.
func ParseWith(filename, source string, opts Options) (*Program, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	parsed, err := parser.ParseFile(nil, filename, source, parser.IgnoreRegExpErrors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	p := &Program{
		Filename:    filename,
		Source:      source,
		Tree:        ast.NewTree(),
		Diagnostics: diagnostic.NewList(source),
		Annotations: make(map[string]ast.CallEffects),
	}
	c := &converter{
		prog: p,
		tree: p.Tree,
		base: parsed.File.Base(),
		conv: opts.Convention,
	}
	if c.base == 0 {
		c.base = 1
	}
	p.Root = c.script(parsed)
	p.RegexGlobals = ScanRegExpGlobalReferences(p.Tree, p.Root)

	logger.Debug("parsed",
		slog.String("file", filename),
		slog.Int("nodes", p.Tree.Len()),
		slog.Int("annotations", len(p.Annotations)),
		slog.Bool("regexGlobals", p.RegexGlobals),
		slog.Int("diagnostics", p.Diagnostics.Count()))
	return p, nil
}
