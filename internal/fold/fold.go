// Package fold implements tree-rewriting passes for JavaScript programs.
//
// Every pass is built only on the analysis queries and the structural
// mutation primitives of the ast package. A pass:
// 1. Collects candidate nodes in a single walk
// 2. Re-checks each candidate, since an earlier edit may have moved it
// 3. Edits the tree with RemoveChild, ReplaceChild or TryMergeBlock
//
// Run repeats the enabled passes until the tree stops changing.
package fold

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/HugoDaniel/minijs/internal/analysis"
	"github.com/HugoDaniel/minijs/internal/ast"

	"github.com/zeebo/xxh3"
)

// ErrUnknownPass is returned by Run and Lookup for a pass name that does
// not exist.
var ErrUnknownPass = errors.New("unknown pass")

// DefaultMaxIterations bounds Run when Options.MaxIterations is zero.
const DefaultMaxIterations = 10

// Pass is a named rewrite. Apply returns the number of edits it made.
type Pass struct {
	Name  string
	Apply func(a *analysis.Analyzer, root ast.NodeID) int
}

var passes = []Pass{
	{"removeUselessStatements", RemoveUselessStatements},
	{"simplifyCommas", SimplifyCommas},
	{"foldConditions", FoldConditions},
	{"pruneTry", PruneTry},
	{"mergeBlocks", MergeBlocks},
}

// Passes returns every pass in the order Run applies them.
func Passes() []Pass {
	out := make([]Pass, len(passes))
	copy(out, passes)
	return out
}

// PassNames lists the names accepted by Lookup.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a pass by name.
func Lookup(name string) (Pass, error) {
	for _, p := range passes {
		if p.Name == name {
			return p, nil
		}
	}
	return Pass{}, fmt.Errorf("%w: %q", ErrUnknownPass, name)
}

// Options configures Run.
type Options struct {
	// Passes names the passes to run. Nil runs all of them; an empty
	// non-nil slice runs none.
	Passes []string

	// MaxIterations caps the number of rounds. Zero selects
	// DefaultMaxIterations.
	MaxIterations int

	// Logger receives one debug record per round. Nil discards it.
	Logger *slog.Logger
}

// Stats reports what Run did.
type Stats struct {
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	Edits      map[string]int `json:"edits,omitempty"`
}

// Total returns the number of edits across all passes.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Edits {
		total += n
	}
	return total
}

// Run applies the selected passes to the tree under root, round after
// round, until a round leaves the tree unchanged or the iteration cap is
// reached. A round is unchanged when the xxh3 hash of the tree dump is the
// same before and after it.
func Run(a *analysis.Analyzer, root ast.NodeID, opts Options) (Stats, error) {
	selected := passes
	if opts.Passes != nil {
		selected = make([]Pass, 0, len(opts.Passes))
		for _, name := range opts.Passes {
			p, err := Lookup(name)
			if err != nil {
				return Stats{}, err
			}
			selected = append(selected, p)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limit := opts.MaxIterations
	if limit <= 0 {
		limit = DefaultMaxIterations
	}

	t := a.Tree()
	stats := Stats{Edits: make(map[string]int)}
	if len(selected) == 0 {
		stats.Converged = true
		return stats, nil
	}

	before := xxh3.HashString(t.Dump(root))
	for stats.Iterations < limit {
		stats.Iterations++
		round := 0
		for _, p := range selected {
			n := p.Apply(a, root)
			stats.Edits[p.Name] += n
			round += n
		}
		after := xxh3.HashString(t.Dump(root))
		logger.Debug("fold round",
			slog.Int("round", stats.Iterations),
			slog.Int("edits", round),
			slog.Uint64("hash", after))
		if after == before {
			stats.Converged = true
			break
		}
		before = after
	}
	return stats, nil
}

// attached reports whether n still hangs under root.
func attached(t *ast.Tree, root, n ast.NodeID) bool {
	for ; n != ast.NoNode; n = t.Parent(n) {
		if n == root {
			return true
		}
	}
	return false
}

func collect(t *ast.Tree, root ast.NodeID, match func(ast.NodeID) bool) []ast.NodeID {
	var out []ast.NodeID
	t.VisitPostOrder(root, func(n ast.NodeID) {
		if match(n) {
			out = append(out, n)
		}
	})
	return out
}

// removeStatement drops stmt from its parent, leaving an empty block where
// the parent needs a statement.
func removeStatement(t *ast.Tree, stmt ast.NodeID) {
	parent := t.Parent(stmt)
	if t.IsStatementBlock(parent) {
		t.RemoveChild(parent, stmt)
		return
	}
	t.ReplaceChild(parent, stmt, t.CopyLoc(t.NewBlock(), stmt))
}
