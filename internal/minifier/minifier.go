// Package minifier provides the main optimization API.
//
// It coordinates parsing, annotation, analysis, folding and printing to
// produce optimized JavaScript output, and reports the analysis facts the
// folding decisions are based on.
package minifier

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/HugoDaniel/minijs/internal/analysis"
	"github.com/HugoDaniel/minijs/internal/ast"
	"github.com/HugoDaniel/minijs/internal/convention"
	"github.com/HugoDaniel/minijs/internal/diagnostic"
	"github.com/HugoDaniel/minijs/internal/fold"
	"github.com/HugoDaniel/minijs/internal/frontend"
	"github.com/HugoDaniel/minijs/internal/printer"
	"github.com/HugoDaniel/minijs/internal/sourcemap"
)

// Options controls optimization behavior.
type Options struct {
	// MinifyWhitespace removes unnecessary whitespace and newlines
	MinifyWhitespace bool

	// MinifySyntax prints shorter literal spellings
	MinifySyntax bool

	// Passes names the fold passes to run. Nil runs all of them, an empty
	// non-nil slice disables folding.
	Passes []string

	// Convention names the coding convention: "default" or "closure"
	Convention string

	// ConstantNames are names treated as constants on top of the convention
	ConstantNames []string

	// PureFunctions and PureConstructors extend the built-in pure tables.
	// Calls of PureFunctions are also annotated as side-effect free.
	PureFunctions    []string
	PureConstructors []string

	// AssumeRegexGlobals treats the legacy RegExp match state as read
	AssumeRegexGlobals bool

	// MaxIterations caps the fold rounds (0 selects the fold default)
	MaxIterations int

	// Filename is used in diagnostics and as the source map source
	Filename string

	// SourceMap generates a source map for the printed code
	SourceMap bool

	// OutputFile is recorded as the source map "file"
	OutputFile string

	// SourcesContent embeds the original source in the source map
	SourcesContent bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultOptions returns options for maximum optimization.
func DefaultOptions() Options {
	return Options{
		MinifyWhitespace: true,
		MinifySyntax:     true,
		Convention:       "default",
		Filename:         "input.js",
	}
}

// Result contains the optimization output.
type Result struct {
	// Optimized JavaScript code
	Code string

	// Warnings and errors reported along the way
	Diagnostics []diagnostic.Diagnostic

	// Source map of Code, when requested
	SourceMap *sourcemap.SourceMap

	// Statistics about the optimization
	Stats Stats
}

// Stats provides optimization statistics.
type Stats struct {
	OriginalSize int
	MinifiedSize int
	Nodes        int
	Annotated    int // Call sites given effects from JSDoc or PureFunctions
	RegexGlobals bool
	Fold         fold.Stats
}

// StepError reports a pipeline step that failed. Contract violations
// raised inside the step are wrapped, so errors.Is(err, ast.ErrContract)
// holds for them.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Minifier performs JavaScript optimization.
type Minifier struct {
	options Options
	logger  *slog.Logger
}

// New creates a new minifier with the given options.
func New(options Options) *Minifier {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.Filename == "" {
		options.Filename = "input.js"
	}
	return &Minifier{options: options, logger: logger}
}

// step runs fn, turning a ContractError panic into a StepError. Other
// panics propagate.
func (m *Minifier) step(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ast.ContractError)
			if !ok {
				panic(r)
			}
			m.logger.Debug("contract violation", slog.String("step", name), slog.String("error", ce.Error()))
			err = &StepError{Step: name, Err: ce}
		}
	}()
	if e := fn(); e != nil {
		return &StepError{Step: name, Err: e}
	}
	return nil
}

// session is one parsed and annotated program with its analyzer.
type session struct {
	prog     *frontend.Program
	analyzer *analysis.Analyzer
	stats    Stats
}

func (m *Minifier) prepare(source string) (*session, error) {
	for _, name := range m.options.Passes {
		if _, err := fold.Lookup(name); err != nil {
			return nil, err
		}
	}
	base, err := convention.ByName(m.options.Convention)
	if err != nil {
		return nil, err
	}
	conv := convention.NewSet(base, m.options.ConstantNames...)

	prog, err := frontend.ParseWith(m.options.Filename, source, frontend.Options{
		Convention: conv,
		Logger:     m.logger,
	})
	if err != nil {
		return nil, err
	}

	s := &session{prog: prog}
	s.stats.OriginalSize = len(source)
	s.stats.RegexGlobals = prog.RegexGlobals || m.options.AssumeRegexGlobals

	err = m.step("annotate", func() error {
		s.stats.Annotated = frontend.Annotate(prog, m.options.PureFunctions)
		return nil
	})
	if err != nil {
		return nil, err
	}

	tables := analysis.DefaultTables().With(analysis.Extension{
		Functions:    m.options.PureFunctions,
		Constructors: m.options.PureConstructors,
	})
	s.analyzer = analysis.New(prog.Tree, analysis.StaticContext{RegexGlobals: s.stats.RegexGlobals}, tables)
	return s, nil
}

// Optimize parses source, folds it and prints the result. On a syntax
// error the original source is returned as Code. When folding fails, the
// tree is printed as far as it was folded and the fold error is returned
// alongside the result.
func (m *Minifier) Optimize(source string) (*Result, error) {
	s, err := m.prepare(source)
	if err != nil {
		return &Result{Code: source, Stats: Stats{OriginalSize: len(source), MinifiedSize: len(source)}}, err
	}
	prog := s.prog
	result := &Result{}

	var errs []error
	foldErr := m.step("fold", func() error {
		stats, err := fold.Run(s.analyzer, prog.Root, fold.Options{
			Passes:        m.options.Passes,
			MaxIterations: m.options.MaxIterations,
			Logger:        m.logger,
		})
		s.stats.Fold = stats
		if err != nil {
			return err
		}
		if !stats.Converged {
			prog.Diagnostics.AddWarning(-1, diagnostic.CodeNoFixedPoint,
				fmt.Sprintf("folding did not settle after %d rounds", stats.Iterations))
		}
		return nil
	})
	if foldErr != nil {
		prog.Diagnostics.AddError(-1, diagnostic.CodeContract, foldErr.Error())
		errs = append(errs, foldErr)
	}

	if err := m.step("validate", func() error { return prog.Tree.Validate(prog.Root) }); err != nil {
		return &Result{Code: source, Diagnostics: prog.Diagnostics.Diagnostics(), Stats: s.stats}, errors.Join(append(errs, err)...)
	}

	var gen *sourcemap.Generator
	if m.options.SourceMap {
		gen = sourcemap.NewGenerator(source)
		gen.SetFile(m.options.OutputFile)
		gen.SetSourceName(m.options.Filename)
		gen.IncludeSourceContent(m.options.SourcesContent)
	}
	err = m.step("print", func() error {
		result.Code = printer.Print(prog.Tree, prog.Root, printer.Options{
			MinifyWhitespace: m.options.MinifyWhitespace,
			MinifySyntax:     m.options.MinifySyntax,
			SourceMap:        gen,
		})
		return nil
	})
	if err != nil {
		result.Code = source
		errs = append(errs, err)
	} else if gen != nil {
		result.SourceMap = gen.Generate()
	}

	s.stats.MinifiedSize = len(result.Code)
	s.stats.Nodes = prog.Tree.Len()
	result.Stats = s.stats
	result.Diagnostics = prog.Diagnostics.Diagnostics()

	m.logger.Debug("optimized",
		slog.String("file", m.options.Filename),
		slog.Int("originalSize", s.stats.OriginalSize),
		slog.Int("minifiedSize", s.stats.MinifiedSize),
		slog.Int("foldRounds", s.stats.Fold.Iterations),
		slog.Int("foldEdits", s.stats.Fold.Total()))
	return result, errors.Join(errs...)
}

// Optimize is a convenience function using default options.
func Optimize(source string) (*Result, error) {
	return New(DefaultOptions()).Optimize(source)
}
