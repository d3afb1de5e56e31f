// Package api provides the public API for the JavaScript optimizer.
//
// This package is intended for programmatic use of the optimizer.
// For CLI usage, see cmd/minijs.
package api

import (
	"log/slog"

	"github.com/HugoDaniel/minijs/internal/diagnostic"
	"github.com/HugoDaniel/minijs/internal/fold"
	"github.com/HugoDaniel/minijs/internal/minifier"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Options controls optimization and analysis.
type Options struct {
	// MinifyWhitespace removes unnecessary whitespace and newlines.
	MinifyWhitespace bool `json:"minifyWhitespace"`

	// MinifySyntax prints shorter literal spellings, such as .5 for 0.5.
	MinifySyntax bool `json:"minifySyntax"`

	// Passes names the fold passes to run. Nil runs all of them, an empty
	// list disables folding.
	Passes []string `json:"passes"`

	// Convention is "default", "closure" or "google". Empty selects
	// "default".
	Convention string `json:"convention,omitempty"`

	// ConstantNames are names known never to be reassigned.
	ConstantNames []string `json:"constantNames,omitempty"`

	// PureFunctions and PureConstructors name calls known to be free of
	// side effects.
	PureFunctions    []string `json:"pureFunctions,omitempty"`
	PureConstructors []string `json:"pureConstructors,omitempty"`

	// AssumeRegexGlobals treats RegExp match state as read even when no
	// reference to it is found.
	AssumeRegexGlobals bool `json:"assumeRegexGlobals,omitempty"`

	// MaxIterations caps the fold rounds. Zero selects the default.
	MaxIterations int `json:"maxIterations,omitempty"`

	// Filename is used in diagnostics and as the source map source.
	Filename string `json:"filename,omitempty"`

	// SourceMap requests a Source Map v3 document for the output.
	SourceMap bool `json:"sourceMap,omitempty"`

	// OutputFile is recorded as the source map "file".
	OutputFile string `json:"outputFile,omitempty"`

	// SourcesContent embeds the input in the source map.
	SourcesContent bool `json:"sourcesContent,omitempty"`

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger `json:"-"`
}

// DefaultOptions enables every optimization.
func DefaultOptions() Options {
	return Options{
		MinifyWhitespace: true,
		MinifySyntax:     true,
	}
}

func (o Options) internal() minifier.Options {
	return minifier.Options{
		MinifyWhitespace:   o.MinifyWhitespace,
		MinifySyntax:       o.MinifySyntax,
		Passes:             o.Passes,
		Convention:         o.Convention,
		ConstantNames:      o.ConstantNames,
		PureFunctions:      o.PureFunctions,
		PureConstructors:   o.PureConstructors,
		AssumeRegexGlobals: o.AssumeRegexGlobals,
		MaxIterations:      o.MaxIterations,
		Filename:           o.Filename,
		SourceMap:          o.SourceMap,
		OutputFile:         o.OutputFile,
		SourcesContent:     o.SourcesContent,
		Logger:             o.Logger,
	}
}

// Diagnostic is a positioned warning or error.
type Diagnostic struct {
	// Severity is "error", "warning" or "info".
	Severity string `json:"severity"`

	// Code classifies the diagnostic, for example "invalid-regexp".
	Code string `json:"code"`

	Message string `json:"message"`

	// Line and Column are 1-based. Both are zero when the diagnostic is
	// not tied to a source position.
	Line   int `json:"line"`
	Column int `json:"column"`
}

func convertDiagnostics(ds []diagnostic.Diagnostic) []Diagnostic {
	result := make([]Diagnostic, len(ds))
	for i, d := range ds {
		result[i] = Diagnostic{
			Severity: d.Severity.String(),
			Code:     string(d.Code),
			Message:  d.Message,
			Line:     d.Pos.Line,
			Column:   d.Pos.Column,
		}
	}
	return result
}

// ----------------------------------------------------------------------------
// Optimize
// ----------------------------------------------------------------------------

// OptimizeResult contains the optimization output.
type OptimizeResult struct {
	// Code is the optimized JavaScript. It is the unchanged input when the
	// source could not be parsed.
	Code string `json:"code"`

	// Errors contains any errors encountered during optimization.
	// If non-empty, Code may be unoptimized.
	Errors []string `json:"errors,omitempty"`

	// Diagnostics are the warnings and errors attached to source positions.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// OriginalSize is the size of the input in bytes.
	OriginalSize int `json:"originalSize"`

	// OptimizedSize is the size of the output in bytes.
	OptimizedSize int `json:"optimizedSize"`

	// Fold reports the fixed-point iteration.
	Fold FoldStats `json:"fold"`

	// SourceMap is the source map document, when requested.
	SourceMap jsontext.Value `json:"sourceMap,omitzero"`

	// SourceMapComment is the sourceMappingURL comment with the map
	// inlined as a data URI.
	SourceMapComment string `json:"sourceMapComment,omitempty"`
}

// FoldStats describes the fold fixed-point iteration.
type FoldStats struct {
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	Edits      map[string]int `json:"edits,omitempty"`
}

// Optimize folds source with the given options and prints the result.
func Optimize(source string, opts Options) OptimizeResult {
	result, err := minifier.New(opts.internal()).Optimize(source)

	apiResult := OptimizeResult{
		Code:          source,
		OriginalSize:  len(source),
		OptimizedSize: len(source),
	}
	if result != nil {
		apiResult.Code = result.Code
		apiResult.Diagnostics = convertDiagnostics(result.Diagnostics)
		apiResult.OriginalSize = result.Stats.OriginalSize
		apiResult.OptimizedSize = result.Stats.MinifiedSize
		apiResult.Fold = FoldStats{
			Iterations: result.Stats.Fold.Iterations,
			Converged:  result.Stats.Fold.Converged,
			Edits:      result.Stats.Fold.Edits,
		}
		if sm := result.SourceMap; sm != nil {
			apiResult.SourceMap = jsontext.Value(sm.ToJSON())
			apiResult.SourceMapComment = sm.ToComment(true)
		}
	}
	if err != nil {
		apiResult.Errors = []string{err.Error()}
	}
	return apiResult
}

// Minify optimizes source with DefaultOptions.
func Minify(source string) OptimizeResult {
	return Optimize(source, DefaultOptions())
}

// ----------------------------------------------------------------------------
// Analyze
// ----------------------------------------------------------------------------

// AnalyzeResult contains what is statically known about each top-level
// expression of a program.
type AnalyzeResult struct {
	Facts []Fact `json:"facts"`

	// RegexGlobals is set when the program may read RegExp match state.
	RegexGlobals bool `json:"regexGlobals"`

	// Annotated counts the call sites given effects from JSDoc or
	// PureFunctions.
	Annotated int `json:"annotated"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Errors contains any errors encountered during parsing.
	Errors []string `json:"errors,omitempty"`
}

// Fact describes one top-level expression.
type Fact struct {
	// Expr is the expression as printed source.
	Expr string `json:"expr"`

	// Context names the construct holding the expression: "statement",
	// "condition", "initializer", "update", "iterable", "return", "throw",
	// "switch", "case" or "with".
	Context string `json:"context"`

	Line   int `json:"line"`
	Column int `json:"column"`

	SideEffects  bool `json:"sideEffects"`
	MutableState bool `json:"mutableState"`

	// Boolean is "true", "false" or "unknown".
	Boolean string `json:"boolean"`

	// Number and String are omitted when the value is not statically known.
	Number *string `json:"number,omitempty"`
	String *string `json:"string,omitempty"`

	NumericResult bool `json:"numericResult"`
	BooleanResult bool `json:"booleanResult"`
	MayBeString   bool `json:"mayBeString"`
	LocalValue    bool `json:"localValue"`
	ExecutedOnce  bool `json:"executedOnce"`
	ResultUsed    bool `json:"resultUsed"`

	Error string `json:"error,omitempty"`
}

// Analyze reports facts about source without changing it.
func Analyze(source string, opts Options) AnalyzeResult {
	analysis, err := minifier.New(opts.internal()).Analyze(source)
	if err != nil {
		return AnalyzeResult{Facts: []Fact{}, Errors: []string{err.Error()}}
	}

	facts := make([]Fact, len(analysis.Facts))
	for i, f := range analysis.Facts {
		facts[i] = Fact{
			Expr:          f.Expr,
			Context:       f.Context,
			Line:          f.Pos.Line,
			Column:        f.Pos.Column,
			SideEffects:   f.SideEffects,
			MutableState:  f.MutableState,
			Boolean:       f.Boolean,
			Number:        f.Number,
			String:        f.String,
			NumericResult: f.NumericResult,
			BooleanResult: f.BooleanResult,
			MayBeString:   f.MayBeString,
			LocalValue:    f.LocalValue,
			ExecutedOnce:  f.ExecutedOnce,
			ResultUsed:    f.ResultUsed,
			Error:         f.Error,
		}
	}
	return AnalyzeResult{
		Facts:        facts,
		RegexGlobals: analysis.RegexGlobals,
		Annotated:    analysis.Annotated,
		Diagnostics:  convertDiagnostics(analysis.Diagnostics),
	}
}

// ----------------------------------------------------------------------------
// Encoding
// ----------------------------------------------------------------------------

// Passes lists the fold pass names in the order they run.
func Passes() []string {
	return fold.PassNames()
}

// MarshalJSON renders v with a stable member order. Indented output is
// used when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "))
	}
	return json.Marshal(v, json.Deterministic(true))
}
