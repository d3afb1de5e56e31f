// Package diagnostic collects the warnings and errors produced while
// reading and transforming a JavaScript source.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error stops the current pipeline step.
	Error Severity = iota
	// Warning is a non-blocking issue.
	Warning
	// Info is an informational message.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Position represents a position in source code.
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Position
}

// Error returns a formatted error string.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}

// Code classifies a diagnostic for filtering and tests.
type Code string

const (
	CodeSyntax        Code = "syntax"
	CodeInvalidRegExp Code = "invalid-regexp"
	CodeUnsupported   Code = "unsupported"
	CodeContract      Code = "contract"
	CodeNoFixedPoint  Code = "no-fixed-point"
)

// List collects diagnostics for one source.
type List struct {
	diagnostics []Diagnostic
	lineIndex   *LineIndex
	source      string
	hasErrors   bool
}

// NewList creates a new diagnostic list for the given source.
func NewList(source string) *List {
	return &List{
		lineIndex: NewLineIndex(source),
		source:    source,
	}
}

// Add adds a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)
	if d.Severity == Error {
		l.hasErrors = true
	}
}

// AddError adds an error diagnostic at the given byte offset.
func (l *List) AddError(offset int, code Code, message string) {
	l.Add(Diagnostic{Severity: Error, Code: code, Message: message, Pos: l.MakePosition(offset)})
}

// AddWarning adds a warning diagnostic at the given byte offset.
func (l *List) AddWarning(offset int, code Code, message string) {
	l.Add(Diagnostic{Severity: Warning, Code: code, Message: message, Pos: l.MakePosition(offset)})
}

// MakePosition converts a byte offset to a Position. Negative offsets
// produce the zero position.
func (l *List) MakePosition(offset int) Position {
	if offset < 0 {
		return Position{Offset: -1}
	}
	line, col := l.lineIndex.ByteOffsetToLineColumn(offset)
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: col + 1,
	}
}

// HasErrors returns true if there are any error-level diagnostics.
func (l *List) HasErrors() bool {
	return l.hasErrors
}

// Diagnostics returns all collected diagnostics.
func (l *List) Diagnostics() []Diagnostic {
	return l.diagnostics
}

// Warnings returns only warning-level diagnostics.
func (l *List) Warnings() []Diagnostic {
	var warnings []Diagnostic
	for _, d := range l.diagnostics {
		if d.Severity == Warning {
			warnings = append(warnings, d)
		}
	}
	return warnings
}

// Count returns the total number of diagnostics.
func (l *List) Count() int {
	return len(l.diagnostics)
}

// Format formats all diagnostics as a human-readable string.
func (l *List) Format() string {
	if len(l.diagnostics) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := range l.diagnostics {
		sb.WriteString(l.FormatDiagnostic(&l.diagnostics[i]))
	}
	return sb.String()
}

// FormatDiagnostic formats a single diagnostic with source context.
func (l *List) FormatDiagnostic(d *Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.Error())
	sb.WriteByte('\n')

	if line := l.sourceLine(d.Pos.Line); line != "" {
		fmt.Fprintf(&sb, "    %s\n", line)
		sb.WriteString(strings.Repeat(" ", d.Pos.Column-1+4))
		sb.WriteString("^\n")
	}
	return sb.String()
}

func (l *List) sourceLine(line int) string {
	if line < 1 || line > l.lineIndex.LineCount() {
		return ""
	}
	start := l.lineIndex.lineStarts[line-1]
	end := len(l.source)
	if line < l.lineIndex.LineCount() {
		end = l.lineIndex.lineStarts[line]
	}
	return strings.TrimRight(l.source[start:end], "\r\n")
}
