package diagnostic

import (
	"testing"

	"github.com/HugoDaniel/minijs/internal/test"
)

// ----------------------------------------------------------------------------
// Line Index
// ----------------------------------------------------------------------------

func TestLineIndex(t *testing.T) {
	tests := []struct {
		source string
		offset int
		line   int
		col    int
	}{
		{"abc", 0, 0, 0},
		{"abc", 2, 0, 2},
		{"a\nbc", 2, 1, 0},
		{"a\r\nbc", 3, 1, 0},
		{"a\rbc", 3, 1, 1},
		{"a\u2028b", 4, 1, 0},
		{"a\nb", 99, 1, 1},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		idx := NewLineIndex(tt.source)
		line, col := idx.ByteOffsetToLineColumn(tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("%q @%d: got %d:%d, want %d:%d", tt.source, tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestLineCount(t *testing.T) {
	test.AssertEqual(t, NewLineIndex("a\nb\nc").LineCount(), 3)
	test.AssertEqual(t, NewLineIndex("a\n").LineCount(), 1)
}

// ----------------------------------------------------------------------------
// List
// ----------------------------------------------------------------------------

func TestListFormat(t *testing.T) {
	l := NewList("var x;\nx = /(/;\n")
	l.AddWarning(11, CodeInvalidRegExp, "bad pattern")

	test.AssertEqual(t, l.HasErrors(), false)
	test.AssertEqual(t, l.Count(), 1)
	test.AssertEqual(t, len(l.Warnings()), 1)
	test.AssertEqualWithDiff(t, l.Format(), "2:5: warning: bad pattern\n    x = /(/;\n        ^\n")
}

func TestListErrors(t *testing.T) {
	l := NewList("x")
	l.AddError(0, CodeSyntax, "boom")
	test.AssertEqual(t, l.HasErrors(), true)
	test.AssertEqual(t, l.Diagnostics()[0].Error(), "1:1: error: boom")
}

func TestMakePositionNegative(t *testing.T) {
	l := NewList("abc")
	test.AssertEqual(t, l.MakePosition(-1), Position{Offset: -1})
}
