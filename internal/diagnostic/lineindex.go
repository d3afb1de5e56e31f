package diagnostic

import "sort"

// LineIndex converts byte offsets to line and column numbers.
// It pre-computes line start positions for O(log n) lookups.
type LineIndex struct {
	source     string
	lineStarts []int
}

// NewLineIndex creates a LineIndex for the given source. LF, CRLF, CR and
// the JavaScript line separators U+2028 and U+2029 all end a line.
func NewLineIndex(source string) *LineIndex {
	idx := &LineIndex{
		source:     source,
		lineStarts: []int{0},
	}

	for i := 0; i < len(source); i++ {
		next := -1
		switch c := source[i]; {
		case c == '\n':
			next = i + 1
		case c == '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			next = i + 1
		case c == 0xE2 && i+2 < len(source) && source[i+1] == 0x80 &&
			(source[i+2] == 0xA8 || source[i+2] == 0xA9):
			i += 2
			next = i + 1
		}
		if next > 0 && next < len(source) {
			idx.lineStarts = append(idx.lineStarts, next)
		}
	}
	return idx
}

// LineCount returns the number of lines.
func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// ByteOffsetToLineColumn converts a byte offset to 0-indexed line and column.
// The column is in bytes.
func (idx *LineIndex) ByteOffsetToLineColumn(offset int) (line, col int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(idx.source) {
		offset = len(idx.source)
	}

	line = sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return line, offset - idx.lineStarts[line]
}
