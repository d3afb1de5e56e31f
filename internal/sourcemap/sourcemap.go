package sourcemap

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/HugoDaniel/minijs/internal/diagnostic"

	"github.com/go-json-experiment/json"
)

// SourceMap is a Source Map v3 document for a single source file.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Mapping ties a generated position to an original one. Lines and columns
// are 0-based; source columns count UTF-16 code units.
type Mapping struct {
	GenLine   int
	GenCol    int
	SrcIndex  int
	SrcLine   int
	SrcCol    int
	NameIndex int // -1 when the segment carries no name
}

// HasSource reports whether the mapping points into a source file.
func (m Mapping) HasSource() bool { return m.SrcIndex >= 0 }

// Generator collects mappings while code is printed. Mappings must be added
// in generated order.
type Generator struct {
	source        string
	lines         *diagnostic.LineIndex
	mappings      []Mapping
	names         map[string]int
	namesList     []string
	file          string
	sourceName    string
	includeSource bool
}

// NewGenerator creates a generator for the given original source.
func NewGenerator(source string) *Generator {
	return &Generator{
		source: source,
		lines:  diagnostic.NewLineIndex(source),
		names:  make(map[string]int),
	}
}

// SetFile sets the name of the generated file.
func (g *Generator) SetFile(file string) { g.file = file }

// SetSourceName sets the name of the original file.
func (g *Generator) SetSourceName(name string) { g.sourceName = name }

// IncludeSourceContent embeds the original source in sourcesContent.
func (g *Generator) IncludeSourceContent(include bool) { g.includeSource = include }

// AddMapping records that the output at genLine:genCol came from srcOffset,
// a byte offset into the original source. A non-empty name is stored in the
// names table. A mapping at the same generated position as the previous
// one is dropped.
func (g *Generator) AddMapping(genLine, genCol, srcOffset int, name string) {
	if n := len(g.mappings); n > 0 {
		last := g.mappings[n-1]
		if last.GenLine == genLine && last.GenCol == genCol {
			return
		}
	}
	srcLine, srcCol := g.position(srcOffset)
	m := Mapping{
		GenLine:   genLine,
		GenCol:    genCol,
		SrcLine:   srcLine,
		SrcCol:    srcCol,
		NameIndex: -1,
	}
	if name != "" {
		idx, ok := g.names[name]
		if !ok {
			idx = len(g.namesList)
			g.names[name] = idx
			g.namesList = append(g.namesList, name)
		}
		m.NameIndex = idx
	}
	g.mappings = append(g.mappings, m)
}

// position converts a byte offset to a line and a UTF-16 column.
func (g *Generator) position(offset int) (line, col int) {
	offset = max(0, min(offset, len(g.source)))
	line, byteCol := g.lines.ByteOffsetToLineColumn(offset)
	return line, utf16Len(g.source[offset-byteCol : offset])
}

// Len returns the number of mappings recorded.
func (g *Generator) Len() int { return len(g.mappings) }

// Generate produces the source map.
func (g *Generator) Generate() *SourceMap {
	sm := &SourceMap{
		Version:  3,
		File:     g.file,
		Sources:  []string{},
		Names:    append([]string{}, g.namesList...),
		Mappings: g.encodeMappings(),
	}
	if g.sourceName != "" {
		sm.Sources = []string{g.sourceName}
	}
	if g.includeSource && g.source != "" {
		sm.SourcesContent = []string{g.source}
	}
	return sm
}

// segmentState holds the previous values each segment field is
// delta-encoded against.
type segmentState struct {
	genCol, srcIndex, srcLine, srcCol, name int
}

func (g *Generator) encodeMappings() string {
	var buf []byte
	var prev segmentState
	line := 0
	for i, m := range g.mappings {
		switch {
		case m.GenLine > line:
			for ; line < m.GenLine; line++ {
				buf = append(buf, ';')
			}
			prev.genCol = 0
		case i > 0:
			buf = append(buf, ',')
		}

		buf = appendVLQ(buf, m.GenCol-prev.genCol)
		buf = appendVLQ(buf, m.SrcIndex-prev.srcIndex)
		buf = appendVLQ(buf, m.SrcLine-prev.srcLine)
		buf = appendVLQ(buf, m.SrcCol-prev.srcCol)
		prev.genCol, prev.srcIndex, prev.srcLine, prev.srcCol = m.GenCol, m.SrcIndex, m.SrcLine, m.SrcCol
		if m.NameIndex >= 0 {
			buf = appendVLQ(buf, m.NameIndex-prev.name)
			prev.name = m.NameIndex
		}
	}
	return string(buf)
}

// ToJSON returns the source map as JSON.
func (sm *SourceMap) ToJSON() string {
	data, _ := json.Marshal(sm)
	return string(data)
}

// ToDataURI returns the source map as a base64 data URI.
func (sm *SourceMap) ToDataURI() string {
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(sm.ToJSON()))
}

// ToComment returns the sourceMappingURL comment to append to the
// generated code. An inline comment embeds the whole map.
func (sm *SourceMap) ToComment(inline bool) string {
	if inline {
		return "//# sourceMappingURL=" + sm.ToDataURI()
	}
	return "//# sourceMappingURL=" + sm.File + ".map"
}

// Decode parses a mappings string back into mappings.
func Decode(mappings string) ([]Mapping, error) {
	var result []Mapping
	var prev segmentState
	for genLine, line := range strings.Split(mappings, ";") {
		prev.genCol = 0
		if line == "" {
			continue
		}
		for _, segment := range strings.Split(line, ",") {
			values, err := decodeSegment(segment)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", genLine, err)
			}
			prev.genCol += values[0]
			m := Mapping{GenLine: genLine, GenCol: prev.genCol, SrcIndex: -1, NameIndex: -1}
			if len(values) >= 4 {
				prev.srcIndex += values[1]
				prev.srcLine += values[2]
				prev.srcCol += values[3]
				m.SrcIndex, m.SrcLine, m.SrcCol = prev.srcIndex, prev.srcLine, prev.srcCol
			}
			if len(values) == 5 {
				prev.name += values[4]
				m.NameIndex = prev.name
			}
			result = append(result, m)
		}
	}
	return result, nil
}

// utf16Len returns the UTF-16 length of s.
func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		s = s[size:]
	}
	return n
}
