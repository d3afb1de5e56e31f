package sourcemap

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/HugoDaniel/minijs/internal/test"

	"github.com/go-json-experiment/json"
)

func mustDecode(t *testing.T, mappings string) []Mapping {
	t.Helper()
	decoded, err := Decode(mappings)
	if err != nil {
		t.Fatalf("Decode(%q): %v", mappings, err)
	}
	return decoded
}

// ----------------------------------------------------------------------------
// Generator
// ----------------------------------------------------------------------------

func TestGenerateEmpty(t *testing.T) {
	sm := NewGenerator("").Generate()
	test.AssertEqual(t, sm.Version, 3)
	test.AssertEqual(t, sm.Mappings, "")
	test.AssertEqual(t, len(sm.Sources), 0)
	test.AssertEqual(t, sm.ToJSON(), `{"version":3,"sources":[],"names":[],"mappings":""}`)
}

func TestSingleMapping(t *testing.T) {
	g := NewGenerator("var x = 1;")
	g.AddMapping(0, 4, 4, "x")
	sm := g.Generate()

	test.AssertDeepEqual(t, "names", sm.Names, []string{"x"})
	test.AssertEqual(t, sm.Mappings, "IAAIA")
	test.AssertDeepEqual(t, "mappings", mustDecode(t, sm.Mappings), []Mapping{
		{GenLine: 0, GenCol: 4, SrcIndex: 0, SrcLine: 0, SrcCol: 4, NameIndex: 0},
	})
}

func TestMappingsAcrossLines(t *testing.T) {
	source := "a();\nb();\n\nc();"
	g := NewGenerator(source)
	g.AddMapping(0, 0, 0, "")
	g.AddMapping(0, 4, 5, "")
	g.AddMapping(2, 0, 11, "c")
	sm := g.Generate()

	test.AssertEqual(t, strings.Count(sm.Mappings, ";"), 2)
	test.AssertDeepEqual(t, "mappings", mustDecode(t, sm.Mappings), []Mapping{
		{GenLine: 0, GenCol: 0, SrcLine: 0, SrcCol: 0, NameIndex: -1},
		{GenLine: 0, GenCol: 4, SrcLine: 1, SrcCol: 0, NameIndex: -1},
		{GenLine: 2, GenCol: 0, SrcLine: 3, SrcCol: 0, NameIndex: 0},
	})
}

func TestNameDeduplication(t *testing.T) {
	g := NewGenerator("x = x + y;")
	g.AddMapping(0, 0, 0, "x")
	g.AddMapping(0, 2, 4, "x")
	g.AddMapping(0, 4, 8, "y")
	sm := g.Generate()

	test.AssertDeepEqual(t, "names", sm.Names, []string{"x", "y"})
	decoded := mustDecode(t, sm.Mappings)
	test.AssertEqual(t, decoded[1].NameIndex, 0)
	test.AssertEqual(t, decoded[2].NameIndex, 1)
}

func TestDuplicatePositionDropped(t *testing.T) {
	g := NewGenerator("f(a);")
	g.AddMapping(0, 0, 0, "")
	g.AddMapping(0, 0, 0, "f")
	g.AddMapping(0, 2, 2, "a")
	test.AssertEqual(t, g.Len(), 2)
}

func TestUTF16Columns(t *testing.T) {
	// U+00E9 is two bytes and one UTF-16 unit. U+1F600 is four bytes and
	// two units.
	source := "s = '\u00e9\U0001F600'; x;"
	offset := strings.Index(source, "x;")
	g := NewGenerator(source)
	g.AddMapping(0, 0, offset, "x")

	decoded := mustDecode(t, g.Generate().Mappings)
	test.AssertEqual(t, decoded[0].SrcCol, offset-3)
}

func TestOffsetClamped(t *testing.T) {
	g := NewGenerator("ab\ncd")
	g.AddMapping(0, 0, 100, "")
	g.AddMapping(0, 1, -5, "")
	decoded := mustDecode(t, g.Generate().Mappings)
	test.AssertEqual(t, decoded[0].SrcLine, 1)
	test.AssertEqual(t, decoded[0].SrcCol, 2)
	test.AssertEqual(t, decoded[1].SrcLine, 0)
	test.AssertEqual(t, decoded[1].SrcCol, 0)
}

// ----------------------------------------------------------------------------
// Output Formats
// ----------------------------------------------------------------------------

func TestToJSON(t *testing.T) {
	g := NewGenerator("a();")
	g.SetFile("out.js")
	g.SetSourceName("in.js")
	g.IncludeSourceContent(true)
	g.AddMapping(0, 0, 0, "a")
	sm := g.Generate()

	test.AssertEqual(t, sm.ToJSON(),
		`{"version":3,"file":"out.js","sources":["in.js"],"sourcesContent":["a();"],"names":["a"],"mappings":"AAAAA"}`)

	var back SourceMap
	if err := json.Unmarshal([]byte(sm.ToJSON()), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	test.AssertDeepEqual(t, "roundtrip", &back, sm)
}

func TestToDataURI(t *testing.T) {
	sm := NewGenerator("").Generate()
	uri := sm.ToDataURI()

	const prefix = "data:application/json;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected data URI %q", uri)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	test.AssertEqual(t, string(data), sm.ToJSON())
}

func TestToComment(t *testing.T) {
	g := NewGenerator("")
	g.SetFile("app.min.js")
	sm := g.Generate()
	test.AssertEqual(t, sm.ToComment(false), "//# sourceMappingURL=app.min.js.map")
	if !strings.HasPrefix(sm.ToComment(true), "//# sourceMappingURL=data:application/json;base64,") {
		t.Errorf("unexpected inline comment %q", sm.ToComment(true))
	}
}

// ----------------------------------------------------------------------------
// Decoding
// ----------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	test.AssertEqual(t, len(mustDecode(t, "")), 0)
	test.AssertEqual(t, len(mustDecode(t, ";;")), 0)

	decoded := mustDecode(t, "A,CAAC;E")
	test.AssertDeepEqual(t, "mappings", decoded, []Mapping{
		{GenLine: 0, GenCol: 0, SrcIndex: -1, NameIndex: -1},
		{GenLine: 0, GenCol: 1, SrcIndex: 0, SrcLine: 0, SrcCol: 1, NameIndex: -1},
		{GenLine: 1, GenCol: 2, SrcIndex: -1, NameIndex: -1},
	})
	test.AssertEqual(t, decoded[0].HasSource(), false)
	test.AssertEqual(t, decoded[1].HasSource(), true)

	if _, err := Decode("AAA"); err == nil {
		t.Error("expected an error for a three-field segment")
	}
}
