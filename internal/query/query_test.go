package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hexops/autogold"
	"github.com/sourcegraph/lsif-query/internal/protocol"
)

const (
	aURI = "file:///work/proj/a.go"
	bURI = "file:///work/proj/b.go"
	cURI = "file:///work/proj/c.go"
)

func TestResolveRangeBounds(t *testing.T) {
	s := loadFixture(t, "hover")

	testCases := []struct {
		pos      protocol.Pos
		expected bool
	}{
		{protocol.Pos{Line: 1, Character: 1}, true},
		{protocol.Pos{Line: 1, Character: 3}, true},
		{protocol.Pos{Line: 1, Character: 5}, true},
		{protocol.Pos{Line: 1, Character: 0}, false},
		{protocol.Pos{Line: 1, Character: 6}, false},
		{protocol.Pos{Line: 0, Character: 3}, false},
		{protocol.Pos{Line: 2, Character: 3}, false},
	}

	for _, testCase := range testCases {
		r, ok := ResolveRange(s, "file:///a", testCase.pos)
		if ok != testCase.expected {
			t.Errorf("unexpected match at %v. want=%v have=%v", testCase.pos, testCase.expected, ok)
		}
		if ok && r.ID != 2 {
			t.Errorf("unexpected range at %v. want=%d have=%d", testCase.pos, 2, r.ID)
		}
	}
}

func TestResolveRangeFirstMatch(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"vertex","label":"range","start":{"line":1,"character":3},"end":{"line":1,"character":4}}`,
		`{"id":4,"type":"edge","label":"contains","outV":1,"inVs":[3,2]}`,
	)

	if r, ok := ResolveRange(s, "file:///a", protocol.Pos{Line: 0, Character: 2}); !ok || r.ID != 3 {
		t.Errorf("unexpected range. want=%d have=%d", 3, r.ID)
	}
}

func TestResolveRangeWithoutContains(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
	)

	if _, ok := ResolveRange(s, "file:///a", protocol.Pos{Line: 0, Character: 2}); ok {
		t.Errorf("expected no range without a contains edge")
	}
}

func TestHoverEndToEnd(t *testing.T) {
	s := loadFixture(t, "hover")

	text, ok := Hover(s, "file:///a", protocol.Pos{Line: 1, Character: 3})
	autogold.Want("hover inside range", "x").Equal(t, text)
	if !ok {
		t.Errorf("expected hover text")
	}

	if text, ok := Hover(s, "file:///a", protocol.Pos{Line: 5, Character: 5}); ok {
		t.Errorf("unexpected hover text %q", text)
	}
}

func TestHoverAcrossDocuments(t *testing.T) {
	s := loadFixture(t, "crossfile")

	text, ok := Hover(s, bURI, protocol.Pos{Line: 2, Character: 5})
	if !ok {
		t.Fatalf("expected hover text")
	}
	autogold.Want("hover through shared result set", "func foo()\nfoo does nothing.").Equal(t, text)
}

func TestHoverPrefersDirectEdge(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
		`{"id":4,"type":"vertex","label":"resultSet"}`,
		`{"id":5,"type":"edge","label":"next","outV":2,"inV":4}`,
		`{"id":6,"type":"vertex","label":"hoverResult","result":{"contents":["shared"]}}`,
		`{"id":7,"type":"edge","label":"textDocument/hover","outV":4,"inV":6}`,
		`{"id":8,"type":"vertex","label":"hoverResult","result":{"contents":{"kind":"markdown","value":"direct"}}}`,
		`{"id":9,"type":"edge","label":"textDocument/hover","outV":2,"inV":8}`,
	)

	if text, _ := Hover(s, "file:///a", protocol.Pos{Line: 0, Character: 0}); text != "direct" {
		t.Errorf("unexpected hover text. want=%q have=%q", "direct", text)
	}
}

func TestHoverNextCycle(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
		`{"id":4,"type":"vertex","label":"resultSet"}`,
		`{"id":5,"type":"edge","label":"next","outV":2,"inV":4}`,
		`{"id":6,"type":"edge","label":"next","outV":4,"inV":2}`,
	)

	if text, ok := Hover(s, "file:///a", protocol.Pos{Line: 0, Character: 0}); ok {
		t.Errorf("unexpected hover text %q", text)
	}
}

func TestHoverEmptyContents(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
		`{"id":4,"type":"vertex","label":"hoverResult","result":{"contents":[]}}`,
		`{"id":5,"type":"edge","label":"textDocument/hover","outV":2,"inV":4}`,
	)

	if text, ok := Hover(s, "file:///a", protocol.Pos{Line: 0, Character: 0}); ok {
		t.Errorf("unexpected hover text %q", text)
	}
}

func TestHoverJoinsFragments(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
		`{"id":4,"type":"vertex","label":"hoverResult","result":{"contents":["a","b"]}}`,
		`{"id":5,"type":"edge","label":"textDocument/hover","outV":2,"inV":4}`,
	)

	if text, _ := Hover(s, "file:///a", protocol.Pos{Line: 0, Character: 0}); text != "a\nb" {
		t.Errorf("unexpected hover text. want=%q have=%q", "a\nb", text)
	}
}

func TestReferencesAcrossDocuments(t *testing.T) {
	s := loadFixture(t, "crossfile")

	expected := []Location{
		{URI: aURI, Range: Span{Start: protocol.Pos{Line: 0, Character: 5}, End: protocol.Pos{Line: 0, Character: 8}}},
		{URI: aURI, Range: Span{Start: protocol.Pos{Line: 3, Character: 1}, End: protocol.Pos{Line: 3, Character: 4}}},
		{URI: bURI, Range: Span{Start: protocol.Pos{Line: 2, Character: 4}, End: protocol.Pos{Line: 2, Character: 7}}},
	}

	for _, query := range []struct {
		uri string
		pos protocol.Pos
	}{
		{aURI, protocol.Pos{Line: 0, Character: 6}},
		{aURI, protocol.Pos{Line: 3, Character: 2}},
		{bURI, protocol.Pos{Line: 2, Character: 5}},
	} {
		if diff := cmp.Diff(expected, References(s, query.uri, query.pos)); diff != "" {
			t.Errorf("unexpected references from %s %v (-want +got): %s", query.uri, query.pos, diff)
		}
	}
}

func TestDefinitionsAcrossDocuments(t *testing.T) {
	s := loadFixture(t, "crossfile")

	expected := []Location{
		{URI: aURI, Range: Span{Start: protocol.Pos{Line: 0, Character: 5}, End: protocol.Pos{Line: 0, Character: 8}}},
	}
	if diff := cmp.Diff(expected, Definitions(s, bURI, protocol.Pos{Line: 2, Character: 5})); diff != "" {
		t.Errorf("unexpected definitions (-want +got): %s", diff)
	}
}

func TestDefinitionsFanOut(t *testing.T) {
	s := loadFixture(t, "definitions")

	autogold.Want("definitions in two documents", []Location{
		{
			URI: "file:///work/proj/a.go",
			Range: Span{
				Start: protocol.Pos{},
				End:   protocol.Pos{Character: 3},
			},
		},
		{
			URI: "file:///work/proj/b.go",
			Range: Span{
				Start: protocol.Pos{Line: 1},
				End: protocol.Pos{
					Line:      1,
					Character: 3,
				},
			},
		},
	}).Equal(t, Definitions(s, bURI, protocol.Pos{Line: 4, Character: 3}))
}

func TestEmptyResultsAreAbsent(t *testing.T) {
	s := loadFixture(t, "definitions")

	// c.go has complete definition and reference chains whose item edges list no
	// ranges of the document; b.go has a result set with no references edge.
	if locations := Definitions(s, cURI, protocol.Pos{}); locations != nil {
		t.Errorf("unexpected definitions %v", locations)
	}
	if locations := References(s, cURI, protocol.Pos{}); locations != nil {
		t.Errorf("unexpected references %v", locations)
	}
	if locations := References(s, bURI, protocol.Pos{Line: 4, Character: 3}); locations != nil {
		t.Errorf("unexpected references %v", locations)
	}
}

func TestUnknownDocument(t *testing.T) {
	s := loadFixture(t, "crossfile")
	uri := "file:///work/proj/missing.go"
	pos := protocol.Pos{Line: 0, Character: 6}

	if _, ok := ResolveRange(s, uri, pos); ok {
		t.Errorf("unexpected range")
	}
	if _, ok := Hover(s, uri, pos); ok {
		t.Errorf("unexpected hover")
	}
	if locations := Definitions(s, uri, pos); locations != nil {
		t.Errorf("unexpected definitions %v", locations)
	}
	if locations := References(s, uri, pos); locations != nil {
		t.Errorf("unexpected references %v", locations)
	}
}

func TestPercentEncodedQuery(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///my%20dir/a"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":9}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
	)

	for _, uri := range []string{"file:///my%20dir/a", "file:///my dir/a"} {
		if _, ok := ResolveRange(s, uri, protocol.Pos{}); !ok {
			t.Errorf("expected range in %q", uri)
		}
	}
}

func TestLocationsKeepIndexedURI(t *testing.T) {
	s := loadLines(t,
		`{"id":1,"type":"vertex","label":"document","uri":"file:///my%20dir/a.go"}`,
		`{"id":2,"type":"vertex","label":"range","start":{"line":1,"character":1},"end":{"line":1,"character":4}}`,
		`{"id":3,"type":"edge","label":"contains","outV":1,"inVs":[2]}`,
		`{"id":4,"type":"vertex","label":"resultSet"}`,
		`{"id":5,"type":"edge","label":"next","outV":2,"inV":4}`,
		`{"id":6,"type":"vertex","label":"definitionResult"}`,
		`{"id":7,"type":"edge","label":"textDocument/definition","outV":4,"inV":6}`,
		`{"id":8,"type":"edge","label":"item","outV":6,"inVs":[2],"shard":1,"property":"definitions"}`,
		`{"id":9,"type":"vertex","label":"referenceResult"}`,
		`{"id":10,"type":"edge","label":"textDocument/references","outV":4,"inV":9}`,
		`{"id":11,"type":"edge","label":"item","outV":9,"inVs":[2],"shard":1,"property":"references"}`,
	)

	expected := []Location{
		{URI: "file:///my%20dir/a.go", Range: Span{End: protocol.Pos{Character: 3}}},
	}
	for _, uri := range []string{"file:///my%20dir/a.go", "file:///my dir/a.go"} {
		if diff := cmp.Diff(expected, Definitions(s, uri, protocol.Pos{Character: 1})); diff != "" {
			t.Errorf("unexpected definitions from %q (-want +got): %s", uri, diff)
		}
		if diff := cmp.Diff(expected, References(s, uri, protocol.Pos{Character: 1})); diff != "" {
			t.Errorf("unexpected references from %q (-want +got): %s", uri, diff)
		}
	}
}
