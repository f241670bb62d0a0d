package protocol

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIDUnmarshalJSON(t *testing.T) {
	var ids struct {
		Numeric ID `json:"numeric"`
		Quoted  ID `json:"quoted"`
	}
	if err := json.Unmarshal([]byte(`{"numeric": 42, "quoted": "17"}`), &ids); err != nil {
		t.Fatalf("unexpected error unmarshalling ids: %s", err)
	}

	if ids.Numeric != 42 {
		t.Errorf("unexpected numeric id. want=%d have=%d", 42, ids.Numeric)
	}
	if ids.Quoted != 17 {
		t.Errorf("unexpected quoted id. want=%d have=%d", 17, ids.Quoted)
	}
}

func TestIDUnmarshalJSONInvalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`"abc"`), &id); err == nil {
		t.Fatalf("expected error unmarshalling non-numeric id")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{ID: 1, Start: Pos{Line: 2, Character: 2}, End: Pos{Line: 2, Character: 6}}

	testCases := []struct {
		pos      Pos
		expected bool
	}{
		{Pos{Line: 2, Character: 2}, true},
		{Pos{Line: 2, Character: 4}, true},
		{Pos{Line: 2, Character: 6}, true},
		{Pos{Line: 2, Character: 1}, false},
		{Pos{Line: 2, Character: 7}, false},
		{Pos{Line: 1, Character: 4}, false},
		{Pos{Line: 3, Character: 4}, false},
	}

	for _, testCase := range testCases {
		if actual := r.Contains(testCase.pos); actual != testCase.expected {
			t.Errorf("unexpected containment for %+v. want=%v have=%v", testCase.pos, testCase.expected, actual)
		}
	}
}

func TestRangeContainsComparesAxesIndependently(t *testing.T) {
	// A multi-line range whose end character is left of its start character only
	// matches positions whose character lies within both bounds.
	r := Range{ID: 1, Start: Pos{Line: 1, Character: 10}, End: Pos{Line: 3, Character: 2}}

	if r.Contains(Pos{Line: 2, Character: 5}) {
		t.Errorf("expected position to be rejected by character bounds")
	}
}

func TestPosShift(t *testing.T) {
	if diff := cmp.Diff(Pos{Line: 1, Character: 3}, Pos{Line: 2, Character: 4}.Shift(-1)); diff != "" {
		t.Errorf("unexpected position (-want +got): %s", diff)
	}
}

func TestHoverResultText(t *testing.T) {
	hover := HoverResult{
		ID: 1,
		Contents: []MarkedString{
			{Language: "go", Value: "a"},
			{Value: "b"},
		},
	}

	if diff := cmp.Diff("a\nb", hover.Text()); diff != "" {
		t.Errorf("unexpected hover text (-want +got): %s", diff)
	}
}

func TestEdgeTargets(t *testing.T) {
	edges := []Edge{
		Next{ID: 1, OutV: 2, InV: 3},
		Contains{ID: 4, OutV: 5, InVs: []ID{6, 7}},
		Item{ID: 8, OutV: 9, InVs: []ID{10}, Property: ItemReferences},
	}

	expected := [][]ID{{3}, {6, 7}, {10}}
	for i, edge := range edges {
		if diff := cmp.Diff(expected[i], edge.Targets()); diff != "" {
			t.Errorf("unexpected targets for %s edge (-want +got): %s", edge.EdgeLabel(), diff)
		}
	}
}

func TestOpaqueLabels(t *testing.T) {
	if !IsOpaqueVertexLabel(VertexMetaData) {
		t.Errorf("expected metaData to be an opaque vertex label")
	}
	if IsOpaqueVertexLabel(VertexRange) {
		t.Errorf("expected range not to be an opaque vertex label")
	}
	if !IsOpaqueEdgeLabel("moniker") {
		t.Errorf("expected moniker to be an opaque edge label")
	}
	if IsOpaqueEdgeLabel(EdgeItem) {
		t.Errorf("expected item not to be an opaque edge label")
	}
}
