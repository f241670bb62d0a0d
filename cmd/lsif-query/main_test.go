package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"github.com/sourcegraph/lsif-query/internal/store"
)

func TestDocumentURI(t *testing.T) {
	testCases := []struct {
		document string
		expected string
	}{
		{"/work/proj/a.go", "file:///work/proj/a.go"},
		{"/work/proj/../b.go", "file:///work/b.go"},
		{"/tmp/my dir/a#b.go", "file:///tmp/my%20dir/a%23b.go"},
		{"file:///work/proj/a.go", "file:///work/proj/a.go"},
	}

	for _, testCase := range testCases {
		if uri := documentURI(testCase.document); uri != testCase.expected {
			t.Errorf("unexpected uri for %s. want=%q have=%q", testCase.document, testCase.expected, uri)
		}
	}
}

func TestPathOf(t *testing.T) {
	testCases := []struct {
		uri      string
		expected string
	}{
		{"file:///work/proj/a.go", "/work/proj/a.go"},
		{"file:///tmp/my%20dir/a%23b.go", "/tmp/my dir/a#b.go"},
		{"a.go", "a.go"},
		{"https://example.com/a.go", "https://example.com/a.go"},
	}

	for _, testCase := range testCases {
		if path := pathOf(testCase.uri); path != testCase.expected {
			t.Errorf("unexpected path for %s. want=%q have=%q", testCase.uri, testCase.expected, path)
		}
	}
}

func TestFormatLocation(t *testing.T) {
	location := query.Location{
		URI: "file:///work/proj/a.go",
		Range: query.Span{
			Start: protocol.Pos{Line: 3, Character: 1},
			End:   protocol.Pos{Line: 3, Character: 4},
		},
	}

	if diff := cmp.Diff("file:///work/proj/a.go:3:1-3:4", formatLocation(location)); diff != "" {
		t.Errorf("unexpected location (-want +got): %s", diff)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if value := firstNonEmpty("", "b", "c"); value != "b" {
		t.Errorf("unexpected value. want=%q have=%q", "b", value)
	}
	if value := firstNonEmpty("", ""); value != "" {
		t.Errorf("unexpected value. want=%q have=%q", "", value)
	}
}

func TestDisplayStats(t *testing.T) {
	var buf bytes.Buffer
	displayStats(&buf, store.Stats{Documents: 2, Vertices: 12, Edges: 12, Repaired: 1, Discarded: 5}, time.Now(), 3*1024*1024)

	for _, expected := range []string{
		"\tDocuments:             2\n",
		"\tItem edges repaired:   1\n",
		"\tRecords discarded:     5\n",
	} {
		if !strings.Contains(buf.String(), expected) {
			t.Errorf("expected stats to contain %q, got:\n%s", expected, buf.String())
		}
	}
}

func TestHeapMonitor(t *testing.T) {
	heap := startHeapMonitor()

	peak := heap.Stop()
	if peak == 0 {
		t.Errorf("expected a non-zero peak heap size")
	}
	if again := heap.Stop(); again < peak {
		t.Errorf("unexpected peak after second stop. want>=%d have=%d", peak, again)
	}
}
