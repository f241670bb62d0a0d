package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sourcegraph/lsif-query/internal/output"
	"github.com/sourcegraph/lsif-query/internal/store"
)

func displayStats(w io.Writer, storeStats store.Stats, start time.Time, peakHeap uint64) {
	stats := []struct {
		name  string
		value string
	}{
		{"Wall time elapsed", output.Elapsed(start).String()},
		{"Peak heap allocations", fmt.Sprintf("%dMB", peakHeap/1024/1024)},
		{"Documents", fmt.Sprintf("%d", storeStats.Documents)},
		{"Vertices", fmt.Sprintf("%d", storeStats.Vertices)},
		{"Edges", fmt.Sprintf("%d", storeStats.Edges)},
		{"Item edges repaired", fmt.Sprintf("%d", storeStats.Repaired)},
		{"Records discarded", fmt.Sprintf("%d", storeStats.Discarded)},
	}

	n := 0
	for _, stat := range stats {
		if n < len(stat.name) {
			n = len(stat.name)
		}
	}

	fmt.Fprintf(w, "\nStats:\n")

	for _, stat := range stats {
		fmt.Fprintf(w, "\t%s: %s%s\n", stat.name, strings.Repeat(" ", n-len(stat.name)), stat.value)
	}
}
