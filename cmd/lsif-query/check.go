package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/navigator"
	"github.com/sourcegraph/lsif-query/internal/output"
	"github.com/sourcegraph/lsif-query/internal/store"
)

func runCheck(ctx context.Context) error {
	start := time.Now()
	log.SetLevel(logLevel())

	heap := startHeapMonitor()
	defer heap.Stop()

	nav := navigator.New(navigator.Options{WorkspaceRoot: rootDir})
	stats, err := loadIndex(ctx, nav)
	if err != nil {
		return err
	}

	if err := output.WithProgress("Validating index", func() error {
		return store.Validate(nav.Store())
	}, outputOptions()); err != nil {
		return err
	}

	if isVerbose() {
		displayStats(os.Stdout, stats, start, heap.Stop())
	} else if !noOutput {
		fmt.Printf("%s is valid\n", rel(dumpFile))
	}

	return nil
}
