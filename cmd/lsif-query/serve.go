package main

import (
	"context"
	"os"

	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/lsp"
	"github.com/sourcegraph/lsif-query/internal/navigator"
)

// runServe speaks LSP over stdio. Stdout carries the protocol, so progress output is
// disabled and logs go to stderr.
func runServe(ctx context.Context) error {
	noOutput = true
	log.SetOutput(os.Stderr)
	log.SetLevel(logLevel())

	options := navigator.Options{WorkspaceRoot: rootDir}
	if serverCommand != "" {
		client, err := startFallback(ctx)
		if err != nil {
			return err
		}
		defer stopFallback(client)
		options.Fallback = client
	}

	nav := navigator.New(options)
	if _, err := nav.Load(ctx, dumpFile); err != nil {
		log.Infof("Loading %s: %s", dumpFile, err)
	}

	if watchDump {
		go func() {
			if err := nav.Watch(ctx, dumpFile); err != nil {
				log.Infof("Watching %s: %s", dumpFile, err)
			}
		}()
	}

	return lsp.NewServer(nav, version).Serve(ctx, os.Stdin, os.Stdout)
}
