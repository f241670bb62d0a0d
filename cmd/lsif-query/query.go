package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/lsp"
	"github.com/sourcegraph/lsif-query/internal/navigator"
	"github.com/sourcegraph/lsif-query/internal/output"
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"github.com/sourcegraph/lsif-query/internal/store"
	"github.com/sourcegraph/lsif-query/internal/writer"
)

// fallbackTimeout bounds the startup and shutdown handshakes with the language server.
const fallbackTimeout = 10 * time.Second

type locationsFunc func(ctx context.Context, nav *navigator.Navigator, uri string, pos protocol.Pos) ([]query.Location, error)

func definitions(ctx context.Context, nav *navigator.Navigator, uri string, pos protocol.Pos) ([]query.Location, error) {
	return nav.Definition(ctx, uri, pos)
}

func references(ctx context.Context, nav *navigator.Navigator, uri string, pos protocol.Pos) ([]query.Location, error) {
	return nav.References(ctx, uri, pos)
}

func runHover(ctx context.Context) error {
	return withNavigator(ctx, func(nav *navigator.Navigator, uri string, pos protocol.Pos) (bool, error) {
		text, ok, err := nav.Hover(ctx, uri, pos)
		if err != nil || !ok {
			return false, err
		}

		if jsonOutput {
			w := writer.NewJSONWriter(os.Stdout)
			w.Write(struct {
				Contents string `json:"contents"`
			}{text})
			return true, w.Flush()
		}

		fmt.Println(text)
		return true, nil
	})
}

func runLocations(ctx context.Context, name string, fn locationsFunc) error {
	return withNavigator(ctx, func(nav *navigator.Navigator, uri string, pos protocol.Pos) (bool, error) {
		locations, err := fn(ctx, nav, uri, pos)
		if err != nil || len(locations) == 0 {
			return false, errors.Wrap(err, name)
		}

		if jsonOutput {
			w := writer.NewJSONWriter(os.Stdout)
			for _, location := range locations {
				w.Write(location)
			}
			return true, w.Flush()
		}

		for _, location := range locations {
			fmt.Println(formatLocation(location))
		}
		return true, nil
	})
}

func formatLocation(location query.Location) string {
	return fmt.Sprintf(
		"%s:%d:%d-%d:%d",
		location.URI,
		location.Range.Start.Line,
		location.Range.Start.Character,
		location.Range.End.Line,
		location.Range.End.Character,
	)
}

// withNavigator loads the index, connects the optional fallback server, and runs fn
// for the position given on the command line. When fn finds nothing a note is printed
// to stderr, suggesting the closest indexed document if the requested one is unknown.
func withNavigator(ctx context.Context, fn func(nav *navigator.Navigator, uri string, pos protocol.Pos) (bool, error)) error {
	if jsonOutput {
		noOutput = true
	}
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
	if _, err := loadIndex(ctx, nav); err != nil {
		return err
	}

	uri := documentURI(document)
	found, err := fn(nav, uri, protocol.Pos{Line: line, Character: character})
	if err != nil || found {
		return err
	}

	fmt.Fprintf(os.Stderr, "no results for %s:%d:%d\n", uri, line, character)
	if _, ok := nav.Store().Shard(uri); !ok {
		if suggestion, ok := nav.Suggest(uri); ok {
			fmt.Fprintf(os.Stderr, "%s is not indexed, did you mean %s?\n", rel(pathOf(uri)), rel(pathOf(suggestion)))
		}
	}

	return nil
}

func loadIndex(ctx context.Context, nav *navigator.Navigator) (stats store.Stats, err error) {
	err = output.WithProgress("Loading index", func() error {
		stats, err = nav.Load(ctx, dumpFile)
		return err
	}, outputOptions())

	return stats, errors.Wrapf(err, "loading %s", rel(dumpFile))
}

func startFallback(ctx context.Context) (*lsp.Client, error) {
	client, err := lsp.Start(ctx, rootDir, serverCommand)
	if err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, fallbackTimeout)
	defer cancel()

	if _, err := client.Initialize(initCtx, documentURI(rootDir)); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "initializing language server")
	}

	return client, nil
}

func stopFallback(client *lsp.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), fallbackTimeout)
	defer cancel()

	if err := client.Shutdown(ctx); err != nil {
		log.Infof("Shutting down language server: %s", err)
	}
	if err := client.Close(); err != nil {
		log.Debugf("Closing language server: %s", err)
	}
}
