// Package navigator answers navigation requests from the most recently loaded index,
// deferring to a live language server when the index has no answer.
package navigator

import (
	"context"
	"sync/atomic"

	"github.com/agnivade/levenshtein"
	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"github.com/sourcegraph/lsif-query/internal/rootpath"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// Fallback answers the requests the index cannot. Positions are zero-based.
type Fallback interface {
	Hover(ctx context.Context, uri string, pos protocol.Pos) (string, bool, error)
	Definition(ctx context.Context, uri string, pos protocol.Pos) ([]query.Location, error)
	References(ctx context.Context, uri string, pos protocol.Pos) ([]query.Location, error)
}

// Notifier is implemented by fallbacks that track the editor's text documents.
type Notifier interface {
	Notify(ctx context.Context, method string, params interface{}) error
}

type Options struct {
	// WorkspaceRoot, when set, is used to rewrite the project root of loaded indexes.
	WorkspaceRoot string
	// Fallback, when set, is consulted whenever the index has no answer.
	Fallback Fallback
	// StoreOptions are passed to every load.
	StoreOptions []store.Option
}

// Navigator serves queries from an immutable store that can be replaced at any time.
// Queries in flight keep reading the store they started with.
type Navigator struct {
	options Options
	current atomic.Pointer[store.Store]
}

func New(options Options) *Navigator {
	return &Navigator{options: options}
}

// Store returns the current store, or nil if no index has been loaded.
func (n *Navigator) Store() *store.Store {
	return n.current.Load()
}

// Load reads the index at path into a new store and makes it current. On error the
// current store is left in place.
func (n *Navigator) Load(ctx context.Context, path string) (store.Stats, error) {
	if err := ctx.Err(); err != nil {
		return store.Stats{}, err
	}

	if n.options.WorkspaceRoot != "" {
		normalized, err := rootpath.Normalize(path, n.options.WorkspaceRoot)
		if err != nil {
			return store.Stats{}, err
		}
		path = normalized
	}

	s, err := store.LoadFile(path, n.options.StoreOptions...)
	if err != nil {
		return store.Stats{}, err
	}

	n.current.Store(s)
	stats := s.Stats()
	log.Infof("Loaded %s: %d documents, %d vertices, %d edges", path, stats.Documents, stats.Vertices, stats.Edges)
	return stats, nil
}

// Hover returns the hover text at the given position.
func (n *Navigator) Hover(ctx context.Context, uri string, pos protocol.Pos) (string, bool, error) {
	if s := n.Store(); s != nil {
		if text, ok := query.Hover(s, uri, pos); ok {
			return text, true, nil
		}
	}

	if n.options.Fallback == nil {
		return "", false, nil
	}

	log.Debugf("No indexed hover for %s:%d:%d", uri, pos.Line, pos.Character)
	return n.options.Fallback.Hover(ctx, uri, pos)
}

// Definition returns the definitions of the symbol at the given position.
func (n *Navigator) Definition(ctx context.Context, uri string, pos protocol.Pos) ([]query.Location, error) {
	if s := n.Store(); s != nil {
		if locations := query.Definitions(s, uri, pos); locations != nil {
			return locations, nil
		}
	}

	if n.options.Fallback == nil {
		return nil, nil
	}

	log.Debugf("No indexed definitions for %s:%d:%d", uri, pos.Line, pos.Character)
	return n.options.Fallback.Definition(ctx, uri, pos)
}

// References returns the references to the symbol at the given position.
func (n *Navigator) References(ctx context.Context, uri string, pos protocol.Pos) ([]query.Location, error) {
	if s := n.Store(); s != nil {
		if locations := query.References(s, uri, pos); locations != nil {
			return locations, nil
		}
	}

	if n.options.Fallback == nil {
		return nil, nil
	}

	log.Debugf("No indexed references for %s:%d:%d", uri, pos.Line, pos.Character)
	return n.options.Fallback.References(ctx, uri, pos)
}

// Notify forwards a text document notification to the fallback.
func (n *Navigator) Notify(ctx context.Context, method string, params interface{}) error {
	if notifier, ok := n.options.Fallback.(Notifier); ok {
		return notifier.Notify(ctx, method, params)
	}

	return nil
}

// Suggest returns the indexed document whose URI is closest to the given one.
func (n *Navigator) Suggest(uri string) (string, bool) {
	s := n.Store()
	if s == nil {
		return "", false
	}

	uri = store.NormalizeURI(uri)

	best, bestDistance := "", -1
	for _, shard := range s.Shards() {
		if distance := levenshtein.ComputeDistance(uri, shard.URI()); bestDistance < 0 || distance < bestDistance {
			best, bestDistance = shard.DocumentURI(), distance
		}
	}

	return best, bestDistance >= 0
}
