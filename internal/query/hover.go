package query

import (
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// Hover returns the hover text attached to the range at the given position. A hover
// edge on the range itself wins over one reached through its next chain.
func Hover(s *store.Store, uri string, pos protocol.Pos) (string, bool) {
	shard, r, ok := resolve(s, uri, pos)
	if !ok {
		return "", false
	}

	visited := map[protocol.ID]struct{}{}
	for id := r.ID; ; {
		if result, ok := hoverResult(s, shard, id); ok {
			if len(result.Contents) == 0 {
				return "", false
			}

			return result.Text(), true
		}
		visited[id] = struct{}{}

		next, ok := target(s, shard, protocol.EdgeNext, id)
		if !ok {
			return "", false
		}
		if _, ok := visited[next.ElementID()]; ok {
			return "", false
		}
		id = next.ElementID()
	}
}

func hoverResult(s *store.Store, shard *store.Shard, id protocol.ID) (protocol.HoverResult, bool) {
	v, ok := target(s, shard, protocol.EdgeTextDocumentHover, id)
	if !ok {
		return protocol.HoverResult{}, false
	}

	result, ok := v.(protocol.HoverResult)
	return result, ok
}
