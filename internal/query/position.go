package query

import (
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// ResolveRange returns the first range of the given document that contains the given
// zero-based position. Ranges are considered in the order they are listed by the
// document's contains edges.
func ResolveRange(s *store.Store, uri string, pos protocol.Pos) (protocol.Range, bool) {
	_, r, ok := resolve(s, uri, pos)
	return r, ok
}

func resolve(s *store.Store, uri string, pos protocol.Pos) (*store.Shard, protocol.Range, bool) {
	shard, ok := s.Shard(uri)
	if !ok {
		return nil, protocol.Range{}, false
	}

	targets, ok := shard.Contains()
	if !ok {
		return nil, protocol.Range{}, false
	}

	p := toStoreCoordinates(pos)
	for _, id := range targets {
		v, ok := vertex(s, shard, id)
		if !ok {
			continue
		}

		if r, ok := v.(protocol.Range); ok && r.Contains(p) {
			return shard, r, true
		}
	}

	return nil, protocol.Range{}, false
}
