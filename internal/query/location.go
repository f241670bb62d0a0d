package query

import (
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// Location is a range within a document, in zero-based caller coordinates.
type Location struct {
	URI   string `json:"uri"`
	Range Span   `json:"range"`
}

// Span is a pair of zero-based positions.
type Span struct {
	Start protocol.Pos `json:"start"`
	End   protocol.Pos `json:"end"`
}

func toStoreCoordinates(p protocol.Pos) protocol.Pos {
	return p.Shift(1)
}

// newLocation returns the given range of document, reported under the URI the index
// gives the document.
func newLocation(document *store.Shard, r protocol.Range) Location {
	return Location{
		URI:   document.DocumentURI(),
		Range: Span{Start: r.Start.Shift(-1), End: r.End.Shift(-1)},
	}
}

// vertex returns the vertex with the given id, preferring the given shard.
func vertex(s *store.Store, shard *store.Shard, id protocol.ID) (protocol.Vertex, bool) {
	if shard != nil {
		if v, ok := shard.Vertex(id); ok {
			return v, true
		}
	}

	return s.Vertex(id)
}

// outgoing returns the edges with the given label sourced at id. The query shard is
// consulted first, then the shard owning id, so that chains crossing into the document
// that defines a shared result set can be followed.
func outgoing(s *store.Store, shard *store.Shard, label protocol.EdgeLabel, id protocol.ID) []protocol.Edge {
	if edges := shard.Outgoing(label, id); len(edges) > 0 {
		return edges
	}

	uri, ok := s.OwnerURI(id)
	if !ok || uri == shard.URI() {
		return nil
	}

	owner, ok := s.ShardByURI(uri)
	if !ok {
		return nil
	}

	return owner.Outgoing(label, id)
}

// target returns the vertex at the single target of the first edge with the
// given label sourced at id.
func target(s *store.Store, shard *store.Shard, label protocol.EdgeLabel, id protocol.ID) (protocol.Vertex, bool) {
	for _, edge := range outgoing(s, shard, label, id) {
		for _, target := range edge.Targets() {
			return vertex(s, shard, target)
		}
	}

	return nil, false
}

// itemShard returns the shard of the document named by the shard hint of the given item
// edge, or the shard it was found in.
func itemShard(s *store.Store, scanned *store.Shard, item protocol.Item) *store.Shard {
	if item.HasShard {
		if uri, ok := s.OwnerURI(item.Shard); ok {
			if owner, ok := s.ShardByURI(uri); ok {
				return owner
			}
		}
	}

	return scanned
}
