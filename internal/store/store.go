package store

import (
	"net/url"

	"github.com/sourcegraph/lsif-query/internal/protocol"
)

// Store is an immutable, query-able graph built from a single index. Stores are only
// built by Load; they are never mutated afterwards and can be read concurrently.
type Store struct {
	shards    map[string]*Shard
	documents []string
	vertices  map[protocol.ID]protocol.Vertex
	edges     map[protocol.ID]protocol.Edge
	owners    map[protocol.ID]string
	stats     Stats
}

// Stats summarizes the contents of a store.
type Stats struct {
	// Documents is the number of document shards.
	Documents int
	// Vertices is the number of vertices read from the index.
	Vertices int
	// Edges is the number of edges read from the index.
	Edges int
	// Repaired is the number of orphaned item edges moved into a document shard.
	Repaired int
	// Discarded is the number of records left in the unassigned shard after repair.
	Discarded int
}

func newStore() *Store {
	return &Store{
		shards:   map[string]*Shard{},
		vertices: map[protocol.ID]protocol.Vertex{},
		edges:    map[protocol.ID]protocol.Edge{},
		owners:   map[protocol.ID]string{},
	}
}

// NormalizeURI decodes any percent-escaping in the given document URI. URIs that cannot
// be decoded are returned unchanged.
func NormalizeURI(uri string) string {
	if decoded, err := url.PathUnescape(uri); err == nil {
		return decoded
	}

	return uri
}

// Shard returns the shard of the document with the given URI. The URI is percent-decoded
// before lookup.
func (s *Store) Shard(uri string) (*Shard, bool) {
	shard, ok := s.shards[NormalizeURI(uri)]
	return shard, ok
}

// ShardByURI returns the shard keyed by the given already-normalized URI.
func (s *Store) ShardByURI(uri string) (*Shard, bool) {
	shard, ok := s.shards[uri]
	return shard, ok
}

// Documents returns the URIs of all document shards in the order their document
// vertices appeared in the index.
func (s *Store) Documents() []string {
	return s.documents
}

// Shards returns all document shards in document order.
func (s *Store) Shards() []*Shard {
	shards := make([]*Shard, 0, len(s.documents))
	for _, uri := range s.documents {
		shards = append(shards, s.shards[uri])
	}

	return shards
}

// Vertex returns the vertex with the given identifier, wherever it is stored.
func (s *Store) Vertex(id protocol.ID) (protocol.Vertex, bool) {
	v, ok := s.vertices[id]
	return v, ok
}

// Edge returns the edge with the given identifier, wherever it is stored.
func (s *Store) Edge(id protocol.ID) (protocol.Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// OwnerURI returns the URI of the document shard owning the vertex with the given
// identifier. Document vertices own themselves.
func (s *Store) OwnerURI(id protocol.ID) (string, bool) {
	uri, ok := s.owners[id]
	return uri, ok
}

// Stats returns a summary of the store's contents.
func (s *Store) Stats() Stats {
	return s.stats
}
