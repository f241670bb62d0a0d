package store

import "github.com/sourcegraph/lsif-query/internal/protocol"

// edgeKey indexes the edges of a shard by label and one endpoint.
type edgeKey struct {
	label protocol.EdgeLabel
	id    protocol.ID
}

// Shard is the subset of the index graph scoped to a single document. Membership is only
// changed while the owning store is being built.
type Shard struct {
	uri         string
	documentURI string
	documentIDs []protocol.ID
	vertices    map[protocol.ID]protocol.Vertex
	edges       []protocol.Edge
	edgesByID   map[protocol.ID]protocol.Edge
	outgoing    map[edgeKey][]protocol.Edge
	incoming    map[edgeKey][]protocol.Edge
}

func newShard(uri string) *Shard {
	return &Shard{
		uri:       uri,
		vertices:  map[protocol.ID]protocol.Vertex{},
		edgesByID: map[protocol.ID]protocol.Edge{},
		outgoing:  map[edgeKey][]protocol.Edge{},
		incoming:  map[edgeKey][]protocol.Edge{},
	}
}

// add inserts the given vertex or edge into the shard. Elements already present (by id)
// are ignored so that repair can never duplicate a record.
func (s *Shard) add(element protocol.Element) {
	switch e := element.(type) {
	case protocol.Vertex:
		if _, ok := s.vertices[e.ElementID()]; ok {
			return
		}
		s.vertices[e.ElementID()] = e

		if document, ok := e.(protocol.Document); ok {
			if len(s.documentIDs) == 0 {
				s.documentURI = document.URI
			}
			s.documentIDs = append(s.documentIDs, document.ID)
		}

	case protocol.Edge:
		if _, ok := s.edgesByID[e.ElementID()]; ok {
			return
		}
		s.edges = append(s.edges, e)
		s.edgesByID[e.ElementID()] = e

		label := e.EdgeLabel()
		s.outgoing[edgeKey{label, e.Source()}] = append(s.outgoing[edgeKey{label, e.Source()}], e)
		for _, target := range uniqueIDs(e.Targets()) {
			s.incoming[edgeKey{label, target}] = append(s.incoming[edgeKey{label, target}], e)
		}
	}
}

// URI returns the percent-decoded URI of the document owning this shard. It is the key
// the shard is stored under.
func (s *Shard) URI() string {
	return s.uri
}

// DocumentURI returns the URI of the first document vertex of this shard as written in
// the index.
func (s *Shard) DocumentURI() string {
	return s.documentURI
}

// DocumentID returns the identifier of the first document vertex of this shard.
func (s *Shard) DocumentID() (protocol.ID, bool) {
	if len(s.documentIDs) == 0 {
		return 0, false
	}

	return s.documentIDs[0], true
}

// Vertex returns the vertex of this shard with the given identifier.
func (s *Shard) Vertex(id protocol.ID) (protocol.Vertex, bool) {
	v, ok := s.vertices[id]
	return v, ok
}

// Edge returns the edge of this shard with the given identifier.
func (s *Shard) Edge(id protocol.ID) (protocol.Edge, bool) {
	e, ok := s.edgesByID[id]
	return e, ok
}

// NumVertices returns the number of vertices in this shard.
func (s *Shard) NumVertices() int {
	return len(s.vertices)
}

// Edges returns the edges of this shard in the order they were added.
func (s *Shard) Edges() []protocol.Edge {
	return s.edges
}

// Outgoing returns the edges with the given label whose source is id, in insertion order.
func (s *Shard) Outgoing(label protocol.EdgeLabel, id protocol.ID) []protocol.Edge {
	return s.outgoing[edgeKey{label, id}]
}

// Incoming returns the edges with the given label that have id among their targets, in
// insertion order.
func (s *Shard) Incoming(label protocol.EdgeLabel, id protocol.ID) []protocol.Edge {
	return s.incoming[edgeKey{label, id}]
}

// Contains returns the targets of the contains edges sourced at this shard's document
// vertices, in the order they are listed. The second return value is false when the
// shard has no contains edge.
func (s *Shard) Contains() ([]protocol.ID, bool) {
	var targets []protocol.ID
	found := false

	for _, documentID := range s.documentIDs {
		for _, edge := range s.Outgoing(protocol.EdgeContains, documentID) {
			targets = append(targets, edge.Targets()...)
			found = true
		}
	}

	return targets, found
}

func uniqueIDs(ids []protocol.ID) []protocol.ID {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[protocol.ID]struct{}, len(ids))
	unique := make([]protocol.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}
