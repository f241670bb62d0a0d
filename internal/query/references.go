package query

import (
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// References returns every reference to the symbol at the given position, following
// range -> resultSet -> referenceResult and collecting the ranges listed by item edges
// with the references property in every document. Returns nil when nothing is found.
func References(s *store.Store, uri string, pos protocol.Pos) []Location {
	shard, r, ok := resolve(s, uri, pos)
	if !ok {
		return nil
	}

	v, ok := target(s, shard, protocol.EdgeNext, r.ID)
	if !ok {
		return nil
	}
	resultSet, ok := v.(protocol.ResultSet)
	if !ok {
		return nil
	}

	v, ok = target(s, shard, protocol.EdgeTextDocumentReferences, resultSet.ID)
	if !ok {
		return nil
	}
	referenceResult, ok := v.(protocol.ReferenceResult)
	if !ok {
		return nil
	}

	var locations []Location
	for _, scanned := range s.Shards() {
		for _, edge := range scanned.Outgoing(protocol.EdgeItem, referenceResult.ID) {
			item, ok := edge.(protocol.Item)
			if !ok || item.Property != protocol.ItemReferences {
				continue
			}

			owner := itemShard(s, scanned, item)
			for _, id := range item.InVs {
				if v, ok := s.Vertex(id); ok {
					if r, ok := v.(protocol.Range); ok {
						locations = append(locations, newLocation(owner, r))
					}
				}
			}
		}
	}

	return locations
}
