package query

import (
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/store"
)

// Definitions returns the definitions of the symbol at the given position. The result
// vertices are those sourcing an item edge that lists the range; each item edge with the
// definitions property sourced at one of them, in any document, contributes the ranges
// of its defining document that it lists. Returns nil when nothing is found.
func Definitions(s *store.Store, uri string, pos protocol.Pos) []Location {
	shard, r, ok := resolve(s, uri, pos)
	if !ok {
		return nil
	}

	var results []protocol.ID
	seenResults := map[protocol.ID]struct{}{}
	for _, edge := range shard.Incoming(protocol.EdgeItem, r.ID) {
		if _, ok := seenResults[edge.Source()]; ok {
			continue
		}
		seenResults[edge.Source()] = struct{}{}
		results = append(results, edge.Source())
	}

	var locations []Location
	seenItems := map[protocol.ID]struct{}{}
	for _, result := range results {
		for _, scanned := range s.Shards() {
			for _, edge := range scanned.Outgoing(protocol.EdgeItem, result) {
				item, ok := edge.(protocol.Item)
				if !ok || item.Property != protocol.ItemDefinitions {
					continue
				}
				if _, ok := seenItems[item.ID]; ok {
					continue
				}
				seenItems[item.ID] = struct{}{}

				locations = append(locations, definitionLocations(s, itemShard(s, scanned, item), item)...)
			}
		}
	}

	return locations
}

// definitionLocations returns the contains targets of the given document that are also
// targets of the given item edge.
func definitionLocations(s *store.Store, document *store.Shard, item protocol.Item) []Location {
	targets, ok := document.Contains()
	if !ok {
		return nil
	}

	listed := make(map[protocol.ID]struct{}, len(item.InVs))
	for _, id := range item.InVs {
		listed[id] = struct{}{}
	}

	var locations []Location
	for _, id := range targets {
		if _, ok := listed[id]; !ok {
			continue
		}

		v, ok := vertex(s, document, id)
		if !ok {
			continue
		}
		if r, ok := v.(protocol.Range); ok {
			locations = append(locations, newLocation(document, r))
		}
	}

	return locations
}
