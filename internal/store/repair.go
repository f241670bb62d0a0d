package store

import "github.com/sourcegraph/lsif-query/internal/protocol"

// RepairPolicy chooses which records travel with an orphaned item edge when it is moved
// from the unassigned shard into the document shard named by its shard hint.
type RepairPolicy interface {
	// Companions returns the records of the unassigned shard that must be copied into
	// the target shard together with the given item edge, in file order.
	Companions(unassigned *Shard, item protocol.Item) []protocol.Element
}

// AdjacentIDRepair recovers the result set and next edge that the producer serializes
// immediately before each orphaned item edge: the resultSet vertex at id-2 and the next
// edge at id-1. Records at those ids with any other label are left behind.
//
// This is a convention of one producer's emission order, not a property of the graph.
type AdjacentIDRepair struct{}

// Companions implements RepairPolicy.
func (AdjacentIDRepair) Companions(unassigned *Shard, item protocol.Item) []protocol.Element {
	var companions []protocol.Element

	if item.ID >= 2 {
		if v, ok := unassigned.Vertex(item.ID - 2); ok {
			if resultSet, ok := v.(protocol.ResultSet); ok {
				companions = append(companions, resultSet)
			}
		}
	}

	if item.ID >= 1 {
		if e, ok := unassigned.Edge(item.ID - 1); ok {
			if next, ok := e.(protocol.Next); ok {
				companions = append(companions, next)
			}
		}
	}

	return companions
}

// NoRepair migrates only the item edges themselves.
type NoRepair struct{}

// Companions implements RepairPolicy.
func (NoRepair) Companions(*Shard, protocol.Item) []protocol.Element {
	return nil
}
