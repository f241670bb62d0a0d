package store

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/reader"
)

// Option configures Load.
type Option func(*options)

type options struct {
	repairPolicy RepairPolicy
}

// WithRepairPolicy replaces the policy used to migrate orphaned item edges into their
// document shards.
func WithRepairPolicy(policy RepairPolicy) Option {
	return func(o *options) {
		o.repairPolicy = policy
	}
}

// LoadFile reads the index at the given path into a new store.
func LoadFile(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening index")
	}
	defer f.Close()

	return Load(f, opts...)
}

// Load reads a newline-delimited LSIF index into a new store. Either the whole index is
// ingested or an error is returned and no store is produced.
//
// Records are assigned to the shard of the most recent document vertex. Records that
// precede every document, and records that follow a contains edge not sourced at a
// document, are collected in an unassigned shard. After the stream is consumed the item
// edges of that shard carrying a shard hint are migrated to the document they name (see
// RepairPolicy) and the unassigned shard is discarded.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	o := options{repairPolicy: AdjacentIDRepair{}}
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{
		store:       newStore(),
		unassigned:  newShard(""),
		documentIDs: map[protocol.ID]string{},
	}

	cursor := b.unassigned
	if err := reader.Read(r, func(element protocol.Element) error {
		cursor = b.ingest(cursor, element)
		return nil
	}); err != nil {
		return nil, err
	}

	b.repair(o.repairPolicy)
	return b.store, nil
}

// builder accumulates a store during a single Load call.
type builder struct {
	store       *Store
	unassigned  *Shard
	documentIDs map[protocol.ID]string
}

// ingest adds the given element to the appropriate shard and returns the shard that
// receives the records following it.
func (b *builder) ingest(cursor *Shard, element protocol.Element) *Shard {
	switch e := element.(type) {
	case protocol.Document:
		shard := b.documentShard(e)
		b.addVertex(shard, e)
		return shard

	case protocol.Contains:
		if uri, ok := b.documentIDs[e.OutV]; ok {
			b.addEdge(b.store.shards[uri], e)
			return cursor
		}

		b.addEdge(b.unassigned, e)
		return b.unassigned

	case protocol.Vertex:
		b.addVertex(cursor, e)

	case protocol.Edge:
		b.addEdge(cursor, e)
	}

	return cursor
}

func (b *builder) documentShard(document protocol.Document) *Shard {
	uri := NormalizeURI(document.URI)
	b.documentIDs[document.ID] = uri

	shard, ok := b.store.shards[uri]
	if !ok {
		shard = newShard(uri)
		b.store.shards[uri] = shard
		b.store.documents = append(b.store.documents, uri)
	}

	return shard
}

func (b *builder) addVertex(shard *Shard, v protocol.Vertex) {
	shard.add(v)
	b.store.vertices[v.ElementID()] = v
	b.store.stats.Vertices++

	if shard != b.unassigned {
		b.setOwner(v.ElementID(), shard.uri)
	}
}

func (b *builder) addEdge(shard *Shard, e protocol.Edge) {
	shard.add(e)
	b.store.edges[e.ElementID()] = e
	b.store.stats.Edges++
}

func (b *builder) setOwner(id protocol.ID, uri string) {
	if _, ok := b.store.owners[id]; !ok {
		b.store.owners[id] = uri
	}
}

// repair migrates the orphaned item edges of the unassigned shard, together with the
// companions chosen by the given policy, into the shards named by their shard hints.
func (b *builder) repair(policy RepairPolicy) {
	moved := map[protocol.ID]struct{}{}

	for _, edge := range b.unassigned.Edges() {
		item, ok := edge.(protocol.Item)
		if !ok || !item.HasShard {
			continue
		}

		uri, ok := b.store.OwnerURI(item.Shard)
		if !ok {
			log.Debugf("item edge %d names unknown shard %d", item.ID, item.Shard)
			continue
		}
		target := b.store.shards[uri]

		for _, companion := range policy.Companions(b.unassigned, item) {
			target.add(companion)
			if v, ok := companion.(protocol.Vertex); ok {
				b.setOwner(v.ElementID(), uri)
			}
			moved[companion.ElementID()] = struct{}{}
		}

		target.add(item)
		moved[item.ID] = struct{}{}
		b.store.stats.Repaired++
	}

	remaining := b.unassigned.NumVertices() + len(b.unassigned.Edges()) - len(moved)

	b.store.stats.Documents = len(b.store.documents)
	b.store.stats.Discarded = remaining
	b.unassigned = nil

	log.Debugf("repaired %d item edges, discarded %d unassigned records", b.store.stats.Repaired, remaining)
}
