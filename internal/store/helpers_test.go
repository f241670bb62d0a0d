package store

import (
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"github.com/sourcegraph/lsif-query/internal/protocol"
	"golang.org/x/tools/txtar"
)

// readFixture returns the dump.lsif section of the named archive in internal/testdata/indexes.
func readFixture(t *testing.T, name string) []byte {
	archive, err := txtar.ParseFile(filepath.Join("..", "testdata", "indexes", name+".txtar"))
	if err != nil {
		t.Fatalf("unexpected error reading fixture: %s", err)
	}

	for _, file := range archive.Files {
		if file.Name == "dump.lsif" {
			return file.Data
		}
	}

	t.Fatalf("fixture %s has no dump.lsif section", name)
	return nil
}

// loadFixture loads the named fixture into a store.
func loadFixture(t *testing.T, name string, opts ...Option) *Store {
	s, err := Load(bytes.NewReader(readFixture(t, name)), opts...)
	if err != nil {
		t.Fatalf("unexpected error loading fixture: %s", err)
	}

	return s
}

// shardSnapshot is a comparable summary of the membership of a shard.
type shardSnapshot struct {
	URI      string
	Vertices []protocol.ID
	Edges    []protocol.ID
}

// snapshot summarizes every shard of the given store in document order.
func snapshot(s *Store) (snapshots []shardSnapshot) {
	for _, shard := range s.Shards() {
		snapshots = append(snapshots, snapshotShard(shard))
	}

	return snapshots
}

func snapshotShard(shard *Shard) shardSnapshot {
	snapshot := shardSnapshot{URI: shard.URI()}
	for id := range shard.vertices {
		snapshot.Vertices = append(snapshot.Vertices, id)
	}
	sortIDs(snapshot.Vertices)

	for _, edge := range shard.Edges() {
		snapshot.Edges = append(snapshot.Edges, edge.ElementID())
	}

	return snapshot
}

func sortIDs(ids []protocol.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
