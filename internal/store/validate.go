package store

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sourcegraph/lsif-query/internal/parallel"
	"github.com/sourcegraph/lsif-query/internal/protocol"
)

// Validate checks that every edge of every document shard connects known vertices and
// that every item edge with a shard hint names a document. All problems are reported
// together, grouped by shard in document order. Shards are checked concurrently.
func Validate(s *Store) error {
	shards := s.Shards()
	problems := make([][]error, len(shards))

	parallel.ForEach(len(shards), func(i int) {
		problems[i] = validateShard(s, shards[i])
	})

	var errs error
	for _, shardProblems := range problems {
		for _, problem := range shardProblems {
			errs = multierror.Append(errs, problem)
		}
	}

	return errs
}

func validateShard(s *Store, shard *Shard) (problems []error) {
	for _, edge := range shard.Edges() {
		if _, ok := s.Vertex(edge.Source()); !ok {
			problems = append(problems, fmt.Errorf("%s: %s edge %d has unknown source %d", shard.URI(), edge.EdgeLabel(), edge.ElementID(), edge.Source()))
		}

		for _, target := range edge.Targets() {
			if _, ok := s.Vertex(target); !ok {
				problems = append(problems, fmt.Errorf("%s: %s edge %d has unknown target %d", shard.URI(), edge.EdgeLabel(), edge.ElementID(), target))
			}
		}

		if item, ok := edge.(protocol.Item); ok && item.HasShard {
			if v, ok := s.Vertex(item.Shard); !ok || v.VertexLabel() != protocol.VertexDocument {
				problems = append(problems, fmt.Errorf("%s: item edge %d names unknown document %d", shard.URI(), item.ID, item.Shard))
			}
		}
	}

	if _, ok := shard.Contains(); !ok {
		problems = append(problems, fmt.Errorf("%s: document has no contains edge", shard.URI()))
	}

	return problems
}
