package query

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sourcegraph/lsif-query/internal/store"
	"golang.org/x/tools/txtar"
)

func loadFixture(t *testing.T, name string) *store.Store {
	archive, err := txtar.ParseFile(filepath.Join("..", "testdata", "indexes", name+".txtar"))
	if err != nil {
		t.Fatalf("unexpected error reading fixture: %s", err)
	}

	for _, file := range archive.Files {
		if file.Name == "dump.lsif" {
			s, err := store.Load(bytes.NewReader(file.Data))
			if err != nil {
				t.Fatalf("unexpected error loading fixture: %s", err)
			}

			return s
		}
	}

	t.Fatalf("fixture %s has no dump.lsif section", name)
	return nil
}

func loadLines(t *testing.T, lines ...string) *store.Store {
	s, err := store.Load(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("unexpected error loading index: %s", err)
	}

	return s
}
