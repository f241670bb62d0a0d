package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/lsif-query/internal/git"
	"go.lsp.dev/uri"
)

var wd = sync.OnceValue(func() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return ""
})

var toplevel = sync.OnceValue(func() string {
	if toplevel, err := git.TopLevel(context.Background(), "."); err == nil {
		return toplevel
	}

	return ""
})

// documentURI turns a path into an absolute, escaped file URI. Arguments that already
// are file URIs are returned unchanged.
func documentURI(document string) string {
	if strings.HasPrefix(document, "file://") {
		return document
	}

	if !filepath.IsAbs(document) {
		document = filepath.Join(wd(), document)
	}

	return string(uri.File(filepath.Clean(document)))
}

// pathOf returns the file path named by a file URI, or the argument itself when it is
// not one.
func pathOf(documentURI string) string {
	if !strings.HasPrefix(documentURI, "file://") {
		return documentURI
	}

	parsed, err := uri.Parse(documentURI)
	if err != nil {
		return documentURI
	}

	return parsed.Filename()
}

func rel(path string) string {
	relative, err := filepath.Rel(wd(), path)
	if err != nil {
		return path
	}

	return relative
}
