// Package rootpath rewrites the project root recorded in the document URIs of an index
// so that it matches the root of the workspace the index is loaded into.
package rootpath

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/log"
)

const fileScheme = "file://"

// Normalize finds the first file URI prefix in the index at the given path that ends in
// the base name of workspaceRoot. If it differs from the workspace root's own prefix,
// every occurrence is rewritten in place. The returned path is the one to load.
func Normalize(path, workspaceRoot string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading index")
	}

	root := filepath.ToSlash(filepath.Clean(workspaceRoot))
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	newPrefix := fileScheme + strings.TrimSuffix(root, "/") + "/"

	oldPrefix, ok := findPrefix(contents, filepath.Base(root))
	if !ok || oldPrefix == newPrefix {
		return path, nil
	}

	rewritten := bytes.ReplaceAll(contents, []byte(oldPrefix), []byte(newPrefix))
	doubled := newPrefix + strings.TrimPrefix(newPrefix[len(fileScheme):], "/")
	rewritten = bytes.ReplaceAll(rewritten, []byte(doubled), []byte(newPrefix))

	if err := writeFileAtomic(path, rewritten); err != nil {
		return "", err
	}

	log.Infof("Rewrote root %s to %s in %s", oldPrefix, newPrefix, path)
	return path, nil
}

// findPrefix returns the first file URI prefix ending in /<base>/.
func findPrefix(contents []byte, base string) (string, bool) {
	pattern := regexp.MustCompile(regexp.QuoteMeta(fileScheme) + `[^"\s]*?/` + regexp.QuoteMeta(base) + `/`)

	match := pattern.Find(contents)
	if match == nil {
		return "", false
	}

	return string(match), true
}

// writeFileAtomic replaces the file at path with the given contents, keeping its mode.
func writeFileAtomic(path string, contents []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "stat index")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temporary index")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temporary index")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temporary index")
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "chmod temporary index")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "replacing index")
}
