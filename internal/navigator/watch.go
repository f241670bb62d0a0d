package navigator

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/log"
)

// reloadDelay is how long the index file must be quiet before it is reloaded.
var reloadDelay = 100 * time.Millisecond

// Watch reloads the index at path whenever it is written or replaced, until the
// context is canceled. Failed reloads are logged and the current store is kept.
func (n *Navigator) Watch(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "resolving index path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	// The directory is watched so that replacing the file by rename is noticed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "watching index directory")
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reload = time.After(reloadDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Infof("Watching %s: %s", path, err)

		case <-reload:
			reload = nil
			if _, err := n.Load(ctx, path); err != nil {
				log.Infof("Reloading %s: %s", path, err)
			}
		}
	}
}
