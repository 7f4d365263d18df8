package cli

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"go.viam.com/dynbridge/logging"
)

// newFileWatcher watches the directory holding filename, so that editors replacing the file
// through a rename are still seen.
func newFileWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		//nolint:errcheck
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %q", filename)
	}
	return watcher, nil
}

// watchFile calls onChange for every write or create of filename until ctx is done or the
// watcher is closed. Failures of onChange are logged and do not stop the loop.
func watchFile(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	filename string,
	logger logging.Logger,
	onChange func() error,
) error {
	target := filepath.Clean(filename)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			logger.Debugw("file changed", "file", filename, "op", event.Op.String())
			if err := onChange(); err != nil {
				logger.Errorw("conversion failed", "file", filename, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		}
	}
}
