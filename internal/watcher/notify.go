package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// notifyStrategy waits on fsnotify's blocking event delivery.
type notifyStrategy struct {
	root string
	fs   *fsnotify.Watcher
}

func newNotifyStrategy(root string) (*notifyStrategy, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	if err := fs.Add(root); err != nil {
		fs.Close()
		return nil, fmt.Errorf("fswatcher.Add: %w", err)
	}

	return &notifyStrategy{root: filepath.Clean(root), fs: fs}, nil
}

func (s *notifyStrategy) next(ctx context.Context) ([]rawEvent, error) {
	for {
		select {
		case event, ok := <-s.fs.Events:
			if !ok {
				return nil, errWatchClosed
			}
			if rootRemoved(s.root, event) {
				return nil, fmt.Errorf("watch root removed: %s", s.root)
			}
			if raw, ok := classify(event); ok {
				return []rawEvent{raw}, nil
			}
		case err, ok := <-s.fs.Errors:
			if !ok {
				return nil, errWatchClosed
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				return []rawEvent{{op: rawOverflow}}, nil
			}
			return nil, fmt.Errorf("fswatcher: %w", err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *notifyStrategy) close() error {
	return s.fs.Close()
}

// rootRemoved reports whether event announces the loss of the watched
// directory itself rather than a change to one of its children. Such an
// event ends the watch; reporting it as a removal would fabricate a child
// entry named after the root.
func rootRemoved(root string, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return filepath.Clean(event.Name) == root
}

// classify maps an fsnotify op onto a raw op. Chmod-only events carry no
// content change and are dropped; a rename of a direct child looks like a
// removal from inside the watched directory.
func classify(event fsnotify.Event) (rawEvent, bool) {
	if event.Name == "" || event.Name == "." {
		return rawEvent{}, false
	}

	raw := rawEvent{name: filepath.Base(event.Name)}
	switch {
	case event.Has(fsnotify.Create):
		raw.op = rawCreate
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		raw.op = rawRemove
	case event.Has(fsnotify.Write):
		raw.op = rawWrite
	default:
		return rawEvent{}, false
	}

	return raw, true
}
