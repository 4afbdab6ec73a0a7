package watcher

import (
	"context"
	"errors"
	"runtime"
)

const (
	rawCreate rawOp = iota
	rawRemove
	rawWrite
	rawOverflow
)

type rawOp int

// rawEvent is a classified OS notification before it becomes an Event.
// Overflow events carry no name.
type rawEvent struct {
	name string
	op   rawOp
}

// A strategy retrieves raw notifications for a single directory from the
// OS. Porting to a platform with different delivery semantics means adding
// an implementation, not changing the session loop.
type strategy interface {
	// next blocks until at least one raw event is available, the watch
	// fails, or ctx is cancelled.
	next(ctx context.Context) ([]rawEvent, error)
	// close releases the OS watch registration.
	close() error
}

var errWatchClosed = errors.New("watch closed")

// newStrategy picks the retrieval strategy for the current platform. The
// kqueue backend on darwin keeps a descriptor per entry and delivers child
// writes late or not at all, so darwin polls; everywhere else the blocking
// fsnotify primitive is used.
func newStrategy(root string, opts Options) (strategy, error) {
	if opts.Poll || runtime.GOOS == "darwin" {
		interval := opts.PollInterval
		if interval <= 0 {
			interval = defaultPollInterval
		}
		return newPollStrategy(root, interval)
	}

	return newNotifyStrategy(root)
}
