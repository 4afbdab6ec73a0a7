package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateStopping
	StateStopped
)

type State int32

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "stopped"
	}
}

const defaultPollInterval = 200 * time.Millisecond

type Options struct {
	// Excludes are glob patterns matched against entry names; matching
	// entries never produce events.
	Excludes []string
	// Poll forces the polling strategy regardless of platform.
	Poll bool
	// PollInterval overrides the default interval when polling.
	PollInterval time.Duration
}

// Session owns one OS watch registration on a single directory and yields
// an ordered stream of messages until stopped. A stopped session cannot be
// restarted; construct a new one.
type Session struct {
	root string
	opts Options

	state    atomic.Int32
	cancel   context.CancelFunc
	msgs     chan Message
	done     chan struct{}
	stopOnce sync.Once
}

// Start registers a watch on root and runs the retrieval loop on its own
// goroutine. It fails if root is not an existing directory or the OS
// refuses the registration.
func Start(root string, opts Options) (*Session, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	s := newSession(root, opts)
	s.state.Store(int32(StateStarting))

	strat, err := newStrategy(root, opts)
	if err != nil {
		s.state.Store(int32(StateStopped))
		return nil, fmt.Errorf("newStrategy: %w", err)
	}

	s.run(strat)

	return s, nil
}

// startWith wires a session around an already-open strategy and starts
// the loop.
func startWith(root string, strat strategy, opts Options) *Session {
	s := newSession(root, opts)
	s.run(strat)

	return s
}

func newSession(root string, opts Options) *Session {
	return &Session{
		root: root,
		opts: opts,
		msgs: make(chan Message),
		done: make(chan struct{}),
	}
}

// run flips the session to Running and starts the retrieval loop.
func (s *Session) run(strat strategy) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state.Store(int32(StateRunning))

	go s.loop(ctx, strat)
}

// Messages returns the session's output channel. It is closed once the
// loop has exited, either after Stop or after a terminal error message.
func (s *Session) Messages() <-chan Message {
	return s.msgs
}

// Root returns the watched directory.
func (s *Session) Root() string {
	return s.root
}

func (s *Session) State() State {
	return State(s.state.Load())
}

// Stop cancels the retrieval loop and blocks until it has exited and the
// OS watch registration is released. Safe to call from any goroutine and
// a no-op after the first call or after the loop died on its own.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
		s.cancel()
	})
	<-s.done
}

func (s *Session) loop(ctx context.Context, strat strategy) {
	defer func() {
		s.cancel()
		_ = strat.close()
		s.state.Store(int32(StateStopped))
		close(s.msgs)
		close(s.done)
	}()

	for {
		raws, err := strat.next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.emit(ctx, Message{Err: err})
			return
		}

		for _, raw := range raws {
			if raw.op == rawOverflow {
				s.emit(ctx, Message{Resync: true})
				continue
			}
			if s.excluded(raw.name) {
				continue
			}

			event := Event{
				Name: raw.name,
				Type: eventType(raw.op),
				Time: time.Now(),
			}
			s.emit(ctx, Message{Event: &event})
		}
	}
}

func (s *Session) emit(ctx context.Context, msg Message) {
	select {
	case s.msgs <- msg:
	case <-ctx.Done():
	}
}

func (s *Session) excluded(name string) bool {
	for _, pattern := range s.opts.Excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func eventType(op rawOp) EventType {
	switch op {
	case rawCreate:
		return EventCreated
	case rawRemove:
		return EventRemoved
	default:
		return EventModified
	}
}
