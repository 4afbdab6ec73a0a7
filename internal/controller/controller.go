package controller

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/capcom6/dir-notify/internal/notify"
	"github.com/capcom6/dir-notify/internal/watcher"
)

// Notifier is the delivery side the controller feeds. *notify.Chain
// satisfies it.
type Notifier interface {
	Send(title, body string, severity notify.Severity)
	Cleanup()
}

// Callbacks are the hooks the UI layer registers. Nil members are skipped.
type Callbacks struct {
	// OnChange fires once per change event, for per-entry updates.
	OnChange func(event watcher.Event)
	// OnRefresh asks the UI for a full directory re-listing: after a
	// successful target switch and after an event-queue overflow.
	OnRefresh func()
	// OnStatus carries user-visible status and error text.
	OnStatus func(message string)
}

// Controller is the single owner of the current watch target. It starts
// and stops sessions so that no two are ever live at once and fans each
// change event out to the notifier chain and the UI.
type Controller struct {
	notifier Notifier
	cb       Callbacks
	opts     watcher.Options

	mu       sync.Mutex
	target   string
	session  *watcher.Session
	pumpDone chan struct{}
	closed   bool
}

func New(notifier Notifier, cb Callbacks, opts watcher.Options) *Controller {
	return &Controller{
		notifier: notifier,
		cb:       cb,
		opts:     opts,
	}
}

// Target returns the currently watched directory, empty when no session
// is running.
func (c *Controller) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target
}

// SetTarget switches the watch to path. An invalid path fails without
// touching the running session. On a valid path the old session is fully
// stopped before the new one starts; the recorded target and the refresh
// callback only change once the new session is running.
func (c *Controller) SetTarget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTarget, path, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("%w: controller is shut down", ErrWatchUnavailable)
	}

	c.stopSessionLocked()

	session, err := watcher.Start(abs, c.opts)
	if err != nil {
		c.status(fmt.Sprintf("watch failed for %s: %v", abs, err))
		return fmt.Errorf("%w: %v", ErrWatchUnavailable, err)
	}

	c.session = session
	c.target = abs
	c.pumpDone = make(chan struct{})
	go c.pump(session, c.pumpDone)

	c.status("watching " + abs)
	if c.cb.OnRefresh != nil {
		c.cb.OnRefresh()
	}

	return nil
}

// Shutdown stops the active session and releases notifier resources.
// Idempotent.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	c.stopSessionLocked()
	c.notifier.Cleanup()
}

// stopSessionLocked tears the current session down completely: the watch
// loop, its OS registration, and the pump goroutine are all gone before it
// returns, so no stale event can outlive a target switch.
func (c *Controller) stopSessionLocked() {
	if c.session == nil {
		return
	}

	c.session.Stop()
	<-c.pumpDone

	c.session = nil
	c.pumpDone = nil
	c.target = ""
}

func (c *Controller) pump(session *watcher.Session, done chan<- struct{}) {
	defer close(done)

	target := session.Root()
	for msg := range session.Messages() {
		c.handleMessage(msg, target)
	}
}

func (c *Controller) handleMessage(msg watcher.Message, target string) {
	switch {
	case msg.Err != nil:
		// terminal loop fault; the session is gone and is not
		// restarted automatically
		c.status(fmt.Sprintf("watch stopped for %s: %v", target, msg.Err))
		go c.notifier.Send("Watch stopped", target, notify.SeverityError)
	case msg.Resync:
		log.Printf("[DEBUG] overflow on %s, requesting refresh", target)
		if c.cb.OnRefresh != nil {
			c.cb.OnRefresh()
		}
	case msg.Event != nil:
		c.onEvent(*msg.Event, target)
	}
}

func (c *Controller) onEvent(event watcher.Event, target string) {
	title, severity := describe(event.Type)
	body := fmt.Sprintf("%s in %s", event.Name, filepath.Base(target))

	// fire-and-forget: a slow channel must not stall the watch loop
	go c.notifier.Send(title, body, severity)

	if c.cb.OnChange != nil {
		c.cb.OnChange(event)
	}
}

func (c *Controller) status(message string) {
	log.Printf("[INFO] %s", message)
	if c.cb.OnStatus != nil {
		c.cb.OnStatus(message)
	}
}

func describe(t watcher.EventType) (string, notify.Severity) {
	switch t {
	case watcher.EventCreated:
		return "File created", notify.SeverityInfo
	case watcher.EventRemoved:
		return "File deleted", notify.SeverityWarning
	default:
		return "File modified", notify.SeverityInfo
	}
}
