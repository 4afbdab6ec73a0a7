package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const spawnGrace = 500 * time.Millisecond

// scriptChannel delivers a notification by invoking an OS tool. The
// default mode runs the tool to completion under the caller's deadline;
// spawn mode only confirms startup, for tools that block on user
// interaction (dialogs, timed tray icons) and must not hold up the chain.
type scriptChannel struct {
	name  string
	spawn bool
	argv  func(n Notification) []string
}

func (c *scriptChannel) Name() string {
	return c.name
}

func (c *scriptChannel) Send(ctx context.Context, n Notification) error {
	argv := c.argv(n)
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("exec.LookPath: %w", err)
	}

	if c.spawn {
		return spawn(argv)
	}

	return run(ctx, argv)
}

func run(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", argv[0], ctx.Err())
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, bytes.TrimSpace(out))
	}

	return nil
}

// spawn starts the tool and gives it a grace period to fail outright. A
// process still alive afterwards is assumed to be showing its UI; it is
// reaped in the background.
func spawn(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil
	case <-time.After(spawnGrace):
		go func() { <-done }()
		return nil
	}
}
