package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeChannel struct {
	name  string
	err   error
	delay time.Duration

	calls []Notification
}

func (f *fakeChannel) Name() string {
	return f.name
}

func (f *fakeChannel) Send(ctx context.Context, n Notification) error {
	f.calls = append(f.calls, n)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return f.err
}

type closingChannel struct {
	fakeChannel
	closes int
}

func (c *closingChannel) Close() error {
	c.closes++
	return nil
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &fakeChannel{name: "first"}
	second := &fakeChannel{name: "second"}
	chain := NewChain([]Channel{first, second})

	chain.Send("File created", "a.txt", SeverityInfo)

	if len(first.calls) != 1 {
		t.Errorf("first channel calls = %d, want 1", len(first.calls))
	}
	if len(second.calls) != 0 {
		t.Errorf("second channel calls = %d, want 0", len(second.calls))
	}

	got := first.calls[0]
	want := Notification{Title: "File created", Body: "a.txt", Severity: SeverityInfo}
	if got != want {
		t.Errorf("notification = %+v, want %+v", got, want)
	}
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeChannel{name: "first", err: errors.New("no daemon")}
	second := &fakeChannel{name: "second"}
	chain := NewChain([]Channel{first, second})

	chain.Send("File deleted", "a.txt", SeverityWarning)

	if len(first.calls) != 1 || len(second.calls) != 1 {
		t.Errorf("calls = %d/%d, want 1/1", len(first.calls), len(second.calls))
	}
}

func TestChain_AllFail(t *testing.T) {
	first := &fakeChannel{name: "first", err: errors.New("no daemon")}
	second := &fakeChannel{name: "second", err: errors.New("no tray")}
	chain := NewChain([]Channel{first, second})

	// must not panic or raise; each channel is tried exactly once
	chain.Send("File modified", "b.txt", SeverityInfo)

	if len(first.calls) != 1 || len(second.calls) != 1 {
		t.Errorf("calls = %d/%d, want 1/1", len(first.calls), len(second.calls))
	}
}

func TestChain_TimeoutFallsThrough(t *testing.T) {
	hung := &fakeChannel{name: "hung", delay: time.Second}
	second := &fakeChannel{name: "second"}
	chain := NewChain([]Channel{hung, second})
	chain.timeout = 20 * time.Millisecond

	start := time.Now()
	chain.Send("File created", "a.txt", SeverityInfo)

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Send took %v, want bounded by the channel timeout", elapsed)
	}
	if len(second.calls) != 1 {
		t.Errorf("fallback channel calls = %d, want 1", len(second.calls))
	}
}

func TestChain_CleanupIdempotent(t *testing.T) {
	closing := &closingChannel{fakeChannel: fakeChannel{name: "tray"}}
	plain := &fakeChannel{name: "native"}
	chain := NewChain([]Channel{plain, closing})

	chain.Cleanup()
	chain.Cleanup()

	if closing.closes != 1 {
		t.Errorf("closes = %d, want 1", closing.closes)
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
