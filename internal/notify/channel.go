package notify

import "context"

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

type Severity int

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one user-visible message.
type Notification struct {
	Title    string
	Body     string
	Severity Severity
}

// Channel is a single delivery mechanism for a notification. Send must
// report a definite outcome before ctx expires; failure means the caller
// may try the next channel.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}
