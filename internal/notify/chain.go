package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

const sendTimeout = 3 * time.Second

// Chain tries each channel in priority order until one accepts the
// notification. Delivery failures never escape the chain; when every
// channel fails the combined error is logged and dropped.
type Chain struct {
	channels []Channel
	timeout  time.Duration

	cleanupOnce sync.Once
}

func NewChain(channels []Channel) *Chain {
	names := lo.Map(channels, func(c Channel, _ int) string { return c.Name() })
	log.Printf("[DEBUG] notifier chain: %s", strings.Join(names, " -> "))

	return &Chain{
		channels: channels,
		timeout:  sendTimeout,
	}
}

func (c *Chain) Send(title, body string, severity Severity) {
	n := Notification{
		Title:    title,
		Body:     body,
		Severity: severity,
	}

	var errs *multierror.Error
	for _, channel := range c.channels {
		err := c.sendOne(channel, n)
		if err == nil {
			log.Printf("[DEBUG] delivered %q via %s", title, channel.Name())
			return
		}

		errs = multierror.Append(errs, fmt.Errorf("%s: %w", channel.Name(), err))
	}

	log.Printf("[ERROR] all channels failed for %q: %v", title, errs.ErrorOrNil())
}

func (c *Chain) sendOne(channel Channel, n Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return channel.Send(ctx, n)
}

// Cleanup releases persistent resources held by channels. Idempotent.
func (c *Chain) Cleanup() {
	c.cleanupOnce.Do(func() {
		for _, channel := range c.channels {
			closer, ok := channel.(io.Closer)
			if !ok {
				continue
			}
			if err := closer.Close(); err != nil {
				log.Printf("[ERROR] cleanup %s: %v", channel.Name(), err)
			}
		}
	})
}
