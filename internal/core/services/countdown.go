package services

import (
	"context"
	"sync"
	"time"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/platform/metrics"
)

// Countdown is the reservation expiry gate of a checkout. It counts down
// once per tick and calls onExpire exactly once when it reaches zero. A new
// Countdown always starts from its full duration.
type Countdown struct {
	total    time.Duration
	tick     time.Duration
	onExpire func()

	mu        sync.Mutex
	remaining time.Duration
	cancel    context.CancelFunc
	started   bool

	fire sync.Once
	done chan struct{}
}

type CountdownOption func(*Countdown)

func WithTick(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		if d > 0 {
			c.tick = d
		}
	}
}

func NewCountdown(d time.Duration, onExpire func(), opts ...CountdownOption) *Countdown {
	if d < 0 {
		d = 0
	}
	c := &Countdown{
		total:     d,
		tick:      time.Second,
		onExpire:  onExpire,
		remaining: d,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the countdown goroutine. It stops when ctx is done, when
// Stop is called or after expiry. Calling Start twice has no effect.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	go c.run(ctx)
}

func (c *Countdown) run(ctx context.Context) {
	defer close(c.done)

	if c.total <= 0 {
		c.expire(ctx)
		return
	}

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining -= c.tick
			if c.remaining < 0 {
				c.remaining = 0
			}
			left := c.remaining
			c.mu.Unlock()

			if left == 0 {
				c.expire(ctx)
				return
			}
		}
	}
}

func (c *Countdown) expire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	c.fire.Do(func() {
		metrics.RecordCountdownExpired()
		if c.onExpire != nil {
			c.onExpire()
		}
	})
}

// Stop cancels the countdown and waits for its goroutine to exit. No callback
// runs after Stop returns.
func (c *Countdown) Stop() {
	c.mu.Lock()
	started := c.started
	cancel := c.cancel
	c.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-c.done
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Severity() domain.Severity {
	return domain.SeverityFor(c.Remaining())
}

// Done is closed when the countdown goroutine has exited.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
