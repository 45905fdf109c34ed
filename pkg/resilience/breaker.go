package resilience

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrBreakerOpen is returned by Breaker.Do while the breaker is open.
var ErrBreakerOpen = errors.New("breaker open")

// Breaker opens after Threshold consecutive failures and rejects calls until
// Cooldown has passed. The first call after the cooldown is let through; its
// outcome closes or re-opens the breaker.
type Breaker struct {
	name      string
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	failures int
	openedAt time.Time
	open     bool
	logger   *slog.Logger
}

func NewBreaker(name string, threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{
		name:      name,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		logger:    slog.Default().With("component", "breaker", "name", name),
	}
}

func (b *Breaker) Do(fn func() error) error {
	if !b.allow() {
		return ErrBreakerOpen
	}
	err := fn()
	b.record(err)
	return err
}

// Open reports whether calls are currently being rejected.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open && b.now().Sub(b.openedAt) < b.cooldown
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	return b.now().Sub(b.openedAt) >= b.cooldown
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		if b.open {
			b.logger.Info("breaker closed")
		}
		b.failures = 0
		b.open = false
		return
	}
	b.failures++
	if b.open || b.failures >= b.threshold {
		if !b.open {
			b.logger.Warn("breaker opened", "consecutive_failures", b.failures)
		}
		b.open = true
		b.openedAt = b.now()
	}
}
