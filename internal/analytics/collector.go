// Package analytics buffers search events and publishes them to Kafka in
// batches from a background goroutine, so tracking never blocks a query.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/kafka"
)

// Publisher sends a batch of events; *kafka.Producer satisfies it.
type Publisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

type Collector struct {
	publisher     Publisher
	eventCh       chan SearchEvent
	batchSize     int
	flushInterval time.Duration
	onDrop        func()
	logger        *slog.Logger
	done          chan struct{}
}

// Option configures a Collector.
type Option func(*Collector)

// WithOnDrop registers a callback invoked for every event dropped because
// the buffer was full.
func WithOnDrop(fn func()) Option {
	return func(c *Collector) { c.onDrop = fn }
}

// WithBatching sets the maximum batch size and the flush interval.
func WithBatching(size int, interval time.Duration) Option {
	return func(c *Collector) {
		if size > 0 {
			c.batchSize = size
		}
		if interval > 0 {
			c.flushInterval = interval
		}
	}
}

func NewCollector(publisher Publisher, bufferSize int, opts ...Option) *Collector {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	c := &Collector{
		publisher:     publisher,
		eventCh:       make(chan SearchEvent, bufferSize),
		batchSize:     100,
		flushInterval: time.Second,
		onDrop:        func() {},
		logger:        slog.Default().With("component", "analytics-collector"),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
	c.logger.Info("analytics collector started",
		"buffer_size", cap(c.eventCh),
		"batch_size", c.batchSize,
	)
}

// Track queues event without blocking; it is dropped when the buffer is full.
func (c *Collector) Track(event SearchEvent) {
	select {
	case c.eventCh <- event:
	default:
		c.onDrop()
		c.logger.Warn("analytics event dropped (buffer full)", "query", event.Query)
	}
}

// Close stops accepting events and waits until everything queued has been
// published.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

func (c *Collector) run(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	batch := make([]kafka.Event, 0, c.batchSize)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := c.publisher.PublishBatch(ctx, batch); err != nil {
			c.logger.Error("failed to publish analytics events", "count", len(batch), "error", err)
		}
		batch = make([]kafka.Event, 0, c.batchSize)
	}

	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				flush(flushCtx)
				cancel()
				return
			}
			batch = append(batch, kafka.Event{Key: event.Corpus, Value: event})
			if len(batch) >= c.batchSize {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		case <-ctx.Done():
			c.drainRemaining(&batch)
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			flush(flushCtx)
			cancel()
			return
		}
	}
}

func (c *Collector) drainRemaining(batch *[]kafka.Event) {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			*batch = append(*batch, kafka.Event{Key: event.Corpus, Value: event})
		default:
			return
		}
	}
}
