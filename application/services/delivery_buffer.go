package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

// DeliveryBuffer accumulates activity events and flushes them to the
// delivery sink on three triggers: reaching maxSize, the background interval,
// and teardown. Every flush atomically detaches the pending slice before any
// network call, so events appended during transit land in the new buffer and
// concurrent flushes each own their batch. A failed delivery is logged and
// dropped; bounded memory wins over at-least-once here.
type DeliveryBuffer struct {
	sink     ports.DeliverySink
	logger   *zap.Logger
	metrics  *observability.Collector
	maxSize  int
	interval time.Duration

	mu      sync.Mutex
	pending []entities.Event
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewDeliveryBuffer creates a buffer and starts its background interval
// timer. Dispose with Close.
func NewDeliveryBuffer(sink ports.DeliverySink, maxSize int, interval time.Duration, logger *zap.Logger, metrics *observability.Collector) *DeliveryBuffer {
	if maxSize < 1 {
		maxSize = 1
	}
	b := &DeliveryBuffer{
		sink:     sink,
		logger:   logger,
		metrics:  metrics,
		maxSize:  maxSize,
		interval: interval,
		done:     make(chan struct{}),
	}

	if interval > 0 {
		go b.run()
	}
	return b
}

// Append adds the event to the tail of the pending sequence. Reaching
// maxSize detaches the full batch immediately and delivers it fire-and-
// forget; Append itself never blocks on the network.
func (b *DeliveryBuffer) Append(event entities.Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.logger.Debug("event dropped after teardown", zap.String("type", string(event.Type)))
		return
	}

	b.pending = append(b.pending, event)
	var batch []entities.Event
	if len(b.pending) >= b.maxSize {
		batch = b.pending
		b.pending = nil
	}
	b.mu.Unlock()

	if batch != nil {
		go b.deliver(context.Background(), batch)
	}
}

// Flush detaches whatever is pending and delivers it. Flushing an empty
// buffer is a no-op.
func (b *DeliveryBuffer) Flush(ctx context.Context) {
	b.deliver(ctx, b.swap())
}

// Close is the unload hook: it cancels the background timer, detaches any
// remaining events and hands them to the sink's best-effort channel. Calling
// Close more than once is harmless.
func (b *DeliveryBuffer) Close() {
	b.closeOnce.Do(func() {
		close(b.done)

		b.mu.Lock()
		b.closed = true
		batch := b.pending
		b.pending = nil
		b.mu.Unlock()

		if len(batch) > 0 {
			b.logger.Info("teardown flush", zap.Int("events", len(batch)))
			b.sink.DeliverBestEffort(batch)
		}
	})
}

// Len returns the number of currently pending events.
func (b *DeliveryBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func (b *DeliveryBuffer) swap() []entities.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending
	b.pending = nil
	return batch
}

func (b *DeliveryBuffer) deliver(ctx context.Context, batch []entities.Event) {
	if len(batch) == 0 {
		return
	}

	batchID := uuid.New().String()
	if err := b.sink.Deliver(ctx, batch); err != nil {
		// Accepted data-loss window: the batch is not re-queued.
		b.logger.Warn("event batch delivery failed, dropping batch",
			zap.String("batchID", batchID),
			zap.Int("events", len(batch)),
			zap.Error(err),
		)
		if b.metrics != nil {
			b.metrics.BatchesDropped.Inc()
		}
		return
	}

	if b.metrics != nil {
		b.metrics.BatchesDelivered.Inc()
	}
	b.logger.Debug("event batch delivered",
		zap.String("batchID", batchID),
		zap.Int("events", len(batch)),
	)
}

func (b *DeliveryBuffer) run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.Flush(context.Background())
		}
	}
}
