package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/osse101/DowntimeForge/internal/logger"
)

type retryEntry struct {
	event   Event
	lastErr error
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter file.
// Publishing never fails the caller: a crafting roll that already committed must not
// be reported as failed because a notification handler was down.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker. maxRetries and retryDelay fall back to defaults when zero.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry publishes synchronously once and queues the event for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	select {
	case <-p.shutdown:
		p.writeDeadLetter(evt, 1, err)
		return
	default:
	}

	select {
	case p.retryQueue <- retryEntry{event: evt, lastErr: err}:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", evt.Type)
		p.writeDeadLetter(evt, 1, err)
	}
}

// Publish satisfies Bus; it never returns an error
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry replays an event with exponential backoff until it succeeds, attempts run out
// or shutdown interrupts the wait
func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	// First retry waits retryDelay, later ones double it
	select {
	case <-time.After(p.retryDelay):
	case <-ctx.Done():
		p.lastAttempt(entry.event, 1)
		return
	}

	attempts := 1
	err := retry.Do(
		func() error {
			attempts++
			return p.bus.Publish(ctx, entry.event)
		},
		retry.Context(ctx),
		retry.Attempts(uint(p.maxRetries)),
		retry.Delay(2*p.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", n+2, "error", err)
		}),
	)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempts", attempts)
		return
	}
	if errors.Is(err, context.Canceled) {
		p.lastAttempt(entry.event, attempts)
		return
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", attempts)
	p.writeDeadLetter(entry.event, attempts, err)
}

// lastAttempt publishes once more without waiting, used while shutting down
func (p *ResilientPublisher) lastAttempt(evt Event, attempts int) {
	if err := p.bus.Publish(context.Background(), evt); err != nil {
		p.writeDeadLetter(evt, attempts+1, err)
	}
}

// drain gives queued events one last attempt during shutdown
func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			drained++
			p.lastAttempt(entry.event, 1)
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, err error) {
	if werr := p.deadLetter.Write(evt, attempts, err); werr != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", evt.Type, "error", werr)
	}
}

// Shutdown stops the worker after draining the queue, then closes the dead-letter file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
