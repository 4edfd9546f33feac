// Package audit decouples the request path from the audit trail: handlers
// enqueue events into a buffered channel, workers drain into the sink.
package audit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hydrostat/auth-service/internal/api/metrics"
	"github.com/hydrostat/auth-service/internal/core/domain"
	"github.com/hydrostat/auth-service/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// Dispatcher fans audit events out to workers writing into an AuditSink.
// Enqueue never blocks: when the buffer is full the event is dropped and
// counted, so a slow sink cannot stall logins.
type Dispatcher struct {
	events  chan domain.AuditEvent
	sink    ports.AuditSink
	log     zerolog.Logger
	workers int
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		events:  make(chan domain.AuditEvent, channelBuffer),
		sink:    sink,
		log:     log,
		workers: numWorkers,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled
// or the dispatcher is closed.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx)
	}
}

// Enqueue hands an event to the workers without blocking the caller.
func (d *Dispatcher) Enqueue(event domain.AuditEvent) {
	select {
	case d.events <- event:
	default:
		d.dropped.Add(1)
		metrics.AuditDroppedTotal.Inc()
	}
}

// Dropped returns how many events were discarded under back-pressure.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for the workers to drain the buffer.
func (d *Dispatcher) Close() {
	close(d.events)
	d.wg.Wait()
}

func (d *Dispatcher) runWorker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.events:
			if !ok {
				return
			}
			if err := d.sink.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("action", string(event.Action)).
					Str("email", event.Email).
					Msg("audit record failed")
			}
		}
	}
}
