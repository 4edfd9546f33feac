package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

type captureSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	block  chan struct{} // when non-nil, Record blocks until closed
}

func (s *captureSink) Record(_ context.Context, event domain.AuditEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(2, sink, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.AuditEvent{Action: domain.AuditLogin, Email: "a@x.com", Outcome: domain.AuditOutcomeSuccess})
	}
	d.Close()

	if got := sink.count(); got != 10 {
		t.Fatalf("expected 10 events delivered, got %d", got)
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &captureSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(context.Background())

	// One event occupies the worker, the rest fill the buffer, overflow drops.
	total := channelBuffer + 50
	for i := 0; i < total; i++ {
		d.Enqueue(domain.AuditEvent{Action: domain.AuditRegister})
	}

	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		select {
		case <-deadline:
			t.Fatalf("expected drops with a blocked sink, got none")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(sink.block)
	d.Close()
}

func TestDispatcher_CloseDrains(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 25; i++ {
		d.Enqueue(domain.AuditEvent{Action: domain.AuditRefresh})
	}
	d.Close()

	if got := sink.count(); got != 25 {
		t.Fatalf("expected buffer drained on close, got %d of 25", got)
	}
}
