package email

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/core/ports"
)

type captureSink struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
	fail bool
}

func (s *captureSink) Send(_ context.Context, msg ports.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("relay refused")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *captureSink) messages() []ports.EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.EmailMessage(nil), s.sent...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestDispatcher_DeliversAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{}
	d := NewDispatcher(3, sink, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		msg := ports.EmailMessage{To: fmt.Sprintf("user%d@example.com", i%5), Subject: "hello"}
		if err := d.Send(context.Background(), msg); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}

	waitFor(t, func() bool { return len(sink.messages()) == 20 })
}

func TestDispatcher_SameRecipientStaysOrdered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		msg := ports.EmailMessage{To: "alice@example.com", Subject: fmt.Sprintf("%d", i)}
		if err := d.Send(context.Background(), msg); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}

	waitFor(t, func() bool { return len(sink.messages()) == 10 })

	for i, msg := range sink.messages() {
		if msg.Subject != fmt.Sprintf("%d", i) {
			t.Fatalf("message %d out of order: got subject %q", i, msg.Subject)
		}
	}
}

func TestDispatcher_SinkFailureNeverSurfaces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{fail: true}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(ctx)

	if err := d.Send(context.Background(), ports.EmailMessage{To: "bob@example.com"}); err != nil {
		t.Fatalf("Send must not surface delivery failures, got %v", err)
	}
}
