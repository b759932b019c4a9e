package email

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/api/metrics"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher fans notification messages out to a fixed set of workers,
// sharded by recipient so one address's mail stays ordered. It implements
// ports.Notifier itself: Send enqueues and returns immediately, so workflow
// responses never wait on SMTP. Delivery failures are logged and counted,
// never surfaced.
type Dispatcher struct {
	workers []chan ports.EmailMessage
	sink    ports.Notifier
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher delivering through sink with numWorkers
// sharded workers. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.EmailMessage, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.EmailMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues the message for its recipient's worker and returns nil.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Send(_ context.Context, msg ports.EmailMessage) error {
	d.workers[d.shardIndex(msg.To)] <- msg
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EmailMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Send(ctx, msg); err != nil {
				metrics.EmailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("to", msg.To).
					Str("subject", msg.Subject).
					Int("worker_id", id).
					Msg("email delivery failed")
				continue
			}
			metrics.EmailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
