package ports

import "context"

// EmailMessage is a plain-text notification to a single recipient.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// Notifier dispatches workflow notifications. Implementations must never
// make a workflow fail: delivery errors are logged inside the sink, and the
// production wiring runs asynchronously so responses do not wait on mail.
type Notifier interface {
	Send(ctx context.Context, msg EmailMessage) error
}
