// Package events publishes booking and invoice lifecycle events. Publishing
// is best effort: failures are logged and never fail the caller's request.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	BookingCreated    = "booking.created"
	BookingCheckedIn  = "booking.checked_in"
	BookingCheckedOut = "booking.checked_out"
	BookingCancelled  = "booking.cancelled"
	InvoiceCreated    = "invoice.created"
	InvoicePaid       = "invoice.paid"
	RoomStatusChanged = "room.status_changed"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emit publishes an event and logs, rather than returns, any failure.
func Emit(ctx context.Context, pub Publisher, log *zap.Logger, eventType string, payload any) {
	if pub == nil {
		return
	}
	e := Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := pub.Publish(ctx, e); err != nil && log != nil {
		log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	var out []string
	for _, e := range r.Events() {
		out = append(out, e.Type)
	}
	return out
}
