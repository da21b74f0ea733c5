package notify

import (
	"sync"
	"sync/atomic"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// Classifier reports whether an event type is delivered to watchers.
type Classifier interface {
	IsNotification(t event.Type) bool
}

// Subscription receives notification events in sequence order.
//
// A subscriber that falls a full buffer behind is dropped: its channel is
// closed and Lagged reports true. It can resume from the journal using the
// sequence of the last event it received.
type Subscription struct {
	ch     chan event.Event
	lagged atomic.Bool
	broker *Broker
}

// C returns the delivery channel. It is closed on Close or when lagged.
func (s *Subscription) C() <-chan event.Event {
	return s.ch
}

// Lagged reports whether the subscription was dropped for falling behind.
func (s *Subscription) Lagged() bool {
	return s.lagged.Load()
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.broker.remove(s)
}

// Broker is an in-process publish/subscribe hub.
type Broker struct {
	classifier Classifier
	buffer     int

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBroker creates a broker delivering the events classifier selects.
// A nil classifier delivers every event.
func NewBroker(classifier Classifier, buffer int) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{
		classifier: classifier,
		buffer:     buffer,
		subs:       make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscription.
func (b *Broker) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan event.Event, b.buffer), broker: b}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Publish delivers notification events to every subscriber without
// blocking.
func (b *Broker) Publish(events []event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, evt := range events {
		if b.classifier != nil && !b.classifier.IsNotification(evt.Type) {
			continue
		}
		for sub := range b.subs {
			select {
			case sub.ch <- evt:
			default:
				sub.lagged.Store(true)
				delete(b.subs, sub)
				close(sub.ch)
			}
		}
	}
}

// Subscribers reports the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}
