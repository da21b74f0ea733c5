package command

import (
	"errors"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code    string
	Message string
	// Metadata feeds localized message templates.
	Metadata map[string]string
}

// Accept returns a decision that emits the provided events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries the provided rejections.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// Rejected reports whether the decision declined the command.
func (d Decision) Rejected() bool {
	return len(d.Rejections) > 0
}

// Validate checks that the decision carries either events or rejections,
// never both and never neither.
func (d Decision) Validate() error {
	hasEvents := len(d.Events) > 0
	hasRejections := len(d.Rejections) > 0
	switch {
	case hasEvents && hasRejections:
		return errors.New("decision must not carry both events and rejections")
	case !hasEvents && !hasRejections:
		return errors.New("decision must carry events or rejections")
	}
	return nil
}
