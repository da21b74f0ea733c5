package event

import "time"

// Type identifies the event type string.
type Type string

// Event is the canonical journal record.
type Event struct {
	Seq       uint64
	Type      Type
	Timestamp time.Time
	Actor     string
	RequestID string
	// TicketID is the ticket the event primarily concerns; zero when none.
	TicketID uint64
	// Payload is the deterministic CBOR encoding of the type's payload struct.
	Payload   []byte
	Hash      string
	PrevHash  string
	ChainHash string
}
