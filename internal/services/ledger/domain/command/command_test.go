package command

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
)

type buyPayload struct {
	TicketID uint64 `cbor:"ticket_id"`
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.Register(Definition{
		Type: "ticket.buy",
		ValidatePayload: func(payload []byte) error {
			var p buyPayload
			if err := codec.Unmarshal(payload, &p); err != nil {
				return err
			}
			if p.TicketID == 0 {
				return errors.New("ticket id is required")
			}
			return nil
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return registry
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	registry := testRegistry(t)
	if err := registry.Register(Definition{Type: "ticket.buy"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(Definition{}); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("expected ErrTypeRequired, got %v", err)
	}
}

func TestValidateForDecision(t *testing.T) {
	registry := testRegistry(t)

	cmd, err := New(" ticket.buy ", " alice ", " req-1 ", buyPayload{TicketID: 2})
	if err != nil {
		t.Fatalf("new command: %v", err)
	}
	got, err := registry.ValidateForDecision(cmd)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Type != "ticket.buy" || got.Actor != "alice" || got.RequestID != "req-1" {
		t.Fatalf("expected normalized envelope, got %+v", got)
	}

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"missing type", Command{Actor: "alice", Payload: cmd.Payload}, ErrTypeRequired},
		{"unknown type", Command{Type: "ticket.burn", Actor: "alice", Payload: cmd.Payload}, ErrTypeUnknown},
		{"missing actor", Command{Type: "ticket.buy", Payload: cmd.Payload}, ErrActorRequired},
		{"malformed payload", Command{Type: "ticket.buy", Actor: "alice", Payload: []byte{0x82, 0x01}}, ErrPayloadInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := registry.ValidateForDecision(tc.cmd); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	zero, err := New("ticket.buy", "alice", "", buyPayload{})
	if err != nil {
		t.Fatalf("new command: %v", err)
	}
	if _, err := registry.ValidateForDecision(zero); err == nil {
		t.Fatal("expected payload validator error")
	}
}

func TestNewEventCopiesEnvelope(t *testing.T) {
	cmd := Command{Type: "ticket.buy", Actor: "alice", RequestID: "req-9"}
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.FixedZone("x", -3600))

	evt, err := NewEvent(cmd, "ticket.purchased", 7, buyPayload{TicketID: 7}, now)
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if evt.Actor != "alice" || evt.RequestID != "req-9" || evt.TicketID != 7 {
		t.Fatalf("unexpected envelope: %+v", evt)
	}
	if !evt.Timestamp.Equal(now) || evt.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", evt.Timestamp)
	}
	var decoded buyPayload
	if err := codec.Unmarshal(evt.Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.TicketID != 7 {
		t.Fatalf("payload ticket = %d", decoded.TicketID)
	}
}
