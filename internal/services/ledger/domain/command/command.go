package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

var (
	// ErrTypeRequired indicates a missing command type.
	ErrTypeRequired = errors.New("command type is required")
	// ErrTypeUnknown indicates an unregistered command type.
	ErrTypeUnknown = errors.New("command type is not registered")
	// ErrActorRequired indicates a command without a caller account.
	ErrActorRequired = errors.New("command actor is required")
	// ErrPayloadInvalid indicates a malformed CBOR payload.
	ErrPayloadInvalid = errors.New("command payload must be well-formed cbor")
)

// Type identifies the command type string.
type Type string

// Command captures the canonical command envelope.
type Command struct {
	Type Type
	// Actor is the caller account the command acts for.
	Actor     string
	RequestID string
	Payload   []byte
}

// New encodes payload and builds a command.
func New(t Type, actor, requestID string, payload any) (Command, error) {
	data, err := codec.Marshal(payload)
	if err != nil {
		return Command{}, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Command{Type: t, Actor: actor, RequestID: requestID, Payload: data}, nil
}

// NewEvent builds an event carrying the command's envelope fields.
func NewEvent(cmd Command, eventType event.Type, ticketID uint64, payload any, now time.Time) (event.Event, error) {
	data, err := codec.Marshal(payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return event.Event{
		Type:      eventType,
		Timestamp: now.UTC(),
		Actor:     cmd.Actor,
		RequestID: cmd.RequestID,
		TicketID:  ticketID,
		Payload:   data,
	}, nil
}

// PayloadValidator validates a CBOR payload.
type PayloadValidator func(payload []byte) error

// Definition registers metadata for a command type.
type Definition struct {
	Type            Type
	ValidatePayload PayloadValidator
}

// Registry stores command definitions and validates commands.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds a new command type definition to the registry.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("registry is required")
	}
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if def.Type == "" {
		return ErrTypeRequired
	}
	if r.definitions == nil {
		r.definitions = make(map[Type]Definition)
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("command type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// Definition returns the definition for a command type.
func (r *Registry) Definition(t Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[t]
	return def, ok
}

// ValidateForDecision validates and normalizes a command before decision handling.
func (r *Registry) ValidateForDecision(cmd Command) (Command, error) {
	cmd.Type = Type(strings.TrimSpace(string(cmd.Type)))
	if cmd.Type == "" {
		return Command{}, ErrTypeRequired
	}
	def, ok := r.Definition(cmd.Type)
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrTypeUnknown, cmd.Type)
	}
	cmd.Actor = strings.TrimSpace(cmd.Actor)
	if cmd.Actor == "" {
		return Command{}, ErrActorRequired
	}
	cmd.RequestID = strings.TrimSpace(cmd.RequestID)
	if err := codec.Wellformed(cmd.Payload); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(cmd.Payload); err != nil {
			return Command{}, fmt.Errorf("payload invalid: %w", err)
		}
	}
	return cmd, nil
}
