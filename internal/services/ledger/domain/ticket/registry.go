package ticket

import (
	"errors"
	"strings"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

const (
	CommandTypeCreate       command.Type = "ledger.create"
	CommandTypeBuy          command.Type = "ticket.buy"
	CommandTypeListResale   command.Type = "resale.list"
	CommandTypeAcceptResale command.Type = "resale.accept"
	CommandTypeOfferSwap    command.Type = "swap.offer"
	CommandTypeAcceptSwap   command.Type = "swap.accept"

	EventTypeLedgerCreated   event.Type = "ledger.created"
	EventTypeTicketPurchased event.Type = "ticket.purchased"
	EventTypeResaleListed    event.Type = "resale.listed"
	EventTypeTicketResold    event.Type = "ticket.resold"
	EventTypeSwapOffered     event.Type = "swap.offered"
	EventTypeTicketsSwapped  event.Type = "tickets.swapped"
)

// RegisterCommands registers ledger commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	defs := []command.Definition{
		{Type: CommandTypeCreate, ValidatePayload: decodes[CreatePayload]},
		{Type: CommandTypeBuy, ValidatePayload: decodes[BuyPayload]},
		{Type: CommandTypeListResale, ValidatePayload: decodes[ListResalePayload]},
		{Type: CommandTypeAcceptResale, ValidatePayload: decodes[AcceptResalePayload]},
		{Type: CommandTypeOfferSwap, ValidatePayload: decodes[OfferSwapPayload]},
		{Type: CommandTypeAcceptSwap, ValidatePayload: decodes[AcceptSwapPayload]},
	}
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers ledger events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	defs := []event.Definition{
		{Type: EventTypeLedgerCreated, ValidatePayload: validateLedgerCreated},
		{Type: EventTypeTicketPurchased, ValidatePayload: validateTicketPurchased, Notification: true},
		{Type: EventTypeResaleListed, ValidatePayload: validateResaleListed},
		{Type: EventTypeTicketResold, ValidatePayload: validateTicketResold, Notification: true},
		{Type: EventTypeSwapOffered, ValidatePayload: validateSwapOffered},
		{Type: EventTypeTicketsSwapped, ValidatePayload: validateTicketsSwapped, Notification: true},
	}
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistries returns command and event registries with every ledger type
// registered.
func NewRegistries() (*command.Registry, *event.Registry, error) {
	commands := command.NewRegistry()
	if err := RegisterCommands(commands); err != nil {
		return nil, nil, err
	}
	events := event.NewRegistry()
	if err := RegisterEvents(events); err != nil {
		return nil, nil, err
	}
	return commands, events, nil
}

func decodes[T any](payload []byte) error {
	var v T
	return codec.Unmarshal(payload, &v)
}

func validateLedgerCreated(payload []byte) error {
	var p LedgerCreatedPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.TotalTickets == 0 {
		return errors.New("total tickets must be positive")
	}
	if strings.TrimSpace(p.Administrator) == "" {
		return errors.New("administrator is required")
	}
	return nil
}

func validateTicketPurchased(payload []byte) error {
	var p TicketPurchasedPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.Buyer == "" || p.TicketID == 0 {
		return errors.New("buyer and ticket id are required")
	}
	return nil
}

func validateResaleListed(payload []byte) error {
	var p ResaleListedPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.Seller == "" || p.TicketID == 0 {
		return errors.New("seller and ticket id are required")
	}
	return nil
}

func validateTicketResold(payload []byte) error {
	var p TicketResoldPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.Seller == "" || p.Buyer == "" || p.TicketID == 0 {
		return errors.New("seller, buyer and ticket id are required")
	}
	return nil
}

func validateSwapOffered(payload []byte) error {
	var p SwapOfferedPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.Offeror == "" || p.TargetTicketID == 0 || p.OfferedTicketID == 0 {
		return errors.New("offeror and both ticket ids are required")
	}
	return nil
}

func validateTicketsSwapped(payload []byte) error {
	var p TicketsSwappedPayload
	if err := codec.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.Buyer1 == "" || p.Buyer2 == "" || p.TicketID1 == 0 || p.TicketID2 == 0 {
		return errors.New("both buyers and ticket ids are required")
	}
	if p.TicketID1 == p.TicketID2 {
		return errors.New("swapped tickets must be distinct")
	}
	return nil
}
