package ticket

import (
	"fmt"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

// Fold applies an event to ledger state. It mutates the maps and slices of
// state in place, so callers fold onto a Clone of any state they share.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeLedgerCreated:
		var p LedgerCreatedPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		state = State{
			Created:       true,
			TotalTickets:  p.TotalTickets,
			UnitPrice:     p.UnitPrice,
			Administrator: p.Administrator,
			Owners:        make([]string, p.TotalTickets),
			Swaps:         make(map[uint64]SwapOffer),
			Proceeds:      make(map[string]uint64),
		}
		state.Reindex()

	case EventTypeTicketPurchased:
		var p TicketPurchasedPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		if err := requireTicket(state, p.TicketID); err != nil {
			return state, err
		}
		state.setOwner(p.TicketID, p.Buyer)
		state.Sold++
		state.Treasury += p.Price

	case EventTypeResaleListed:
		var p ResaleListedPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		state.Resale = append(state.Resale, ResaleOffer{TicketID: p.TicketID, Price: p.Price, Seller: p.Seller})

	case EventTypeTicketResold:
		var p TicketResoldPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		if err := requireTicket(state, p.TicketID); err != nil {
			return state, err
		}
		if p.Index >= uint64(len(state.Resale)) {
			return state, fmt.Errorf("fold %s: resale index %d out of range", evt.Type, p.Index)
		}
		state.removeResale(int(p.Index))
		state.setOwner(p.TicketID, p.Buyer)
		if state.Proceeds == nil {
			state.Proceeds = make(map[string]uint64)
		}
		state.Proceeds[p.Seller] += p.Price
		state.purgeStaleListings(p.TicketID)

	case EventTypeSwapOffered:
		var p SwapOfferedPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		if state.Swaps == nil {
			state.Swaps = make(map[uint64]SwapOffer)
		}
		state.Swaps[p.TargetTicketID] = SwapOffer{Offeror: p.Offeror, OfferedTicketID: p.OfferedTicketID}

	case EventTypeTicketsSwapped:
		var p TicketsSwappedPayload
		if err := decode(evt, &p); err != nil {
			return state, err
		}
		if err := requireTicket(state, p.TicketID1); err != nil {
			return state, err
		}
		if err := requireTicket(state, p.TicketID2); err != nil {
			return state, err
		}
		state.setOwner(p.TicketID1, p.Buyer1)
		state.setOwner(p.TicketID2, p.Buyer2)
		delete(state.Swaps, p.TicketID1)
		state.purgeStaleListings(p.TicketID1)
		state.purgeStaleListings(p.TicketID2)

	default:
		return state, fmt.Errorf("fold: unsupported event type %s", evt.Type)
	}
	return state, nil
}

func decode(evt event.Event, target any) error {
	if err := codec.Unmarshal(evt.Payload, target); err != nil {
		return fmt.Errorf("fold %s: decode payload: %w", evt.Type, err)
	}
	return nil
}

func requireTicket(state State, ticketID uint64) error {
	if !state.InRange(ticketID) {
		return fmt.Errorf("fold: ticket %d out of range", ticketID)
	}
	return nil
}
