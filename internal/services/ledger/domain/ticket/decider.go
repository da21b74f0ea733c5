package ticket

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

// MaxTickets bounds the inventory a ledger may be created with.
const MaxTickets = 1 << 20

const (
	RejectionOutOfRange              = string(apperrors.CodeOutOfRange)
	RejectionAlreadyOwned            = string(apperrors.CodeAlreadyOwned)
	RejectionPaymentMismatch         = string(apperrors.CodePaymentMismatch)
	RejectionNotOwner                = string(apperrors.CodeNotOwner)
	RejectionNoPendingOffer          = string(apperrors.CodeNoPendingOffer)
	RejectionStaleOffer              = string(apperrors.CodeStaleOffer)
	RejectionLedgerNotCreated        = string(apperrors.CodeLedgerNotCreated)
	RejectionLedgerAlreadyCreated    = string(apperrors.CodeLedgerAlreadyCreated)
	RejectionLedgerParametersInvalid = string(apperrors.CodeLedgerParametersInvalid)
)

// Decide returns the decision for a ledger command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if cmd.Type == CommandTypeCreate {
		return decideCreate(state, cmd, now)
	}
	if !state.Created {
		return reject(RejectionLedgerNotCreated, "ledger not created", nil)
	}

	switch cmd.Type {
	case CommandTypeBuy:
		return decideBuy(state, cmd, now)
	case CommandTypeListResale:
		return decideListResale(state, cmd, now)
	case CommandTypeAcceptResale:
		return decideAcceptResale(state, cmd, now)
	case CommandTypeOfferSwap:
		return decideOfferSwap(state, cmd, now)
	case CommandTypeAcceptSwap:
		return decideAcceptSwap(state, cmd, now)
	default:
		return reject("COMMAND_TYPE_UNSUPPORTED", fmt.Sprintf("command type %s is not supported", cmd.Type), nil)
	}
}

func decideCreate(state State, cmd command.Command, now func() time.Time) command.Decision {
	if state.Created {
		return reject(RejectionLedgerAlreadyCreated, "ledger already created", nil)
	}
	var payload CreatePayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionLedgerParametersInvalid, "decode create payload: "+err.Error(), nil)
	}
	if err := ValidateParams(payload); err != nil {
		return reject(RejectionLedgerParametersInvalid, err.Error(), nil)
	}
	payload.Administrator = strings.TrimSpace(payload.Administrator)
	return accept(cmd, EventTypeLedgerCreated, 0, LedgerCreatedPayload(payload), now)
}

// ValidateParams checks construction parameters: a positive inventory no
// larger than MaxTickets, an administrator, and a full-sellout treasury that
// fits in uint64.
func ValidateParams(p CreatePayload) error {
	if p.TotalTickets == 0 {
		return fmt.Errorf("total tickets must be positive")
	}
	if p.TotalTickets > MaxTickets {
		return fmt.Errorf("total tickets %d exceeds limit %d", p.TotalTickets, MaxTickets)
	}
	if strings.TrimSpace(p.Administrator) == "" {
		return fmt.Errorf("administrator is required")
	}
	if p.UnitPrice > 0 && p.TotalTickets > math.MaxUint64/p.UnitPrice {
		return fmt.Errorf("total tickets %d at price %d overflows the treasury", p.TotalTickets, p.UnitPrice)
	}
	return nil
}

func decideBuy(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload BuyPayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionOutOfRange, "decode buy payload: "+err.Error(), nil)
	}
	owner, ok := state.OwnerOf(payload.TicketID)
	if !ok {
		return rejectOutOfRange(payload.TicketID)
	}
	if owner != "" {
		return reject(RejectionAlreadyOwned, fmt.Sprintf("ticket %d already owned", payload.TicketID), ticketMeta(payload.TicketID))
	}
	if payload.Payment != state.UnitPrice {
		return rejectPayment(payload.Payment, state.UnitPrice)
	}
	return accept(cmd, EventTypeTicketPurchased, payload.TicketID, TicketPurchasedPayload{
		Buyer:    cmd.Actor,
		TicketID: payload.TicketID,
		Price:    payload.Payment,
	}, now)
}

func decideListResale(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload ListResalePayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionNotOwner, "decode resale payload: "+err.Error(), nil)
	}
	ticketID, rejection := resolveCallerTicket(state, cmd.Actor, payload.TicketID)
	if rejection != nil {
		return command.Reject(*rejection)
	}
	return accept(cmd, EventTypeResaleListed, ticketID, ResaleListedPayload{
		Index:    uint64(len(state.Resale)),
		TicketID: ticketID,
		Price:    payload.Price,
		Seller:   cmd.Actor,
	}, now)
}

func decideAcceptResale(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload AcceptResalePayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionOutOfRange, "decode accept resale payload: "+err.Error(), nil)
	}
	if payload.Index >= uint64(len(state.Resale)) {
		return reject(RejectionOutOfRange, fmt.Sprintf("resale index %d out of range", payload.Index), map[string]string{
			"Index": strconv.FormatUint(payload.Index, 10),
		})
	}
	offer := state.Resale[payload.Index]
	if payload.Payment != offer.Price {
		return rejectPayment(payload.Payment, offer.Price)
	}
	if owner, _ := state.OwnerOf(offer.TicketID); owner != offer.Seller {
		return reject(RejectionStaleOffer, fmt.Sprintf("seller no longer owns ticket %d", offer.TicketID), ticketMeta(offer.TicketID))
	}
	if offer.Price > math.MaxUint64-state.Proceeds[offer.Seller] {
		return reject(RejectionOutOfRange, "seller proceeds overflow", nil)
	}
	return accept(cmd, EventTypeTicketResold, offer.TicketID, TicketResoldPayload{
		Index:    payload.Index,
		Seller:   offer.Seller,
		Buyer:    cmd.Actor,
		TicketID: offer.TicketID,
		Price:    offer.Price,
	}, now)
}

func decideOfferSwap(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload OfferSwapPayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionOutOfRange, "decode swap offer payload: "+err.Error(), nil)
	}
	if !state.InRange(payload.TargetTicketID) {
		return rejectOutOfRange(payload.TargetTicketID)
	}
	offered, rejection := resolveCallerTicket(state, cmd.Actor, payload.OfferedTicketID)
	if rejection != nil {
		return command.Reject(*rejection)
	}
	return accept(cmd, EventTypeSwapOffered, payload.TargetTicketID, SwapOfferedPayload{
		TargetTicketID:  payload.TargetTicketID,
		Offeror:         cmd.Actor,
		OfferedTicketID: offered,
	}, now)
}

func decideAcceptSwap(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload AcceptSwapPayload
	if err := codec.Unmarshal(cmd.Payload, &payload); err != nil {
		return reject(RejectionNoPendingOffer, "decode swap accept payload: "+err.Error(), nil)
	}
	target := payload.TargetTicketID
	// OfferSwap only records in-range targets, so an out-of-range target
	// has no offer.
	offer, ok := state.SwapOfferFor(target)
	if !ok {
		return reject(RejectionNoPendingOffer, fmt.Sprintf("no swap offer for ticket %d", target), ticketMeta(target))
	}
	if owner, _ := state.OwnerOf(target); owner != cmd.Actor {
		return reject(RejectionNotOwner, fmt.Sprintf("caller does not own ticket %d", target), ticketMeta(target))
	}
	if offer.OfferedTicketID == target {
		return reject(RejectionStaleOffer, "swap offer names the same ticket twice", ticketMeta(target))
	}
	if owner, _ := state.OwnerOf(offer.OfferedTicketID); owner != offer.Offeror {
		return reject(RejectionStaleOffer, fmt.Sprintf("offeror no longer owns ticket %d", offer.OfferedTicketID), ticketMeta(offer.OfferedTicketID))
	}
	return accept(cmd, EventTypeTicketsSwapped, target, TicketsSwappedPayload{
		Buyer1:    offer.Offeror,
		TicketID1: target,
		Buyer2:    cmd.Actor,
		TicketID2: offer.OfferedTicketID,
	}, now)
}

// resolveCallerTicket returns the explicit ticket when the caller owns it,
// or the caller's lowest owned ticket when explicit is zero.
func resolveCallerTicket(state State, caller string, explicit uint64) (uint64, *command.Rejection) {
	if explicit != 0 {
		owner, ok := state.OwnerOf(explicit)
		if !ok {
			r := rejectOutOfRange(explicit).Rejections[0]
			return 0, &r
		}
		if owner != caller {
			return 0, &command.Rejection{
				Code:     RejectionNotOwner,
				Message:  fmt.Sprintf("caller does not own ticket %d", explicit),
				Metadata: ticketMeta(explicit),
			}
		}
		return explicit, nil
	}
	ticketID := state.TicketOf(caller)
	if ticketID == 0 {
		return 0, &command.Rejection{Code: RejectionNotOwner, Message: "caller owns no ticket"}
	}
	return ticketID, nil
}

func accept(cmd command.Command, eventType event.Type, ticketID uint64, payload any, now func() time.Time) command.Decision {
	evt, err := command.NewEvent(cmd, eventType, ticketID, payload, now())
	if err != nil {
		return reject("PAYLOAD_ENCODE_FAILED", err.Error(), nil)
	}
	return command.Accept(evt)
}

func reject(code, message string, metadata map[string]string) command.Decision {
	return command.Reject(command.Rejection{Code: code, Message: message, Metadata: metadata})
}

func rejectOutOfRange(ticketID uint64) command.Decision {
	return reject(RejectionOutOfRange, fmt.Sprintf("ticket %d out of range", ticketID), ticketMeta(ticketID))
}

func rejectPayment(paid, price uint64) command.Decision {
	return reject(RejectionPaymentMismatch, fmt.Sprintf("payment %d does not equal price %d", paid, price), map[string]string{
		"Paid":  strconv.FormatUint(paid, 10),
		"Price": strconv.FormatUint(price, 10),
	})
}

func ticketMeta(ticketID uint64) map[string]string {
	return map[string]string{"TicketID": strconv.FormatUint(ticketID, 10)}
}
