package ticket

import (
	"testing"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
)

func TestDecideCreate(t *testing.T) {
	state := newLedger(t, 3)
	if !state.Created || state.TotalTickets != 3 || state.UnitPrice != testPrice || state.Administrator != "admin" {
		t.Fatalf("unexpected genesis state: %+v", state)
	}
	if len(state.Owners) != 3 {
		t.Fatalf("expected 3 ticket slots, got %d", len(state.Owners))
	}

	mustReject(t, state, mustCommand(t, CommandTypeCreate, "admin", CreatePayload{TotalTickets: 3, Administrator: "admin"}), RejectionLedgerAlreadyCreated)

	invalid := []CreatePayload{
		{TotalTickets: 0, UnitPrice: 1, Administrator: "admin"},
		{TotalTickets: MaxTickets + 1, UnitPrice: 1, Administrator: "admin"},
		{TotalTickets: 3, UnitPrice: 1, Administrator: "  "},
		{TotalTickets: 1 << 20, UnitPrice: 1 << 50, Administrator: "admin"},
	}
	for _, p := range invalid {
		mustReject(t, State{}, mustCommand(t, CommandTypeCreate, "admin", p), RejectionLedgerParametersInvalid)
	}
}

func TestDecideRequiresCreatedLedger(t *testing.T) {
	mustReject(t, State{}, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 1, Payment: testPrice}), RejectionLedgerNotCreated)
}

func TestDecideBuy(t *testing.T) {
	state := newLedger(t, 3)

	mustReject(t, state, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 0, Payment: testPrice}), RejectionOutOfRange)
	mustReject(t, state, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 4, Payment: testPrice}), RejectionOutOfRange)
	mustReject(t, state, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 1, Payment: testPrice - 1}), RejectionPaymentMismatch)
	mustReject(t, state, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 1, Payment: testPrice + 1}), RejectionPaymentMismatch)

	next, evt := mustAccept(t, state, mustCommand(t, CommandTypeBuy, "alice", BuyPayload{TicketID: 1, Payment: testPrice}))
	if evt.Type != EventTypeTicketPurchased || evt.TicketID != 1 || evt.Actor != "alice" {
		t.Fatalf("unexpected event: %+v", evt)
	}
	var payload TicketPurchasedPayload
	if err := codec.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload != (TicketPurchasedPayload{Buyer: "alice", TicketID: 1, Price: testPrice}) {
		t.Fatalf("payload = %+v", payload)
	}
	if owner, _ := next.OwnerOf(1); owner != "alice" {
		t.Fatalf("owner = %q, want alice", owner)
	}
	if next.Sold != 1 || next.Treasury != testPrice {
		t.Fatalf("sold=%d treasury=%d", next.Sold, next.Treasury)
	}

	// Already-owned wins over a wrong payment.
	mustReject(t, next, mustCommand(t, CommandTypeBuy, "bob", BuyPayload{TicketID: 1, Payment: 0}), RejectionAlreadyOwned)
}

func TestDecideListResale(t *testing.T) {
	state := newLedger(t, 5)
	mustReject(t, state, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{Price: 50}), RejectionNotOwner)

	state = buy(t, state, "alice", 4)
	state = buy(t, state, "alice", 2)
	state = buy(t, state, "bob", 3)

	next, evt := mustAccept(t, state, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{Price: 50}))
	if evt.TicketID != 2 {
		t.Fatalf("implicit listing ticket = %d, want lowest owned 2", evt.TicketID)
	}
	next, _ = mustAccept(t, next, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{TicketID: 4, Price: 0}))
	book := next.ResaleBook()
	if len(book) != 2 || book[0] != (ResaleOffer{TicketID: 2, Price: 50, Seller: "alice"}) || book[1] != (ResaleOffer{TicketID: 4, Price: 0, Seller: "alice"}) {
		t.Fatalf("resale book = %+v", book)
	}

	mustReject(t, next, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{TicketID: 3, Price: 1}), RejectionNotOwner)
	mustReject(t, next, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{TicketID: 9, Price: 1}), RejectionOutOfRange)
}

func TestDecideAcceptResale(t *testing.T) {
	state := newLedger(t, 3)
	state = buy(t, state, "alice", 1)
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{Price: 25}))

	mustReject(t, state, mustCommand(t, CommandTypeAcceptResale, "bob", AcceptResalePayload{Index: 1, Payment: 25}), RejectionOutOfRange)
	mustReject(t, state, mustCommand(t, CommandTypeAcceptResale, "bob", AcceptResalePayload{Index: 0, Payment: 24}), RejectionPaymentMismatch)
	mustReject(t, state, mustCommand(t, CommandTypeAcceptResale, "bob", AcceptResalePayload{Index: 0, Payment: 26}), RejectionPaymentMismatch)

	next, evt := mustAccept(t, state, mustCommand(t, CommandTypeAcceptResale, "bob", AcceptResalePayload{Index: 0, Payment: 25}))
	var payload TicketResoldPayload
	if err := codec.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload != (TicketResoldPayload{Index: 0, Seller: "alice", Buyer: "bob", TicketID: 1, Price: 25}) {
		t.Fatalf("payload = %+v", payload)
	}
	if owner, _ := next.OwnerOf(1); owner != "bob" {
		t.Fatalf("owner = %q, want bob", owner)
	}
	if len(next.Resale) != 0 {
		t.Fatalf("expected empty book, got %+v", next.Resale)
	}
	if next.ProceedsOf("alice") != 25 || next.Treasury != testPrice || next.Sold != 1 {
		t.Fatalf("proceeds=%d treasury=%d sold=%d", next.ProceedsOf("alice"), next.Treasury, next.Sold)
	}
}

func TestDecideAcceptResaleRejectsStaleSeller(t *testing.T) {
	state := newLedger(t, 3)
	state = buy(t, state, "alice", 1)
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{Price: 25}))

	// Listings cannot go stale through the decider; force one to check the guard.
	state = state.Clone()
	state.setOwner(1, "carol")
	mustReject(t, state, mustCommand(t, CommandTypeAcceptResale, "bob", AcceptResalePayload{Index: 0, Payment: 25}), RejectionStaleOffer)
}

func TestDecideOfferSwap(t *testing.T) {
	state := newLedger(t, 4)
	mustReject(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 2}), RejectionNotOwner)

	state = buy(t, state, "alice", 1)
	mustReject(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 5}), RejectionOutOfRange)
	mustReject(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 0}), RejectionOutOfRange)
	mustReject(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 2, OfferedTicketID: 3}), RejectionNotOwner)

	// Unowned targets are accepted; ownership is only checked on accept.
	next, _ := mustAccept(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 2}))
	offer, ok := next.SwapOfferFor(2)
	if !ok || offer != (SwapOffer{Offeror: "alice", OfferedTicketID: 1}) {
		t.Fatalf("swap offer = %+v, %v", offer, ok)
	}

	next = buy(t, next, "carol", 3)
	next, _ = mustAccept(t, next, mustCommand(t, CommandTypeOfferSwap, "carol", OfferSwapPayload{TargetTicketID: 2}))
	if offer, _ := next.SwapOfferFor(2); offer.Offeror != "carol" || offer.OfferedTicketID != 3 {
		t.Fatalf("expected later offer to overwrite, got %+v", offer)
	}
}

func TestDecideAcceptSwap(t *testing.T) {
	state := newLedger(t, 4)
	state = buy(t, state, "alice", 1)
	state = buy(t, state, "bob", 2)

	mustReject(t, state, mustCommand(t, CommandTypeAcceptSwap, "bob", AcceptSwapPayload{TargetTicketID: 2}), RejectionNoPendingOffer)
	for _, target := range []uint64{0, 5} {
		mustReject(t, state, mustCommand(t, CommandTypeAcceptSwap, "bob", AcceptSwapPayload{TargetTicketID: target}), RejectionNoPendingOffer)
	}

	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 2}))
	mustReject(t, state, mustCommand(t, CommandTypeAcceptSwap, "carol", AcceptSwapPayload{TargetTicketID: 2}), RejectionNotOwner)

	next, evt := mustAccept(t, state, mustCommand(t, CommandTypeAcceptSwap, "bob", AcceptSwapPayload{TargetTicketID: 2}))
	var payload TicketsSwappedPayload
	if err := codec.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload != (TicketsSwappedPayload{Buyer1: "alice", TicketID1: 2, Buyer2: "bob", TicketID2: 1}) {
		t.Fatalf("payload = %+v", payload)
	}
	if owner, _ := next.OwnerOf(1); owner != "bob" {
		t.Fatalf("ticket 1 owner = %q, want bob", owner)
	}
	if owner, _ := next.OwnerOf(2); owner != "alice" {
		t.Fatalf("ticket 2 owner = %q, want alice", owner)
	}
	if _, ok := next.SwapOfferFor(2); ok {
		t.Fatal("expected swap offer cleared")
	}
	if next.Sold != state.Sold {
		t.Fatalf("swap changed sold count: %d -> %d", state.Sold, next.Sold)
	}
}

func TestDecideAcceptSwapRejectsSameTicket(t *testing.T) {
	state := newLedger(t, 2)
	state = buy(t, state, "alice", 1)
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 1}))
	mustReject(t, state, mustCommand(t, CommandTypeAcceptSwap, "alice", AcceptSwapPayload{TargetTicketID: 1}), RejectionStaleOffer)
}

func TestScenarioStaleSwap(t *testing.T) {
	state := newLedger(t, 4)
	state = buy(t, state, "alice", 1)
	state = buy(t, state, "bob", 2)
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeOfferSwap, "alice", OfferSwapPayload{TargetTicketID: 2}))

	// Alice sells her offered ticket before Bob accepts.
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeListResale, "alice", ListResalePayload{Price: 7}))
	state, _ = mustAccept(t, state, mustCommand(t, CommandTypeAcceptResale, "carol", AcceptResalePayload{Index: 0, Payment: 7}))

	mustReject(t, state, mustCommand(t, CommandTypeAcceptSwap, "bob", AcceptSwapPayload{TargetTicketID: 2}), RejectionStaleOffer)
	if owner, _ := state.OwnerOf(2); owner != "bob" {
		t.Fatalf("ticket 2 owner = %q, want bob", owner)
	}
	if _, ok := state.SwapOfferFor(2); !ok {
		t.Fatal("expected stale offer to remain until overwritten")
	}
	if owner, _ := state.OwnerOf(1); owner != "carol" {
		t.Fatalf("ticket 1 owner = %q, want carol", owner)
	}
}

func TestScenarioPrimarySale(t *testing.T) {
	state := newLedger(t, 2)
	state = buy(t, state, "alice", 1)
	state = buy(t, state, "bob", 2)
	mustReject(t, state, mustCommand(t, CommandTypeBuy, "carol", BuyPayload{TicketID: 1, Payment: testPrice}), RejectionAlreadyOwned)
	if state.Sold != 2 || state.Treasury != 2*testPrice {
		t.Fatalf("sold=%d treasury=%d", state.Sold, state.Treasury)
	}
	if state.TicketOf("alice") != 1 || state.TicketOf("bob") != 2 || state.TicketOf("carol") != 0 {
		t.Fatal("unexpected ticket lookups")
	}
}
