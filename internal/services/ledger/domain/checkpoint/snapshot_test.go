package checkpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
)

func sampleState() ticket.State {
	state := ticket.State{
		Created:       true,
		TotalTickets:  4,
		UnitPrice:     10,
		Administrator: "admin",
		Sold:          3,
		Owners:        []string{"alice", "bob", "alice", ""},
		Resale:        []ticket.ResaleOffer{{TicketID: 3, Price: 25, Seller: "alice"}},
		Swaps:         map[uint64]ticket.SwapOffer{2: {Offeror: "alice", OfferedTicketID: 1}},
		Treasury:      30,
		Proceeds:      map[string]uint64{"carol": 15},
	}
	state.Reindex()
	return state
}

func TestEncodeDecodeRestoresState(t *testing.T) {
	want := sampleState()
	data, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(ticket.State{}), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("decoded state mismatch (-want +got):\n%s", diff)
	}
	if tickets := got.TicketsOf("alice"); len(tickets) != 2 || tickets[0] != 1 || tickets[1] != 3 {
		t.Fatalf("alice tickets = %v, want [1 3]", tickets)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("expected identical snapshot bytes for identical state")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not a snapshot")); !errors.Is(err, ErrSnapshotInvalid) {
		t.Fatalf("decode error = %v, want %v", err, ErrSnapshotInvalid)
	}
}

func TestNewStampsSnapshot(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	snap, err := New(sampleState(), 7, "chain-7", now)
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}
	if snap.Seq != 7 || snap.ChainHash != "chain-7" {
		t.Fatalf("snapshot = seq %d chain %q, want 7 chain-7", snap.Seq, snap.ChainHash)
	}
	if snap.CreatedAt.Location() != time.UTC {
		t.Fatalf("created at location = %v, want UTC", snap.CreatedAt.Location())
	}
	if len(snap.Data) == 0 {
		t.Fatal("expected snapshot data")
	}
}
