package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/checkpoint"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
)

var stamp = time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	_, events, err := ticket.NewRegistries()
	if err != nil {
		t.Fatalf("registries: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := Open(context.Background(), path, events)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store, path
}

func purchased(t *testing.T, buyer string, ticketID uint64, at time.Time) event.Event {
	t.Helper()
	payload, err := codec.Marshal(ticket.TicketPurchasedPayload{Buyer: buyer, TicketID: ticketID, Price: 10})
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	return event.Event{
		Type:      ticket.EventTypeTicketPurchased,
		Timestamp: at,
		Actor:     buyer,
		RequestID: "req-" + buyer,
		TicketID:  ticketID,
		Payload:   payload,
	}
}

func appendAll(t *testing.T, store *Store, events ...event.Event) []event.Event {
	t.Helper()
	stored, err := store.AppendEvents(context.Background(), events)
	if err != nil {
		t.Fatalf("append events: %v", err)
	}
	return stored
}

func TestAppendEventsAssignsSeqAndChain(t *testing.T) {
	store, _ := openTestStore(t)
	first := appendAll(t, store, purchased(t, "alice", 1, stamp))
	batch := appendAll(t, store,
		purchased(t, "bob", 2, stamp.Add(time.Second)),
		purchased(t, "carol", 3, stamp.Add(2*time.Second)),
	)

	if first[0].Seq != 1 || batch[0].Seq != 2 || batch[1].Seq != 3 {
		t.Fatalf("seqs = %d,%d,%d, want 1,2,3", first[0].Seq, batch[0].Seq, batch[1].Seq)
	}
	if batch[0].PrevHash != first[0].ChainHash {
		t.Fatalf("batch prev hash = %q, want %q", batch[0].PrevHash, first[0].ChainHash)
	}
	if !first[0].Timestamp.Equal(stamp.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp = %v, want millisecond precision", first[0].Timestamp)
	}

	got, err := store.GetEventBySeq(context.Background(), 2)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got.Hash != batch[0].Hash || got.Actor != "bob" || got.TicketID != 2 || got.RequestID != "req-bob" {
		t.Fatalf("stored event = %+v, want %+v", got, batch[0])
	}
	if err := store.VerifyEventChain(context.Background()); err != nil {
		t.Fatalf("verify chain: %v", err)
	}
}

func TestAppendEventsRejectsInvalidBatch(t *testing.T) {
	store, _ := openTestStore(t)
	bad := purchased(t, "bob", 2, stamp)
	bad.Actor = " "
	if _, err := store.AppendEvents(context.Background(), []event.Event{purchased(t, "alice", 1, stamp), bad}); !errors.Is(err, event.ErrActorRequired) {
		t.Fatalf("append error = %v, want %v", err, event.ErrActorRequired)
	}
	events, err := store.ListEvents(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events = %d, want 0", len(events))
	}
}

func TestGetEventBySeqNotFound(t *testing.T) {
	store, _ := openTestStore(t)
	if _, err := store.GetEventBySeq(context.Background(), 9); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListEventsPageFiltersAndPaginates(t *testing.T) {
	store, _ := openTestStore(t)
	for i, buyer := range []string{"alice", "bob", "alice", "alice", "carol"} {
		appendAll(t, store, purchased(t, buyer, uint64(i)+1, stamp.Add(time.Duration(i)*time.Minute)))
	}
	ctx := context.Background()

	page, err := store.ListEventsPage(ctx, storage.ListEventsPageRequest{Filter: `actor = "alice"`, PageSize: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page.Events) != 2 || page.Events[0].Seq != 1 || page.Events[1].Seq != 3 {
		t.Fatalf("first page = %v", seqs(page.Events))
	}
	if page.NextPageToken == "" {
		t.Fatal("expected next page token")
	}
	page, err = store.ListEventsPage(ctx, storage.ListEventsPageRequest{Filter: `actor = "alice"`, PageSize: 2, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(page.Events) != 1 || page.Events[0].Seq != 4 || page.NextPageToken != "" {
		t.Fatalf("second page = %v token %q", seqs(page.Events), page.NextPageToken)
	}

	page, err = store.ListEventsPage(ctx, storage.ListEventsPageRequest{Descending: true, PageSize: 2})
	if err != nil {
		t.Fatalf("list descending: %v", err)
	}
	if got := seqs(page.Events); len(got) != 2 || got[0] != 5 || got[1] != 4 {
		t.Fatalf("descending page = %v, want [5 4]", got)
	}

	cutoff := stamp.Add(2 * time.Minute).Format(time.RFC3339Nano)
	page, err = store.ListEventsPage(ctx, storage.ListEventsPageRequest{Filter: `ts >= timestamp("` + cutoff + `") AND ticket_id != 5`})
	if err != nil {
		t.Fatalf("list by time: %v", err)
	}
	if got := seqs(page.Events); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("time page = %v, want [3 4]", got)
	}
}

func TestListEventsPageRejectsBadInput(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	if _, err := store.ListEventsPage(ctx, storage.ListEventsPageRequest{Filter: `nope = 1`}); !errors.Is(err, storage.ErrInvalidFilter) {
		t.Fatalf("filter error = %v, want %v", err, storage.ErrInvalidFilter)
	}
	if _, err := store.ListEventsPage(ctx, storage.ListEventsPageRequest{PageToken: "%%%"}); !errors.Is(err, storage.ErrInvalidPageToken) {
		t.Fatalf("token error = %v, want %v", err, storage.ErrInvalidPageToken)
	}
}

func TestVerifyEventChainDetectsTampering(t *testing.T) {
	store, _ := openTestStore(t)
	appendAll(t, store, purchased(t, "alice", 1, stamp), purchased(t, "bob", 2, stamp))
	if _, err := store.sqlDB.Exec("UPDATE events SET actor = 'mallory' WHERE seq = 2"); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	if err := store.VerifyEventChain(context.Background()); !errors.Is(err, event.ErrChainBroken) {
		t.Fatalf("verify error = %v, want %v", err, event.ErrChainBroken)
	}
}

func TestSnapshotsRoundTripAndPrune(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	if _, err := store.GetLatestSnapshot(ctx); !errors.Is(err, checkpoint.ErrNotFound) {
		t.Fatalf("empty snapshot error = %v, want %v", err, checkpoint.ErrNotFound)
	}
	for _, seq := range []uint64{4, 8, 12} {
		if err := store.PutSnapshot(ctx, checkpoint.Snapshot{Seq: seq, ChainHash: "chain", Data: []byte{byte(seq)}, CreatedAt: stamp}); err != nil {
			t.Fatalf("put snapshot %d: %v", seq, err)
		}
	}
	snap, err := store.GetLatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if snap.Seq != 12 || snap.Data[0] != 12 || !snap.CreatedAt.Equal(stamp.Truncate(time.Millisecond)) {
		t.Fatalf("snapshot = %+v", snap)
	}
	var count int
	if err := store.sqlDB.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 2 {
		t.Fatalf("snapshot rows = %d, want 2", count)
	}

	_, events, _ := ticket.NewRegistries()
	reopened, err := Open(ctx, path, events)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if snap, err := reopened.GetLatestSnapshot(ctx); err != nil || snap.Seq != 12 {
		t.Fatalf("reopened snapshot = %d, %v", snap.Seq, err)
	}
}

func TestOpenRequiresPathAndRegistry(t *testing.T) {
	if _, err := Open(context.Background(), " ", event.NewRegistry()); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"), nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}

func seqs(events []event.Event) []uint64 {
	out := make([]uint64, len(events))
	for i, evt := range events {
		out[i] = evt.Seq
	}
	return out
}
