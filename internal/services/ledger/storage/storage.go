// Package storage defines persistence contracts for the ledger service.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/checkpoint"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidFilter indicates a list filter that cannot be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidPageToken indicates a page token that cannot be decoded.
	ErrInvalidPageToken = errors.New("invalid page token")
)

// ListEventsPageRequest selects one page of journal events.
type ListEventsPageRequest struct {
	// Filter is an AIP-160 expression over type, actor, request_id,
	// ticket_id, seq and ts.
	Filter    string
	PageSize  int
	PageToken string
	// Descending orders by seq from newest to oldest.
	Descending bool
}

// ListEventsPageResult is one page of journal events.
type ListEventsPageResult struct {
	Events        []event.Event
	NextPageToken string
}

// EventStore is the durable event journal.
type EventStore interface {
	AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
	GetEventBySeq(ctx context.Context, seq uint64) (event.Event, error)
	ListEventsPage(ctx context.Context, req ListEventsPageRequest) (ListEventsPageResult, error)
	VerifyEventChain(ctx context.Context) error
}

// SnapshotStore persists encoded state snapshots.
type SnapshotStore interface {
	GetLatestSnapshot(ctx context.Context) (checkpoint.Snapshot, error)
	PutSnapshot(ctx context.Context, snap checkpoint.Snapshot) error
}
