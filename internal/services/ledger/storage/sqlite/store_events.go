package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/grpc/pagination"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage/filter"
)

const eventColumns = "seq, event_hash, prev_hash, chain_hash, timestamp, event_type, actor, request_id, ticket_id, payload"

// AppendEvents atomically appends events in one transaction, allocating
// contiguous sequence numbers and linking each chain hash to its
// predecessor.
func (s *Store) AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error) {
	if len(events) == 0 {
		return nil, nil
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	validated := make([]event.Event, len(events))
	for i, evt := range events {
		v, err := s.eventRegistry.ValidateForAppend(evt)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		v.Timestamp = v.Timestamp.UTC().Truncate(time.Millisecond)
		validated[i] = v
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var lastSeq int64
	prevChainHash := ""
	row := tx.QueryRowContext(ctx, "SELECT seq, chain_hash FROM events ORDER BY seq DESC LIMIT 1")
	if err := row.Scan(&lastSeq, &prevChainHash); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load previous event: %w", err)
	}

	stored := make([]event.Event, len(validated))
	for i, evt := range validated {
		evt.Seq = uint64(lastSeq) + uint64(i) + 1
		sealed, err := event.Seal(evt, prevChainHash)
		if err != nil {
			return nil, fmt.Errorf("event %d seal: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			int64(sealed.Seq),
			sealed.Hash,
			sealed.PrevHash,
			sealed.ChainHash,
			toMillis(sealed.Timestamp),
			string(sealed.Type),
			sealed.Actor,
			sealed.RequestID,
			int64(sealed.TicketID),
			sealed.Payload,
		); err != nil {
			return nil, fmt.Errorf("append event %d: %w", i, err)
		}
		prevChainHash = sealed.ChainHash
		stored[i] = sealed
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

// ListEvents returns up to limit events with seq greater than afterSeq in
// ascending order.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE seq > ? ORDER BY seq ASC LIMIT ?",
		int64(afterSeq), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return scanEvents(rows)
}

// GetEventBySeq returns one event or storage.ErrNotFound.
func (s *Store) GetEventBySeq(ctx context.Context, seq uint64) (event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return event.Event{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE seq = ?", int64(seq))
	evt, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, storage.ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("get event %d: %w", seq, err)
	}
	return evt, nil
}

// ListEventsPage returns one filtered page of events. The page token is the
// seq of the last event of the previous page.
func (s *Store) ListEventsPage(ctx context.Context, req storage.ListEventsPageRequest) (storage.ListEventsPageResult, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ListEventsPageResult{}, err
	}
	cond, err := filter.ParseEventFilter(req.Filter)
	if err != nil {
		return storage.ListEventsPageResult{}, fmt.Errorf("%w: %v", storage.ErrInvalidFilter, err)
	}
	cursor, err := pagination.DecodeSeqToken(req.PageToken)
	if err != nil {
		return storage.ListEventsPageResult{}, fmt.Errorf("%w: %v", storage.ErrInvalidPageToken, err)
	}
	plan := buildListEventsPagePlan(req, cond, cursor)

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE "+plan.whereClause+" "+plan.orderClause+" "+plan.limitClause,
		plan.params...,
	)
	if err != nil {
		return storage.ListEventsPageResult{}, fmt.Errorf("list events page: %w", err)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return storage.ListEventsPageResult{}, err
	}

	result := storage.ListEventsPageResult{Events: events}
	if len(events) > plan.pageSize {
		result.Events = events[:plan.pageSize]
		result.NextPageToken = pagination.EncodeSeqToken(result.Events[plan.pageSize-1].Seq)
	}
	return result, nil
}

// VerifyEventChain walks the whole journal and checks every hash link.
func (s *Store) VerifyEventChain(ctx context.Context) error {
	var afterSeq uint64
	prevChainHash := ""
	for {
		events, err := s.ListEvents(ctx, afterSeq, 500)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		for _, evt := range events {
			if evt.Seq != afterSeq+1 {
				return fmt.Errorf("%w: expected seq %d got %d", event.ErrChainBroken, afterSeq+1, evt.Seq)
			}
			if err := event.VerifyLink(evt, prevChainHash); err != nil {
				return err
			}
			prevChainHash = evt.ChainHash
			afterSeq = evt.Seq
		}
	}
}

type listEventsPagePlan struct {
	whereClause string
	params      []any
	orderClause string
	limitClause string
	pageSize    int
}

func buildListEventsPagePlan(req storage.ListEventsPageRequest, cond filter.SQLCondition, cursor uint64) listEventsPagePlan {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	clauses := []string{"1 = 1"}
	var params []any
	if cursor > 0 {
		if req.Descending {
			clauses = append(clauses, "seq < ?")
		} else {
			clauses = append(clauses, "seq > ?")
		}
		params = append(params, int64(cursor))
	}
	if cond.Clause != "" {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	orderClause := "ORDER BY seq ASC"
	if req.Descending {
		orderClause = "ORDER BY seq DESC"
	}
	return listEventsPagePlan{
		whereClause: strings.Join(clauses, " AND "),
		params:      params,
		orderClause: orderClause,
		limitClause: fmt.Sprintf("LIMIT %d", pageSize+1),
		pageSize:    pageSize,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var (
		seq       int64
		ts        int64
		eventType string
		ticketID  int64
		evt       event.Event
	)
	if err := row.Scan(
		&seq,
		&evt.Hash,
		&evt.PrevHash,
		&evt.ChainHash,
		&ts,
		&eventType,
		&evt.Actor,
		&evt.RequestID,
		&ticketID,
		&evt.Payload,
	); err != nil {
		return event.Event{}, err
	}
	evt.Seq = uint64(seq)
	evt.Timestamp = fromMillis(ts)
	evt.Type = event.Type(eventType)
	evt.TicketID = uint64(ticketID)
	return evt, nil
}

func scanEvents(rows *sql.Rows) ([]event.Event, error) {
	defer rows.Close()
	var events []event.Event
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
