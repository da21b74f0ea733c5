package ledger

import (
	"context"
	"errors"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/platform/grpc/pagination"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultListEventsPageSize = 50
	maxListEventsPageSize     = 200
	replayBatchSize           = 200
)

// ListEvents returns a filtered page of the event journal.
func (s *Service) ListEvents(ctx context.Context, in *ledgerv1.ListEventsRequest) (*ledgerv1.ListEventsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list events request is required")
	}
	if s == nil || s.events == nil {
		return nil, status.Error(codes.Internal, "event store is not configured")
	}
	orderBy, err := pagination.NormalizeOrderBy(in.OrderBy, pagination.OrderByConfig{
		Default: "seq",
		Allowed: []string{"seq", "seq desc"},
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	pageSize := pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
		Default: defaultListEventsPageSize,
		Max:     maxListEventsPageSize,
	})
	page, err := s.events.ListEventsPage(ctx, storage.ListEventsPageRequest{
		Filter:     in.Filter,
		PageSize:   pageSize,
		PageToken:  in.PageToken,
		Descending: orderBy == "seq desc",
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilter) || errors.Is(err, storage.ErrInvalidPageToken) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "list events: %v", err)
	}
	resp := &ledgerv1.ListEventsResponse{
		Events:        make([]ledgerv1.Event, 0, len(page.Events)),
		NextPageToken: page.NextPageToken,
	}
	for _, evt := range page.Events {
		resp.Events = append(resp.Events, eventToProto(evt))
	}
	return resp, nil
}

// WatchNotifications streams purchase, resale and swap notifications.
// Journaled notifications after the requested sequence are replayed first,
// then live ones follow without gaps or duplicates. A watcher that falls
// too far behind is ended with ResourceExhausted and may resume from the
// last sequence it received.
func (s *Service) WatchNotifications(in *ledgerv1.WatchNotificationsRequest, stream grpc.ServerStreamingServer[ledgerv1.Notification]) error {
	if in == nil {
		return status.Error(codes.InvalidArgument, "watch notifications request is required")
	}
	if s == nil || s.events == nil || s.broker == nil {
		return status.Error(codes.Unavailable, "notifications are not configured")
	}
	ctx := stream.Context()

	// Subscribe before replaying so events committed meanwhile are buffered.
	sub := s.broker.Subscribe()
	defer sub.Close()

	last := in.AfterSeq
	for {
		events, err := s.events.ListEvents(ctx, last, replayBatchSize)
		if err != nil {
			return handleError(ctx, err)
		}
		for _, evt := range events {
			last = evt.Seq
			if err := s.send(stream, evt); err != nil {
				return err
			}
		}
		if len(events) < replayBatchSize {
			break
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-sub.C():
			if !ok {
				if sub.Lagged() {
					return status.Errorf(codes.ResourceExhausted, "watcher fell behind; resume after seq %d", last)
				}
				return nil
			}
			if evt.Seq <= last {
				continue
			}
			last = evt.Seq
			if err := s.send(stream, evt); err != nil {
				return err
			}
		}
	}
}

// send delivers evt when it is a notification.
func (s *Service) send(stream grpc.ServerStreamingServer[ledgerv1.Notification], evt event.Event) error {
	if s.registry != nil && !s.registry.IsNotification(evt.Type) {
		return nil
	}
	note, ok, err := notificationFromEvent(evt)
	if err != nil {
		return status.Errorf(codes.Internal, "decode notification %d: %v", evt.Seq, err)
	}
	if !ok {
		return nil
	}
	return stream.Send(&note)
}

func notificationFromEvent(evt event.Event) (ledgerv1.Notification, bool, error) {
	note := ledgerv1.Notification{Seq: evt.Seq, OccurredAt: evt.Timestamp}
	switch evt.Type {
	case ticket.EventTypeTicketPurchased:
		var body ticket.TicketPurchasedPayload
		if err := codec.Unmarshal(evt.Payload, &body); err != nil {
			return note, false, err
		}
		note.Purchased = &ledgerv1.TicketPurchased{Buyer: body.Buyer, TicketID: body.TicketID}
	case ticket.EventTypeTicketResold:
		var body ticket.TicketResoldPayload
		if err := codec.Unmarshal(evt.Payload, &body); err != nil {
			return note, false, err
		}
		note.Resold = &ledgerv1.TicketResold{
			Seller:   body.Seller,
			Buyer:    body.Buyer,
			TicketID: body.TicketID,
			Price:    body.Price,
		}
	case ticket.EventTypeTicketsSwapped:
		var body ticket.TicketsSwappedPayload
		if err := codec.Unmarshal(evt.Payload, &body); err != nil {
			return note, false, err
		}
		note.Swapped = &ledgerv1.TicketsSwapped{
			Buyer1:    body.Buyer1,
			TicketID1: body.TicketID1,
			Buyer2:    body.Buyer2,
			TicketID2: body.TicketID2,
		}
	default:
		return note, false, nil
	}
	return note, true, nil
}

func eventToProto(evt event.Event) ledgerv1.Event {
	return ledgerv1.Event{
		Seq:        evt.Seq,
		Type:       string(evt.Type),
		Actor:      evt.Actor,
		RequestID:  evt.RequestID,
		TicketID:   evt.TicketID,
		OccurredAt: evt.Timestamp,
		Payload:    evt.Payload,
		Hash:       evt.Hash,
		ChainHash:  evt.ChainHash,
	}
}
