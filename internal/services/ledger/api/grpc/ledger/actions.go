package ledger

import (
	"context"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// BuyTicket sells an unowned ticket to the caller at the unit price.
func (s *Service) BuyTicket(ctx context.Context, in *ledgerv1.BuyTicketRequest) (*ledgerv1.BuyTicketResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "buy ticket request is required")
	}
	evt, seq, err := s.execute(ctx, ticket.CommandTypeBuy, ticket.BuyPayload{TicketID: in.TicketID, Payment: in.Payment})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	var body ticket.TicketPurchasedPayload
	if err := codec.Unmarshal(evt.Payload, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "decode purchase: %v", err)
	}
	return &ledgerv1.BuyTicketResponse{
		Seq:          seq,
		Notification: ledgerv1.TicketPurchased{Buyer: body.Buyer, TicketID: body.TicketID},
	}, nil
}

// ResaleTicket appends a caller-owned ticket to the resale book.
func (s *Service) ResaleTicket(ctx context.Context, in *ledgerv1.ResaleTicketRequest) (*ledgerv1.ResaleTicketResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "resale ticket request is required")
	}
	evt, seq, err := s.execute(ctx, ticket.CommandTypeListResale, ticket.ListResalePayload{TicketID: in.TicketID, Price: in.Price})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	var body ticket.ResaleListedPayload
	if err := codec.Unmarshal(evt.Payload, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "decode listing: %v", err)
	}
	return &ledgerv1.ResaleTicketResponse{
		Seq: seq,
		Offer: ledgerv1.ResaleOffer{
			Index:    body.Index,
			TicketID: body.TicketID,
			Price:    body.Price,
			Seller:   body.Seller,
		},
	}, nil
}

// AcceptResale buys the listing at the requested index.
func (s *Service) AcceptResale(ctx context.Context, in *ledgerv1.AcceptResaleRequest) (*ledgerv1.AcceptResaleResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "accept resale request is required")
	}
	evt, seq, err := s.execute(ctx, ticket.CommandTypeAcceptResale, ticket.AcceptResalePayload{Index: in.Index, Payment: in.Payment})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	var body ticket.TicketResoldPayload
	if err := codec.Unmarshal(evt.Payload, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "decode resale: %v", err)
	}
	return &ledgerv1.AcceptResaleResponse{
		Seq: seq,
		Notification: ledgerv1.TicketResold{
			Seller:   body.Seller,
			Buyer:    body.Buyer,
			TicketID: body.TicketID,
			Price:    body.Price,
		},
	}, nil
}

// OfferSwap records the caller's offer to trade one of its tickets for the
// requested one.
func (s *Service) OfferSwap(ctx context.Context, in *ledgerv1.OfferSwapRequest) (*ledgerv1.OfferSwapResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "offer swap request is required")
	}
	evt, seq, err := s.execute(ctx, ticket.CommandTypeOfferSwap, ticket.OfferSwapPayload{
		TargetTicketID:  in.TicketID,
		OfferedTicketID: in.OfferedTicketID,
	})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	var body ticket.SwapOfferedPayload
	if err := codec.Unmarshal(evt.Payload, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "decode swap offer: %v", err)
	}
	return &ledgerv1.OfferSwapResponse{
		Seq: seq,
		Offer: ledgerv1.SwapOffer{
			TargetTicketID:  body.TargetTicketID,
			Offeror:         body.Offeror,
			OfferedTicketID: body.OfferedTicketID,
		},
	}, nil
}

// AcceptSwap exchanges the caller's ticket with the pending offeror's.
func (s *Service) AcceptSwap(ctx context.Context, in *ledgerv1.AcceptSwapRequest) (*ledgerv1.AcceptSwapResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "accept swap request is required")
	}
	evt, seq, err := s.execute(ctx, ticket.CommandTypeAcceptSwap, ticket.AcceptSwapPayload{TargetTicketID: in.TicketID})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	var body ticket.TicketsSwappedPayload
	if err := codec.Unmarshal(evt.Payload, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "decode swap: %v", err)
	}
	return &ledgerv1.AcceptSwapResponse{
		Seq: seq,
		Notification: ledgerv1.TicketsSwapped{
			Buyer1:    body.Buyer1,
			TicketID1: body.TicketID1,
			Buyer2:    body.Buyer2,
			TicketID2: body.TicketID2,
		},
	}, nil
}
