package ledger

import (
	"context"
	"strconv"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	grpcmeta "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// view reads a consistent snapshot of the committed ledger state.
func (s *Service) view(ctx context.Context) (ticket.State, error) {
	if s == nil || s.engine == nil {
		return ticket.State{}, status.Error(codes.Internal, "ledger engine is not configured")
	}
	if err := ctx.Err(); err != nil {
		return ticket.State{}, handleError(ctx, err)
	}
	var state ticket.State
	s.engine.View(func(committed ticket.State, _ uint64) {
		state = committed
	})
	if !state.Created {
		return ticket.State{}, handleError(ctx, apperrors.New(apperrors.CodeLedgerNotCreated, "ledger not created"))
	}
	return state, nil
}

// accountOrCaller resolves the queried account, defaulting to the caller.
func accountOrCaller(ctx context.Context, account string) (string, error) {
	if account != "" {
		return account, nil
	}
	if caller := grpcmeta.CallerFromContext(ctx); caller != "" {
		return caller, nil
	}
	return "", handleError(ctx, apperrors.New(apperrors.CodeCallerRequired, "account or caller identity is required"))
}

// TicketOwners returns the owner of a ticket, empty when unsold.
func (s *Service) TicketOwners(ctx context.Context, in *ledgerv1.TicketOwnersRequest) (*ledgerv1.TicketOwnersResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "ticket owners request is required")
	}
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	owner, ok := state.OwnerOf(in.TicketID)
	if !ok {
		return nil, handleError(ctx, apperrors.WithMetadata(
			apperrors.CodeOutOfRange,
			"ticket "+strconv.FormatUint(in.TicketID, 10)+" out of range",
			map[string]string{"TicketID": strconv.FormatUint(in.TicketID, 10)},
		))
	}
	return &ledgerv1.TicketOwnersResponse{Owner: owner}, nil
}

// GetTicketOf returns the lowest ticket held by an account plus all of its
// holdings.
func (s *Service) GetTicketOf(ctx context.Context, in *ledgerv1.GetTicketOfRequest) (*ledgerv1.GetTicketOfResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get ticket of request is required")
	}
	account, err := accountOrCaller(ctx, in.Account)
	if err != nil {
		return nil, err
	}
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.GetTicketOfResponse{
		TicketID:  state.TicketOf(account),
		TicketIDs: state.TicketsOf(account),
	}, nil
}

// CheckResale returns the full resale book in index order.
func (s *Service) CheckResale(ctx context.Context, _ *ledgerv1.CheckResaleRequest) (*ledgerv1.CheckResaleResponse, error) {
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	book := state.ResaleBook()
	offers := make([]ledgerv1.ResaleOffer, 0, len(book))
	for i, offer := range book {
		offers = append(offers, ledgerv1.ResaleOffer{
			Index:    uint64(i),
			TicketID: offer.TicketID,
			Price:    offer.Price,
			Seller:   offer.Seller,
		})
	}
	return &ledgerv1.CheckResaleResponse{Offers: offers}, nil
}

// TicketPrice returns the fixed primary-sale unit price.
func (s *Service) TicketPrice(ctx context.Context, _ *ledgerv1.TicketPriceRequest) (*ledgerv1.TicketPriceResponse, error) {
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.TicketPriceResponse{Price: state.UnitPrice}, nil
}

// TicketsSold returns how many tickets have an owner.
func (s *Service) TicketsSold(ctx context.Context, _ *ledgerv1.TicketsSoldRequest) (*ledgerv1.TicketsSoldResponse, error) {
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.TicketsSoldResponse{Sold: state.Sold}, nil
}

// TotalTickets returns the inventory size set at creation.
func (s *Service) TotalTickets(ctx context.Context, _ *ledgerv1.TotalTicketsRequest) (*ledgerv1.TotalTicketsResponse, error) {
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.TotalTicketsResponse{Total: state.TotalTickets}, nil
}

// Owner returns the administrator account.
func (s *Service) Owner(ctx context.Context, _ *ledgerv1.OwnerRequest) (*ledgerv1.OwnerResponse, error) {
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.OwnerResponse{Owner: state.Administrator}, nil
}

// SwapOffers returns the pending swap offer targeting a ticket, if any.
func (s *Service) SwapOffers(ctx context.Context, in *ledgerv1.SwapOffersRequest) (*ledgerv1.SwapOffersResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "swap offers request is required")
	}
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	offer, ok := state.SwapOfferFor(in.TicketID)
	if !ok {
		return &ledgerv1.SwapOffersResponse{}, nil
	}
	return &ledgerv1.SwapOffersResponse{Offer: &ledgerv1.SwapOffer{
		TargetTicketID:  in.TicketID,
		Offeror:         offer.Offeror,
		OfferedTicketID: offer.OfferedTicketID,
	}}, nil
}

// Balances reports the treasury and the account's forwarded resale proceeds.
func (s *Service) Balances(ctx context.Context, in *ledgerv1.BalancesRequest) (*ledgerv1.BalancesResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "balances request is required")
	}
	account, err := accountOrCaller(ctx, in.Account)
	if err != nil {
		return nil, err
	}
	state, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.BalancesResponse{
		Treasury: state.Treasury,
		Proceeds: state.ProceedsOf(account),
	}, nil
}
