package ledgerv1

import (
	"context"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ticketbooth.ledger.v1.TicketLedgerService"

// HealthService is the name the ledger server reports to the gRPC health
// service once it is ready for traffic.
const HealthService = ServiceName

const (
	TicketLedgerService_BuyTicket_FullMethodName          = "/" + ServiceName + "/BuyTicket"
	TicketLedgerService_ResaleTicket_FullMethodName       = "/" + ServiceName + "/ResaleTicket"
	TicketLedgerService_AcceptResale_FullMethodName       = "/" + ServiceName + "/AcceptResale"
	TicketLedgerService_OfferSwap_FullMethodName          = "/" + ServiceName + "/OfferSwap"
	TicketLedgerService_AcceptSwap_FullMethodName         = "/" + ServiceName + "/AcceptSwap"
	TicketLedgerService_TicketOwners_FullMethodName       = "/" + ServiceName + "/TicketOwners"
	TicketLedgerService_GetTicketOf_FullMethodName        = "/" + ServiceName + "/GetTicketOf"
	TicketLedgerService_CheckResale_FullMethodName        = "/" + ServiceName + "/CheckResale"
	TicketLedgerService_TicketPrice_FullMethodName        = "/" + ServiceName + "/TicketPrice"
	TicketLedgerService_TicketsSold_FullMethodName        = "/" + ServiceName + "/TicketsSold"
	TicketLedgerService_TotalTickets_FullMethodName       = "/" + ServiceName + "/TotalTickets"
	TicketLedgerService_Owner_FullMethodName              = "/" + ServiceName + "/Owner"
	TicketLedgerService_SwapOffers_FullMethodName         = "/" + ServiceName + "/SwapOffers"
	TicketLedgerService_Balances_FullMethodName           = "/" + ServiceName + "/Balances"
	TicketLedgerService_ListEvents_FullMethodName         = "/" + ServiceName + "/ListEvents"
	TicketLedgerService_WatchNotifications_FullMethodName = "/" + ServiceName + "/WatchNotifications"
)

// TicketLedgerServiceClient is the client API for TicketLedgerService.
type TicketLedgerServiceClient interface {
	// BuyTicket buys an unowned ticket at the unit price.
	BuyTicket(ctx context.Context, in *BuyTicketRequest, opts ...grpc.CallOption) (*BuyTicketResponse, error)
	// ResaleTicket lists one of the caller's tickets on the resale book.
	ResaleTicket(ctx context.Context, in *ResaleTicketRequest, opts ...grpc.CallOption) (*ResaleTicketResponse, error)
	// AcceptResale buys the resale offer at the given book index.
	AcceptResale(ctx context.Context, in *AcceptResaleRequest, opts ...grpc.CallOption) (*AcceptResaleResponse, error)
	// OfferSwap proposes exchanging one of the caller's tickets for a target ticket.
	OfferSwap(ctx context.Context, in *OfferSwapRequest, opts ...grpc.CallOption) (*OfferSwapResponse, error)
	// AcceptSwap accepts the pending swap offer against the caller's ticket.
	AcceptSwap(ctx context.Context, in *AcceptSwapRequest, opts ...grpc.CallOption) (*AcceptSwapResponse, error)
	// TicketOwners returns the owner of a ticket.
	TicketOwners(ctx context.Context, in *TicketOwnersRequest, opts ...grpc.CallOption) (*TicketOwnersResponse, error)
	// GetTicketOf returns the tickets held by an account.
	GetTicketOf(ctx context.Context, in *GetTicketOfRequest, opts ...grpc.CallOption) (*GetTicketOfResponse, error)
	// CheckResale returns the full resale book.
	CheckResale(ctx context.Context, in *CheckResaleRequest, opts ...grpc.CallOption) (*CheckResaleResponse, error)
	// TicketPrice returns the primary sale unit price.
	TicketPrice(ctx context.Context, in *TicketPriceRequest, opts ...grpc.CallOption) (*TicketPriceResponse, error)
	// TicketsSold returns the number of owned tickets.
	TicketsSold(ctx context.Context, in *TicketsSoldRequest, opts ...grpc.CallOption) (*TicketsSoldResponse, error)
	// TotalTickets returns the ticket inventory size.
	TotalTickets(ctx context.Context, in *TotalTicketsRequest, opts ...grpc.CallOption) (*TotalTicketsResponse, error)
	// Owner returns the ledger administrator.
	Owner(ctx context.Context, in *OwnerRequest, opts ...grpc.CallOption) (*OwnerResponse, error)
	// SwapOffers returns the pending swap offer against a ticket.
	SwapOffers(ctx context.Context, in *SwapOffersRequest, opts ...grpc.CallOption) (*SwapOffersResponse, error)
	// Balances returns treasury and per-account proceeds.
	Balances(ctx context.Context, in *BalancesRequest, opts ...grpc.CallOption) (*BalancesResponse, error)
	// ListEvents pages through the event journal.
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
	// WatchNotifications streams purchase, resale and swap notifications.
	WatchNotifications(ctx context.Context, in *WatchNotificationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Notification], error)
}

type ticketLedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTicketLedgerServiceClient returns a client that encodes every call with
// the CBOR codec.
func NewTicketLedgerServiceClient(cc grpc.ClientConnInterface) TicketLedgerServiceClient {
	return &ticketLedgerServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

func (c *ticketLedgerServiceClient) BuyTicket(ctx context.Context, in *BuyTicketRequest, opts ...grpc.CallOption) (*BuyTicketResponse, error) {
	out := new(BuyTicketResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_BuyTicket_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) ResaleTicket(ctx context.Context, in *ResaleTicketRequest, opts ...grpc.CallOption) (*ResaleTicketResponse, error) {
	out := new(ResaleTicketResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_ResaleTicket_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) AcceptResale(ctx context.Context, in *AcceptResaleRequest, opts ...grpc.CallOption) (*AcceptResaleResponse, error) {
	out := new(AcceptResaleResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_AcceptResale_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) OfferSwap(ctx context.Context, in *OfferSwapRequest, opts ...grpc.CallOption) (*OfferSwapResponse, error) {
	out := new(OfferSwapResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_OfferSwap_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) AcceptSwap(ctx context.Context, in *AcceptSwapRequest, opts ...grpc.CallOption) (*AcceptSwapResponse, error) {
	out := new(AcceptSwapResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_AcceptSwap_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) TicketOwners(ctx context.Context, in *TicketOwnersRequest, opts ...grpc.CallOption) (*TicketOwnersResponse, error) {
	out := new(TicketOwnersResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_TicketOwners_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) GetTicketOf(ctx context.Context, in *GetTicketOfRequest, opts ...grpc.CallOption) (*GetTicketOfResponse, error) {
	out := new(GetTicketOfResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_GetTicketOf_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) CheckResale(ctx context.Context, in *CheckResaleRequest, opts ...grpc.CallOption) (*CheckResaleResponse, error) {
	out := new(CheckResaleResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_CheckResale_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) TicketPrice(ctx context.Context, in *TicketPriceRequest, opts ...grpc.CallOption) (*TicketPriceResponse, error) {
	out := new(TicketPriceResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_TicketPrice_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) TicketsSold(ctx context.Context, in *TicketsSoldRequest, opts ...grpc.CallOption) (*TicketsSoldResponse, error) {
	out := new(TicketsSoldResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_TicketsSold_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) TotalTickets(ctx context.Context, in *TotalTicketsRequest, opts ...grpc.CallOption) (*TotalTicketsResponse, error) {
	out := new(TotalTicketsResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_TotalTickets_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) Owner(ctx context.Context, in *OwnerRequest, opts ...grpc.CallOption) (*OwnerResponse, error) {
	out := new(OwnerResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_Owner_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) SwapOffers(ctx context.Context, in *SwapOffersRequest, opts ...grpc.CallOption) (*SwapOffersResponse, error) {
	out := new(SwapOffersResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_SwapOffers_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) Balances(ctx context.Context, in *BalancesRequest, opts ...grpc.CallOption) (*BalancesResponse, error) {
	out := new(BalancesResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_Balances_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	out := new(ListEventsResponse)
	if err := c.cc.Invoke(ctx, TicketLedgerService_ListEvents_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketLedgerServiceClient) WatchNotifications(ctx context.Context, in *WatchNotificationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Notification], error) {
	stream, err := c.cc.NewStream(ctx, &TicketLedgerService_ServiceDesc.Streams[0], TicketLedgerService_WatchNotifications_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchNotificationsRequest, Notification]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// TicketLedgerServiceServer is the server API for TicketLedgerService.
// Implementations must embed UnimplementedTicketLedgerServiceServer.
type TicketLedgerServiceServer interface {
	BuyTicket(context.Context, *BuyTicketRequest) (*BuyTicketResponse, error)
	ResaleTicket(context.Context, *ResaleTicketRequest) (*ResaleTicketResponse, error)
	AcceptResale(context.Context, *AcceptResaleRequest) (*AcceptResaleResponse, error)
	OfferSwap(context.Context, *OfferSwapRequest) (*OfferSwapResponse, error)
	AcceptSwap(context.Context, *AcceptSwapRequest) (*AcceptSwapResponse, error)
	TicketOwners(context.Context, *TicketOwnersRequest) (*TicketOwnersResponse, error)
	GetTicketOf(context.Context, *GetTicketOfRequest) (*GetTicketOfResponse, error)
	CheckResale(context.Context, *CheckResaleRequest) (*CheckResaleResponse, error)
	TicketPrice(context.Context, *TicketPriceRequest) (*TicketPriceResponse, error)
	TicketsSold(context.Context, *TicketsSoldRequest) (*TicketsSoldResponse, error)
	TotalTickets(context.Context, *TotalTicketsRequest) (*TotalTicketsResponse, error)
	Owner(context.Context, *OwnerRequest) (*OwnerResponse, error)
	SwapOffers(context.Context, *SwapOffersRequest) (*SwapOffersResponse, error)
	Balances(context.Context, *BalancesRequest) (*BalancesResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	WatchNotifications(*WatchNotificationsRequest, grpc.ServerStreamingServer[Notification]) error
	mustEmbedUnimplementedTicketLedgerServiceServer()
}

// UnimplementedTicketLedgerServiceServer returns Unimplemented for every
// method. Embed it by value.
type UnimplementedTicketLedgerServiceServer struct{}

func (UnimplementedTicketLedgerServiceServer) BuyTicket(context.Context, *BuyTicketRequest) (*BuyTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BuyTicket not implemented")
}

func (UnimplementedTicketLedgerServiceServer) ResaleTicket(context.Context, *ResaleTicketRequest) (*ResaleTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResaleTicket not implemented")
}

func (UnimplementedTicketLedgerServiceServer) AcceptResale(context.Context, *AcceptResaleRequest) (*AcceptResaleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AcceptResale not implemented")
}

func (UnimplementedTicketLedgerServiceServer) OfferSwap(context.Context, *OfferSwapRequest) (*OfferSwapResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method OfferSwap not implemented")
}

func (UnimplementedTicketLedgerServiceServer) AcceptSwap(context.Context, *AcceptSwapRequest) (*AcceptSwapResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AcceptSwap not implemented")
}

func (UnimplementedTicketLedgerServiceServer) TicketOwners(context.Context, *TicketOwnersRequest) (*TicketOwnersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TicketOwners not implemented")
}

func (UnimplementedTicketLedgerServiceServer) GetTicketOf(context.Context, *GetTicketOfRequest) (*GetTicketOfResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTicketOf not implemented")
}

func (UnimplementedTicketLedgerServiceServer) CheckResale(context.Context, *CheckResaleRequest) (*CheckResaleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckResale not implemented")
}

func (UnimplementedTicketLedgerServiceServer) TicketPrice(context.Context, *TicketPriceRequest) (*TicketPriceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TicketPrice not implemented")
}

func (UnimplementedTicketLedgerServiceServer) TicketsSold(context.Context, *TicketsSoldRequest) (*TicketsSoldResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TicketsSold not implemented")
}

func (UnimplementedTicketLedgerServiceServer) TotalTickets(context.Context, *TotalTicketsRequest) (*TotalTicketsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TotalTickets not implemented")
}

func (UnimplementedTicketLedgerServiceServer) Owner(context.Context, *OwnerRequest) (*OwnerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Owner not implemented")
}

func (UnimplementedTicketLedgerServiceServer) SwapOffers(context.Context, *SwapOffersRequest) (*SwapOffersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SwapOffers not implemented")
}

func (UnimplementedTicketLedgerServiceServer) Balances(context.Context, *BalancesRequest) (*BalancesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Balances not implemented")
}

func (UnimplementedTicketLedgerServiceServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}

func (UnimplementedTicketLedgerServiceServer) WatchNotifications(*WatchNotificationsRequest, grpc.ServerStreamingServer[Notification]) error {
	return status.Error(codes.Unimplemented, "method WatchNotifications not implemented")
}

func (UnimplementedTicketLedgerServiceServer) mustEmbedUnimplementedTicketLedgerServiceServer() {}

// RegisterTicketLedgerServiceServer registers srv with s.
func RegisterTicketLedgerServiceServer(s grpc.ServiceRegistrar, srv TicketLedgerServiceServer) {
	s.RegisterService(&TicketLedgerService_ServiceDesc, srv)
}

func _TicketLedgerService_BuyTicket_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BuyTicketRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).BuyTicket(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_BuyTicket_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).BuyTicket(ctx, req.(*BuyTicketRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_ResaleTicket_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResaleTicketRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).ResaleTicket(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_ResaleTicket_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).ResaleTicket(ctx, req.(*ResaleTicketRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_AcceptResale_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AcceptResaleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).AcceptResale(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_AcceptResale_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).AcceptResale(ctx, req.(*AcceptResaleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_OfferSwap_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(OfferSwapRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).OfferSwap(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_OfferSwap_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).OfferSwap(ctx, req.(*OfferSwapRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_AcceptSwap_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AcceptSwapRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).AcceptSwap(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_AcceptSwap_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).AcceptSwap(ctx, req.(*AcceptSwapRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_TicketOwners_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TicketOwnersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).TicketOwners(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_TicketOwners_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).TicketOwners(ctx, req.(*TicketOwnersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_GetTicketOf_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTicketOfRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).GetTicketOf(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_GetTicketOf_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).GetTicketOf(ctx, req.(*GetTicketOfRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_CheckResale_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckResaleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).CheckResale(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_CheckResale_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).CheckResale(ctx, req.(*CheckResaleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_TicketPrice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TicketPriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).TicketPrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_TicketPrice_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).TicketPrice(ctx, req.(*TicketPriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_TicketsSold_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TicketsSoldRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).TicketsSold(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_TicketsSold_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).TicketsSold(ctx, req.(*TicketsSoldRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_TotalTickets_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TotalTicketsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).TotalTickets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_TotalTickets_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).TotalTickets(ctx, req.(*TotalTicketsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_Owner_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(OwnerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).Owner(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_Owner_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).Owner(ctx, req.(*OwnerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_SwapOffers_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SwapOffersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).SwapOffers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_SwapOffers_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).SwapOffers(ctx, req.(*SwapOffersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_Balances_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BalancesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).Balances(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_Balances_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).Balances(ctx, req.(*BalancesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_ListEvents_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListEventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketLedgerServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TicketLedgerService_ListEvents_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketLedgerServiceServer).ListEvents(ctx, req.(*ListEventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TicketLedgerService_WatchNotifications_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchNotificationsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TicketLedgerServiceServer).WatchNotifications(m, &grpc.GenericServerStream[WatchNotificationsRequest, Notification]{ServerStream: stream})
}

// TicketLedgerService_ServiceDesc is the grpc.ServiceDesc for TicketLedgerService.
var TicketLedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TicketLedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BuyTicket",
			Handler:    _TicketLedgerService_BuyTicket_Handler,
		},
		{
			MethodName: "ResaleTicket",
			Handler:    _TicketLedgerService_ResaleTicket_Handler,
		},
		{
			MethodName: "AcceptResale",
			Handler:    _TicketLedgerService_AcceptResale_Handler,
		},
		{
			MethodName: "OfferSwap",
			Handler:    _TicketLedgerService_OfferSwap_Handler,
		},
		{
			MethodName: "AcceptSwap",
			Handler:    _TicketLedgerService_AcceptSwap_Handler,
		},
		{
			MethodName: "TicketOwners",
			Handler:    _TicketLedgerService_TicketOwners_Handler,
		},
		{
			MethodName: "GetTicketOf",
			Handler:    _TicketLedgerService_GetTicketOf_Handler,
		},
		{
			MethodName: "CheckResale",
			Handler:    _TicketLedgerService_CheckResale_Handler,
		},
		{
			MethodName: "TicketPrice",
			Handler:    _TicketLedgerService_TicketPrice_Handler,
		},
		{
			MethodName: "TicketsSold",
			Handler:    _TicketLedgerService_TicketsSold_Handler,
		},
		{
			MethodName: "TotalTickets",
			Handler:    _TicketLedgerService_TotalTickets_Handler,
		},
		{
			MethodName: "Owner",
			Handler:    _TicketLedgerService_Owner_Handler,
		},
		{
			MethodName: "SwapOffers",
			Handler:    _TicketLedgerService_SwapOffers_Handler,
		},
		{
			MethodName: "Balances",
			Handler:    _TicketLedgerService_Balances_Handler,
		},
		{
			MethodName: "ListEvents",
			Handler:    _TicketLedgerService_ListEvents_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchNotifications",
			Handler:       _TicketLedgerService_WatchNotifications_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "ticketbooth/ledger/v1/ledger.proto",
}
