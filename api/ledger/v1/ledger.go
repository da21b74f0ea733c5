package ledgerv1

import "time"

// ResaleOffer is one entry of the resale book. Index is its current
// position; removals swap the last entry into the vacated slot.
type ResaleOffer struct {
	Index    uint64 `cbor:"index"`
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
	Seller   string `cbor:"seller"`
}

// SwapOffer is the pending exchange proposal against a target ticket.
type SwapOffer struct {
	TargetTicketID  uint64 `cbor:"target_ticket_id"`
	Offeror         string `cbor:"offeror"`
	OfferedTicketID uint64 `cbor:"offered_ticket_id"`
}

// TicketPurchased is emitted once per successful primary sale.
type TicketPurchased struct {
	Buyer    string `cbor:"buyer"`
	TicketID uint64 `cbor:"ticket_id"`
}

// TicketResold is emitted once per accepted resale offer.
type TicketResold struct {
	Seller   string `cbor:"seller"`
	Buyer    string `cbor:"buyer"`
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
}

// TicketsSwapped is emitted once per accepted swap. Buyer1 is the offeror
// and TicketID1 the ticket it now holds; Buyer2 is the acceptor and
// TicketID2 the ticket it now holds.
type TicketsSwapped struct {
	Buyer1    string `cbor:"buyer1"`
	TicketID1 uint64 `cbor:"ticket_id1"`
	Buyer2    string `cbor:"buyer2"`
	TicketID2 uint64 `cbor:"ticket_id2"`
}

// Notification wraps exactly one of the ticket notifications.
type Notification struct {
	Seq        uint64           `cbor:"seq"`
	OccurredAt time.Time        `cbor:"occurred_at"`
	Purchased  *TicketPurchased `cbor:"purchased,omitempty"`
	Resold     *TicketResold    `cbor:"resold,omitempty"`
	Swapped    *TicketsSwapped  `cbor:"swapped,omitempty"`
}

// Event is one journal record as exposed by ListEvents. Payload holds the
// CBOR-encoded event body.
type Event struct {
	Seq        uint64    `cbor:"seq"`
	Type       string    `cbor:"type"`
	Actor      string    `cbor:"actor,omitempty"`
	RequestID  string    `cbor:"request_id,omitempty"`
	TicketID   uint64    `cbor:"ticket_id,omitempty"`
	OccurredAt time.Time `cbor:"occurred_at"`
	Payload    []byte    `cbor:"payload,omitempty"`
	Hash       string    `cbor:"hash"`
	ChainHash  string    `cbor:"chain_hash"`
}

type BuyTicketRequest struct {
	TicketID uint64 `cbor:"ticket_id"`
	Payment  uint64 `cbor:"payment"`
}

type BuyTicketResponse struct {
	Seq          uint64          `cbor:"seq"`
	Notification TicketPurchased `cbor:"notification"`
}

// ResaleTicketRequest lists a ticket of the caller. A zero TicketID selects
// the caller's lowest owned ticket.
type ResaleTicketRequest struct {
	Price    uint64 `cbor:"price"`
	TicketID uint64 `cbor:"ticket_id,omitempty"`
}

type ResaleTicketResponse struct {
	Seq   uint64      `cbor:"seq"`
	Offer ResaleOffer `cbor:"offer"`
}

type AcceptResaleRequest struct {
	Index   uint64 `cbor:"index"`
	Payment uint64 `cbor:"payment"`
}

type AcceptResaleResponse struct {
	Seq          uint64       `cbor:"seq"`
	Notification TicketResold `cbor:"notification"`
}

// OfferSwapRequest proposes trading OfferedTicketID (or, when zero, the
// caller's lowest owned ticket) for TicketID.
type OfferSwapRequest struct {
	TicketID        uint64 `cbor:"ticket_id"`
	OfferedTicketID uint64 `cbor:"offered_ticket_id,omitempty"`
}

type OfferSwapResponse struct {
	Seq   uint64    `cbor:"seq"`
	Offer SwapOffer `cbor:"offer"`
}

type AcceptSwapRequest struct {
	TicketID uint64 `cbor:"ticket_id"`
}

type AcceptSwapResponse struct {
	Seq          uint64         `cbor:"seq"`
	Notification TicketsSwapped `cbor:"notification"`
}

type TicketOwnersRequest struct {
	TicketID uint64 `cbor:"ticket_id"`
}

// TicketOwnersResponse carries the owner account, empty when unowned.
type TicketOwnersResponse struct {
	Owner string `cbor:"owner"`
}

type GetTicketOfRequest struct {
	Account string `cbor:"account"`
}

// GetTicketOfResponse reports the account's lowest owned ticket (zero when
// none) and every ticket it holds in ascending order.
type GetTicketOfResponse struct {
	TicketID  uint64   `cbor:"ticket_id"`
	TicketIDs []uint64 `cbor:"ticket_ids,omitempty"`
}

type CheckResaleRequest struct{}

type CheckResaleResponse struct {
	Offers []ResaleOffer `cbor:"offers"`
}

type TicketPriceRequest struct{}

type TicketPriceResponse struct {
	Price uint64 `cbor:"price"`
}

type TicketsSoldRequest struct{}

type TicketsSoldResponse struct {
	Sold uint64 `cbor:"sold"`
}

type TotalTicketsRequest struct{}

type TotalTicketsResponse struct {
	Total uint64 `cbor:"total"`
}

type OwnerRequest struct{}

type OwnerResponse struct {
	Owner string `cbor:"owner"`
}

type SwapOffersRequest struct {
	TicketID uint64 `cbor:"ticket_id"`
}

// SwapOffersResponse carries the pending offer for the ticket, or nil.
type SwapOffersResponse struct {
	Offer *SwapOffer `cbor:"offer,omitempty"`
}

type BalancesRequest struct {
	Account string `cbor:"account,omitempty"`
}

// BalancesResponse reports funds held by the ledger from primary sales and
// the resale proceeds forwarded to Account.
type BalancesResponse struct {
	Treasury uint64 `cbor:"treasury"`
	Proceeds uint64 `cbor:"proceeds"`
}

// ListEventsRequest pages through the journal. Filter is an AIP-160
// expression over type, actor, ticket_id, seq and ts.
type ListEventsRequest struct {
	Filter    string `cbor:"filter,omitempty"`
	PageSize  int32  `cbor:"page_size,omitempty"`
	PageToken string `cbor:"page_token,omitempty"`
	OrderBy   string `cbor:"order_by,omitempty"`
}

type ListEventsResponse struct {
	Events        []Event `cbor:"events"`
	NextPageToken string  `cbor:"next_page_token,omitempty"`
}

// WatchNotificationsRequest replays journaled notifications with a sequence
// greater than AfterSeq before streaming live ones.
type WatchNotificationsRequest struct {
	AfterSeq uint64 `cbor:"after_seq,omitempty"`
}
