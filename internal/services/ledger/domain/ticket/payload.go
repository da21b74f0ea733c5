package ticket

// CreatePayload carries the immutable construction parameters.
type CreatePayload struct {
	TotalTickets  uint64 `cbor:"total_tickets"`
	UnitPrice     uint64 `cbor:"unit_price"`
	Administrator string `cbor:"administrator"`
}

// BuyPayload requests a primary purchase.
type BuyPayload struct {
	TicketID uint64 `cbor:"ticket_id"`
	Payment  uint64 `cbor:"payment"`
}

// ListResalePayload lists a ticket for resale. A zero TicketID selects the
// caller's lowest owned ticket.
type ListResalePayload struct {
	TicketID uint64 `cbor:"ticket_id,omitempty"`
	Price    uint64 `cbor:"price"`
}

// AcceptResalePayload buys the listing at Index.
type AcceptResalePayload struct {
	Index   uint64 `cbor:"index"`
	Payment uint64 `cbor:"payment"`
}

// OfferSwapPayload offers OfferedTicketID (or, when zero, the caller's
// lowest owned ticket) for TargetTicketID.
type OfferSwapPayload struct {
	TargetTicketID  uint64 `cbor:"target_ticket_id"`
	OfferedTicketID uint64 `cbor:"offered_ticket_id,omitempty"`
}

// AcceptSwapPayload accepts the offer pending against TargetTicketID.
type AcceptSwapPayload struct {
	TargetTicketID uint64 `cbor:"target_ticket_id"`
}

// LedgerCreatedPayload is the genesis event body.
type LedgerCreatedPayload struct {
	TotalTickets  uint64 `cbor:"total_tickets"`
	UnitPrice     uint64 `cbor:"unit_price"`
	Administrator string `cbor:"administrator"`
}

// TicketPurchasedPayload records a primary sale; Price went to the treasury.
type TicketPurchasedPayload struct {
	Buyer    string `cbor:"buyer"`
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
}

// ResaleListedPayload records a new listing appended at Index.
type ResaleListedPayload struct {
	Index    uint64 `cbor:"index"`
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
	Seller   string `cbor:"seller"`
}

// TicketResoldPayload records an accepted listing; Price went to Seller.
type TicketResoldPayload struct {
	Index    uint64 `cbor:"index"`
	Seller   string `cbor:"seller"`
	Buyer    string `cbor:"buyer"`
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
}

// SwapOfferedPayload records a swap offer against TargetTicketID.
type SwapOfferedPayload struct {
	TargetTicketID  uint64 `cbor:"target_ticket_id"`
	Offeror         string `cbor:"offeror"`
	OfferedTicketID uint64 `cbor:"offered_ticket_id"`
}

// TicketsSwappedPayload records an executed swap. Buyer1 is the offeror now
// holding TicketID1; Buyer2 is the acceptor now holding TicketID2.
type TicketsSwappedPayload struct {
	Buyer1    string `cbor:"buyer1"`
	TicketID1 uint64 `cbor:"ticket_id1"`
	Buyer2    string `cbor:"buyer2"`
	TicketID2 uint64 `cbor:"ticket_id2"`
}
