package ticket

import "slices"

// InRange reports whether ticketID names a ticket of this ledger.
func (s State) InRange(ticketID uint64) bool {
	return ticketID >= 1 && ticketID <= s.TotalTickets
}

// OwnerOf returns the owner of ticketID, empty when unowned. The second
// result is false when ticketID is out of range.
func (s State) OwnerOf(ticketID uint64) (string, bool) {
	if !s.InRange(ticketID) {
		return "", false
	}
	return s.Owners[ticketID-1], true
}

// TicketsOf returns the tickets held by account in ascending order.
func (s State) TicketsOf(account string) []uint64 {
	held := s.holdings[account]
	if len(held) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(held))
	for id := range held {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TicketOf returns the lowest ticket held by account, or zero when none.
func (s State) TicketOf(account string) uint64 {
	var lowest uint64
	for id := range s.holdings[account] {
		if lowest == 0 || id < lowest {
			lowest = id
		}
	}
	return lowest
}

// ResaleBook returns a copy of the resale book in index order.
func (s State) ResaleBook() []ResaleOffer {
	return slices.Clone(s.Resale)
}

// SwapOfferFor returns the pending swap offer targeting ticketID.
func (s State) SwapOfferFor(ticketID uint64) (SwapOffer, bool) {
	offer, ok := s.Swaps[ticketID]
	return offer, ok
}

// ProceedsOf returns the resale proceeds forwarded to account.
func (s State) ProceedsOf(account string) uint64 {
	return s.Proceeds[account]
}
