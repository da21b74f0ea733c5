package ticket

import (
	"maps"
	"slices"
)

// ResaleOffer is one entry of the resale book.
type ResaleOffer struct {
	TicketID uint64 `cbor:"ticket_id"`
	Price    uint64 `cbor:"price"`
	Seller   string `cbor:"seller"`
}

// SwapOffer is a pending proposal to trade OfferedTicketID for the ticket it
// is keyed by.
type SwapOffer struct {
	Offeror         string `cbor:"offeror"`
	OfferedTicketID uint64 `cbor:"offered_ticket_id"`
}

// State is the ledger aggregate. Owners is indexed by ticket id minus one;
// an empty string means unowned.
type State struct {
	Created       bool                 `cbor:"created"`
	TotalTickets  uint64               `cbor:"total_tickets"`
	UnitPrice     uint64               `cbor:"unit_price"`
	Administrator string               `cbor:"administrator"`
	Sold          uint64               `cbor:"sold"`
	Owners        []string             `cbor:"owners"`
	Resale        []ResaleOffer        `cbor:"resale"`
	Swaps         map[uint64]SwapOffer `cbor:"swaps"`
	Treasury      uint64               `cbor:"treasury"`
	Proceeds      map[string]uint64    `cbor:"proceeds"`

	// holdings is the reverse index account -> owned ticket ids, kept in
	// step with Owners by every fold.
	holdings map[string]map[uint64]struct{}
}

// Clone returns a deep copy safe to fold onto without touching s.
func (s State) Clone() State {
	out := s
	out.Owners = slices.Clone(s.Owners)
	out.Resale = slices.Clone(s.Resale)
	out.Swaps = maps.Clone(s.Swaps)
	out.Proceeds = maps.Clone(s.Proceeds)
	if s.holdings != nil {
		out.holdings = make(map[string]map[uint64]struct{}, len(s.holdings))
		for account, held := range s.holdings {
			out.holdings[account] = maps.Clone(held)
		}
	}
	return out
}

// Reindex rebuilds the account -> tickets index from Owners. Call it after
// decoding a State from a snapshot.
func (s *State) Reindex() {
	s.holdings = make(map[string]map[uint64]struct{})
	for i, owner := range s.Owners {
		if owner != "" {
			s.hold(owner, uint64(i)+1)
		}
	}
}

func (s *State) hold(account string, ticketID uint64) {
	if s.holdings == nil {
		s.holdings = make(map[string]map[uint64]struct{})
	}
	held, ok := s.holdings[account]
	if !ok {
		held = make(map[uint64]struct{})
		s.holdings[account] = held
	}
	held[ticketID] = struct{}{}
}

func (s *State) release(account string, ticketID uint64) {
	held, ok := s.holdings[account]
	if !ok {
		return
	}
	delete(held, ticketID)
	if len(held) == 0 {
		delete(s.holdings, account)
	}
}

// setOwner moves ticketID to account and keeps the reverse index in step.
func (s *State) setOwner(ticketID uint64, account string) {
	prev := s.Owners[ticketID-1]
	if prev != "" {
		s.release(prev, ticketID)
	}
	s.Owners[ticketID-1] = account
	if account != "" {
		s.hold(account, ticketID)
	}
}

// removeResale drops the listing at index by moving the last listing into
// its slot.
func (s *State) removeResale(index int) {
	last := len(s.Resale) - 1
	s.Resale[index] = s.Resale[last]
	s.Resale = s.Resale[:last]
}

// purgeStaleListings removes listings of ticketID whose seller no longer
// owns it.
func (s *State) purgeStaleListings(ticketID uint64) {
	owner := s.Owners[ticketID-1]
	for i := 0; i < len(s.Resale); {
		offer := s.Resale[i]
		if offer.TicketID == ticketID && offer.Seller != owner {
			s.removeResale(i)
			continue
		}
		i++
	}
}
