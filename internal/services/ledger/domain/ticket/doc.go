// Package ticket implements the ticket ledger aggregate: ownership of a fixed
// inventory of numbered tickets, the resale book, pending swap offers and
// the funds the ledger has taken in.
//
// Decide is pure: it reads a State and returns events or rejections. Fold
// applies accepted events. Together they keep these invariants after every
// applied action:
//
//   - every ticket has exactly one owner state (an account or unowned);
//   - Sold equals the number of owned tickets and never exceeds TotalTickets;
//   - accepted payments equal the quoted price exactly;
//   - every resale listing names a seller that currently owns the ticket;
//   - a swap exchanges two distinct tickets held by offeror and acceptor.
package ticket
