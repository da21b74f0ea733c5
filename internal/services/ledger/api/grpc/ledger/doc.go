// Package ledger implements the TicketLedgerService gRPC API on top of the
// ledger engine, its journal and the notification broker.
package ledger
