// Package grpc groups the gRPC transport of the ledger service: request
// metadata, caller authentication and the TicketLedgerService handlers.
package grpc
