// Package ledgerv1 defines the wire messages and gRPC bindings of
// ticketbooth.ledger.v1.TicketLedgerService.
//
// Messages travel as deterministic CBOR under the "cbor" content subtype
// (application/grpc+cbor). Clients built with NewTicketLedgerServiceClient
// select the codec on every call.
package ledgerv1
