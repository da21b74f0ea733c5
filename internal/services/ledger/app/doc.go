// Package server hosts the ticket ledger gRPC server: it opens the journal,
// restores the engine, ensures the ledger exists and serves the API until
// its context ends.
package server
