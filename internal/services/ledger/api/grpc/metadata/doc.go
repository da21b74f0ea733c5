// Package metadata defines the headers that carry request correlation,
// caller identity and locale across the ledger's gRPC boundary.
package metadata
