// Package sqlite provides the SQLite-backed ledger journal and snapshot
// store.
//
// Events are appended in one transaction per batch. Each row carries its
// content hash, the chain hash of its predecessor and its own chain hash,
// computed by the event package, so the journal can be verified offline.
package sqlite
