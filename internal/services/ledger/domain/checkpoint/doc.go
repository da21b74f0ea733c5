// Package checkpoint encodes ledger state snapshots and stores them.
//
// A snapshot is the folded ticket state at a journal sequence together with
// the chain hash of that event, so replay can resume and keep verifying the
// chain from there.
package checkpoint
