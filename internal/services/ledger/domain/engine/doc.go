// Package engine is the single mutation boundary of the ledger.
//
// A Handler owns the committed ticket state. Commands are validated,
// decided against that state, folded onto a private clone, appended to the
// journal and only then committed by swapping the clone in. Concurrent
// commands are serialized; queries read the last committed state.
package engine
