// Package event defines the event envelope and event-type registry used by
// the ledger write path.
//
// Events are immutable facts emitted by accepted decisions. The registry
// checks type, actor and payload before persistence assigns sequence and
// integrity fields, and the same envelope feeds replay, the notification
// stream and the ListEvents history.
package event
