package maintenance

import (
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
)

// ledgerStore is the journal and snapshot surface the checks read.
type ledgerStore interface {
	storage.EventStore
	storage.SnapshotStore
}

// closableLedgerStore extends ledgerStore with a Close method for resource cleanup.
type closableLedgerStore interface {
	ledgerStore
	Close() error
}
