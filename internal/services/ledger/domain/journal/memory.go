package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

// ErrRegistryRequired indicates a missing event registry.
var ErrRegistryRequired = errors.New("event registry is required")

// Memory is an append-only journal held in memory.
type Memory struct {
	mu       sync.RWMutex
	registry *event.Registry
	events   []event.Event
}

// NewMemory creates an empty journal validating against registry.
func NewMemory(registry *event.Registry) *Memory {
	return &Memory{registry: registry}
}

// AppendEvents validates, sequences and seals events as one batch. Nothing is
// stored when any event fails validation.
func (m *Memory) AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	if m.registry == nil {
		return nil, ErrRegistryRequired
	}
	validated := make([]event.Event, len(events))
	for i, evt := range events {
		v, err := m.registry.ValidateForAppend(evt)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		v.Timestamp = v.Timestamp.UTC().Truncate(time.Millisecond)
		validated[i] = v
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prevChainHash := ""
	if n := len(m.events); n > 0 {
		prevChainHash = m.events[n-1].ChainHash
	}
	base := uint64(len(m.events)) + 1
	stored := make([]event.Event, len(validated))
	for i, evt := range validated {
		evt.Seq = base + uint64(i)
		sealed, err := event.Seal(evt, prevChainHash)
		if err != nil {
			return nil, fmt.Errorf("event %d seal: %w", i, err)
		}
		prevChainHash = sealed.ChainHash
		stored[i] = sealed
	}
	m.events = append(m.events, stored...)
	return slices.Clone(stored), nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
func (m *Memory) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if afterSeq >= uint64(len(m.events)) {
		return nil, nil
	}
	page := m.events[afterSeq:]
	if limit > 0 && len(page) > limit {
		page = page[:limit]
	}
	return slices.Clone(page), nil
}

// LatestSeq reports the sequence of the last appended event.
func (m *Memory) LatestSeq() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.events))
}
