package checkpoint

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Memory stores the latest snapshot in memory.
type Memory struct {
	mu     sync.Mutex
	latest *Snapshot
}

// NewMemory creates a new in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

// GetLatestSnapshot returns the most recent snapshot or ErrNotFound.
func (m *Memory) GetLatestSnapshot(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if m == nil {
		return Snapshot{}, errors.New("snapshot store is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return Snapshot{}, ErrNotFound
	}
	out := *m.latest
	out.Data = slices.Clone(out.Data)
	return out, nil
}

// PutSnapshot replaces the stored snapshot when snap is not older.
func (m *Memory) PutSnapshot(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return errors.New("snapshot store is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest != nil && m.latest.Seq > snap.Seq {
		return nil
	}
	snap.Data = slices.Clone(snap.Data)
	m.latest = &snap
	return nil
}
