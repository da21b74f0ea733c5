package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/checkpoint"
)

// GetLatestSnapshot returns the snapshot with the highest seq or
// checkpoint.ErrNotFound.
func (s *Store) GetLatestSnapshot(ctx context.Context) (checkpoint.Snapshot, error) {
	if err := s.ready(ctx); err != nil {
		return checkpoint.Snapshot{}, err
	}
	var (
		seq       int64
		createdAt int64
		snap      checkpoint.Snapshot
	)
	row := s.sqlDB.QueryRowContext(ctx, "SELECT seq, chain_hash, data, created_at FROM snapshots ORDER BY seq DESC LIMIT 1")
	if err := row.Scan(&seq, &snap.ChainHash, &snap.Data, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return checkpoint.Snapshot{}, checkpoint.ErrNotFound
		}
		return checkpoint.Snapshot{}, fmt.Errorf("get latest snapshot: %w", err)
	}
	snap.Seq = uint64(seq)
	snap.CreatedAt = fromMillis(createdAt)
	return snap, nil
}

// PutSnapshot stores snap and prunes older snapshots, keeping the previous
// one as a fallback.
func (s *Store) PutSnapshot(ctx context.Context, snap checkpoint.Snapshot) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if snap.Seq == 0 {
		return fmt.Errorf("snapshot seq is required")
	}
	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (seq, chain_hash, data, created_at) VALUES (?, ?, ?, ?)",
		int64(snap.Seq), snap.ChainHash, snap.Data, toMillis(createdAt),
	); err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM snapshots WHERE seq NOT IN (SELECT seq FROM snapshots ORDER BY seq DESC LIMIT 2)",
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
