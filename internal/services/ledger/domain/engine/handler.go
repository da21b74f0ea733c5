package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/checkpoint"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultSnapshotInterval is the number of events between snapshots.
	DefaultSnapshotInterval = 256
	replayPageSize          = 200
)

// Journal persists and lists ledger events.
type Journal interface {
	AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
}

// SnapshotStore loads and saves encoded state snapshots.
type SnapshotStore interface {
	GetLatestSnapshot(ctx context.Context) (checkpoint.Snapshot, error)
	PutSnapshot(ctx context.Context, snap checkpoint.Snapshot) error
}

// Publisher receives committed events in sequence order.
type Publisher interface {
	Publish(events []event.Event)
}

// Config wires a Handler.
type Config struct {
	Commands  *command.Registry
	Events    *event.Registry
	Journal   Journal
	Snapshots SnapshotStore
	Publisher Publisher
	Tracer    trace.Tracer
	Now       func() time.Time
	// SnapshotInterval is the number of committed events between snapshots.
	// Zero selects DefaultSnapshotInterval.
	SnapshotInterval uint64
}

// Result captures execution outcomes.
type Result struct {
	Decision command.Decision
	// Seq is the sequence of the last event committed; zero when rejected.
	Seq uint64
}

// Handler serializes commands against the committed ledger state.
type Handler struct {
	commands         *command.Registry
	events           *event.Registry
	journal          Journal
	snapshots        SnapshotStore
	publisher        Publisher
	tracer           trace.Tracer
	now              func() time.Time
	snapshotInterval uint64

	// mu serializes Execute and guards the committed fields below.
	mu              sync.RWMutex
	state           ticket.State
	lastSeq         uint64
	chainHash       string
	lastSnapshotSeq uint64
}

// New builds a Handler and restores state from the latest snapshot and the
// journal records after it.
func New(ctx context.Context, cfg Config) (*Handler, error) {
	if cfg.Commands == nil {
		return nil, ErrCommandRegistryRequired
	}
	if cfg.Events == nil {
		return nil, ErrEventRegistryRequired
	}
	if cfg.Journal == nil {
		return nil, ErrJournalRequired
	}
	h := &Handler{
		commands:         cfg.Commands,
		events:           cfg.Events,
		journal:          cfg.Journal,
		snapshots:        cfg.Snapshots,
		publisher:        cfg.Publisher,
		tracer:           cfg.Tracer,
		now:              cfg.Now,
		snapshotInterval: cfg.SnapshotInterval,
	}
	if h.tracer == nil {
		h.tracer = noop.NewTracerProvider().Tracer("ledger.engine")
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.snapshotInterval == 0 {
		h.snapshotInterval = DefaultSnapshotInterval
	}
	if err := h.load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) load(ctx context.Context) error {
	ctx, span := h.tracer.Start(ctx, "ledger.engine.load")
	defer span.End()

	if h.snapshots != nil {
		snap, err := h.snapshots.GetLatestSnapshot(ctx)
		switch {
		case errors.Is(err, checkpoint.ErrNotFound):
		case err != nil:
			span.RecordError(err)
			return fmt.Errorf("load snapshot: %w", err)
		default:
			state, err := checkpoint.Decode(snap.Data)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("decode snapshot at seq %d: %w", snap.Seq, err)
			}
			h.state = state
			h.lastSeq = snap.Seq
			h.chainHash = snap.ChainHash
			h.lastSnapshotSeq = snap.Seq
		}
	}

	replayed := 0
	for {
		events, err := h.journal.ListEvents(ctx, h.lastSeq, replayPageSize)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("list events after %d: %w", h.lastSeq, err)
		}
		if len(events) == 0 {
			break
		}
		for _, evt := range events {
			if evt.Seq != h.lastSeq+1 {
				return fmt.Errorf("%w: expected %d got %d", ErrSequenceGap, h.lastSeq+1, evt.Seq)
			}
			if err := event.VerifyLink(evt, h.chainHash); err != nil {
				span.RecordError(err)
				return err
			}
			next, err := ticket.Fold(h.state, evt)
			if err != nil {
				return fmt.Errorf("replay seq %d: %w", evt.Seq, err)
			}
			h.state = next
			h.lastSeq = evt.Seq
			h.chainHash = evt.ChainHash
			replayed++
		}
	}
	span.SetAttributes(
		attribute.Int64("ledger.seq", int64(h.lastSeq)),
		attribute.Int("ledger.replayed", replayed),
	)
	return nil
}

// Execute validates and decides cmd and, when accepted, persists and commits
// its events. A rejected command returns a Result carrying the rejection
// and a nil error; state is left unchanged.
func (h *Handler) Execute(ctx context.Context, cmd command.Command) (Result, error) {
	ctx, span := h.tracer.Start(ctx, "ledger.engine.execute", trace.WithAttributes(
		attribute.String("ledger.command", string(cmd.Type)),
	))
	defer span.End()

	result, err := h.execute(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	if result.Decision.Rejected() {
		span.SetAttributes(attribute.String("ledger.rejection", result.Decision.Rejections[0].Code))
	} else {
		span.SetAttributes(attribute.Int64("ledger.seq", int64(result.Seq)))
	}
	return result, nil
}

func (h *Handler) execute(ctx context.Context, cmd command.Command) (Result, error) {
	validated, err := h.commands.ValidateForDecision(cmd)
	if err != nil {
		return Result{}, err
	}
	cmd = validated

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	decision := ticket.Decide(h.state, cmd, h.now)
	if err := decision.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", cmd.Type, err)
	}
	if decision.Rejected() {
		return Result{Decision: decision}, nil
	}

	vetted := make([]event.Event, 0, len(decision.Events))
	for _, evt := range decision.Events {
		v, err := h.events.ValidateForAppend(evt)
		if err != nil {
			return Result{}, err
		}
		vetted = append(vetted, v)
	}

	// Fold onto a clone before persisting so a fold failure leaves both the
	// journal and the committed state untouched.
	next := h.state.Clone()
	for _, evt := range vetted {
		next, err = ticket.Fold(next, evt)
		if err != nil {
			return Result{}, fmt.Errorf("fold %s: %w", evt.Type, err)
		}
	}

	stored, err := h.journal.AppendEvents(ctx, vetted)
	if err != nil {
		return Result{}, fmt.Errorf("append events: %w", err)
	}
	if len(stored) != len(vetted) {
		return Result{}, wrapNonRetryable(fmt.Errorf("journal stored %d of %d events", len(stored), len(vetted)))
	}
	chainHash := h.chainHash
	for i, evt := range stored {
		if evt.Seq != h.lastSeq+uint64(i)+1 {
			return Result{}, wrapNonRetryable(fmt.Errorf("%w: expected %d got %d", ErrSequenceGap, h.lastSeq+uint64(i)+1, evt.Seq))
		}
		if evt.PrevHash != chainHash {
			return Result{}, wrapNonRetryable(fmt.Errorf("%w: seq %d", event.ErrChainBroken, evt.Seq))
		}
		chainHash = evt.ChainHash
	}

	h.state = next
	h.lastSeq = stored[len(stored)-1].Seq
	h.chainHash = chainHash
	decision.Events = stored

	if h.publisher != nil {
		h.publisher.Publish(stored)
	}
	h.maybeSnapshot(ctx)

	return Result{Decision: decision, Seq: h.lastSeq}, nil
}

// maybeSnapshot saves the committed state once enough events accumulated.
// Snapshots only shorten replay, so failures are logged and skipped.
func (h *Handler) maybeSnapshot(ctx context.Context) {
	if h.snapshots == nil || h.lastSeq-h.lastSnapshotSeq < h.snapshotInterval {
		return
	}
	snap, err := checkpoint.New(h.state, h.lastSeq, h.chainHash, h.now())
	if err != nil {
		log.Printf("encode snapshot at seq %d: %v", h.lastSeq, err)
		return
	}
	if err := h.snapshots.PutSnapshot(ctx, snap); err != nil {
		log.Printf("save snapshot at seq %d: %v", h.lastSeq, err)
		return
	}
	h.lastSnapshotSeq = h.lastSeq
}

// Snapshot saves the committed state unconditionally.
func (h *Handler) Snapshot(ctx context.Context) error {
	if h.snapshots == nil {
		return errors.New("snapshot store is required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastSeq == 0 || h.lastSeq == h.lastSnapshotSeq {
		return nil
	}
	snap, err := checkpoint.New(h.state, h.lastSeq, h.chainHash, h.now())
	if err != nil {
		return err
	}
	if err := h.snapshots.PutSnapshot(ctx, snap); err != nil {
		return err
	}
	h.lastSnapshotSeq = h.lastSeq
	return nil
}

// View runs fn against the committed state. fn must not mutate the state's
// slices or maps. Commits replace the state rather than modify it, so a
// state read here stays consistent after View returns.
func (h *Handler) View(fn func(state ticket.State, seq uint64)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(h.state, h.lastSeq)
}

// LastSeq reports the sequence of the last committed event.
func (h *Handler) LastSeq() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastSeq
}
