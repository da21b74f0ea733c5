// Package maintenance runs offline integrity checks against a ledger
// database: full journal chain verification, snapshot-versus-replay
// comparison, and single event inspection.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/louisbranch/ticketbooth/internal/platform/config"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/checkpoint"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage/sqlite"
)

const replayPageSize = 200

// ErrSnapshotMismatch reports a snapshot that differs from the state
// folded from the journal at the same seq.
var ErrSnapshotMismatch = errors.New("snapshot does not match journal replay")

// Config holds maintenance command configuration.
type Config struct {
	DBPath      string        `env:"TICKETBOOTH_LEDGER_DB_PATH" envDefault:"data/ledger.db"`
	Timeout     time.Duration `env:"TICKETBOOTH_MAINTENANCE_TIMEOUT" envDefault:"10m"`
	Verify      bool
	ReplayCheck bool
	EventSeq    uint64
	JSONOutput  bool
}

// ParseConfig parses env and flags into a Config. A nil environment reads
// the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environment map[string]string) (Config, error) {
	var cfg Config
	var err error
	if environment == nil {
		err = config.ParseEnv(&cfg)
	} else {
		err = config.ParseEnvWithLookup(&cfg, environment)
	}
	if err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the ledger sqlite database")
	fs.BoolVar(&cfg.Verify, "verify", false, "walk the whole journal and check every hash link")
	fs.BoolVar(&cfg.ReplayCheck, "replay-check", false, "fold the journal from genesis and compare against the latest snapshot")
	fs.Uint64Var(&cfg.EventSeq, "event-seq", 0, "print the journal record at this sequence")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON reports")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the selected maintenance check.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if err := validateModes(cfg); err != nil {
		return err
	}
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && errOut != nil {
			fmt.Fprintf(errOut, "Error: close ledger store: %v\n", closeErr)
		}
	}()
	return runWithStore(ctx, cfg, store, out)
}

func validateModes(cfg Config) error {
	modes := 0
	for _, on := range []bool{cfg.Verify, cfg.ReplayCheck, cfg.EventSeq > 0} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return errors.New("exactly one of -verify, -replay-check or -event-seq is required")
	}
	return nil
}

func openStore(ctx context.Context, path string) (closableLedgerStore, error) {
	_, events, err := ticket.NewRegistries()
	if err != nil {
		return nil, fmt.Errorf("build registries: %w", err)
	}
	store, err := sqlite.Open(ctx, path, events)
	if err != nil {
		return nil, fmt.Errorf("open ledger store: %w", err)
	}
	return store, nil
}

// report is the outcome of one check.
type report struct {
	Mode        string       `json:"mode"`
	LastSeq     uint64       `json:"last_seq"`
	SnapshotSeq uint64       `json:"snapshot_seq,omitempty"`
	Event       *eventRecord `json:"event,omitempty"`
	Diff        string       `json:"diff,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type eventRecord struct {
	Seq       uint64    `json:"seq"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	RequestID string    `json:"request_id"`
	TicketID  uint64    `json:"ticket_id,omitempty"`
	Hash      string    `json:"hash"`
	PrevHash  string    `json:"prev_hash"`
	ChainHash string    `json:"chain_hash"`
}

func runWithStore(ctx context.Context, cfg Config, store ledgerStore, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	var (
		rep report
		err error
	)
	switch {
	case cfg.Verify:
		rep, err = verifyChain(ctx, store)
	case cfg.ReplayCheck:
		rep, err = checkReplay(ctx, store)
	default:
		rep, err = inspectEvent(ctx, store, cfg.EventSeq)
	}
	if err != nil {
		rep.Error = err.Error()
	}
	if cfg.JSONOutput {
		encoded, encErr := json.Marshal(rep)
		if encErr != nil {
			return fmt.Errorf("encode report: %w", encErr)
		}
		fmt.Fprintln(out, string(encoded))
	} else {
		printReport(out, rep)
	}
	return err
}

func verifyChain(ctx context.Context, store ledgerStore) (report, error) {
	rep := report{Mode: "verify"}
	if err := store.VerifyEventChain(ctx); err != nil {
		return rep, err
	}
	head, err := store.ListEventsPage(ctx, storage.ListEventsPageRequest{PageSize: 1, Descending: true})
	if err != nil {
		return rep, fmt.Errorf("read journal head: %w", err)
	}
	if len(head.Events) > 0 {
		rep.LastSeq = head.Events[0].Seq
	}
	return rep, nil
}

// checkReplay folds the whole journal from genesis, checking links as it
// goes, and compares the state at the latest snapshot's seq with the
// snapshot itself.
func checkReplay(ctx context.Context, store ledgerStore) (report, error) {
	rep := report{Mode: "replay-check"}
	snap, err := store.GetLatestSnapshot(ctx)
	hasSnapshot := true
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		hasSnapshot = false
	case err != nil:
		return rep, fmt.Errorf("load snapshot: %w", err)
	default:
		rep.SnapshotSeq = snap.Seq
	}

	var (
		state      ticket.State
		chainHash  string
		atSnapshot ticket.State
		snapChain  string
		reached    bool
	)
	for {
		events, err := store.ListEvents(ctx, rep.LastSeq, replayPageSize)
		if err != nil {
			return rep, fmt.Errorf("list events after %d: %w", rep.LastSeq, err)
		}
		if len(events) == 0 {
			break
		}
		for _, evt := range events {
			if evt.Seq != rep.LastSeq+1 {
				return rep, fmt.Errorf("%w: expected seq %d got %d", event.ErrChainBroken, rep.LastSeq+1, evt.Seq)
			}
			if err := event.VerifyLink(evt, chainHash); err != nil {
				return rep, err
			}
			next, err := ticket.Fold(state, evt)
			if err != nil {
				return rep, fmt.Errorf("fold seq %d: %w", evt.Seq, err)
			}
			state = next
			chainHash = evt.ChainHash
			rep.LastSeq = evt.Seq
			if hasSnapshot && evt.Seq == snap.Seq {
				atSnapshot = state.Clone()
				snapChain = chainHash
				reached = true
			}
		}
	}
	if !hasSnapshot {
		return rep, nil
	}
	if !reached {
		return rep, fmt.Errorf("%w: snapshot seq %d is beyond journal head %d", ErrSnapshotMismatch, snap.Seq, rep.LastSeq)
	}
	if snap.ChainHash != snapChain {
		return rep, fmt.Errorf("%w: chain hash at seq %d differs", ErrSnapshotMismatch, snap.Seq)
	}
	stored, err := checkpoint.Decode(snap.Data)
	if err != nil {
		return rep, fmt.Errorf("decode snapshot at seq %d: %w", snap.Seq, err)
	}
	if diff := cmp.Diff(atSnapshot, stored, cmpopts.IgnoreUnexported(ticket.State{}), cmpopts.EquateEmpty()); diff != "" {
		rep.Diff = diff
		return rep, fmt.Errorf("%w at seq %d", ErrSnapshotMismatch, snap.Seq)
	}
	return rep, nil
}

func inspectEvent(ctx context.Context, store ledgerStore, seq uint64) (report, error) {
	rep := report{Mode: "event", LastSeq: seq}
	evt, err := store.GetEventBySeq(ctx, seq)
	if errors.Is(err, storage.ErrNotFound) {
		return rep, fmt.Errorf("event %d not found", seq)
	}
	if err != nil {
		return rep, err
	}
	rep.Event = &eventRecord{
		Seq:       evt.Seq,
		Type:      string(evt.Type),
		Timestamp: evt.Timestamp,
		Actor:     evt.Actor,
		RequestID: evt.RequestID,
		TicketID:  evt.TicketID,
		Hash:      evt.Hash,
		PrevHash:  evt.PrevHash,
		ChainHash: evt.ChainHash,
	}
	return rep, nil
}

func printReport(out io.Writer, rep report) {
	switch {
	case rep.Error != "":
		fmt.Fprintf(out, "%s failed: %s\n", rep.Mode, rep.Error)
		if rep.Diff != "" {
			fmt.Fprintf(out, "snapshot diff (-replay +snapshot):\n%s", rep.Diff)
		}
	case rep.Event != nil:
		evt := rep.Event
		fmt.Fprintf(out, "seq %d %s at %s\n", evt.Seq, evt.Type, evt.Timestamp.Format(time.RFC3339Nano))
		fmt.Fprintf(out, "  actor: %s\n  request: %s\n  ticket: %d\n", evt.Actor, evt.RequestID, evt.TicketID)
		fmt.Fprintf(out, "  hash: %s\n  prev: %s\n  chain: %s\n", evt.Hash, evt.PrevHash, evt.ChainHash)
	case rep.Mode == "replay-check" && rep.SnapshotSeq == 0:
		fmt.Fprintf(out, "Replayed journal through seq %d; no snapshot stored\n", rep.LastSeq)
	case rep.Mode == "replay-check":
		fmt.Fprintf(out, "Snapshot at seq %d matches replay; journal head %d\n", rep.SnapshotSeq, rep.LastSeq)
	default:
		fmt.Fprintf(out, "Journal chain verified through seq %d\n", rep.LastSeq)
	}
}
