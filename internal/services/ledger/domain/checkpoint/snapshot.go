package checkpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
)

var (
	// ErrNotFound indicates no snapshot has been stored yet.
	ErrNotFound = errors.New("snapshot not found")
	// ErrSnapshotInvalid indicates snapshot bytes that cannot be decoded.
	ErrSnapshotInvalid = errors.New("snapshot is invalid")
)

// formatVersion is bumped whenever the encoded state layout changes.
const formatVersion = 1

// Snapshot is a stored, encoded ledger state.
type Snapshot struct {
	Seq       uint64
	ChainHash string
	Data      []byte
	CreatedAt time.Time
}

type envelope struct {
	Version int          `cbor:"1,keyasint"`
	State   ticket.State `cbor:"2,keyasint"`
}

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("checkpoint: zstd encoder initialization failed: " + err.Error())
	}
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("checkpoint: zstd decoder initialization failed: " + err.Error())
	}
}

// Encode serializes state as zstd-compressed deterministic CBOR.
func Encode(state ticket.State) ([]byte, error) {
	raw, err := codec.Marshal(envelope{Version: formatVersion, State: state})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot state: %w", err)
	}
	return encoder.EncodeAll(raw, nil), nil
}

// Decode reverses Encode and rebuilds the state's derived indexes.
func Decode(data []byte) (ticket.State, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return ticket.State{}, fmt.Errorf("%w: decompress: %v", ErrSnapshotInvalid, err)
	}
	var env envelope
	if err := codec.Unmarshal(raw, &env); err != nil {
		return ticket.State{}, fmt.Errorf("%w: decode: %v", ErrSnapshotInvalid, err)
	}
	if env.Version != formatVersion {
		return ticket.State{}, fmt.Errorf("%w: unsupported version %d", ErrSnapshotInvalid, env.Version)
	}
	state := env.State
	state.Reindex()
	return state, nil
}

// New encodes state into a snapshot taken at seq.
func New(state ticket.State, seq uint64, chainHash string, now time.Time) (Snapshot, error) {
	data, err := Encode(state)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Seq: seq, ChainHash: chainHash, Data: data, CreatedAt: now.UTC()}, nil
}
