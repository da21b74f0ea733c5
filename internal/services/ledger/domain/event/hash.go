package event

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/codec"
	"github.com/zeebo/blake3"
)

// ErrChainBroken indicates a journal record whose hashes do not link.
var ErrChainBroken = errors.New("event chain broken")

type hashEnvelope struct {
	Type      string    `cbor:"1,keyasint"`
	Timestamp time.Time `cbor:"2,keyasint"`
	Actor     string    `cbor:"3,keyasint"`
	RequestID string    `cbor:"4,keyasint"`
	TicketID  uint64    `cbor:"5,keyasint"`
	Payload   []byte    `cbor:"6,keyasint"`
}

type chainEnvelope struct {
	Seq      uint64 `cbor:"1,keyasint"`
	Hash     string `cbor:"2,keyasint"`
	PrevHash string `cbor:"3,keyasint"`
}

// EventHash computes the content hash of an event. Sequence and chain fields
// are excluded; the timestamp is hashed at millisecond precision in UTC.
func EventHash(evt Event) (string, error) {
	data, err := codec.Marshal(hashEnvelope{
		Type:      string(evt.Type),
		Timestamp: evt.Timestamp.UTC().Truncate(time.Millisecond),
		Actor:     evt.Actor,
		RequestID: evt.RequestID,
		TicketID:  evt.TicketID,
		Payload:   evt.Payload,
	})
	if err != nil {
		return "", fmt.Errorf("encode event hash envelope: %w", err)
	}
	return digest(data), nil
}

// ChainHash links an event to its predecessor's chain hash.
func ChainHash(evt Event, prevHash string) (string, error) {
	if evt.Hash == "" {
		return "", fmt.Errorf("event hash is required")
	}
	data, err := codec.Marshal(chainEnvelope{Seq: evt.Seq, Hash: evt.Hash, PrevHash: prevHash})
	if err != nil {
		return "", fmt.Errorf("encode chain envelope: %w", err)
	}
	return digest(data), nil
}

// Seal sets Hash, PrevHash and ChainHash on an event whose Seq is assigned.
func Seal(evt Event, prevHash string) (Event, error) {
	hash, err := EventHash(evt)
	if err != nil {
		return Event{}, err
	}
	evt.Hash = hash
	evt.PrevHash = prevHash
	chain, err := ChainHash(evt, prevHash)
	if err != nil {
		return Event{}, err
	}
	evt.ChainHash = chain
	return evt, nil
}

// VerifyLink checks that evt's hashes are intact and that it follows
// prevChainHash.
func VerifyLink(evt Event, prevChainHash string) error {
	if evt.PrevHash != prevChainHash {
		return fmt.Errorf("%w: seq %d prev hash mismatch", ErrChainBroken, evt.Seq)
	}
	sealed, err := Seal(evt, prevChainHash)
	if err != nil {
		return err
	}
	if sealed.Hash != evt.Hash {
		return fmt.Errorf("%w: seq %d content hash mismatch", ErrChainBroken, evt.Seq)
	}
	if sealed.ChainHash != evt.ChainHash {
		return fmt.Errorf("%w: seq %d chain hash mismatch", ErrChainBroken, evt.Seq)
	}
	return nil
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
