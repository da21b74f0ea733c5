package engine

import (
	"errors"

	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
)

var (
	// ErrCommandRegistryRequired indicates a missing command registry.
	ErrCommandRegistryRequired = errors.New("command registry is required")
	// ErrEventRegistryRequired indicates a missing event registry.
	ErrEventRegistryRequired = errors.New("event registry is required")
	// ErrJournalRequired indicates a missing journal.
	ErrJournalRequired = errors.New("journal is required")
	// ErrSequenceGap indicates journal records that skip a sequence number.
	ErrSequenceGap = errors.New("event sequence gap")
)

// nonRetryableError marks failures that happen after events were persisted.
// Retrying the command would append the same events twice.
type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string { return e.err.Error() }
func (e *nonRetryableError) Unwrap() error { return e.err }

// NonRetryable returns true from IsNonRetryable checks.
func (e *nonRetryableError) NonRetryable() bool { return true }

func wrapNonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

// IsNonRetryable reports whether err, or any error it wraps, must not be
// retried by the caller.
func IsNonRetryable(err error) bool {
	var target interface{ NonRetryable() bool }
	if errors.As(err, &target) {
		return target.NonRetryable()
	}
	return false
}

// RejectionError converts the first rejection of a decision into a domain
// error carrying its code and metadata. It returns nil for accepted
// decisions.
func RejectionError(decision command.Decision) error {
	if !decision.Rejected() {
		return nil
	}
	rej := decision.Rejections[0]
	return apperrors.WithMetadata(apperrors.Code(rej.Code), rej.Message, rej.Metadata)
}
