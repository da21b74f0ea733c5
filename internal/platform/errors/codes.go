// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Ticket flow rejections
	CodeOutOfRange      Code = "OUT_OF_RANGE"
	CodeAlreadyOwned    Code = "ALREADY_OWNED"
	CodePaymentMismatch Code = "PAYMENT_MISMATCH"
	CodeNotOwner        Code = "NOT_OWNER"
	CodeNoPendingOffer  Code = "NO_PENDING_OFFER"
	CodeStaleOffer      Code = "STALE_OFFER"

	// Request errors
	CodeCallerRequired Code = "CALLER_REQUIRED"
	CodeCallerInvalid  Code = "CALLER_INVALID"

	// Ledger lifecycle errors
	CodeLedgerNotCreated        Code = "LEDGER_NOT_CREATED"
	CodeLedgerAlreadyCreated    Code = "LEDGER_ALREADY_CREATED"
	CodeLedgerParametersInvalid Code = "LEDGER_PARAMETERS_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePaymentMismatch,
		CodeCallerRequired,
		CodeLedgerParametersInvalid:
		return codes.InvalidArgument

	case CodeOutOfRange:
		return codes.OutOfRange

	// FailedPrecondition - state doesn't allow operation
	case CodeStaleOffer,
		CodeLedgerNotCreated,
		CodeLedgerAlreadyCreated:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeNoPendingOffer:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeAlreadyOwned:
		return codes.AlreadyExists

	case CodeNotOwner:
		return codes.PermissionDenied

	case CodeCallerInvalid:
		return codes.Unauthenticated

	default:
		return codes.Internal
	}
}
