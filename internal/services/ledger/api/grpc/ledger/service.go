package ledger

import (
	"context"
	"errors"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	grpcmeta "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/engine"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/notify"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EventReader lists journaled events.
type EventReader interface {
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
	ListEventsPage(ctx context.Context, req storage.ListEventsPageRequest) (storage.ListEventsPageResult, error)
}

// Deps wires a Service.
type Deps struct {
	Engine   *engine.Handler
	Events   EventReader
	Registry *event.Registry
	Broker   *notify.Broker
}

// Service exposes ledger.v1 gRPC operations.
type Service struct {
	ledgerv1.UnimplementedTicketLedgerServiceServer
	engine   *engine.Handler
	events   EventReader
	registry *event.Registry
	broker   *notify.Broker
}

// NewService creates a ledger service over the engine and its journal.
func NewService(deps Deps) *Service {
	return &Service{
		engine:   deps.Engine,
		events:   deps.Events,
		registry: deps.Registry,
		broker:   deps.Broker,
	}
}

// execute runs one ledger command for the caller of ctx and returns the
// single committed event.
func (s *Service) execute(ctx context.Context, cmdType command.Type, payload any) (event.Event, uint64, error) {
	if s == nil || s.engine == nil {
		return event.Event{}, 0, status.Error(codes.Internal, "ledger engine is not configured")
	}
	caller := grpcmeta.CallerFromContext(ctx)
	if caller == "" {
		return event.Event{}, 0, apperrors.New(apperrors.CodeCallerRequired, "caller identity is required")
	}
	cmd, err := command.New(cmdType, caller, grpcmeta.RequestIDFromContext(ctx), payload)
	if err != nil {
		return event.Event{}, 0, status.Errorf(codes.Internal, "build command: %v", err)
	}
	result, err := s.engine.Execute(ctx, cmd)
	if err != nil {
		return event.Event{}, 0, err
	}
	if err := engine.RejectionError(result.Decision); err != nil {
		return event.Event{}, 0, err
	}
	return result.Decision.Events[0], result.Seq, nil
}

// handleError converts an internal error into a gRPC status localized for
// the caller.
func handleError(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case engine.IsNonRetryable(err):
		return status.Errorf(codes.Internal, "ledger state uncertain, do not retry: %v", err)
	case errors.Is(err, command.ErrPayloadInvalid), errors.Is(err, command.ErrTypeUnknown):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return apperrors.HandleError(err, grpcmeta.LocaleFromContext(ctx))
}
