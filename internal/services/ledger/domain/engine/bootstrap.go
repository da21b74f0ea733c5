package engine

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
)

// EnsureCreated creates the ledger with params when the journal is empty.
// When the ledger already exists its parameters must equal params; the
// construction parameters are immutable once recorded.
func (h *Handler) EnsureCreated(ctx context.Context, params ticket.CreatePayload, requestID string) (bool, error) {
	params.Administrator = strings.TrimSpace(params.Administrator)

	var existing ticket.State
	h.View(func(state ticket.State, _ uint64) {
		existing = ticket.State{
			Created:       state.Created,
			TotalTickets:  state.TotalTickets,
			UnitPrice:     state.UnitPrice,
			Administrator: state.Administrator,
		}
	})
	if existing.Created {
		if existing.TotalTickets != params.TotalTickets ||
			existing.UnitPrice != params.UnitPrice ||
			existing.Administrator != params.Administrator {
			return false, apperrors.New(apperrors.CodeLedgerParametersInvalid, fmt.Sprintf(
				"ledger was created with %d tickets at %d by %s, configured %d tickets at %d by %s",
				existing.TotalTickets, existing.UnitPrice, existing.Administrator,
				params.TotalTickets, params.UnitPrice, params.Administrator,
			))
		}
		return false, nil
	}

	cmd, err := command.New(ticket.CommandTypeCreate, params.Administrator, requestID, params)
	if err != nil {
		return false, err
	}
	result, err := h.Execute(ctx, cmd)
	if err != nil {
		return false, err
	}
	if err := RejectionError(result.Decision); err != nil {
		return false, err
	}
	return true, nil
}
