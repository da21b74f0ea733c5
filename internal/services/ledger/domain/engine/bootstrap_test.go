package engine

import (
	"context"
	"testing"

	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
)

func TestEnsureCreated(t *testing.T) {
	f := newFixture(t)
	h := f.handler(t)
	params := ticket.CreatePayload{TotalTickets: 5, UnitPrice: testPrice, Administrator: " admin "}

	created, err := h.EnsureCreated(context.Background(), params, "boot-1")
	if err != nil {
		t.Fatalf("ensure created: %v", err)
	}
	if !created {
		t.Fatal("expected ledger to be created")
	}

	created, err = h.EnsureCreated(context.Background(), params, "boot-2")
	if err != nil {
		t.Fatalf("ensure created again: %v", err)
	}
	if created {
		t.Fatal("expected existing ledger to be kept")
	}
	if got := f.journal.LatestSeq(); got != 1 {
		t.Fatalf("journal seq = %d, want 1", got)
	}

	params.UnitPrice++
	if _, err := h.EnsureCreated(context.Background(), params, "boot-3"); !apperrors.IsCode(err, apperrors.CodeLedgerParametersInvalid) {
		t.Fatalf("mismatch error = %v, want %s", err, apperrors.CodeLedgerParametersInvalid)
	}
}

func TestEnsureCreatedRejectsInvalidParams(t *testing.T) {
	f := newFixture(t)
	h := f.handler(t)
	_, err := h.EnsureCreated(context.Background(), ticket.CreatePayload{TotalTickets: 0, UnitPrice: 1, Administrator: "admin"}, "")
	if !apperrors.IsCode(err, apperrors.CodeLedgerParametersInvalid) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLedgerParametersInvalid)
	}
}
