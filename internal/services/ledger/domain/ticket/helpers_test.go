package ticket

import (
	"time"

	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/command"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/event"
)

const testPrice = 10

// tb is the subset of testing.TB that *rapid.T also satisfies.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

var fixedNow = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

func mustCommand(t tb, typ command.Type, actor string, payload any) command.Command {
	t.Helper()
	cmd, err := command.New(typ, actor, "", payload)
	if err != nil {
		t.Fatalf("build %s: %v", typ, err)
	}
	return cmd
}

// step decides cmd and, when accepted, folds its events onto a clone.
func step(t tb, state State, cmd command.Command) (State, command.Decision) {
	t.Helper()
	decision := Decide(state, cmd, fixedNow)
	if err := decision.Validate(); err != nil {
		t.Fatalf("%s: invalid decision: %v", cmd.Type, err)
	}
	if decision.Rejected() {
		return state, decision
	}
	next := state.Clone()
	for _, evt := range decision.Events {
		var err error
		next, err = Fold(next, evt)
		if err != nil {
			t.Fatalf("fold %s: %v", evt.Type, err)
		}
	}
	return next, decision
}

func mustAccept(t tb, state State, cmd command.Command) (State, event.Event) {
	t.Helper()
	next, decision := step(t, state, cmd)
	if decision.Rejected() {
		t.Fatalf("%s rejected: %+v", cmd.Type, decision.Rejections)
	}
	return next, decision.Events[0]
}

func mustReject(t tb, state State, cmd command.Command, code string) {
	t.Helper()
	_, decision := step(t, state, cmd)
	if !decision.Rejected() {
		t.Fatalf("%s accepted, want rejection %s", cmd.Type, code)
	}
	if got := decision.Rejections[0].Code; got != code {
		t.Fatalf("%s rejection = %s (%s), want %s", cmd.Type, got, decision.Rejections[0].Message, code)
	}
}

func newLedger(t tb, total uint64) State {
	t.Helper()
	state, _ := mustAccept(t, State{}, mustCommand(t, CommandTypeCreate, "admin", CreatePayload{
		TotalTickets:  total,
		UnitPrice:     testPrice,
		Administrator: "admin",
	}))
	return state
}

func buy(t tb, state State, actor string, ticketID uint64) State {
	t.Helper()
	next, _ := mustAccept(t, state, mustCommand(t, CommandTypeBuy, actor, BuyPayload{TicketID: ticketID, Payment: testPrice}))
	return next
}
