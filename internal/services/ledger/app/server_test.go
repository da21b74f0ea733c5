package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	platformgrpc "github.com/louisbranch/ticketbooth/internal/platform/grpc"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/auth"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testCallerKey = "test-caller-key"

func testConfig(t *testing.T, dbPath string) Config {
	t.Helper()
	return Config{
		Addr:   "127.0.0.1:0",
		DBPath: dbPath,
		Ledger: ticket.CreatePayload{
			TotalTickets:  3,
			UnitPrice:     7,
			Administrator: "box-office",
		},
		SnapshotInterval: 2,
		CallerKey:        testCallerKey,
		ShutdownTimeout:  time.Second,
	}
}

// start serves cfg and returns a client plus a stop function that waits for
// Serve to return.
func start(t *testing.T, cfg Config, token string) (ledgerv1.TicketLedgerServiceClient, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	srv, err := New(ctx, cfg)
	if err != nil {
		cancel()
		t.Fatalf("new server: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	opts := platformgrpc.DefaultClientDialOptions()
	if token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerCredentials{Token: token, Insecure: true}))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, srv.Addr(), ledgerv1.HealthService, 2*time.Second, nil, opts...)
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}
	stop := func() {
		_ = conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Fatalf("serve: %v", err)
		}
	}
	return ledgerv1.NewTicketLedgerServiceClient(conn), stop
}

func issue(t *testing.T, account string) string {
	t.Helper()
	token, err := auth.NewVerifier(testCallerKey).Issue(account, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestServerRestoresLedgerAcrossRestarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ledger.db")
	cfg := testConfig(t, dbPath)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, stop := start(t, cfg, issue(t, "alice"))
	for id := uint64(1); id <= 3; id++ {
		if _, err := client.BuyTicket(ctx, &ledgerv1.BuyTicketRequest{TicketID: id, Payment: 7}); err != nil {
			t.Fatalf("buy ticket %d: %v", id, err)
		}
	}
	stop()

	client, stop = start(t, cfg, "")
	defer stop()
	sold, err := client.TicketsSold(ctx, &ledgerv1.TicketsSoldRequest{})
	if err != nil {
		t.Fatalf("tickets sold: %v", err)
	}
	if sold.Sold != 3 {
		t.Fatalf("sold = %d, want 3", sold.Sold)
	}
	holdings, err := client.GetTicketOf(ctx, &ledgerv1.GetTicketOfRequest{Account: "alice"})
	if err != nil {
		t.Fatalf("get ticket of: %v", err)
	}
	if len(holdings.TicketIDs) != 3 {
		t.Fatalf("holdings = %v, want 3 tickets", holdings.TicketIDs)
	}
}

func TestServerRejectsChangedParameters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	cfg := testConfig(t, dbPath)
	_, stop := start(t, cfg, "")
	stop()

	cfg.Ledger.UnitPrice = 8
	_, err := New(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected parameter mismatch error")
	}
	if !apperrors.IsCode(err, apperrors.CodeLedgerParametersInvalid) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLedgerParametersInvalid)
	}
}

func TestServerRejectsInvalidParameters(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "ledger.db"))
	cfg.Ledger.TotalTickets = 0
	if _, err := New(context.Background(), cfg); !apperrors.IsCode(err, apperrors.CodeLedgerParametersInvalid) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLedgerParametersInvalid)
	}
}

func TestServerRejectsForgedCaller(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "ledger.db"))
	forged, err := auth.NewVerifier("other-key").Issue("mallory", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	client, stop := start(t, cfg, forged)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = client.BuyTicket(ctx, &ledgerv1.BuyTicketRequest{TicketID: 1, Payment: 7})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("error = %v, want Unauthenticated", err)
	}
}
