package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	"github.com/louisbranch/ticketbooth/internal/platform/otel"
	"github.com/louisbranch/ticketbooth/internal/platform/timeouts"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/auth"
	ledgergrpc "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/ledger"
	grpcmeta "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/engine"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/notify"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config configures a ledger server.
type Config struct {
	// Addr is the listen address, for example ":8095".
	Addr   string
	DBPath string
	// Ledger holds the construction parameters recorded at genesis.
	Ledger           ticket.CreatePayload
	SnapshotInterval uint64
	// CallerKey signs caller tokens. Empty trusts the account header.
	CallerKey       string
	ShutdownTimeout time.Duration
}

// Server hosts the ticket ledger.
type Server struct {
	listener        net.Listener
	grpcServer      *grpc.Server
	health          *health.Server
	engine          *engine.Handler
	store           *sqlite.Store
	shutdownTimeout time.Duration
}

// New opens storage, restores the ledger and prepares the gRPC server.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	srv, err := newWithStore(ctx, cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return srv, nil
}

func newWithStore(ctx context.Context, cfg Config, store *sqlite.Store) (*Server, error) {
	commands, events, err := ticket.NewRegistries()
	if err != nil {
		return nil, fmt.Errorf("build registries: %w", err)
	}
	broker := notify.NewBroker(events, notify.DefaultBuffer)
	handler, err := engine.New(ctx, engine.Config{
		Commands:         commands,
		Events:           events,
		Journal:          store,
		Snapshots:        store,
		Publisher:        broker,
		Tracer:           otel.Tracer("ticketbooth/ledger"),
		SnapshotInterval: cfg.SnapshotInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	created, err := handler.EnsureCreated(ctx, cfg.Ledger, "genesis")
	if err != nil {
		return nil, fmt.Errorf("ensure ledger: %w", err)
	}
	if created {
		log.Printf("created ledger: %d tickets at %d, administrator %s", cfg.Ledger.TotalTickets, cfg.Ledger.UnitPrice, cfg.Ledger.Administrator)
	} else {
		log.Printf("restored ledger at seq %d", handler.LastSeq())
	}

	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = ":0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	verifier := auth.NewVerifier(cfg.CallerKey)
	if verifier == nil {
		log.Printf("caller key not configured; trusting %s header", grpcmeta.AccountHeader)
	}
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			auth.UnaryServerInterceptor(verifier),
		),
		grpc.ChainStreamInterceptor(
			grpcmeta.StreamServerInterceptor(nil),
			auth.StreamServerInterceptor(verifier),
		),
	)
	service := ledgergrpc.NewService(ledgergrpc.Deps{
		Engine:   handler,
		Events:   store,
		Registry: events,
		Broker:   broker,
	})
	healthServer := health.NewServer()
	ledgerv1.RegisterTicketLedgerServiceServer(grpcServer, service)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ledgerv1.HealthService, grpc_health_v1.HealthCheckResponse_SERVING)

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = timeouts.Shutdown
	}
	return &Server{
		listener:        listener,
		grpcServer:      grpcServer,
		health:          healthServer,
		engine:          handler,
		store:           store,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Addr returns the listener address for the ledger server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a ledger server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the ledger server and blocks until it stops or the context
// ends. In-flight calls get the shutdown timeout to finish before the server
// is stopped; a final snapshot is written on the way out.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.close()

	log.Printf("ledger server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.gracefulStop()
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

func (s *Server) gracefulStop() {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	timer := time.NewTimer(s.shutdownTimeout)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		log.Printf("graceful stop exceeded %v; forcing stop", s.shutdownTimeout)
		s.grpcServer.Stop()
		<-stopped
	}
}

func (s *Server) close() {
	snapshotCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.engine.Snapshot(snapshotCtx); err != nil {
		log.Printf("final snapshot: %v", err)
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close ledger store: %v", err)
	}
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "ledger.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	_, events, err := ticket.NewRegistries()
	if err != nil {
		return nil, fmt.Errorf("build registries: %w", err)
	}
	store, err := sqlite.Open(ctx, path, events)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}
