// Package ledger parses ledger service flags and launches the service.
package ledger

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/ticketbooth/internal/platform/cmd"
	"github.com/louisbranch/ticketbooth/internal/platform/discovery"
	server "github.com/louisbranch/ticketbooth/internal/services/ledger/app"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/domain/ticket"
)

// Config holds ledger command configuration.
type Config struct {
	Port             int           `env:"TICKETBOOTH_LEDGER_PORT" envDefault:"8095"`
	Addr             string        `env:"TICKETBOOTH_LEDGER_ADDR"`
	DBPath           string        `env:"TICKETBOOTH_LEDGER_DB_PATH" envDefault:"data/ledger.db"`
	TotalTickets     uint64        `env:"TICKETBOOTH_LEDGER_TOTAL_TICKETS" envDefault:"100"`
	UnitPrice        uint64        `env:"TICKETBOOTH_LEDGER_UNIT_PRICE" envDefault:"10000000000000"`
	Administrator    string        `env:"TICKETBOOTH_LEDGER_ADMINISTRATOR"`
	SnapshotInterval uint64        `env:"TICKETBOOTH_LEDGER_SNAPSHOT_INTERVAL" envDefault:"256"`
	CallerKey        string        `env:"TICKETBOOTH_LEDGER_CALLER_KEY"`
	ShutdownTimeout  time.Duration `env:"TICKETBOOTH_LEDGER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return bindFlags(fs, args, cfg)
}

func bindFlags(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The ledger gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The ledger listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the ledger sqlite database")
	fs.Uint64Var(&cfg.TotalTickets, "total-tickets", cfg.TotalTickets, "Number of tickets recorded at genesis")
	fs.Uint64Var(&cfg.UnitPrice, "unit-price", cfg.UnitPrice, "Primary sale price recorded at genesis")
	fs.StringVar(&cfg.Administrator, "administrator", cfg.Administrator, "Administrator account recorded at genesis")
	fs.Uint64Var(&cfg.SnapshotInterval, "snapshot-interval", cfg.SnapshotInterval, "Events between state snapshots")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Administrator) == "" {
		return fmt.Errorf("administrator is required (TICKETBOOTH_LEDGER_ADMINISTRATOR or -administrator)")
	}
	params := ticket.CreatePayload{TotalTickets: c.TotalTickets, UnitPrice: c.UnitPrice, Administrator: c.Administrator}
	if err := ticket.ValidateParams(params); err != nil {
		return fmt.Errorf("invalid ledger parameters: %w", err)
	}
	return nil
}

// listenAddr resolves the address the server binds.
func (c Config) listenAddr() string {
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		return addr
	}
	port := c.Port
	if port <= 0 {
		port = discovery.DefaultGRPCPort(discovery.ServiceLedger)
	}
	return net.JoinHostPort("", strconv.Itoa(port))
}

// Run starts the ledger gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLedger, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			Addr:   cfg.listenAddr(),
			DBPath: cfg.DBPath,
			Ledger: ticket.CreatePayload{
				TotalTickets:  cfg.TotalTickets,
				UnitPrice:     cfg.UnitPrice,
				Administrator: strings.TrimSpace(cfg.Administrator),
			},
			SnapshotInterval: cfg.SnapshotInterval,
			CallerKey:        cfg.CallerKey,
			ShutdownTimeout:  cfg.ShutdownTimeout,
		})
	})
}
