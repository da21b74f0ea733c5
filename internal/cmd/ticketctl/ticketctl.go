// Package ticketctl implements a command-line client for the ticket ledger.
package ticketctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ledgerv1 "github.com/louisbranch/ticketbooth/api/ledger/v1"
	entrypoint "github.com/louisbranch/ticketbooth/internal/platform/cmd"
	"github.com/louisbranch/ticketbooth/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/ticketbooth/internal/platform/grpc"
	"github.com/louisbranch/ticketbooth/internal/platform/i18n/catalog"
	"github.com/louisbranch/ticketbooth/internal/platform/timeouts"
	"github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/auth"
	grpcmeta "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/metadata"
	"github.com/spf13/pflag"
	"golang.org/x/text/message"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ErrUsage marks invalid command lines; callers exit with code 2.
var ErrUsage = errors.New("usage error")

// Config holds ticketctl defaults read from the environment.
type Config struct {
	Addr    string        `env:"TICKETBOOTH_LEDGER_ADDR"`
	Account string        `env:"TICKETBOOTH_ACCOUNT"`
	Token   string        `env:"TICKETBOOTH_TOKEN"`
	Lang    string        `env:"TICKETBOOTH_LANG" envDefault:"en-US"`
	Timeout time.Duration `env:"TICKETBOOTH_TIMEOUT" envDefault:"5s"`
}

// ParseConfig loads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceLedger)
	return cfg, nil
}

// Dialer opens a connection to the ledger at addr.
type Dialer func(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error)

func defaultDialer(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return platformgrpc.DialWithHealth(ctx, nil, addr, ledgerv1.HealthService, timeouts.GRPCDial, nil, opts...)
}

// session carries the resolved global options into a subcommand.
type session struct {
	cfg     Config
	out     io.Writer
	printer *message.Printer
	dial    Dialer

	conn   *grpc.ClientConn
	client ledgerv1.TicketLedgerServiceClient
}

// ledger dials the ledger on first use.
func (s *session) ledger(ctx context.Context) (ledgerv1.TicketLedgerServiceClient, error) {
	if s.client != nil {
		return s.client, nil
	}
	opts := platformgrpc.DefaultClientDialOptions()
	if token := strings.TrimSpace(s.cfg.Token); token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerCredentials{Token: token, Insecure: true}))
	}
	conn, err := s.dial(ctx, s.cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to ledger at %s: %w", s.cfg.Addr, err)
	}
	s.conn = conn
	s.client = ledgerv1.NewTicketLedgerServiceClient(conn)
	return s.client, nil
}

func (s *session) close() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// callContext bounds one unary call and attaches caller metadata.
func (s *session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	pairs := []string{grpcmeta.LocaleHeader, s.cfg.Lang}
	if s.cfg.Account != "" {
		pairs = append(pairs, grpcmeta.AccountHeader, s.cfg.Account)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...), cancel
}

// streamContext attaches caller metadata without a deadline.
func (s *session) streamContext(ctx context.Context) context.Context {
	pairs := []string{grpcmeta.LocaleHeader, s.cfg.Lang}
	if s.cfg.Account != "" {
		pairs = append(pairs, grpcmeta.AccountHeader, s.cfg.Account)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// Run executes one ticketctl command line.
func Run(ctx context.Context, cfg Config, args []string, out, errOut io.Writer, dial Dialer) error {
	if dial == nil {
		dial = defaultDialer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.GRPCRequest
	}
	commands := commands()

	global := pflag.NewFlagSet("ticketctl", pflag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.SetInterspersed(false)
	global.StringVar(&cfg.Addr, "addr", cfg.Addr, "ledger gRPC address")
	global.StringVar(&cfg.Account, "account", cfg.Account, "caller account sent when the ledger trusts the account header")
	global.StringVar(&cfg.Token, "token", cfg.Token, "bearer token identifying the caller")
	global.StringVar(&cfg.Lang, "lang", cfg.Lang, "locale for messages and number formatting")
	global.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-call timeout")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	rest := global.Args()
	if len(rest) == 0 || isHelpArg(rest[0]) {
		printUsage(errOut, global, commands)
		if len(rest) == 0 {
			return fmt.Errorf("%w: command required", ErrUsage)
		}
		return nil
	}

	cmd := findCommand(commands, rest[0])
	if cmd == nil {
		printUsage(errOut, global, commands)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, rest[0])
	}
	fs := cmd.flagSet()
	if err := fs.Parse(rest[1:]); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, cmd.Name, err)
	}

	s := &session{cfg: cfg, out: out, printer: catalog.Default().Printer(cfg.Lang), dial: dial}
	defer s.close()
	return describeError(cmd.Run(ctx, s, fs.Args()))
}

// describeError prefers the server's localized message for gRPC failures.
func describeError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var reason, localized string
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			reason = d.GetReason()
		case *errdetails.LocalizedMessage:
			localized = d.GetMessage()
		}
	}
	if localized != "" && reason != "" {
		return fmt.Errorf("%s (%s)", localized, reason)
	}
	return fmt.Errorf("%s: %s", st.Code(), st.Message())
}
