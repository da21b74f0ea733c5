package ledger

import (
	"flag"
	"testing"
	"time"

	"github.com/louisbranch/ticketbooth/internal/platform/config"
)

func parseWithEnv(t *testing.T, environment map[string]string, args []string) (Config, error) {
	t.Helper()
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, environment); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	return bindFlags(flag.NewFlagSet("ledger", flag.ContinueOnError), args, cfg)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseWithEnv(t, map[string]string{"TICKETBOOTH_LEDGER_ADMINISTRATOR": "box-office"}, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8095 {
		t.Fatalf("expected default port 8095, got %d", cfg.Port)
	}
	if cfg.TotalTickets != 100 || cfg.UnitPrice != 10000000000000 {
		t.Fatalf("expected 100 tickets at 10000000000000, got %d at %d", cfg.TotalTickets, cfg.UnitPrice)
	}
	if cfg.SnapshotInterval != 256 {
		t.Fatalf("expected snapshot interval 256, got %d", cfg.SnapshotInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
	}
	if got := cfg.listenAddr(); got != ":8095" {
		t.Fatalf("listen addr = %q", got)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	env := map[string]string{
		"TICKETBOOTH_LEDGER_ADMINISTRATOR": "box-office",
		"TICKETBOOTH_LEDGER_UNIT_PRICE":    "25",
	}
	cfg, err := parseWithEnv(t, env, []string{"-port", "9001", "-addr", "127.0.0.1:9999", "-total-tickets", "10"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.UnitPrice != 25 || cfg.TotalTickets != 10 {
		t.Fatalf("unexpected ledger params: %+v", cfg)
	}
	if got := cfg.listenAddr(); got != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", got)
	}
}

func TestParseConfigValidatesLedgerParameters(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing administrator", map[string]string{}, nil},
		{"no tickets", map[string]string{"TICKETBOOTH_LEDGER_ADMINISTRATOR": "box-office"}, []string{"-total-tickets", "0"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseWithEnv(t, tc.env, tc.args); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
