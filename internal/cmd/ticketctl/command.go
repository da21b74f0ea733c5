package ticketctl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// command is one ticketctl subcommand.
type command struct {
	Name    string
	Summary string
	// Usage lists positional arguments, for example "<ticket-id>".
	Usage string
	// Flags registers subcommand flags on fs. Nil means no flags.
	Flags func(fs *pflag.FlagSet)
	Run   func(ctx context.Context, s *session, args []string) error
}

func (c *command) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if c.Flags != nil {
		c.Flags(fs)
	}
	return fs
}

func findCommand(commands []*command, name string) *command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func printUsage(w io.Writer, global *pflag.FlagSet, commands []*command) {
	fmt.Fprintf(w, "Usage:\n  ticketctl [global flags] <command> [flags] [args]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(tw, "  %s %s\t%s\n", cmd.Name, cmd.Usage, cmd.Summary)
	}
	_ = tw.Flush()
	var flags strings.Builder
	global.SetOutput(&flags)
	global.PrintDefaults()
	global.SetOutput(io.Discard)
	fmt.Fprintf(w, "\nGlobal flags:\n%s", flags.String())
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
