// Package main prints a fresh ledger caller signing key.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/ticketbooth/internal/platform/config"
	"github.com/louisbranch/ticketbooth/internal/tools/callerkey"
)

func main() {
	cfg, err := callerkey.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := callerkey.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate key: %v", err)
	}
}
