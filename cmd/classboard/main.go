// Package main provides the entry point for the classboard CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// Timezone names resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/mrz1836/classboard/internal/cli"
)

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
//
//nolint:gochecknoglobals // build metadata
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	stop()
	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
