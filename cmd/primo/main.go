package main

import (
	"fmt"
	"os"

	app "github.com/valter-silva-au/primo/internal"
	"github.com/valter-silva-au/primo/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing primo: %v\n", err)
		os.Exit(1)
	}

	err = cli.Execute()
	_ = a.Close() // Non-fatal: the event log is append-only.
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
