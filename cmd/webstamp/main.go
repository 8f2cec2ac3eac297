// Package main is the entry point for the webstamp CLI.
//
// webstamp renders a complete, deterministic Kubernetes manifest set for
// a generic web service from a small typed configuration file. The same
// set can be printed, linted, packaged as a Helm chart archive, published
// to object storage, or applied to a cluster directly.
//
// Commands: init, values, render, validate, package, publish, apply.
//
// For detailed usage information, run:
//
//	webstamp --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/webstamp/cmd/webstamp/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
