// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the webstamp CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webstamp",
		Short: "Render and ship Kubernetes manifests for a web service",
	}

	// Configuration commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Values())

	// Rendering commands
	cmd.AddCommand(Render())
	cmd.AddCommand(Validate())

	// Distribution commands
	cmd.AddCommand(Package())
	cmd.AddCommand(Publish())
	cmd.AddCommand(Apply())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
