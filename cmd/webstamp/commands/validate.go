package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Validate returns the command for checking a configuration end to end.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line
func Validate() *cobra.Command {
	var (
		valuesFiles []string
		sets        []string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and rendered manifests",
		Long: `Validate the configuration, render the manifest set, and lint it.

The lint rules check cross-references between documents: selector
agreement, ingress backends, autoscaler targets, checksum annotations
and more. The command exits nonzero when any rule reports an error.

Examples:
  # Validate webstamp.yaml in the current directory
  webstamp validate

  # Validate a production overlay
  webstamp validate -f base.yaml -f production.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(valuesFiles, sets)
		},
	}

	cmd.Flags().StringArrayVarP(&valuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")

	return cmd
}
