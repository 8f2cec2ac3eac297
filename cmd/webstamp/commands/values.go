package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Values returns the command for printing the effective configuration.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line (helm --set syntax)
func Values() *cobra.Command {
	var (
		valuesFiles []string
		sets        []string
	)

	cmd := &cobra.Command{
		Use:   "values",
		Short: "Print the merged effective configuration",
		Long: `Print the merged effective configuration as YAML.

Values files are merged left to right, --set overrides are applied on
top, and defaults fill the remaining fields. The output is exactly the
configuration the render commands see.

Examples:
  # Effective config from webstamp.yaml in the current directory
  webstamp values

  # Layer an environment overlay over the base file
  webstamp values -f base.yaml -f production.yaml

  # Inspect the effect of an override
  webstamp values --set replicaCount=5`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Values(valuesFiles, sets)
		},
	}

	cmd.Flags().StringArrayVarP(&valuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")

	return cmd
}
