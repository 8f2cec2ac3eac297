package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Package returns the command for exporting a chart archive.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line
//	--destination, -d: Directory the archive is written to (default ".")
//	--verify: Re-render the saved archive and compare against the manifest set
func Package() *cobra.Command {
	var (
		valuesFiles []string
		sets        []string
		destination string
		verify      bool
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Package the manifest set as a Helm chart archive",
		Long: `Package the rendered manifest set as a Helm chart archive.

The chart templates are the rendered documents verbatim, so installing
the archive with helm produces exactly what 'webstamp render' prints.
The archive is named {name}-{version}.tgz.

With --verify the saved archive is loaded back, rendered through the
Helm engine, and compared document by document against the in-memory
manifest set.

Examples:
  # Package into the current directory
  webstamp package

  # Package a release into a dist directory and verify the round trip
  webstamp package -d dist/ --verify`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Package(valuesFiles, sets, destination, verify)
		},
	}

	cmd.Flags().StringArrayVarP(&valuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")
	cmd.Flags().StringVarP(&destination, "destination", "d", ".", "Directory to write the archive to")
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the archive round-trips through the Helm engine")

	return cmd
}
