package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Render returns the command for rendering the manifest set.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line
//	--output-dir, -o: Write one file per document instead of printing
func Render() *cobra.Command {
	var (
		valuesFiles []string
		sets        []string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the Kubernetes manifest set",
		Long: `Render the complete Kubernetes manifest set for the configuration.

By default the documents are printed to stdout as one multi-document
YAML stream in apply order. With --output-dir each document is written
to its own file, named like deployment-web.yaml.

Rendering is deterministic: the same configuration always produces
byte-identical output.

Examples:
  # Print the manifest set
  webstamp render

  # Render a production overlay into a directory for GitOps
  webstamp render -f base.yaml -f production.yaml -o manifests/

  # Pipe straight into kubectl
  webstamp render | kubectl apply -f -`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Render(valuesFiles, sets, outputDir)
		},
	}

	cmd.Flags().StringArrayVarP(&valuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write one file per document into this directory")

	return cmd
}
