package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Init returns the command for creating a release configuration.
//
// On an interactive terminal this command runs a wizard with text inputs,
// single-select, and multi-select prompts. With --defaults, or when stdout
// is not a terminal, it scaffolds the configuration from flags alone.
//
// Flags:
//
//	--output, -o: Path to output file (default "webstamp.yaml")
//	--defaults: Skip the wizard and scaffold from flags
//	--force: Overwrite an existing file
//	--name: Release name for the scaffolded config
//	--namespace: Target namespace for the scaffolded config
//	--image: Image repository for the scaffolded config
//	--tag: Image tag for the scaffolded config
//	--port: Container port for the scaffolded config
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a release configuration",
		Long: `Create a release configuration file.

On an interactive terminal this command guides you through configuring
your web service step by step. It will ask about:

  - Release identity (name and namespace)
  - Container image (repository and tag)
  - Networking (port, service type, ingress, basic auth)
  - Scaling (replicas or autoscaling range)
  - Optional manifests (PDB, NetworkPolicy, ServiceMonitor, ServiceAccount)

With --defaults, or when run non-interactively (CI, pipes), the wizard is
skipped and the configuration is scaffolded from the --name, --namespace,
--image, --tag and --port flags.

Examples:
  # Interactive wizard
  webstamp init

  # Non-interactive scaffold
  webstamp init --defaults --name api --image ghcr.io/acme/api --tag v2.1.0

  # Overwrite an existing file
  webstamp init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "webstamp.yaml", "Output file path")
	cmd.Flags().BoolVar(&opts.UseDefaults, "defaults", false, "Skip the wizard and scaffold from flags")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&opts.Name, "name", "web", "Release name for the scaffolded config")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "Target namespace for the scaffolded config")
	cmd.Flags().StringVar(&opts.Image, "image", "nginx", "Image repository for the scaffolded config")
	cmd.Flags().StringVar(&opts.Tag, "tag", "1.27", "Image tag for the scaffolded config")
	cmd.Flags().Int32Var(&opts.Port, "port", 0, "Container port for the scaffolded config (default 8080)")

	return cmd
}
