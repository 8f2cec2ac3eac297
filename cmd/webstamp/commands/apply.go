package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Apply returns the command for applying the manifest set to a cluster.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line
//	--kubeconfig: Path to the kubeconfig file (default: $KUBECONFIG or ~/.kube/config)
//	--wait: Wait for the deployment to roll out
//	--timeout: Rollout wait timeout (default 5m)
//	--dry-run: Render and validate only, do not touch the cluster
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the manifest set to a cluster",
		Long: `Render, validate, and apply the manifest set to a cluster.

Documents are applied with server-side apply under the "webstamp" field
manager, in dependency order, after the target namespace is ensured.
With --wait the command blocks until the deployment reports all replicas
available or --timeout elapses.

On an interactive terminal a progress display shows per-phase status;
otherwise plain logs are printed.

Examples:
  # Apply webstamp.yaml to the cluster from the default kubeconfig
  webstamp apply

  # Apply a production overlay and wait for the rollout
  webstamp apply -f base.yaml -f production.yaml --wait

  # Check what would be applied without touching the cluster
  webstamp apply --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.ValuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait for the deployment to roll out")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "Rollout wait timeout")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Render and validate only, do not touch the cluster")

	return cmd
}
