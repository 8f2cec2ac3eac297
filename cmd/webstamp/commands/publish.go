package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/webstamp/cmd/webstamp/handlers"
)

// Publish returns the command for uploading a chart archive.
//
// Flags:
//
//	--values, -f: Values file, repeatable; later files override earlier ones
//	--set: Override a value on the command line
//	--archive: Upload an existing archive instead of packaging
//	--bucket: Target bucket (required)
//	--endpoint: S3-compatible endpoint URL (required)
//	--region: Endpoint region (default "auto")
//
// Environment variables:
//
//	WEBSTAMP_S3_ACCESS_KEY: Access key for the endpoint (required)
//	WEBSTAMP_S3_SECRET_KEY: Secret key for the endpoint (required)
func Publish() *cobra.Command {
	var opts handlers.PublishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the chart archive to object storage",
		Long: `Upload the chart archive to S3-compatible object storage.

Without --archive the current configuration is packaged into a temporary
directory first; with --archive an existing .tgz is uploaded as is. The
object key is the archive file name.

Credentials are read from the WEBSTAMP_S3_ACCESS_KEY and
WEBSTAMP_S3_SECRET_KEY environment variables. The endpoint can be any
S3-compatible store (MinIO, R2, Ceph, AWS).

Examples:
  # Package and publish in one step
  webstamp publish --bucket charts --endpoint https://minio.internal:9000

  # Publish an archive produced by 'webstamp package'
  webstamp publish --archive dist/web-0.1.0.tgz --bucket charts --endpoint https://minio.internal:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.ValuesFiles, "values", "f", nil, "Values file (repeatable, later files override earlier ones)")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "Override a value (e.g. --set image.tag=v2.0.0)")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "Existing archive to upload instead of packaging")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Target bucket")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().StringVar(&opts.Region, "region", "auto", "Endpoint region")
	_ = cmd.MarkFlagRequired("bucket")
	_ = cmd.MarkFlagRequired("endpoint")

	return cmd
}
