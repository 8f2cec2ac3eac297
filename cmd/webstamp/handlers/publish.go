package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/imamik/webstamp/internal/publish"
)

// uploader interface for testing - matches *publish.Uploader.
type uploader interface {
	Upload(ctx context.Context, bucket, key, path string) error
	ObjectURL(bucket, key string) string
}

// Factory function variables for publish - can be replaced in tests.
var (
	// newUploader builds the object storage client.
	newUploader = func(endpoint, region, accessKey, secretKey string) (uploader, error) {
		return publish.NewUploader(endpoint, region, accessKey, secretKey)
	}

	// credentialsFromEnv reads the S3 credentials from the environment.
	credentialsFromEnv = publish.CredentialsFromEnv
)

// PublishOptions carries the flag values for the publish command.
type PublishOptions struct {
	ValuesFiles []string
	Sets        []string
	Archive     string
	Bucket      string
	Endpoint    string
	Region      string
}

// Publish uploads a chart archive to S3-compatible object storage.
// Without an explicit archive the current configuration is packaged into
// a temporary directory first. The object key is the archive file name.
func Publish(ctx context.Context, opts PublishOptions) error {
	accessKey, secretKey, err := credentialsFromEnv()
	if err != nil {
		return err
	}

	archive := opts.Archive
	if archive == "" {
		dir, err := os.MkdirTemp("", "webstamp-publish-")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(dir)

		archive, err = packageToDir(opts.ValuesFiles, opts.Sets, dir)
		if err != nil {
			return err
		}
	}

	up, err := newUploader(opts.Endpoint, opts.Region, accessKey, secretKey)
	if err != nil {
		return err
	}

	key := filepath.Base(archive)
	log.Printf("Uploading %s to bucket %s", key, opts.Bucket)
	if err := up.Upload(ctx, opts.Bucket, key, archive); err != nil {
		switch {
		case errors.Is(err, publish.ErrBucketNotFound):
			return fmt.Errorf("%w\nCreate the bucket first or check --bucket", err)
		case errors.Is(err, publish.ErrAccessDenied):
			return fmt.Errorf("%w\nCheck %s and %s", err, publish.EnvAccessKey, publish.EnvSecretKey)
		}
		return err
	}

	fmt.Printf("Published %s\n", up.ObjectURL(opts.Bucket, key))
	return nil
}
