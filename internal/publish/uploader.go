// Package publish uploads packaged chart archives to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Environment variables holding the object storage credentials.
const (
	EnvAccessKey = "WEBSTAMP_S3_ACCESS_KEY"
	EnvSecretKey = "WEBSTAMP_S3_SECRET_KEY"
)

// Sentinel errors for the upload failures a caller can act on. Anything
// else surfaces as the underlying API error.
var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrAccessDenied   = errors.New("access denied")
)

// Uploader wraps an S3 client pointed at an S3-compatible endpoint.
type Uploader struct {
	s3       *s3.Client
	endpoint string
}

// NewUploader creates an uploader for the given endpoint with static
// credentials. Path-style addressing keeps the bucket out of the hostname,
// which is what MinIO and most self-hosted stores expect.
func NewUploader(endpoint, region, accessKey, secretKey string) (*Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Uploader{s3: client, endpoint: endpoint}, nil
}

// CredentialsFromEnv reads the static credentials from the environment.
func CredentialsFromEnv() (accessKey, secretKey string, err error) {
	accessKey = os.Getenv(EnvAccessKey)
	secretKey = os.Getenv(EnvSecretKey)
	if accessKey == "" || secretKey == "" {
		return "", "", fmt.Errorf("missing credentials: set %s and %s", EnvAccessKey, EnvSecretKey)
	}
	return accessKey, secretKey, nil
}

// Upload sends the archive at path to the bucket under the given key.
func (u *Uploader) Upload(ctx context.Context, bucket, key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read archive %s: %w", path, err)
	}

	_, err = u.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, bucket, classifyError(err))
	}
	return nil
}

// ObjectURL returns the path-style URL of an uploaded object.
func (u *Uploader) ObjectURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.endpoint, "/"), bucket, key)
}

// classifyError maps API failures onto the sentinel errors.
func classifyError(err error) error {
	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	return err
}
