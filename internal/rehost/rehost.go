// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rehost uploads locally held binary assets (extracted images and
// figures) to object storage so generated Markdown can reference them by
// durable URL instead of an ephemeral local path.
package rehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pdiddy/mdgen/pkg/types"
)

// ErrNotConfigured is returned when bucket or credentials are absent. It is
// informational: callers fall back per their own contract and the pipeline
// continues.
var ErrNotConfigured = errors.New("object storage not configured")

const defaultRegion = "us-east-1"

// Uploader re-hosts a local file and returns its public URL. Implementations
// never abort a pipeline: on any failure they return an empty URL and an
// error for the caller to log and degrade on.
type Uploader interface {
	// Configured reports whether uploads will be attempted at all.
	Configured() bool

	// Upload sends the file at path to storage and returns its public URL.
	Upload(ctx context.Context, path string) (string, error)
}

// putObjectAPI is the slice of the S3 client the uploader uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads assets to an S3 bucket. Object keys are plain basenames:
// repeated uploads of differently named temp files with colliding basenames
// silently overwrite prior objects. That is an accepted limitation of the
// published URL convention, not something to dedupe here.
type S3Uploader struct {
	cfg    types.StorageConfig
	client putObjectAPI
	logw   io.Writer
}

// NewS3 builds an uploader from explicit storage configuration. When the
// configuration is incomplete no client is constructed and every Upload call
// skips deterministically with ErrNotConfigured.
func NewS3(cfg types.StorageConfig, logw io.Writer) *S3Uploader {
	u := &S3Uploader{cfg: cfg, logw: logw}
	if !cfg.Configured() {
		return u
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	u.client = s3.New(s3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			}, nil
		}),
	})
	return u
}

// Configured reports whether bucket and credentials are all present.
func (u *S3Uploader) Configured() bool {
	return u.cfg.Configured()
}

// Upload sends the file at path to the bucket under its basename and returns
// the public URL.
func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	if u.client == nil {
		fmt.Fprintln(u.logw, "skipping upload (object storage not configured)")
		return "", ErrNotConfigured
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(u.logw, "upload failed: %v\n", err)
		return "", fmt.Errorf("opening asset %s: %w", path, err)
	}
	defer f.Close()

	key := filepath.Base(path)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		fmt.Fprintf(u.logw, "upload failed for %s: %v\n", key, err)
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return PublicURL(u.cfg.Bucket, key), nil
}

// PublicURL constructs the public address for an uploaded object.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}
