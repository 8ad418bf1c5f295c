// SPDX-License-Identifier: MIT

// Package storage publishes encoded color sets to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

// Config describes the target bucket. Endpoint is optional and selects an
// S3-compatible service instead of AWS.
type Config struct {
	Bucket    string
	Region    string
	Prefix    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// ObjectPutter is the subset of the S3 client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client from static credentials. Empty keys make
// anonymous requests.
func NewS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}

	if cfg.AccessKey != "" {
		accessKey, secretKey := cfg.AccessKey, cfg.SecretKey
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					Source:          "colorset config",
				}, nil
			}))
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts)
}

// Publisher uploads color sets under a key prefix.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewPublisher creates a publisher writing to bucket.
func NewPublisher(client ObjectPutter, bucket, prefix string, logger zerolog.Logger) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Key returns the object key a palette is published under.
func (p *Publisher) Key(name string) string {
	return path.Join(p.prefix, name+colorset.FileExtension)
}

// Publish encodes set and uploads it as <prefix>/<name>.colorset.
// FormatAuto publishes in the set's own format. It returns the object key.
func (p *Publisher) Publish(ctx context.Context, name string, set *colorset.ColorSet, format colorset.Format) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid palette name %q", name)
	}
	if p.bucket == "" {
		return "", fmt.Errorf("no bucket configured")
	}
	if format == colorset.FormatAuto {
		format = set.Format()
	}

	data, err := set.Encode(format)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	key := p.Key(name)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(format.ContentType()),
		Metadata: map[string]string{
			"colorset-format": format.String(),
			"colorset-colors": fmt.Sprint(set.Count()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", p.bucket, key, err)
	}

	p.logger.Info().
		Str("bucket", p.bucket).
		Str("key", key).
		Str("format", format.String()).
		Int("bytes", len(data)).
		Msg("palette published")
	return key, nil
}
