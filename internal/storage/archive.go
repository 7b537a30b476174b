package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"resumequiz/internal/config"
)

// Archiver copies a stored upload somewhere durable
type Archiver interface {
	Archive(ctx context.Context, path string) error
}

// NopArchiver is used when no archive bucket is configured
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, string) error { return nil }

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver mirrors uploads into an S3 compatible bucket
type S3Archiver struct {
	client objectPutter
	bucket string
	prefix string
}

// NewArchiver returns an S3Archiver when a bucket is configured and a
// NopArchiver otherwise
func NewArchiver(ctx context.Context, cfg config.StorageConfig) (Archiver, error) {
	if cfg.S3Bucket == "" {
		return NopArchiver{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Archiver(client, cfg.S3Bucket, cfg.S3Prefix), nil
}

func newS3Archiver(client objectPutter, bucket, prefix string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key used for a stored file
func (a *S3Archiver) Key(path string) string {
	return a.prefix + filepath.Base(path)
}

func (a *S3Archiver) Archive(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open upload for archiving: %w", err)
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.Key(path)),
		Body:   f,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
