package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store writes snapshots to an S3 bucket.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := export.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "site/")
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates an S3Store. prefix is prepended to every key
// (e.g. "site/" turns "index.html" into "site/index.html").
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, key, contentType string, content io.Reader) error {
	fullKey := s.prefix + strings.TrimPrefix(key, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("export: put s3://%s/%s: %w", s.bucket, fullKey, err)
	}
	return nil
}
