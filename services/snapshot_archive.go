package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/kendall-kelly/inventory-dashboard/config"
)

// SnapshotArchive stores exported dashboard snapshots
type SnapshotArchive interface {
	// Archive stores body under a key derived from name and returns the key
	Archive(ctx context.Context, name string, body []byte) (string, error)

	// PresignedURL returns a time-limited download URL for key
	PresignedURL(ctx context.Context, key string) (string, error)
}

// S3SnapshotArchive implements SnapshotArchive on an S3 bucket
type S3SnapshotArchive struct {
	client *s3.Client
	bucket string
}

// NewS3SnapshotArchive creates an archive for the bucket in cfg
func NewS3SnapshotArchive(ctx context.Context, cfg *appConfig.Config) (*S3SnapshotArchive, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	// Static keys when configured, otherwise the default credential chain
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3SnapshotArchive{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}, nil
}

// Archive uploads body as snapshots/{timestamp}_{name}.json
func (a *S3SnapshotArchive) Archive(ctx context.Context, name string, body []byte) (string, error) {
	key := SnapshotKey(name, time.Now())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	return key, nil
}

// PresignedURL generates a download URL valid for one hour
func (a *S3SnapshotArchive) PresignedURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(a.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// SnapshotKey builds the object key for a snapshot taken at t
func SnapshotKey(name string, t time.Time) string {
	return fmt.Sprintf("snapshots/%d_%s.json", t.Unix(), name)
}
