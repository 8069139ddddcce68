package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Store keeps uploads in an S3 or MinIO compatible bucket.
type s3Store struct {
	client   *s3.Client
	bucket   string
	region   string
	baseURL  string
	maxBytes int64
}

func newS3Store(ctx context.Context, cfg Config) (*s3Store, error) {
	if cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("imagestore: s3 bucket not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.S3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3.Region))
	}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("imagestore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client:   client,
		bucket:   cfg.S3.Bucket,
		region:   cfg.S3.Region,
		baseURL:  strings.TrimSuffix(cfg.S3.BaseURL, "/"),
		maxBytes: cfg.MaxBytes,
	}, nil
}

func (s *s3Store) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	name, contentType, err := objectName(filename, size, s.maxBytes)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("imagestore: s3 put: %w", err)
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + name, nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, name), nil
}

func (s *s3Store) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	return err
}

func (s *s3Store) Driver() Driver {
	return DriverS3
}
