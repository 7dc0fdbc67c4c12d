package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appconfig "portfolio_pro/internal/platform/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// S3Store implements BlobStore against S3 or any S3-compatible endpoint
// (MinIO, DigitalOcean Spaces). Object keys are "<uuid>_<slugged-name>" so
// repeated uploads of the same file never collide.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	timeout       time.Duration
}

func NewS3Store(ctx context.Context, cfg *appconfig.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(baseURL, "/"),
		timeout:       cfg.ExternalCallTimeout,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, contentType, suggestedName string) (string, error) {
	key := objectKey(suggestedName)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	key, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

func (s *S3Store) keyFromURL(publicURL string) (string, error) {
	if !strings.HasPrefix(publicURL, s.publicBaseURL+"/") {
		return "", fmt.Errorf("url %q does not belong to this store", publicURL)
	}
	key := strings.TrimPrefix(publicURL, s.publicBaseURL+"/")
	if key == "" {
		return "", fmt.Errorf("url %q has an empty object key", publicURL)
	}
	return key, nil
}

// objectKey builds a collision-free key from the caller's suggested name,
// keeping the extension so content sniffing keeps working downstream.
func objectKey(suggestedName string) string {
	ext := path.Ext(suggestedName)
	base := strings.TrimSuffix(path.Base(suggestedName), ext)
	slugged := slug.Make(base)
	if slugged == "" {
		slugged = "file"
	}
	return uuid.NewString() + "_" + slugged + ext
}
