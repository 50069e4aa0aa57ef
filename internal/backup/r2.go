package backup

import (
	"bytes"
	"context"
	"fmt"

	appconfig "cotton-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Uploader copies backup files to S3-compatible storage (Cloudflare R2)
// for off-site retention. Upload failures never fail the local backup.
type R2Uploader struct {
	endpoint string
	bucket   string
	client   *s3.Client
}

func NewR2Uploader(ctx context.Context, cfg *appconfig.Config) (*R2Uploader, error) {
	r2 := cfg.Backup.R2

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r2.AccessKey,
			r2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(r2.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure R2 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r2.Endpoint)
	})

	return &R2Uploader{
		endpoint: r2.Endpoint,
		bucket:   r2.Bucket,
		client:   client,
	}, nil
}

func (u *R2Uploader) Upload(ctx context.Context, key string, data []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
