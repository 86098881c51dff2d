package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/salonlink/salon-scheduler/internal/config"
)

// ImageStore uploads normalized shop/stylist photos to an S3-compatible
// bucket and hands back the public URL.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewImageStore(cfg *config.Config) *ImageStore {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ImageStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
}

func (s *ImageStore) UploadShopPhoto(
	ctx context.Context,
	shopID uint,
	r io.Reader,
) (string, error) {
	key := fmt.Sprintf("shops/%d/%s.webp", shopID, uuid.NewString())
	return s.upload(ctx, key, r)
}

func (s *ImageStore) UploadStylistPhoto(
	ctx context.Context,
	stylistID uint,
	r io.Reader,
) (string, error) {
	key := fmt.Sprintf("stylists/%d/%s.webp", stylistID, uuid.NewString())
	return s.upload(ctx, key, r)
}

func (s *ImageStore) upload(ctx context.Context, key string, r io.Reader) (string, error) {
	data, err := normalizePhoto(r)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
