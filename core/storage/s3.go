package storage

import (
	"bytes"
	"context"
	"fmt"

	appConfig "bandos-api/core/config"
	"bandos-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores binary objects and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, body []byte) (string, error)
}

type s3Uploader struct {
	client *s3.Client
	cfg    appConfig.S3Config
}

func NewUploader(cfg appConfig.S3Config) Uploader {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &s3Uploader{
		client: s3.New(opts),
		cfg:    cfg,
	}
}

func (u *s3Uploader) Upload(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload:Error:", err)
		return "", err
	}

	if u.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", u.cfg.PublicBaseURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key), nil
}
