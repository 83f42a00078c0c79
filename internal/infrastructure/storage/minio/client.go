// Package minio stores narration audio in object storage.
package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Config holds object-store connection settings.
type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

// NewClient connects to the object store and ensures the audio bucket
// exists.
func NewClient(ctx context.Context, cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "object store client creation failed").
			WithDetail(cfg.Endpoint).WithCause(err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "object store unreachable").
			WithDetail(cfg.Endpoint).WithCause(err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, apperrors.New(apperrors.ErrCodeExternalService,
				fmt.Sprintf("bucket %q creation failed", cfg.Bucket)).WithCause(err)
		}
	}
	return client, nil
}
