package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// ObjectAPI is the slice of the MinIO client the audio store uses, with
// reads widened to io.ReadCloser so tests can stand in for the client.
type ObjectAPI interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration, params url.Values) (*url.URL, error)
}

// clientAdapter narrows *minio.Client to ObjectAPI.
type clientAdapter struct {
	*minio.Client
}

// Wrap adapts a connected MinIO client.
func Wrap(client *minio.Client) ObjectAPI {
	return clientAdapter{Client: client}
}

func (a clientAdapter) GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return a.Client.GetObject(ctx, bucket, object, opts)
}

// AudioStore persists synthesized clips under their article/sentence keys.
type AudioStore struct {
	api    ObjectAPI
	bucket string
	logger logging.Logger
}

// NewAudioStore builds a store over a connected client.
func NewAudioStore(api ObjectAPI, bucket string, logger logging.Logger) *AudioStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AudioStore{api: api, bucket: bucket, logger: logger.Named("audio_store")}
}

// SaveAudio uploads one clip.
func (s *AudioStore) SaveAudio(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return apperrors.New(apperrors.ErrCodeAudioStoreFailed, "audio upload failed").
			WithDetail(key).WithCause(err)
	}
	s.logger.Debug("audio stored",
		logging.String("key", key),
		logging.Int("bytes", len(data)),
	)
	return nil
}

// LoadAudio reads one clip back.
func (s *AudioStore) LoadAudio(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeAudioNotFound, "audio fetch failed").
			WithDetail(key).WithCause(err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeAudioNotFound, "audio read failed").
			WithDetail(key).WithCause(err)
	}
	return data, nil
}

// DeleteAudio removes one clip.
func (s *AudioStore) DeleteAudio(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.New(apperrors.ErrCodeAudioStoreFailed, "audio delete failed").
			WithDetail(key).WithCause(err)
	}
	return nil
}

// PresignedURL returns a time-limited download link for streaming a clip to
// the client without proxying bytes through the API.
func (s *AudioStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.api.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeAudioNotFound, "presigned url generation failed").
			WithDetail(key).WithCause(err)
	}
	return u.String(), nil
}
