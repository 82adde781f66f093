// Package storage keeps uploaded images in a gocloud.dev bucket.
// The bucket URL scheme picks the backend: file:// for local disk, mem:// for tests, gs:// for GCS.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"educycle/config"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const (
	defaultBucketURL     = "mem://"
	defaultPublicBaseURL = "/api/uploads"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStorage wraps an opened bucket.
func NewBlobStorage(bucket *blob.Bucket, publicBaseURL string) service.ImageStorage {
	if publicBaseURL == "" {
		publicBaseURL = defaultPublicBaseURL
	}

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Params holds dependencies for NewImageStorage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStorage opens the configured bucket and closes it on shutdown.
func NewImageStorage(params Params) (service.ImageStorage, error) {
	bucketURL, publicBaseURL := defaultBucketURL, ""
	if cfg := params.Config.Uploads; cfg != nil {
		if cfg.BucketURL != "" {
			bucketURL = cfg.BucketURL
		}
		publicBaseURL = cfg.PublicBaseURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Logger.Info("Upload bucket opened", slog.String("bucket_url", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.Wrap(bucket.Close(), "failed to close bucket")
		},
	})

	return NewBlobStorage(bucket, publicBaseURL), nil
}

// Put stores data under key.
func (s *blobStorage) Put(ctx context.Context, key, contentType string, data []byte) (*service.StoredObject, error) {
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return nil, errors.Wrapf(err, "failed to write object %s", key)
	}

	return &service.StoredObject{
		Key:         key,
		URL:         s.URL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// Open returns a reader for key and its content type.
func (s *blobStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrUploadNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to open object %s", key)
	}

	return reader, reader.ContentType(), nil
}

// URL returns the public URL of key.
func (s *blobStorage) URL(key string) string {
	return s.publicBaseURL + "/" + key
}
