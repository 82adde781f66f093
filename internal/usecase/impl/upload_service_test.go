package impl

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"educycle/config"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/infra/storage"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newUploadService(t *testing.T, maxBytes int64) usecase.UploadUsecase {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		_ = bucket.Close()
	})

	return NewUploadService(UploadServiceParams{
		Storage: storage.NewBlobStorage(bucket, "/api/uploads"),
		Config:  &config.Config{Uploads: &config.UploadsConfig{MaxBytes: maxBytes}},
		Logger:  newDiscardLogger(),
	})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestUploadService_UploadImageRoundTrip(t *testing.T) {
	srv := newUploadService(t, 1<<20)
	ctx := context.Background()
	userID := uuid.New()
	data := pngBytes(t)

	obj, err := srv.UploadImage(ctx, userID, data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(data)), obj.Size)
	assert.True(t, strings.HasPrefix(obj.Key, "images/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "/api/uploads/"+obj.Key, obj.URL)

	reader, contentType, err := srv.Open(ctx, obj.Key)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", contentType)
}

func TestUploadService_RejectsNonImages(t *testing.T) {
	srv := newUploadService(t, 1<<20)

	_, err := srv.UploadImage(context.Background(), uuid.New(), []byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidUpload)

	_, err = srv.UploadImage(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidUpload)
}

func TestUploadService_RejectsOversized(t *testing.T) {
	srv := newUploadService(t, 16)

	_, err := srv.UploadImage(context.Background(), uuid.New(), pngBytes(t))
	assert.ErrorIs(t, err, domainerrors.ErrUploadTooLarge)
	assert.Contains(t, err.Error(), "16 B limit")
}

func TestUploadService_UploadDataURI(t *testing.T) {
	srv := newUploadService(t, 1<<20)
	data := pngBytes(t)

	// The declared type is ignored; the payload is sniffed.
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
	obj, err := srv.UploadDataURI(context.Background(), uuid.New(), uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)

	for _, bad := range []string{
		"not a uri",
		"data:image/png,plain",
		"data:image/png;base64,@@@",
	} {
		_, err := srv.UploadDataURI(context.Background(), uuid.New(), bad)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidUpload, bad)
	}
}

func TestUploadService_OpenMissing(t *testing.T) {
	srv := newUploadService(t, 1<<20)

	_, _, err := srv.Open(context.Background(), "images/missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrUploadNotFound)

	_, _, err = srv.Open(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, domainerrors.ErrUploadNotFound)
}
