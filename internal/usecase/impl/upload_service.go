package impl

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"

	"educycle/config"
	deliverycontext "educycle/internal/delivery/context"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"
	"educycle/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultUploadMaxBytes = 5 << 20

// acceptedImageTypes maps sniffed MIME types to stored file extensions.
var acceptedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type uploadService struct {
	storage  service.ImageStorage
	maxBytes int64
	logger   *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Storage service.ImageStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	maxBytes := int64(defaultUploadMaxBytes)
	if params.Config != nil && params.Config.Uploads != nil && params.Config.Uploads.MaxBytes > 0 {
		maxBytes = params.Config.Uploads.MaxBytes
	}

	return &uploadService{
		storage:  params.Storage,
		maxBytes: maxBytes,
		logger:   params.Logger,
	}
}

func (srv *uploadService) UploadImage(ctx context.Context, userID uuid.UUID, data []byte) (*service.StoredObject, error) {
	if len(data) == 0 {
		return nil, domainerrors.ErrInvalidUpload.WrapMessage("empty upload")
	}
	if int64(len(data)) > srv.maxBytes {
		return nil, domainerrors.ErrUploadTooLarge.WrapMessage("upload exceeds the " + util.FormatBytes(srv.maxBytes) + " limit")
	}

	// The declared content type is never trusted.
	detected := mimetype.Detect(data)
	contentType := detected.String()
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	ext, ok := acceptedImageTypes[contentType]
	if !ok {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Warn("Rejected upload",
			slog.Any("userID", userID),
			slog.String("detected", detected.String()),
		)

		return nil, domainerrors.ErrInvalidUpload.WrapMessage("detected " + contentType)
	}

	key := "images/" + userID.String() + "/" + uuid.NewString() + ext
	obj, err := srv.storage.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store upload")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Image uploaded",
		slog.Any("userID", userID),
		slog.String("key", obj.Key),
		slog.String("size", util.FormatBytes(obj.Size)),
	)

	return obj, nil
}

// UploadDataURI accepts "data:<type>;base64,<payload>" as sent by the image picker.
func (srv *uploadService) UploadDataURI(ctx context.Context, userID uuid.UUID, dataURI string) (*service.StoredObject, error) {
	data, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	return srv.UploadImage(ctx, userID, data)
}

func (srv *uploadService) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if key == "" || strings.Contains(key, "..") {
		return nil, "", domainerrors.ErrUploadNotFound.WrapMessage("invalid key")
	}

	return srv.storage.Open(ctx, key)
}

func decodeDataURI(dataURI string) ([]byte, error) {
	header, payload, found := strings.Cut(strings.TrimSpace(dataURI), ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return nil, domainerrors.ErrInvalidUpload.WrapMessage("not a data URI")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, domainerrors.ErrInvalidUpload.WrapMessage("data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domainerrors.ErrInvalidUpload.WrapMessage("malformed base64 payload")
	}

	return data, nil
}
