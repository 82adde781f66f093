package usecase

import (
	"context"
	"io"

	"educycle/internal/domain/service"

	"github.com/google/uuid"
)

// UploadUsecase stores product and profile images.
type UploadUsecase interface {
	// UploadImage sniffs data, rejects anything that is not an accepted image and stores it.
	UploadImage(ctx context.Context, userID uuid.UUID, data []byte) (*service.StoredObject, error)

	// UploadDataURI decodes a base64 data URI and stores it like UploadImage.
	UploadDataURI(ctx context.Context, userID uuid.UUID, dataURI string) (*service.StoredObject, error)

	// Open streams a stored object back. Callers close the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
