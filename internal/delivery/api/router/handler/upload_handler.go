package handler

import (
	"io"
	"net/http"
	"strings"

	"educycle/internal/delivery/api/response"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/service"
	"educycle/internal/infra/metrics"
	"educycle/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const uploadFormField = "image"

// UploadHandler accepts product images and serves them back.
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
}

// NewUploadHandler is the constructor for UploadHandler.
func NewUploadHandler(uploadUC usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uploadUC: uploadUC}
}

// DataURIUploadRequest is the JSON alternative to a multipart upload.
type DataURIUploadRequest struct {
	DataURI string `json:"dataUri" validate:"required"`
}

// UploadResponse describes a stored image.
type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Upload stores a multipart "image" file or a JSON data URI.
func (h *UploadHandler) Upload(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	var obj *service.StoredObject
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		data, err := readFormFile(c, uploadFormField)
		if err != nil {
			return err
		}
		obj, err = h.uploadUC.UploadImage(ctx, userID, data)
		if err != nil {
			return errors.WithStack(err)
		}
	} else {
		var req DataURIUploadRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		obj, err = h.uploadUC.UploadDataURI(ctx, userID, req.DataURI)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	metrics.RecordMarketplaceEvent("image_uploaded")

	return response.Success(c, http.StatusCreated, &UploadResponse{
		URL:         obj.URL,
		Key:         obj.Key,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	})
}

// Serve streams a stored object; the key is everything after the route prefix.
func (h *UploadHandler) Serve(c echo.Context) error {
	reader, contentType, err := h.uploadUC.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, reader)
}

func readFormFile(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, domainerrors.ErrInvalidUpload.WrapMessage("multipart field " + field + " is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}

	return data, nil
}
