package handler

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
)

// maxUploadSize caps a single uploaded image at 8 MiB.
const maxUploadSize = 8 << 20

// formUploads opens every file posted under field and adapts them into
// storage uploads. Close the returned closer after the service call.
// A non-multipart request yields no uploads and no error.
func formUploads(c *gin.Context, field string) ([]storage.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, nil
	}

	files := form.File[field]
	uploads := make([]storage.Upload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, fh := range files {
		if fh.Size > maxUploadSize {
			closeAll()
			return nil, func() {}, apperr.Validation(fmt.Sprintf("file %s exceeds the upload size limit", fh.Filename))
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, "image/") {
			closeAll()
			return nil, func() {}, apperr.Validation(fmt.Sprintf("file %s is not an image", fh.Filename))
		}

		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, storage.Upload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Body:        f,
		})
	}

	return uploads, closeAll, nil
}

// isMultipart reports whether the request body is a multipart form.
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// singleUpload returns the first file posted under field, or nil.
func singleUpload(c *gin.Context, field string) (*storage.Upload, func(), error) {
	uploads, closeAll, err := formUploads(c, field)
	if err != nil {
		return nil, closeAll, err
	}
	if len(uploads) == 0 {
		return nil, closeAll, nil
	}
	return &uploads[0], closeAll, nil
}
