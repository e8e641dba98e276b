// internal/app/features/versions/upload.go
package versions

import (
	"context"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/uploads"
)

// receiveFile pulls the optional multipart "file" field out of the request
// and stores it through the configured storage backend. It returns the
// stored path, or "" when the request carries no file. An absent file is
// not an error; a failed upload is, and aborts the request before any
// database write happens.
func (h *Handler) receiveFile(ctx context.Context, r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", apperr.New(apperr.Validation, "invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apperr.New(apperr.Validation, "could not read uploaded file")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	info, err := uploads.Put(ctx, h.Files, header.Filename, file, header.Size, contentType)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "could not store uploaded file", err)
	}
	return info.Path, nil
}
