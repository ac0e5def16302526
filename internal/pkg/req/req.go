/*
Package req provides helper functions for HTTP request parsing.

It encapsulates the logic for parsing multipart form data with size limits,
so upload handlers only deal with validated form contents.
*/
package req

import (
	"errors"
	"net/http"
	"strings"

	"chatrelay/internal/pkg/errs"
)

const (
	// MaxFormMemory defines the maximum amount of memory ParseMultipartForm
	// will use to store non-file fields. Larger file parts spill to temporary files.
	MaxFormMemory int64 = 8 << 20 // 8 MB

	// MaxRequestFileSize defines the maximum allowed size for the entire
	// request body, including files. Enforced via http.MaxBytesReader.
	MaxRequestFileSize int64 = 6 << 20 // 6 MB
)

// SetupMultipart limits and parses multipart form data from the HTTP request.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
