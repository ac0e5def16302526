package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"chatrelay/internal/app/storage"
	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/randx"
	"chatrelay/internal/pkg/req"
	"chatrelay/internal/pkg/resp"
)

// HandleUpload creates an HTTP HandlerFunc that accepts one multipart image
// upload, stores it through the configured object store, and returns the URL
// the client embeds in a sticker message.
func HandleUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileMissing))
			return
		}
		defer file.Close()

		if customErr := storage.ValidateFileSize(header.Size); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if customErr := storage.ValidateFileType(header.Filename, mimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := randx.ObjectKey(ext)

		url, err := deps.StorageService.Save(r.Context(), key, mimeType, file)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		data := map[string]string{
			"url": url,
		}
		resp.RespondSuccess(w, r, data)
	}
}
