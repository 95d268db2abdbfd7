package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/upload"
)

// maxUploadSize caps incoming media files at 32 MiB.
const maxUploadSize = 32 << 20

// Uploader abstracts the media gateway client.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

var _ Uploader = (*upload.Client)(nil)

func UploadHandler(log *slog.Logger, uploader Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UploadHandler"
		logger := log.With(slog.String("op", op))

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "invalid multipart request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		url, err := uploader.Upload(r.Context(), header.Filename, file)
		if err != nil {
			logger.Error("upload failed",
				slog.String("filename", header.Filename), slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"url": url})
	}
}
