package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/relay"
	"scribe-api/internal/infra/storage"
	"scribe-api/internal/middleware"
)

// fallbackUserID owns transcripts saved when auth context is unexpectedly
// absent during finalization.
const fallbackUserID = "default_user"

type UploadHandlers struct {
	Logger   *logger.Logger
	Uploads  *storage.UploadStore
	Relay    *relay.Relay
	maxBytes int64
}

func NewUploadHandlers(logger *logger.Logger, uploads *storage.UploadStore, rl *relay.Relay, maxBytes int64) *UploadHandlers {
	return &UploadHandlers{Logger: logger, Uploads: uploads, Relay: rl, maxBytes: maxBytes}
}

// Upload accepts one audio file and streams transcription events back while
// the external service processes it. Validation failures are plain 4xx JSON;
// once streaming starts, errors travel inside the stream instead.
func (uh *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the multipart framing around the audio payload.
	r.Body = http.MaxBytesReader(w, r.Body, uh.maxBytes+1024*1024)

	file, header, err := r.FormFile("audioFile")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "audio/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file type"})
		return
	}

	upload, err := uh.Uploads.Save(file, header)
	if err != nil {
		uh.Logger.Warn(fmt.Sprintf("Rejected upload %s: %v", header.Filename, err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	uh.Logger.Info(fmt.Sprintf("Starting transcription for upload %s (%s, %d bytes)", upload.ID, upload.Filename, upload.Size))

	userID := middleware.UserIDOr(r, fallbackUserID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	uh.Relay.Run(r.Context(), w, upload, userID)
}
