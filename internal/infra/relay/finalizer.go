package relay

import (
	"context"
	"fmt"
	"time"

	"scribe-api/internal/domain/dto"
	Iservices "scribe-api/internal/domain/interfaces/services"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/services"
	"scribe-api/internal/infra/storage"
)

const (
	defaultTitle    = "Untitled Transcript"
	finalizeTimeout = 10 * time.Second
)

// Finalizer persists the accumulated result of a finished relay and removes
// the request's upload file. It runs after the response stream has closed,
// so its failures are logged and never surfaced to the client.
type Finalizer struct {
	Logger      *logger.Logger
	Transcripts Iservices.ITranscriptService
	Uploads     *storage.UploadStore
}

func NewFinalizer(logger *logger.Logger, transcripts Iservices.ITranscriptService, uploads *storage.UploadStore) *Finalizer {
	return &Finalizer{Logger: logger, Transcripts: transcripts, Uploads: uploads}
}

// Finalize saves the transcript, then cleans up regardless of the save
// outcome.
func (f *Finalizer) Finalize(userID string, transcription string, summary string, upload storage.Upload) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	_, err := f.Transcripts.Create(ctx, userID, dto.CreateTranscriptRequest{
		Title:         defaultTitle,
		Snippet:       services.Snippet(transcription),
		Transcription: transcription,
		Summary:       summary,
	})
	if err != nil {
		f.Logger.Error(fmt.Sprintf("Failed to save transcript for upload %s: %v", upload.ID, err))
	} else {
		f.Logger.Info(fmt.Sprintf("Transcript saved for upload %s", upload.ID))
	}

	f.Cleanup(upload)
}

// Cleanup removes this request's upload file only; concurrent uploads keep
// theirs.
func (f *Finalizer) Cleanup(upload storage.Upload) {
	if err := f.Uploads.Remove(upload); err != nil {
		f.Logger.Error(fmt.Sprintf("Failed to remove upload %s: %v", upload.ID, err))
	}
}
