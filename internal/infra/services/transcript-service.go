package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"scribe-api/internal/domain/dto"
	"scribe-api/internal/domain/entities"
	"scribe-api/internal/domain/interfaces/repository"
	repoconstants "scribe-api/internal/domain/interfaces/repository/constants"
	"scribe-api/internal/infra/logger"
)

var (
	ErrNotFound = errors.New("transcript not found")
	ErrNotOwned = errors.New("transcript belongs to another user")
)

// ValidationError lists the required fields missing from a create request.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing the following fields: %s", strings.Join(e.MissingFields, ", "))
}

const snippetLength = 100

// Snippet derives the dashboard preview from a transcription.
func Snippet(transcription string) string {
	runes := []rune(transcription)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes)
}

// TranscriptService is the service responsible for transcript business
// logic: CRUD plus the ownership checks guarding every per-document
// operation.
type TranscriptService struct {
	TranscriptRepository repository.Repository[entities.Transcript]
	Logger               *logger.Logger
}

func NewTranscriptService(transcriptRepository repository.Repository[entities.Transcript], logger *logger.Logger) *TranscriptService {
	return &TranscriptService{
		TranscriptRepository: transcriptRepository,
		Logger:               logger,
	}
}

// List returns the user's transcripts, newest first, projected down to the
// dashboard fields.
func (ts *TranscriptService) List(ctx context.Context, userID string) ([]dto.TranscriptListItem, error) {
	transcripts, err := ts.TranscriptRepository.FindByUser(ctx, repoconstants.TRANSCRIPT_COLLECTION, userID)
	if err != nil {
		ts.Logger.Error(fmt.Sprintf("Failed to list transcripts for user '%s': %v", userID, err))
		return nil, err
	}

	items := make([]dto.TranscriptListItem, 0, len(transcripts))
	for _, t := range transcripts {
		items = append(items, dto.TranscriptListItem{
			ID:        t.ID.Hex(),
			Title:     t.Title,
			Snippet:   t.Snippet,
			CreatedAt: t.CreatedAt,
		})
	}
	return items, nil
}

// Get fetches one transcript after verifying ownership.
func (ts *TranscriptService) Get(ctx context.Context, userID string, id string) (entities.Transcript, error) {
	return ts.findOwned(ctx, userID, id)
}

// Create validates and inserts an explicitly provided transcript.
func (ts *TranscriptService) Create(ctx context.Context, userID string, input dto.CreateTranscriptRequest) (entities.Transcript, error) {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Snippet == "" {
		missing = append(missing, "snippet")
	}
	if input.Transcription == "" {
		missing = append(missing, "transcription")
	}
	if len(missing) > 0 {
		return entities.Transcript{}, &ValidationError{MissingFields: missing}
	}

	transcript := entities.Transcript{
		Title:         input.Title,
		Snippet:       input.Snippet,
		Transcription: input.Transcription,
		Summary:       input.Summary,
		UserID:        userID,
	}

	created, err := ts.TranscriptRepository.Create(ctx, repoconstants.TRANSCRIPT_COLLECTION, transcript)
	if err != nil {
		ts.Logger.Error(fmt.Sprintf("Failed to create transcript for user '%s': %v", userID, err))
		return entities.Transcript{}, err
	}
	return created, nil
}

// Update patches the whitelisted fields on an owned transcript. Replacing
// the transcription also recomputes the snippet.
func (ts *TranscriptService) Update(ctx context.Context, userID string, id string, input dto.UpdateTranscriptRequest) (entities.Transcript, error) {
	if _, err := ts.findOwned(ctx, userID, id); err != nil {
		return entities.Transcript{}, err
	}

	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Summary != nil {
		fields["summary"] = *input.Summary
	}
	if input.Transcription != nil {
		fields["transcription"] = *input.Transcription
		fields["snippet"] = Snippet(*input.Transcription)
	}
	if len(fields) == 0 {
		return ts.findOwned(ctx, userID, id)
	}

	updated, err := ts.TranscriptRepository.UpdateFields(ctx, repoconstants.TRANSCRIPT_COLLECTION, id, fields)
	if err != nil {
		ts.Logger.Error(fmt.Sprintf("Failed to update transcript '%s': %v", id, err))
		return entities.Transcript{}, err
	}
	return updated, nil
}

// Delete removes an owned transcript and returns it.
func (ts *TranscriptService) Delete(ctx context.Context, userID string, id string) (entities.Transcript, error) {
	transcript, err := ts.findOwned(ctx, userID, id)
	if err != nil {
		return entities.Transcript{}, err
	}

	if err := ts.TranscriptRepository.Delete(ctx, repoconstants.TRANSCRIPT_COLLECTION, id); err != nil {
		ts.Logger.Error(fmt.Sprintf("Failed to delete transcript '%s': %v", id, err))
		return entities.Transcript{}, err
	}
	return transcript, nil
}

func (ts *TranscriptService) findOwned(ctx context.Context, userID string, id string) (entities.Transcript, error) {
	transcript, err := ts.TranscriptRepository.FindByID(ctx, repoconstants.TRANSCRIPT_COLLECTION, id)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			ts.Logger.Debug(fmt.Sprintf("Lookup failed for transcript '%s': %v", id, err))
		}
		return entities.Transcript{}, ErrNotFound
	}

	if transcript.UserID != userID {
		return entities.Transcript{}, ErrNotOwned
	}
	return transcript, nil
}
