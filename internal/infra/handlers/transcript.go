package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"scribe-api/internal/domain/dto"
	Iservices "scribe-api/internal/domain/interfaces/services"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/services"
	"scribe-api/internal/middleware"
)

type TranscriptHandlers struct {
	Logger            *logger.Logger
	TranscriptService Iservices.ITranscriptService
}

func NewTranscriptHandlers(logger *logger.Logger, transcriptService Iservices.ITranscriptService) *TranscriptHandlers {
	return &TranscriptHandlers{Logger: logger, TranscriptService: transcriptService}
}

// List returns the requester's transcripts: title, snippet and creation
// date only, newest first.
func (th *TranscriptHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	items, err := th.TranscriptService.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve transcripts"})
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (th *TranscriptHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	id := mux.Vars(r)["id"]

	transcript, err := th.TranscriptService.Get(r.Context(), userID, id)
	if err != nil {
		th.respondServiceError(w, err)
		return
	}

	// Readers get the text and summary only, never ownership fields.
	writeJSON(w, http.StatusOK, dto.TranscriptDetail{
		ID:            transcript.ID.Hex(),
		Title:         transcript.Title,
		Transcription: transcript.Transcription,
		Summary:       transcript.Summary,
	})
}

func (th *TranscriptHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var input dto.CreateTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	defer r.Body.Close()

	transcript, err := th.TranscriptService.Create(r.Context(), userID, input)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":       "Missing the following fields: ",
				"emptyFields": validation.MissingFields,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, transcript)
}

func (th *TranscriptHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	id := mux.Vars(r)["id"]

	var input dto.UpdateTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	defer r.Body.Close()

	transcript, err := th.TranscriptService.Update(r.Context(), userID, id, input)
	if err != nil {
		th.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transcript)
}

func (th *TranscriptHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	id := mux.Vars(r)["id"]

	transcript, err := th.TranscriptService.Delete(r.Context(), userID, id)
	if err != nil {
		th.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transcript)
}

func (th *TranscriptHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No such transcript"})
	case errors.Is(err, services.ErrNotOwned):
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Unauthorized: Not your transcript"})
	default:
		th.Logger.Error(fmt.Sprintf("Transcript operation failed: %v", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
