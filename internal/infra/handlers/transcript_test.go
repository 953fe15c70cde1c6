package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe-api/internal/domain/entities"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/services"
	"scribe-api/internal/middleware"
)

type fixedTranscriptService struct {
	noopTranscriptService
	transcript entities.Transcript
	err        error
}

func (s fixedTranscriptService) Get(context.Context, string, string) (entities.Transcript, error) {
	return s.transcript, s.err
}

func getRequest(id, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/transcripts/"+id, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestGetReturnsProjection(t *testing.T) {
	id := primitive.NewObjectID()
	svc := fixedTranscriptService{transcript: entities.Transcript{
		ID:            id,
		Title:         "Team standup",
		Snippet:       "we talked about",
		Transcription: "we talked about the roadmap",
		Summary:       "roadmap discussion",
		UserID:        "auth0|owner",
		CreatedAt:     time.Now(),
	}}
	handler := NewTranscriptHandlers(logger.NewLogger(context.Background(), false), svc)

	rec := httptest.NewRecorder()
	handler.Get(rec, getRequest(id.Hex(), "auth0|owner"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, id.Hex(), body["_id"])
	assert.Equal(t, "Team standup", body["title"])
	assert.Equal(t, "we talked about the roadmap", body["transcription"])
	assert.Equal(t, "roadmap discussion", body["summary"])
	assert.NotContains(t, body, "userId")
	assert.NotContains(t, body, "snippet")
	assert.NotContains(t, body, "createdAt")
}

func TestGetOmitsEmptySummary(t *testing.T) {
	id := primitive.NewObjectID()
	svc := fixedTranscriptService{transcript: entities.Transcript{
		ID:            id,
		Title:         "Untitled Transcript",
		Transcription: "just words",
		UserID:        "auth0|owner",
	}}
	handler := NewTranscriptHandlers(logger.NewLogger(context.Background(), false), svc)

	rec := httptest.NewRecorder()
	handler.Get(rec, getRequest(id.Hex(), "auth0|owner"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "summary")
}

func TestGetMissingTranscript(t *testing.T) {
	svc := fixedTranscriptService{err: services.ErrNotFound}
	handler := NewTranscriptHandlers(logger.NewLogger(context.Background(), false), svc)

	rec := httptest.NewRecorder()
	handler.Get(rec, getRequest(primitive.NewObjectID().Hex(), "auth0|owner"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No such transcript")
}

func TestGetForeignTranscript(t *testing.T) {
	svc := fixedTranscriptService{err: services.ErrNotOwned}
	handler := NewTranscriptHandlers(logger.NewLogger(context.Background(), false), svc)

	rec := httptest.NewRecorder()
	handler.Get(rec, getRequest(primitive.NewObjectID().Hex(), "auth0|intruder"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not your transcript")
}
