package dto

import "time"

type CreateTranscriptRequest struct {
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	Transcription string `json:"transcription"`
	Summary       string `json:"summary"`
}

// UpdateTranscriptRequest carries the patchable fields. Pointers
// distinguish "leave untouched" from "set to empty".
type UpdateTranscriptRequest struct {
	Title         *string `json:"title"`
	Summary       *string `json:"summary"`
	Transcription *string `json:"transcription"`
}

// TranscriptDetail is the single-transcript projection: the full text
// and summary, without ownership or bookkeeping fields.
type TranscriptDetail struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	Transcription string `json:"transcription"`
	Summary       string `json:"summary,omitempty"`
}

// TranscriptListItem is the dashboard projection: no transcription body.
type TranscriptListItem struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"createdAt"`
}
