package dto

// Event types carried on the newline-delimited JSON upload stream.
const (
	EventTranscript = "transcript"
	EventSummary    = "summary"
	EventError      = "error"
)

// Error codes attached to EventError frames.
const (
	CodeTimeout            = "TIMEOUT"
	CodeBusy               = "BUSY"
	CodeTranscriptionError = "TRANSCRIPTION_ERROR"
	CodeConnectionError    = "CONNECTION_ERROR"
	CodeServerError        = "SERVER_ERROR"
)

// StreamEvent is one line of the chunked upload response.
type StreamEvent struct {
	Type string `json:"type"`
	Data string `json:"data"`
	Code string `json:"code,omitempty"`
}
