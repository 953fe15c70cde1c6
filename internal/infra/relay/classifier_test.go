package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scribe-api/internal/domain/dto"
)

func TestClassifierStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCode string
	}{
		{"timed out", `{"error": "Request timed out"}`, dto.CodeTimeout},
		{"timeout", `{"error": "upstream timeout while processing"}`, dto.CodeTimeout},
		{"timeout error class", `{"error": "TimeoutError: deadline reached"}`, dto.CodeTimeout},
		{"busy", `{"error": "The model is too busy right now"}`, dto.CodeBusy},
		{"anything else", `{"error": "could not decode audio"}`, dto.CodeTranscriptionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Classifier
			got := c.Next(tt.line)
			assert.Equal(t, KindError, got.Kind)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Text)
		})
	}
}

func TestClassifierJSONWithoutErrorFieldIsTranscript(t *testing.T) {
	var c Classifier
	got := c.Next(`{"text": "hello"}`)
	assert.Equal(t, KindTranscript, got.Kind)
	assert.Equal(t, `{"text": "hello"}`, got.Text)
}

func TestClassifierSummaryMarkerAndContinuation(t *testing.T) {
	var c Classifier

	first := c.Next("SUMMARY: a summary")
	assert.Equal(t, KindSummary, first.Kind)
	assert.Equal(t, "a summary", first.Text)

	// After the marker, plain lines continue the summary.
	second := c.Next(" continues")
	assert.Equal(t, KindSummary, second.Kind)
	assert.Equal(t, "continues", second.Text)
}

func TestClassifierSentinel(t *testing.T) {
	var c Classifier
	got := c.Next("  transcription complete  ")
	assert.Equal(t, KindSentinel, got.Kind)
}

func TestClassifierSentinelInsideSummaryStaysSummary(t *testing.T) {
	var c Classifier
	c.Next("SUMMARY: start")
	got := c.Next("transcription complete")
	assert.Equal(t, KindSummary, got.Kind)
}

func TestClassifierTranscriptChunkKeepsRawText(t *testing.T) {
	var c Classifier
	got := c.Next("Hello world")
	assert.Equal(t, KindTranscript, got.Kind)
	assert.Equal(t, "Hello world", got.Text)
}
