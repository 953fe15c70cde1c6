package relay

import (
	"encoding/json"
	"strings"

	"scribe-api/internal/domain/dto"
)

type EventKind int

const (
	KindTranscript EventKind = iota
	KindSummary
	KindSentinel
	KindError
)

const (
	summaryMarker = "SUMMARY:"
	sentinelLine  = "transcription complete"
)

// Classified is one upstream line sorted into the event it produces.
type Classified struct {
	Kind EventKind
	Code string // set for KindError
	Text string
}

// Classifier sorts upstream lines one at a time. It carries one piece of
// state: once a summary marker has been seen, later plain lines continue
// the summary instead of the transcript.
type Classifier struct {
	inSummary bool
}

// Next classifies a single upstream line. Structured errors win over
// everything else.
func (c *Classifier) Next(line string) Classified {
	trimmed := strings.TrimSpace(line)

	var upstream struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &upstream); err == nil && upstream.Error != "" {
		return Classified{Kind: KindError, Code: classifyErrorCode(upstream.Error), Text: upstream.Error}
	}

	if strings.HasPrefix(trimmed, summaryMarker) || c.inSummary {
		c.inSummary = true
		return Classified{Kind: KindSummary, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, summaryMarker))}
	}

	if trimmed == sentinelLine {
		return Classified{Kind: KindSentinel}
	}

	return Classified{Kind: KindTranscript, Text: line}
}

func classifyErrorCode(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "timed out") || strings.Contains(lower, "timeout"):
		return dto.CodeTimeout
	case strings.Contains(lower, "too busy"):
		return dto.CodeBusy
	default:
		return dto.CodeTranscriptionError
	}
}
