package relay

import (
	"encoding/json"
	"net/http"

	"scribe-api/internal/domain/dto"
)

// eventWriter serializes stream events as newline-delimited JSON, flushing
// after every event so the client sees partial transcripts immediately.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventWriter(w http.ResponseWriter) *eventWriter {
	flusher, _ := w.(http.Flusher)
	return &eventWriter{w: w, flusher: flusher}
}

func (ew *eventWriter) Transcript(data string) {
	ew.emit(dto.StreamEvent{Type: dto.EventTranscript, Data: data})
}

func (ew *eventWriter) Summary(data string) {
	ew.emit(dto.StreamEvent{Type: dto.EventSummary, Data: data})
}

func (ew *eventWriter) Error(code string, data string) {
	ew.emit(dto.StreamEvent{Type: dto.EventError, Data: data, Code: code})
}

func (ew *eventWriter) emit(event dto.StreamEvent) {
	line, err := json.Marshal(event)
	if err != nil {
		return
	}
	ew.w.Write(append(line, '\n'))
	if ew.flusher != nil {
		ew.flusher.Flush()
	}
}
