package relay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"scribe-api/internal/domain/dto"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/storage"
)

// Relay bridges one inbound upload request to the transcription service,
// re-emitting the upstream line stream as client events while accumulating
// the final transcript and summary.
type Relay struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Finalizer  *Finalizer
}

func NewRelay(logger *logger.Logger, httpClient *http.Client, baseURL string, timeout time.Duration, finalizer *Finalizer) *Relay {
	return &Relay{
		Logger:     logger,
		HttpClient: httpClient,
		BaseURL:    baseURL,
		Timeout:    timeout,
		Finalizer:  finalizer,
	}
}

// Run performs the complete relay for one upload. The response must already
// be committed to streaming mode; every outcome, error paths included, ends
// with the upload's temp file removed.
func (rl *Relay) Run(ctx context.Context, w http.ResponseWriter, upload storage.Upload, userID string) {
	events := newEventWriter(w)

	defer func() {
		if r := recover(); r != nil {
			rl.Logger.Error(fmt.Sprintf("Relay panic: %v", r))
			events.Error(dto.CodeServerError, "internal server error")
			rl.Finalizer.Cleanup(upload)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, rl.Timeout)
	defer cancel()

	resp, err := rl.callTranscriber(ctx, upload)
	if err != nil {
		code, message := dto.CodeConnectionError, "could not reach the transcription service"
		if isTimeout(err) {
			code, message = dto.CodeTimeout, "the transcription service timed out"
		}
		rl.Logger.Error(fmt.Sprintf("Transcriber call failed for upload %s: %v", upload.ID, err))
		events.Error(code, message)
		rl.Finalizer.Cleanup(upload)
		return
	}
	defer resp.Body.Close()

	var (
		transcription strings.Builder
		summary       strings.Builder
		classifier    Classifier
		sentinelSeen  bool
	)

	// The upstream is line oriented but chunk boundaries do not respect
	// lines, so reassemble before classifying.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch ev := classifier.Next(line); ev.Kind {
		case KindError:
			rl.Logger.Warn(fmt.Sprintf("Upstream error for upload %s: %s", upload.ID, ev.Text))
			events.Error(ev.Code, ev.Text)
			rl.Finalizer.Cleanup(upload)
			return
		case KindSummary:
			if ev.Text != "" {
				if summary.Len() > 0 {
					summary.WriteString(" ")
				}
				summary.WriteString(ev.Text)
			}
		case KindSentinel:
			if !sentinelSeen {
				sentinelSeen = true
				transcription.WriteString(".")
				events.Transcript(".")
			}
		case KindTranscript:
			chunk := ev.Text + "\n"
			transcription.WriteString(chunk)
			events.Transcript(chunk)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing to persist, nobody to notify.
			rl.Logger.Info(fmt.Sprintf("Relay for upload %s aborted by client", upload.ID))
			rl.Finalizer.Cleanup(upload)
			return
		}
		code, message := dto.CodeServerError, "error reading the transcription stream"
		if isTimeout(err) {
			code, message = dto.CodeTimeout, "the transcription service timed out"
		}
		rl.Logger.Error(fmt.Sprintf("Stream read failed for upload %s: %v", upload.ID, err))
		events.Error(code, message)
		rl.Finalizer.Cleanup(upload)
		return
	}

	if summary.Len() > 0 {
		events.Summary(summary.String())
	}

	rl.Finalizer.Finalize(userID, transcription.String(), summary.String(), upload)
}

// callTranscriber streams the stored audio to the transcription service as
// multipart form data and returns the incremental response.
func (rl *Relay) callTranscriber(ctx context.Context, upload storage.Upload) (*http.Response, error) {
	file, err := os.Open(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer file.Close()
		part, err := writer.CreateFormFile("audio_file", upload.Filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	url := fmt.Sprintf("%s/process", rl.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := rl.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected HTTP status: %s, response: %s", resp.Status, string(body))
	}

	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
