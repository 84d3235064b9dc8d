package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/internal/notes"
)

// deepgramTranscriber submits prerecorded audio to the Deepgram listen
// API. Transcripts carry a _deepgram filename suffix so the local and
// remote backend can coexist for the same source file.
type deepgramTranscriber struct {
	apiKey   string
	model    string
	language string
	baseURL  string
	store    *notes.Store
	client   *http.Client
	logger   logger.Logger
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

var contentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// NewDeepgram creates the remote speech-to-text backend. A missing
// credential is reported lazily, before any network I/O, at first use.
func NewDeepgram(cfg *config.DeepgramConfig, store *notes.Store, log logger.Logger) Transcriber {
	return &deepgramTranscriber{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		language: cfg.Language,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		store:    store,
		client:   &http.Client{Timeout: 10 * time.Minute},
		logger:   log,
	}
}

func (t *deepgramTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if t.apiKey == "" {
		return "", apperr.API("Deepgram client not initialized; set the DEEPGRAM_API_KEY environment variable")
	}
	if !t.store.Exists(audioPath) {
		return "", apperr.File("file not found: %s", audioPath)
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindFile, err, "open audio file")
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", t.model)
	if t.language != "" {
		q.Set("language", t.language)
	}
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	q.Set("diarize", "true")
	q.Set("utterances", "true")
	endpoint := fmt.Sprintf("%s/v1/listen?%s", t.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, f)
	if err != nil {
		return "", apperr.Wrap(apperr.KindAPI, err, "build Deepgram request")
	}
	req.Header.Set("Authorization", "Token "+t.apiKey)
	req.Header.Set("Content-Type", contentTypeFor(audioPath))

	t.logger.Info(ctx, "Sending %s to Deepgram (model %s)", audioPath, t.model)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindAPI, err, "Deepgram request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperr.API("Deepgram returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperr.Wrap(apperr.KindTranscription, err, "decode Deepgram response")
	}
	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", apperr.Transcription("empty Deepgram response for %s", audioPath)
	}
	transcript := parsed.Results.Channels[0].Alternatives[0].Transcript

	transcriptPath, err := t.store.WriteTranscript(notes.Stem(audioPath)+"_deepgram", transcript)
	if err != nil {
		return "", apperr.Wrap(apperr.KindTranscription, err, "write transcript")
	}

	t.logger.Info(ctx, "Transcript written to %s", transcriptPath)
	return transcriptPath, nil
}

func contentTypeFor(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}
