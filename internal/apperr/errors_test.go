package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"recording", Recording("no device"), KindRecording},
		{"transcription", Transcription("conversion failed"), KindTranscription},
		{"summarization", Summarization("backend down"), KindSummarization},
		{"api", API("missing key"), KindAPI},
		{"file", File("not found"), KindFile},
		{"untyped", errors.New("boom"), KindUnknown},
		{"wrapped deeper", fmt.Errorf("outer: %w", File("gone")), KindFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindTranscription, cause, "writing transcript")

	if KindOf(err) != KindTranscription {
		t.Errorf("KindOf() = %v, want KindTranscription", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, should preserve the cause message", err.Error())
	}
}

func TestWrapKeepsExistingKind(t *testing.T) {
	err := Wrap(KindTranscription, API("key rejected"), "remote call")
	if KindOf(err) != KindAPI {
		t.Errorf("Wrap should not reclassify an already typed error, got %v", KindOf(err))
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindFile, nil, "noop") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
	}{
		{"transcription", Transcription("whisper exited"), "Transcription failed:"},
		{"summarization", Summarization("model gone"), "Summarization failed:"},
		{"recording", Recording("no mic"), "Recording failed:"},
		{"api", API("DEEPGRAM_API_KEY not set"), "API error:"},
		{"file", File("missing.wav not found"), "File error:"},
		{"unknown", errors.New("weird"), "An unexpected error occurred:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := UserMessage(tt.err)
			if !strings.HasPrefix(msg, tt.prefix) {
				t.Errorf("UserMessage() = %q, want prefix %q", msg, tt.prefix)
			}
		})
	}
}
