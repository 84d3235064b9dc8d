package transcriber

import "context"

// Transcriber converts an audio file into a persisted transcript and
// returns the transcript path. Backends are interchangeable behind this
// contract; all failures cross it as typed errors.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
