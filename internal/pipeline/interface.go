package pipeline

import "context"

// Pipeline defines the top-level lecture processing operations. Each
// call is independent; no state is carried between invocations.
type Pipeline interface {
	// Record captures microphone audio into the recordings directory
	// until ctx is cancelled and returns the saved file path.
	Record(ctx context.Context) (string, error)

	// Transcribe runs local speech-to-text on the audio file and
	// returns the saved transcript path.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// TranscribeRemote transcribes via the remote API and returns the
	// saved transcript path.
	TranscribeRemote(ctx context.Context, audioPath string) (string, error)

	// Summarize generates a summary for the transcript at path and
	// appends it to the file. force overrides the duplicate guard.
	Summarize(ctx context.Context, transcriptPath string, force bool) (string, error)

	// Watch monitors the recordings directory and transcribes new audio
	// files until ctx is cancelled.
	Watch(ctx context.Context) error
}
