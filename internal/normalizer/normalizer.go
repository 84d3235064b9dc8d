// Package normalizer ensures an audio file is in a format the speech
// engine accepts, converting through ffmpeg when it is not.
package normalizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// acceptedExts are handed to the speech engine unchanged.
var acceptedExts = map[string]bool{
	".mp3": true,
	".wav": true,
}

type Normalizer struct {
	executor executor.Executor
	logger   logger.Logger
}

func New(exec executor.Executor, log logger.Logger) *Normalizer {
	return &Normalizer{executor: exec, logger: log}
}

// EnsureCompatible returns a path to audio the speech engine accepts.
// Accepted extensions pass through unchanged. Anything else is converted
// to a temporary mono 16kHz WAV; temporary=true means the caller owns
// deletion, and only after successful consumption.
func (n *Normalizer) EnsureCompatible(ctx context.Context, path string) (string, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if acceptedExts[ext] {
		return path, false, nil
	}

	if _, err := n.executor.Look("ffmpeg"); err != nil {
		return "", false, apperr.Transcription("ffmpeg is not installed or not found in system PATH")
	}

	tmp, err := os.CreateTemp("", "lectura-*.wav")
	if err != nil {
		return "", false, apperr.Wrap(apperr.KindTranscription, err, "create temp WAV")
	}
	tmpPath := tmp.Name()
	tmp.Close()

	n.logger.Info(ctx, "Converting %s to 16kHz mono WAV", path)

	// -ar 16000: sample rate required by the speech engine
	// -ac 1: mono
	// -y: overwrite the temp file created above
	args := []string{
		"-i", path,
		"-ar", "16000",
		"-ac", "1",
		"-y",
		tmpPath,
	}
	if _, err := n.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		os.Remove(tmpPath)
		return "", false, apperr.Wrap(apperr.KindTranscription, err, "convert audio to WAV")
	}

	n.logger.Debug(ctx, "Converted audio written to %s", tmpPath)
	return tmpPath, true, nil
}
