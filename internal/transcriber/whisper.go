package transcriber

import (
	"context"
	"os"
	"strings"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/internal/normalizer"
	"github.com/nguyentantai21042004/lectura/internal/notes"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// whisperTranscriber runs the local whisper.cpp CLI.
type whisperTranscriber struct {
	cfg        *config.WhisperConfig
	normalizer *normalizer.Normalizer
	store      *notes.Store
	executor   executor.Executor
	logger     logger.Logger
}

// NewWhisper creates the local speech-to-text backend. It works without
// any credential.
func NewWhisper(cfg *config.WhisperConfig, norm *normalizer.Normalizer, store *notes.Store, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{
		cfg:        cfg,
		normalizer: norm,
		store:      store,
		executor:   exec,
		logger:     log,
	}
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if !t.store.Exists(audioPath) {
		return "", apperr.File("file not found: %s", audioPath)
	}

	inputPath, temporary, err := t.normalizer.EnsureCompatible(ctx, audioPath)
	if err != nil {
		return "", err
	}

	if _, err := t.executor.Look(t.cfg.BinaryPath); err != nil {
		if temporary {
			os.Remove(inputPath)
		}
		return "", apperr.Transcription("whisper binary %s not found; install whisper.cpp and set whisper.binary_path", t.cfg.BinaryPath)
	}

	t.logger.Info(ctx, "Transcribing %s with model %s", inputPath, t.cfg.ModelPath)

	// -nt: no timestamps, stdout carries plain transcript text
	// -np: suppress progress output
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", inputPath,
		"-l", t.cfg.Language,
		"-nt",
		"-np",
	}
	out, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...)
	if err != nil {
		if temporary {
			os.Remove(inputPath)
		}
		return "", apperr.Wrap(apperr.KindTranscription, err, "whisper transcription")
	}

	transcriptPath, err := t.store.WriteTranscript(notes.Stem(audioPath), strings.TrimSpace(out))
	if err != nil {
		if temporary {
			os.Remove(inputPath)
		}
		return "", apperr.Wrap(apperr.KindTranscription, err, "write transcript")
	}

	// The temp WAV is deleted only after its content has been consumed
	// and the transcript persisted.
	if temporary {
		if err := os.Remove(inputPath); err != nil {
			t.logger.Warn(ctx, "Failed to remove temp audio %s: %v", inputPath, err)
		}
	}

	t.logger.Info(ctx, "Transcript written to %s", transcriptPath)
	return transcriptPath, nil
}
