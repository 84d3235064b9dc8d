package recorder

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// soxRecorder drives the sox "rec" command on macOS.
type soxRecorder struct {
	cfg      *config.RecordingConfig
	executor executor.Executor
	logger   logger.Logger
}

func (r *soxRecorder) Name() string { return "sox" }

func (r *soxRecorder) CheckCapability() error {
	if _, err := r.executor.Look("rec"); err != nil {
		return apperr.Recording("sox is not installed; install it with: brew install sox")
	}
	return nil
}

func (r *soxRecorder) Record(ctx context.Context, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "create recordings directory")
	}
	outputFile := filepath.Join(outputDir, timestampedName(".m4a"))

	r.logger.Info(ctx, "Starting sox recording to %s", outputFile)

	cmd := exec.Command("rec",
		"-q",
		"-c", strconv.Itoa(r.cfg.Channels),
		"-r", strconv.Itoa(r.cfg.SampleRate),
		outputFile,
	)
	return waitForCapture(ctx, cmd, outputFile, r.logger)
}

// waitForCapture runs a blocking capture command. The operator's
// interrupt cancels ctx; that is the normal stop, and the partially
// written file is returned as valid output.
func waitForCapture(ctx context.Context, cmd *exec.Cmd, outputFile string, log logger.Logger) (string, error) {
	if err := cmd.Start(); err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "start capture process")
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Signal(os.Interrupt)
		<-done
		log.Info(ctx, "Recording stopped by user: %s", outputFile)
		return outputFile, nil
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return "", apperr.Wrap(apperr.KindRecording, err, "capture process failed")
		}
		log.Info(ctx, "Recording completed: %s", outputFile)
		return outputFile, nil
	}
}
