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

// alsaRecorder drives arecord on Linux.
type alsaRecorder struct {
	cfg      *config.RecordingConfig
	executor executor.Executor
	logger   logger.Logger
}

func (r *alsaRecorder) Name() string { return "alsa" }

func (r *alsaRecorder) CheckCapability() error {
	if _, err := r.executor.Look("arecord"); err != nil {
		return apperr.Recording("ALSA utilities are not installed; install them with: sudo apt-get install alsa-utils (or your distro's equivalent)")
	}
	return nil
}

func (r *alsaRecorder) Record(ctx context.Context, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "create recordings directory")
	}
	outputFile := filepath.Join(outputDir, timestampedName(".wav"))

	r.logger.Info(ctx, "Starting arecord recording to %s", outputFile)

	cmd := exec.Command("arecord",
		"-f", "cd",
		"-c", strconv.Itoa(r.cfg.Channels),
		"-r", strconv.Itoa(r.cfg.SampleRate),
		outputFile,
	)
	return waitForCapture(ctx, cmd, outputFile, r.logger)
}
