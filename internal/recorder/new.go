package recorder

import (
	"fmt"
	"runtime"
	"time"

	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// New selects the capture backend for the host operating system.
// The choice is made once per process, never mid-pipeline.
func New(cfg *config.RecordingConfig, exec executor.Executor, log logger.Logger) Recorder {
	return forOS(runtime.GOOS, cfg, exec, log)
}

func forOS(goos string, cfg *config.RecordingConfig, exec executor.Executor, log logger.Logger) Recorder {
	switch goos {
	case "darwin":
		return &soxRecorder{cfg: cfg, executor: exec, logger: log}
	case "linux":
		return &alsaRecorder{cfg: cfg, executor: exec, logger: log}
	default:
		// Windows and anything else: buffered capture through the
		// audio device API, serialized to WAV after the session ends.
		return &captureRecorder{cfg: cfg, logger: log}
	}
}

// timestampedName builds the recording filename for the current time,
// e.g. lecture_20250301_101500.wav.
func timestampedName(ext string) string {
	return fmt.Sprintf("lecture_%s%s", time.Now().Format("20060102_150405"), ext)
}
