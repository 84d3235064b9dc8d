package recorder

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
)

// captureRecorder buffers raw S16 frames from the default capture device
// in memory and serializes them to a WAV container after the session
// ends. Used where no external sampling utility is assumed (Windows).
type captureRecorder struct {
	cfg    *config.RecordingConfig
	logger logger.Logger
}

func (r *captureRecorder) Name() string { return "capture" }

func (r *captureRecorder) CheckCapability() error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return apperr.Recording("cannot access the microphone; grant microphone permission in your OS settings")
	}
	_ = mctx.Uninit()
	mctx.Free()
	return nil
}

func (r *captureRecorder) Record(ctx context.Context, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "create recordings directory")
	}
	outputFile := filepath.Join(outputDir, timestampedName(".wav"))

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return "", apperr.Recording("cannot access the microphone; grant microphone permission in your OS settings")
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	var mu sync.Mutex
	var samples []int

	deviceCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceCfg.Capture.Format = malgo.FormatS16
	deviceCfg.Capture.Channels = uint32(r.cfg.Channels)
	deviceCfg.SampleRate = uint32(r.cfg.SampleRate)

	onData := func(_, pSample []byte, frameCount uint32) {
		mu.Lock()
		for i := 0; i+1 < len(pSample); i += 2 {
			samples = append(samples, int(int16(binary.LittleEndian.Uint16(pSample[i:i+2]))))
		}
		mu.Unlock()
	}

	device, err := malgo.InitDevice(mctx.Context, deviceCfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "open capture device")
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return "", apperr.Wrap(apperr.KindRecording, err, "start capture device")
	}

	r.logger.Info(ctx, "Capturing audio frames to memory (stop with interrupt)")
	<-ctx.Done()
	device.Uninit()

	mu.Lock()
	captured := samples
	mu.Unlock()

	if err := r.writeWAV(outputFile, captured); err != nil {
		return "", err
	}
	r.logger.Info(ctx, "Recording stopped by user: %s", outputFile)
	return outputFile, nil
}

func (r *captureRecorder) writeWAV(path string, samples []int) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.KindRecording, err, "create recording file")
	}
	defer f.Close()

	enc := wav.NewEncoder(f, r.cfg.SampleRate, 16, r.cfg.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: r.cfg.Channels, SampleRate: r.cfg.SampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return apperr.Wrap(apperr.KindRecording, err, "encode WAV")
	}
	if err := enc.Close(); err != nil {
		return apperr.Wrap(apperr.KindRecording, err, "finalize WAV")
	}
	return nil
}
