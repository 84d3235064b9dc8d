package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/notes"
	"github.com/nguyentantai21042004/lectura/internal/summarizer"
	"github.com/nguyentantai21042004/lectura/internal/watcher"
)

// Record captures audio until ctx is cancelled. Cancellation is the
// normal way a recording session ends; the partial file is kept.
func (p *implPipeline) Record(ctx context.Context) (string, error) {
	if err := p.recorder.CheckCapability(); err != nil {
		return "", apperr.Wrap(apperr.KindRecording, err, "recorder unavailable")
	}

	p.logger.Info(ctx, "Recording with %s backend. Press Ctrl+C to stop.", p.recorder.Name())
	start := time.Now()

	path, err := p.recorder.Record(ctx, p.store.RecordingsDir())
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Recording saved after %s: %s", time.Since(start).Round(time.Second), path)
	return path, nil
}

// Transcribe runs the local speech-to-text backend on audioPath.
func (p *implPipeline) Transcribe(ctx context.Context, audioPath string) (string, error) {
	start := time.Now()

	transcriptPath, err := p.local.Transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Transcription completed in %s: %s", time.Since(start).Round(time.Second), transcriptPath)
	return transcriptPath, nil
}

// TranscribeRemote transcribes audioPath via the remote API.
func (p *implPipeline) TranscribeRemote(ctx context.Context, audioPath string) (string, error) {
	start := time.Now()

	transcriptPath, err := p.remote.Transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Remote transcription completed in %s: %s", time.Since(start).Round(time.Second), transcriptPath)
	return transcriptPath, nil
}

// Summarize reads the transcript at transcriptPath, generates a summary
// and appends it to the same file. A docx copy goes to the summaries
// directory; its failure is non-fatal.
func (p *implPipeline) Summarize(ctx context.Context, transcriptPath string, force bool) (string, error) {
	if !p.store.Exists(transcriptPath) {
		return "", apperr.File("transcript not found: %s", transcriptPath)
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindFile, err, "read transcript")
	}

	summary, err := p.summarizer.Summarize(ctx, string(data))
	if err != nil {
		return "", err
	}

	if err := p.store.AppendSummary(transcriptPath, summary, force); err != nil {
		if errors.Is(err, notes.ErrSummaryExists) {
			return "", apperr.File("%s already contains a summary section; re-run with --force to append anyway", transcriptPath)
		}
		return "", apperr.Wrap(apperr.KindFile, err, "append summary")
	}

	stem := notes.Stem(transcriptPath)
	docxPath := filepath.Join(p.store.SummariesDir(), stem+".docx")
	if err := summarizer.WriteDocx(stem, summary, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to export docx copy: %v", err)
	} else {
		p.logger.Info(ctx, "Summary exported: %s", docxPath)
	}

	return summary, nil
}

// Watch transcribes new recordings as they appear until ctx is
// cancelled. Cancellation is a clean stop, not an error.
func (p *implPipeline) Watch(ctx context.Context) error {
	handler := func(ctx context.Context, filePath string) error {
		_, err := p.Transcribe(ctx, filePath)
		return err
	}

	w, err := watcher.New(p.store.RecordingsDir(), handler, p.logger, p.cfg.Watch.MaxConcurrent)
	if err != nil {
		return apperr.Wrap(apperr.KindFile, err, "start watcher")
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
