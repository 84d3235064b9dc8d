package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/internal/notes"
)

type fakeRecorder struct {
	name     string
	capErr   error
	path     string
	recErr   error
	recorded bool
}

func (f *fakeRecorder) Name() string           { return f.name }
func (f *fakeRecorder) CheckCapability() error { return f.capErr }
func (f *fakeRecorder) Record(ctx context.Context, outputDir string) (string, error) {
	f.recorded = true
	if f.recErr != nil {
		return "", f.recErr
	}
	return filepath.Join(outputDir, f.path), nil
}

type fakeTranscriber struct {
	path  string
	err   error
	calls []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls = append(f.calls, audioPath)
	return f.path, f.err
}

type fakeSummarizer struct {
	out string
	err error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return f.out, f.err
}

func newTestPipeline(t *testing.T, rec *fakeRecorder, local, remote *fakeTranscriber, sum *fakeSummarizer) (Pipeline, *notes.Store) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.Base = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	store, err := notes.NewStore(cfg.Paths.Base)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, store, rec, local, remote, sum, logger.New("error")), store
}

func TestRecord(t *testing.T) {
	t.Run("capability failure is a recording error", func(t *testing.T) {
		rec := &fakeRecorder{name: "sox", capErr: errors.New("rec binary not found")}
		p, _ := newTestPipeline(t, rec, &fakeTranscriber{}, &fakeTranscriber{}, &fakeSummarizer{})

		_, err := p.Record(context.Background())
		if apperr.KindOf(err) != apperr.KindRecording {
			t.Errorf("error kind = %v, want KindRecording", apperr.KindOf(err))
		}
		if rec.recorded {
			t.Error("Record should not start capture when the capability check fails")
		}
	})

	t.Run("returns path under recordings dir", func(t *testing.T) {
		rec := &fakeRecorder{name: "alsa", path: "lecture_20250101_120000.wav"}
		p, store := newTestPipeline(t, rec, &fakeTranscriber{}, &fakeTranscriber{}, &fakeSummarizer{})

		path, err := p.Record(context.Background())
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if filepath.Dir(path) != store.RecordingsDir() {
			t.Errorf("recording saved to %s, want %s", filepath.Dir(path), store.RecordingsDir())
		}
	})
}

func TestTranscribeDispatch(t *testing.T) {
	local := &fakeTranscriber{path: "/tmp/t/local.txt"}
	remote := &fakeTranscriber{path: "/tmp/t/remote_deepgram.txt"}
	p, _ := newTestPipeline(t, &fakeRecorder{}, local, remote, &fakeSummarizer{})
	ctx := context.Background()

	if got, err := p.Transcribe(ctx, "a.wav"); err != nil || got != local.path {
		t.Errorf("Transcribe() = %q, %v", got, err)
	}
	if got, err := p.TranscribeRemote(ctx, "a.wav"); err != nil || got != remote.path {
		t.Errorf("TranscribeRemote() = %q, %v", got, err)
	}
	if len(local.calls) != 1 || len(remote.calls) != 1 {
		t.Errorf("backend calls = %d local / %d remote, want 1 each", len(local.calls), len(remote.calls))
	}
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	summary := "Summary:\nKey ideas.\n\nStudy Tips:\n- Review."

	t.Run("appends summary and exports docx", func(t *testing.T) {
		sum := &fakeSummarizer{out: summary}
		p, store := newTestPipeline(t, &fakeRecorder{}, &fakeTranscriber{}, &fakeTranscriber{}, sum)

		path, err := store.WriteTranscript("lecture1", "The lecture body.")
		if err != nil {
			t.Fatal(err)
		}

		got, err := p.Summarize(ctx, path, false)
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if got != summary {
			t.Errorf("Summarize() = %q", got)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "The lecture body." + notes.SummaryDelimiter + summary
		if string(data) != want {
			t.Errorf("transcript after append = %q, want %q", data, want)
		}

		docx := filepath.Join(store.SummariesDir(), "lecture1.docx")
		if _, err := os.Stat(docx); err != nil {
			t.Errorf("docx copy missing: %v", err)
		}
	})

	t.Run("duplicate append refused without force", func(t *testing.T) {
		sum := &fakeSummarizer{out: summary}
		p, store := newTestPipeline(t, &fakeRecorder{}, &fakeTranscriber{}, &fakeTranscriber{}, sum)

		path, err := store.WriteTranscript("lecture2", "Body.")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Summarize(ctx, path, false); err != nil {
			t.Fatal(err)
		}

		_, err = p.Summarize(ctx, path, false)
		if apperr.KindOf(err) != apperr.KindFile {
			t.Errorf("error kind = %v, want KindFile", apperr.KindOf(err))
		}
		if !strings.Contains(err.Error(), "--force") {
			t.Errorf("error %q should mention the force override", err)
		}

		if _, err := p.Summarize(ctx, path, true); err != nil {
			t.Errorf("Summarize() with force error = %v", err)
		}
	})

	t.Run("missing transcript is a file error", func(t *testing.T) {
		p, store := newTestPipeline(t, &fakeRecorder{}, &fakeTranscriber{}, &fakeTranscriber{}, &fakeSummarizer{out: summary})

		_, err := p.Summarize(ctx, filepath.Join(store.TranscriptsDir(), "missing.txt"), false)
		if apperr.KindOf(err) != apperr.KindFile {
			t.Errorf("error kind = %v, want KindFile", apperr.KindOf(err))
		}
	})

	t.Run("summarizer failure propagates without touching the file", func(t *testing.T) {
		sum := &fakeSummarizer{err: apperr.API("quota exhausted")}
		p, store := newTestPipeline(t, &fakeRecorder{}, &fakeTranscriber{}, &fakeTranscriber{}, sum)

		path, err := store.WriteTranscript("lecture3", "Body.")
		if err != nil {
			t.Fatal(err)
		}

		_, err = p.Summarize(ctx, path, false)
		if apperr.KindOf(err) != apperr.KindAPI {
			t.Errorf("error kind = %v, want KindAPI", apperr.KindOf(err))
		}
		data, _ := os.ReadFile(path)
		if string(data) != "Body." {
			t.Errorf("transcript modified after a failed summarization: %q", data)
		}
	})
}
