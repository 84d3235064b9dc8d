package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lectura/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	w := &implWatcher{}

	cases := []struct {
		path string
		want bool
	}{
		{"lecture_20250101_120000.wav", true},
		{"lecture.MP3", true},
		{"talk.m4a", true},
		{"seminar.ogg", true},
		{"class.flac", true},
		{"video.mp4", false},
		{"notes.txt", false},
		{"archive", false},
	}
	for _, tc := range cases {
		if got := w.isAudioFile(tc.path); got != tc.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestWatcherDrainsInFlightWorkOnCancel(t *testing.T) {
	dir := t.TempDir()

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	finished := false
	handler := func(ctx context.Context, filePath string) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		mu.Lock()
		finished = true
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)

	// The first file occupies the single slot; the second leaves the
	// watcher blocked on the semaphore when the cancel arrives.
	for _, name := range []string{"first.wav", "second.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never started")
	}
	cancel()

	select {
	case <-done:
		t.Fatal("Start() returned while a handler was still running")
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after the handler finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if !finished {
		t.Error("in-flight handler was not drained before shutdown")
	}
}

func TestWatcherHandlesNewRecording(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, filePath string) error {
		mu.Lock()
		handled = append(handled, filePath)
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher time to register before creating the file.
	time.Sleep(100 * time.Millisecond)

	audioPath := filepath.Join(dir, "lecture_20250101_120000.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "ignore.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler was not invoked for the new recording")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, p := range handled {
		if p == txtPath {
			t.Error("non-audio file was handed to the handler")
		}
	}
	if handled[0] != audioPath {
		t.Errorf("handled %q, want %q", handled[0], audioPath)
	}
}
