package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTranscript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "physics.txt", "Newton's laws of motion.\n\nEnergy is conserved in a closed system.\n")
	writeTranscript(t, dir, "biology.txt", "The cell is the basic unit of life.\n")
	writeTranscript(t, dir, "notes.md", "markdown files are ignored\n")

	t.Run("exact substring match is highlighted", func(t *testing.T) {
		matches, err := Transcripts(dir, "energy", 10)
		if err != nil {
			t.Fatalf("Transcripts() error = %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("got %d matches, want 1", len(matches))
		}
		if matches[0].File != "physics.txt" {
			t.Errorf("File = %q", matches[0].File)
		}
		want := ansiYellow + "Energy" + ansiReset
		if !strings.Contains(matches[0].Line, want) {
			t.Errorf("Line %q missing highlighted occurrence", matches[0].Line)
		}
	})

	t.Run("fuzzy match within distance bound", func(t *testing.T) {
		matches, err := Transcripts(dir, "conservd", 10)
		if err != nil {
			t.Fatalf("Transcripts() error = %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("got %d matches, want 1", len(matches))
		}
		if strings.Contains(matches[0].Line, ansiYellow) {
			t.Errorf("fuzzy-only match should not be highlighted: %q", matches[0].Line)
		}
	})

	t.Run("no match beyond distance bound", func(t *testing.T) {
		matches, err := Transcripts(dir, "thermodynamics", 5)
		if err != nil {
			t.Fatalf("Transcripts() error = %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("got %d matches, want 0", len(matches))
		}
	})

	t.Run("results ordered by file name", func(t *testing.T) {
		matches, err := Transcripts(dir, "the", 2)
		if err != nil {
			t.Fatalf("Transcripts() error = %v", err)
		}
		var files []string
		for _, m := range matches {
			files = append(files, m.File)
		}
		for i := 1; i < len(files); i++ {
			if files[i-1] > files[i] {
				t.Errorf("results not sorted by file: %v", files)
			}
		}
	})

	t.Run("non-txt files are skipped", func(t *testing.T) {
		matches, err := Transcripts(dir, "markdown", 2)
		if err != nil {
			t.Fatalf("Transcripts() error = %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("matched a non-transcript file: %+v", matches)
		}
	})
}

func TestTranscriptsEmptyDir(t *testing.T) {
	matches, err := Transcripts(t.TempDir(), "anything", 10)
	if err != nil {
		t.Fatalf("Transcripts() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestListTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "b.txt", "x\n")
	writeTranscript(t, dir, "a.txt", "x\n")

	names := ListTranscripts(dir)
	if len(names) != 2 || names[0] != "a.txt" || names[1] != "b.txt" {
		t.Errorf("ListTranscripts() = %v", names)
	}
}
