// Package notes persists transcripts and summaries as plain UTF-8 text
// files under the per-user data directory.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SummaryDelimiter separates a transcript body from its appended summary.
// Other tooling relies on it to avoid double-processing a file.
const SummaryDelimiter = "\n\n---\n\n"

// ErrSummaryExists is returned when a transcript already contains a
// summary section and no override was requested.
var ErrSummaryExists = errors.New("transcript already contains a summary section")

// Store owns the data directory layout: recordings/, transcripts/,
// summaries/ and logs/ under a single base directory. Files are
// single-writer and sequential; no locking beyond append discipline.
type Store struct {
	base string
}

// NewStore creates the data directory layout under base if needed.
func NewStore(base string) (*Store, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("notes: resolve base: %w", err)
	}
	s := &Store{base: abs}
	for _, dir := range []string{s.RecordingsDir(), s.TranscriptsDir(), s.SummariesDir(), s.LogsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("notes: create %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Store) Base() string           { return s.base }
func (s *Store) RecordingsDir() string  { return filepath.Join(s.base, "recordings") }
func (s *Store) TranscriptsDir() string { return filepath.Join(s.base, "transcripts") }
func (s *Store) SummariesDir() string   { return filepath.Join(s.base, "summaries") }
func (s *Store) LogsDir() string        { return filepath.Join(s.base, "logs") }

// Stem derives the output filename stem from a source audio path: the
// base name minus extension. Two different sources sharing a base name
// overwrite each other's transcript; reproduced as-is from observed
// behavior.
func Stem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteTranscript writes content to transcripts/<stem>.txt atomically
// (tmp file, fsync, rename) and returns the path.
func (s *Store) WriteTranscript(stem, content string) (string, error) {
	path := filepath.Join(s.TranscriptsDir(), stem+".txt")
	if err := s.writeAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// AppendSummary appends the delimiter plus summary to the transcript at
// path. When the file already contains a summary section it refuses with
// ErrSummaryExists unless force is set.
func (s *Store) AppendSummary(path, summary string, force bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("notes: read transcript: %w", err)
	}
	if !force && strings.Contains(string(data), SummaryDelimiter) {
		return ErrSummaryExists
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("notes: open for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(SummaryDelimiter + summary); err != nil {
		return fmt.Errorf("notes: append summary: %w", err)
	}
	return f.Sync()
}

// Exists reports whether path refers to an existing file.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *Store) writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lectura-tmp-*")
	if err != nil {
		return fmt.Errorf("notes: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("notes: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("notes: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("notes: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("notes: rename: %w", err)
	}
	success = true
	return nil
}
