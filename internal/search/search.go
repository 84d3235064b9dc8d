// Package search provides fuzzy lookup across saved transcripts.
package search

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
)

const (
	ansiYellow = "\033[93m"
	ansiReset  = "\033[0m"
)

// Match is a single transcript line matching a query.
type Match struct {
	File string // transcript file base name
	Line string // matching line, with the literal occurrence highlighted
}

// Transcripts scans every .txt file under dir line by line and returns
// the lines fuzzily matching query. maxDist bounds the Levenshtein
// distance accepted by the ranked matcher; exact substring hits always
// qualify. Results are ordered by file name, then line order.
func Transcripts(dir, query string, maxDist int) ([]Match, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFile, err, "list transcripts")
	}
	sort.Strings(paths)

	var matches []Match
	for _, path := range paths {
		fileMatches, err := scanFile(path, query, maxDist)
		if err != nil {
			return nil, err
		}
		matches = append(matches, fileMatches...)
	}
	return matches, nil
}

// ListTranscripts returns the base names of all saved transcripts,
// sorted. Used as a fallback hint when a search finds nothing.
func ListTranscripts(dir string) []string {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)
	return names
}

func scanFile(path, query string, maxDist int) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFile, err, fmt.Sprintf("open %s", path))
	}
	defer f.Close()

	name := filepath.Base(path)
	var matches []Match

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !lineMatches(line, query, maxDist) {
			continue
		}
		matches = append(matches, Match{File: name, Line: highlight(line, query)})
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindFile, err, fmt.Sprintf("read %s", path))
	}
	return matches, nil
}

// lineMatches reports whether a line qualifies: a literal
// case-insensitive substring hit, or any single word within the ranked
// matcher's distance bound. Ranking per word rather than per line keeps
// the distance comparable to the query length.
func lineMatches(line, query string, maxDist int) bool {
	if strings.Contains(strings.ToLower(line), strings.ToLower(query)) {
		return true
	}
	for _, word := range strings.Fields(line) {
		rank := fuzzy.RankMatchNormalizedFold(query, word)
		if rank >= 0 && rank <= maxDist {
			return true
		}
	}
	return false
}

// highlight wraps the first case-insensitive literal occurrence of query
// in ANSI yellow. Lines that only matched fuzzily come back unchanged.
func highlight(line, query string) string {
	start := strings.Index(strings.ToLower(line), strings.ToLower(query))
	if start < 0 {
		return line
	}
	end := start + len(query)
	return line[:start] + ansiYellow + line[start:end] + ansiReset + line[end:]
}
