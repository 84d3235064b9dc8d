package summarizer

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
)

var (
	wordRe     = regexp.MustCompile(`[a-zA-Z']+`)
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

// stopwords are excluded from term-frequency scoring.
var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "but": true,
	"by": true, "can": true, "could": true, "did": true, "do": true,
	"does": true, "for": true, "from": true, "had": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "how": true,
	"i": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "just": true, "like": true, "me": true,
	"more": true, "my": true, "no": true, "not": true, "of": true,
	"on": true, "one": true, "or": true, "our": true, "out": true,
	"she": true, "so": true, "some": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "to": true, "up": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"which": true, "who": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// extractiveSummarizer scores sentences by normalized term frequency and
// keeps the top ones in original document order. It needs no model or
// credential and exists for offline operation.
type extractiveSummarizer struct {
	sentences int
	logger    logger.Logger
}

// NewExtractive creates the heuristic no-dependency backend.
func NewExtractive(cfg *config.SummaryConfig, log logger.Logger) Summarizer {
	return &extractiveSummarizer{sentences: cfg.Sentences, logger: log}
}

func (s *extractiveSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	body := extract(text, s.sentences)
	if body == "" {
		s.logger.Info(ctx, "No scorable content; emitting fallback summary")
		body = "Not enough content to summarize."
	}
	return "Summary:\n" + body + studyTips, nil
}

func extract(text string, topN int) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	freq := termFrequencies(text)
	if len(freq) == 0 {
		return ""
	}

	type scored struct {
		index int
		score float64
	}
	var ranked []scored
	for i, sentence := range sentences {
		var score float64
		for _, tok := range tokenize(sentence) {
			score += freq[tok]
		}
		if score > 0 {
			ranked = append(ranked, scored{index: i, score: score})
		}
	}
	if len(ranked) == 0 {
		return ""
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	// Selected sentences are re-assembled by original appearance, not
	// by rank.
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].index < ranked[j].index })

	var out []string
	for _, r := range ranked {
		out = append(out, sentences[r.index])
	}
	return strings.Join(out, " ")
}

func splitSentences(text string) []string {
	var sentences []string
	for _, raw := range sentenceRe.FindAllString(text, -1) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func tokenize(text string) []string {
	var tokens []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// termFrequencies returns token frequencies normalized by the most
// frequent token.
func termFrequencies(text string) map[string]float64 {
	counts := make(map[string]int)
	max := 0
	for _, tok := range tokenize(text) {
		counts[tok]++
		if counts[tok] > max {
			max = counts[tok]
		}
	}
	if max == 0 {
		return nil
	}

	freq := make(map[string]float64, len(counts))
	for tok, n := range counts {
		freq[tok] = float64(n) / float64(max)
	}
	return freq
}
