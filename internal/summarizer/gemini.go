package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
)

const summaryPrompt = `You are a helpful assistant that creates concise summaries of lecture transcripts. Focus on the key points, concepts, and main ideas.

Please summarize the following lecture transcript, highlighting the main points and key concepts:

%s`

// geminiSummarizer sends the truncated transcript to Gemini, rotating
// API keys on rate-limit responses.
type geminiSummarizer struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates the remote LLM backend. A missing credential is
// reported lazily, at first use.
func NewGemini(cfg *config.GeminiConfig, log logger.Logger) Summarizer {
	return &geminiSummarizer{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		logger:  log,
	}
}

func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", apperr.API("Gemini client not initialized; set the GEMINI_API_KEY environment variable")
	}

	body, err := s.generate(ctx, truncateForModel(text))
	if err != nil {
		return "", apperr.Wrap(apperr.KindSummarization, err, "generate summary")
	}
	return "Summary:\n" + body + studyTips, nil
}

func (s *geminiSummarizer) generate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, text)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			return strings.TrimSpace(out), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *geminiSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}
