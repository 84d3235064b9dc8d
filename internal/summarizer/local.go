package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// chunkSize bounds each piece fed to the local model so its token
// ceiling is respected.
const chunkSize = 512

// localSummarizer drives a local seq2seq helper command, feeding it
// fixed-size character chunks on stdin and concatenating the chunk
// summaries in order. There is no cross-chunk coherence pass.
type localSummarizer struct {
	cfg      *config.SummaryConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewLocal creates the local model backend. It works without any
// credential.
func NewLocal(cfg *config.SummaryConfig, exec executor.Executor, log logger.Logger) Summarizer {
	return &localSummarizer{cfg: cfg, executor: exec, logger: log}
}

func (s *localSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.cfg.Command == "" {
		return "", apperr.Summarization("local summarizer not configured; set summary.command")
	}
	if _, err := s.executor.Look(s.cfg.Command); err != nil {
		return "", apperr.Summarization("summarizer command %s not found in PATH", s.cfg.Command)
	}

	text = truncateForModel(text)
	chunks := chunkText(text, chunkSize)

	s.logger.Info(ctx, "Summarizing %d chunk(s) with %s", len(chunks), s.cfg.Command)

	var parts []string
	for i, chunk := range chunks {
		out, err := s.executor.ExecuteWithInput(ctx, chunk, s.cfg.Command, s.cfg.Args...)
		if err != nil {
			return "", apperr.Wrap(apperr.KindSummarization, err, "summarize chunk")
		}
		s.logger.Debug(ctx, "Chunk %d/%d summarized", i+1, len(chunks))
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return "Local Summary:\n" + strings.Join(parts, " ") + studyTips, nil
}

// chunkText splits text into size-bounded character chunks in order.
func chunkText(text string, size int) []string {
	if text == "" {
		return []string{""}
	}
	var chunks []string
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
