package summarizer

import (
	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

// New selects the summarization backend named in the config. The choice
// is resolved once per invocation.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Summarizer, error) {
	switch cfg.Summary.Backend {
	case "gemini":
		return NewGemini(&cfg.Gemini, log), nil
	case "local":
		return NewLocal(&cfg.Summary, exec, log), nil
	case "extractive":
		return NewExtractive(&cfg.Summary, log), nil
	default:
		return nil, apperr.Summarization("unknown summarization backend %q", cfg.Summary.Backend)
	}
}
