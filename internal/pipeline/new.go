package pipeline

import (
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/internal/notes"
	"github.com/nguyentantai21042004/lectura/internal/recorder"
	"github.com/nguyentantai21042004/lectura/internal/summarizer"
	"github.com/nguyentantai21042004/lectura/internal/transcriber"
)

type implPipeline struct {
	cfg        *config.Config
	store      *notes.Store
	recorder   recorder.Recorder
	local      transcriber.Transcriber
	remote     transcriber.Transcriber
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, store *notes.Store, rec recorder.Recorder, local, remote transcriber.Transcriber, sum summarizer.Summarizer, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		store:      store,
		recorder:   rec,
		local:      local,
		remote:     remote,
		summarizer: sum,
		logger:     log,
	}
}
