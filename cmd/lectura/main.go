package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/nguyentantai21042004/lectura/internal/apperr"
	"github.com/nguyentantai21042004/lectura/internal/config"
	"github.com/nguyentantai21042004/lectura/internal/logger"
	"github.com/nguyentantai21042004/lectura/internal/normalizer"
	"github.com/nguyentantai21042004/lectura/internal/notes"
	"github.com/nguyentantai21042004/lectura/internal/pipeline"
	"github.com/nguyentantai21042004/lectura/internal/recorder"
	"github.com/nguyentantai21042004/lectura/internal/search"
	"github.com/nguyentantai21042004/lectura/internal/summarizer"
	"github.com/nguyentantai21042004/lectura/internal/transcriber"
	"github.com/nguyentantai21042004/lectura/pkg/executor"
)

func main() {
	cmd := &cli.Command{
		Name:   "lectura",
		Usage:  "Record, transcribe, summarize and search lecture notes",
		Action: run,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record from the microphone until Ctrl+C",
			},
			&cli.StringFlag{
				Name:  "transcribe",
				Usage: "Transcribe an audio file with the local Whisper backend",
			},
			&cli.StringFlag{
				Name:  "deepgram",
				Usage: "Transcribe an audio file with the Deepgram API",
			},
			&cli.StringFlag{
				Name:  "summarize",
				Usage: "Summarize a transcript and append the result to it",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Fuzzy-search saved transcripts",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Watch the recordings directory and auto-transcribe new audio",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Use the local summarization helper instead of Gemini",
			},
			&cli.BoolFlag{
				Name:  "extractive",
				Usage: "Use the offline extractive summarizer instead of Gemini",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Append a summary even if the transcript already has one",
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.lectura/config.yaml",
				Sources:     cli.EnvVars("LECTURA_CONFIG"),
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Println("Error: " + apperr.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return err
	}
	if cmd.Bool("local") {
		cfg.Summary.Backend = "local"
	}
	if cmd.Bool("extractive") {
		cfg.Summary.Backend = "extractive"
	}

	store, err := notes.NewStore(cfg.Paths.Base)
	if err != nil {
		return err
	}
	log := logger.NewWithFile(cfg.Logging.Level, filepath.Join(store.LogsDir(), "lectura.log"))

	exec := executor.New()
	norm := normalizer.New(exec, log)
	sum, err := summarizer.New(cfg, exec, log)
	if err != nil {
		return err
	}

	p := pipeline.New(
		cfg,
		store,
		recorder.New(&cfg.Recording, exec, log),
		transcriber.NewWhisper(&cfg.Whisper, norm, store, exec, log),
		transcriber.NewDeepgram(&cfg.Deepgram, store, log),
		sum,
		log,
	)

	switch {
	case cmd.Bool("record"):
		path, err := p.Record(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Recording saved: %s\n", path)
		fmt.Printf("Next: lectura --transcribe %q\n", path)
		return nil

	case cmd.String("transcribe") != "":
		path, err := p.Transcribe(ctx, cmd.String("transcribe"))
		if err != nil {
			return err
		}
		fmt.Printf("Transcript saved: %s\n", path)
		fmt.Printf("Next: lectura --summarize %q\n", path)
		return nil

	case cmd.String("deepgram") != "":
		path, err := p.TranscribeRemote(ctx, cmd.String("deepgram"))
		if err != nil {
			return err
		}
		fmt.Printf("Transcript saved: %s\n", path)
		fmt.Printf("Next: lectura --summarize %q\n", path)
		return nil

	case cmd.String("summarize") != "":
		summary, err := p.Summarize(ctx, cmd.String("summarize"), cmd.Bool("force"))
		if err != nil {
			return err
		}
		fmt.Println(summary)
		fmt.Printf("\nSummary appended to %s\n", cmd.String("summarize"))
		return nil

	case cmd.String("search") != "":
		return runSearch(store, cmd.String("search"), cfg.Search.MaxDistance)

	case cmd.Bool("watch"):
		fmt.Printf("Watching %s for new recordings. Press Ctrl+C to stop.\n", store.RecordingsDir())
		return p.Watch(ctx)

	default:
		return cli.ShowAppHelp(cmd)
	}
}

func runSearch(store *notes.Store, query string, maxDist int) error {
	matches, err := search.Transcripts(store.TranscriptsDir(), query, maxDist)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No relevant results found.")
		if names := search.ListTranscripts(store.TranscriptsDir()); len(names) > 0 {
			fmt.Println("\nAvailable transcripts:")
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	}

	fmt.Printf("Found %d matches:\n\n", len(matches))
	for _, m := range matches {
		fmt.Printf("%s -> %s\n", m.File, m.Line)
	}
	return nil
}

func configPath(cmd *cli.Command) string {
	if path := cmd.String("config"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".lectura", "config.yaml")
}
