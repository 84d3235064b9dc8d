package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	Deepgram  DeepgramConfig  `yaml:"deepgram"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Summary   SummaryConfig   `yaml:"summary"`
	Recording RecordingConfig `yaml:"recording"`
	Search    SearchConfig    `yaml:"search"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type PathsConfig struct {
	// Base is the per-user data directory holding recordings/,
	// transcripts/, summaries/ and logs/.
	Base string `yaml:"base"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
}

type DeepgramConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	BaseURL  string `yaml:"base_url"`
}

type GeminiConfig struct {
	// APIKeys are rotated on rate-limit responses.
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type SummaryConfig struct {
	// Backend is one of "gemini", "local", "extractive".
	Backend string `yaml:"backend"`
	// Command is the local seq2seq helper fed chunk text on stdin.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	// Sentences is the extractive backend's selection count.
	Sentences int `yaml:"sentences"`
}

type RecordingConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

type SearchConfig struct {
	// MaxDistance bounds the fuzzy match rank for transcript search.
	MaxDistance int `yaml:"max_distance"`
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	if c.Paths.Base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Paths.Base = filepath.Join(home, ".lectura")
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = filepath.Join(c.Paths.Base, "models", "ggml-base.bin")
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Deepgram.APIKey == "" {
		c.Deepgram.APIKey = os.Getenv("DEEPGRAM_API_KEY")
	}
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = "nova-2"
	}
	if c.Deepgram.Language == "" {
		c.Deepgram.Language = "en-US"
	}
	if c.Deepgram.BaseURL == "" {
		c.Deepgram.BaseURL = "https://api.deepgram.com"
	}
	if len(c.Gemini.APIKeys) == 0 {
		if env := os.Getenv("GEMINI_API_KEY"); env != "" {
			for _, key := range strings.Split(env, ",") {
				if key = strings.TrimSpace(key); key != "" {
					c.Gemini.APIKeys = append(c.Gemini.APIKeys, key)
				}
			}
		}
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summary.Backend == "" {
		c.Summary.Backend = "gemini"
	}
	if c.Summary.Sentences == 0 {
		c.Summary.Sentences = 5
	}
	if c.Recording.SampleRate == 0 {
		c.Recording.SampleRate = 44100
	}
	if c.Recording.Channels == 0 {
		c.Recording.Channels = 1
	}
	if c.Search.MaxDistance == 0 {
		c.Search.MaxDistance = 10
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
