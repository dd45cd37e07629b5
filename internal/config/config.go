package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Paths       PathsConfig       `yaml:"paths"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Summary     SummaryConfig     `yaml:"summary"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GeminiConfig struct {
	APIKeys         []string `yaml:"api_keys"`
	ChatModel       string   `yaml:"chat_model"`
	TranscribeModel string   `yaml:"transcribe_model"`
}

type PathsConfig struct {
	Data     string `yaml:"data"`
	Temp     string `yaml:"temp"`
	Intake   string `yaml:"intake"`
	Archived string `yaml:"archived"`
}

// ChunkingConfig controls how oversized recordings are split before
// transcription.
type ChunkingConfig struct {
	MaxUploadMB  int64 `yaml:"max_upload_mb"`
	ChunkMinutes int   `yaml:"chunk_minutes"`
}

// SummaryConfig selects summary/title conventions. There is one pipeline;
// variants are config, not parallel code paths.
type SummaryConfig struct {
	DocketTitles bool `yaml:"docket_titles"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Gemini.ChatModel == "" {
		c.Gemini.ChatModel = "gemini-2.5-flash"
	}
	if c.Gemini.TranscribeModel == "" {
		c.Gemini.TranscribeModel = "gemini-2.5-flash"
	}
	if c.Paths.Data == "" {
		c.Paths.Data = "data/sessions.bolt"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Chunking.MaxUploadMB == 0 {
		c.Chunking.MaxUploadMB = 25
	}
	if c.Chunking.ChunkMinutes == 0 {
		c.Chunking.ChunkMinutes = 5
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
