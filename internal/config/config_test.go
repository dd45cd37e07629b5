package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Gemini: GeminiConfig{
					APIKeys: []string{"key-1"},
				},
			},
			wantErr: false,
		},
		{
			name:    "missing api keys",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Gemini: GeminiConfig{APIKeys: []string{"key-1"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Chunking.MaxUploadMB != 25 {
		t.Errorf("MaxUploadMB = %d, want 25", cfg.Chunking.MaxUploadMB)
	}
	if cfg.Chunking.ChunkMinutes != 5 {
		t.Errorf("ChunkMinutes = %d, want 5", cfg.Chunking.ChunkMinutes)
	}
	if cfg.Gemini.ChatModel == "" {
		t.Error("ChatModel default not applied")
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"
  allowed_origins:
    - "http://localhost:3000"

gemini:
  api_keys:
    - "key-1"
    - "key-2"
  chat_model: "gemini-2.5-pro"

paths:
  data: "data/test.bolt"
  temp: "data/tmp"

chunking:
  max_upload_mb: 10
  chunk_minutes: 8

summary:
  docket_titles: true

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("len(APIKeys) = %d, want 2", len(cfg.Gemini.APIKeys))
	}
	if cfg.Gemini.ChatModel != "gemini-2.5-pro" {
		t.Errorf("ChatModel = %v, want gemini-2.5-pro", cfg.Gemini.ChatModel)
	}
	if cfg.Chunking.MaxUploadMB != 10 {
		t.Errorf("MaxUploadMB = %d, want 10", cfg.Chunking.MaxUploadMB)
	}
	if !cfg.Summary.DocketTitles {
		t.Error("DocketTitles = false, want true")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
