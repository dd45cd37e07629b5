package transcriber

import (
	"sync"
	"time"

	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/pkg/executor"
)

type implService struct {
	backend  Transcriber
	executor executor.Executor
	logger   logger.Logger
	maxBytes int64
	chunkDur time.Duration
	tempDir  string
}

// NewService wraps a transcription backend with the chunking policy:
// recordings over maxUploadMB are split into chunkMinutes-long pieces before
// transcription.
func NewService(backend Transcriber, exec executor.Executor, log logger.Logger, maxUploadMB int64, chunkMinutes int, tempDir string) Service {
	return &implService{
		backend:  backend,
		executor: exec,
		logger:   log,
		maxBytes: maxUploadMB * 1024 * 1024,
		chunkDur: time.Duration(chunkMinutes) * time.Minute,
		tempDir:  tempDir,
	}
}

type implTranscriber struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Transcriber backed by the Gemini API.
func NewGemini(apiKeys []string, model string, log logger.Logger) Transcriber {
	return &implTranscriber{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
