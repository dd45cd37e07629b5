package llm

import (
	"sync"

	"github.com/interviewkit/interview-flow/internal/logger"
)

type implClient struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// New creates a Client backed by the Gemini API, rotating through the
// supplied keys when one is rate limited.
func New(apiKeys []string, model string, log logger.Logger) Client {
	return &implClient{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
