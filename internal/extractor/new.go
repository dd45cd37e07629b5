package extractor

import (
	"github.com/interviewkit/interview-flow/internal/logger"
)

type implExtractor struct {
	logger logger.Logger
}

// New creates an Extractor instance.
func New(log logger.Logger) Extractor {
	return &implExtractor{logger: log}
}
