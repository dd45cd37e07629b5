package aligner

import (
	"github.com/interviewkit/interview-flow/internal/llm"
	"github.com/interviewkit/interview-flow/internal/logger"
)

type implAligner struct {
	llm    llm.Client
	logger logger.Logger
}

// New creates an Aligner instance.
func New(client llm.Client, log logger.Logger) Aligner {
	return &implAligner{llm: client, logger: log}
}
