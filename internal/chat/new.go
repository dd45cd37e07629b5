package chat

import (
	"github.com/interviewkit/interview-flow/internal/llm"
	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/store"
)

type implEngine struct {
	llm    llm.Client
	store  store.Store
	logger logger.Logger
}

// New creates an Engine backed by the given model client and store.
func New(client llm.Client, st store.Store, log logger.Logger) Engine {
	return &implEngine{
		llm:    client,
		store:  st,
		logger: log,
	}
}
