package revision

import (
	"github.com/interviewkit/interview-flow/internal/llm"
	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/store"
)

type implReviser struct {
	llm    llm.Client
	store  store.Store
	logger logger.Logger
}

// New creates a Reviser backed by the given model client and store.
func New(client llm.Client, st store.Store, log logger.Logger) Reviser {
	return &implReviser{
		llm:    client,
		store:  st,
		logger: log,
	}
}
