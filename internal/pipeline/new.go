package pipeline

import (
	"github.com/interviewkit/interview-flow/internal/aligner"
	"github.com/interviewkit/interview-flow/internal/config"
	"github.com/interviewkit/interview-flow/internal/extractor"
	"github.com/interviewkit/interview-flow/internal/llm"
	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/store"
	"github.com/interviewkit/interview-flow/internal/transcriber"
)

type implPipeline struct {
	cfg       *config.Config
	extractor extractor.Extractor
	recorder  transcriber.Service
	aligner   aligner.Aligner
	llm       llm.Client
	store     store.Store
	logger    logger.Logger
}

// New creates a Pipeline with all collaborators injected.
func New(cfg *config.Config, ext extractor.Extractor, rec transcriber.Service, al aligner.Aligner, client llm.Client, st store.Store, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:       cfg,
		extractor: ext,
		recorder:  rec,
		aligner:   al,
		llm:       client,
		store:     st,
		logger:    log,
	}
}
