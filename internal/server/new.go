package server

import (
	"github.com/interviewkit/interview-flow/internal/chat"
	"github.com/interviewkit/interview-flow/internal/config"
	"github.com/interviewkit/interview-flow/internal/exporter"
	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/pipeline"
	"github.com/interviewkit/interview-flow/internal/revision"
	"github.com/interviewkit/interview-flow/internal/session"
	"github.com/interviewkit/interview-flow/internal/store"
)

type implServer struct {
	cfg      *config.Config
	logger   logger.Logger
	store    store.Store
	pipeline pipeline.Pipeline
	chat     chat.Engine
	reviser  revision.Reviser
	exporter exporter.Exporter
	locks    *session.Locks
}

// New creates a Server with all collaborators injected.
func New(cfg *config.Config, log logger.Logger, st store.Store, p pipeline.Pipeline, eng chat.Engine, rev revision.Reviser, exp exporter.Exporter, locks *session.Locks) Server {
	return &implServer{
		cfg:      cfg,
		logger:   log,
		store:    st,
		pipeline: p,
		chat:     eng,
		reviser:  rev,
		exporter: exp,
		locks:    locks,
	}
}
