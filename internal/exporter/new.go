package exporter

import (
	"github.com/interviewkit/interview-flow/internal/logger"
)

type implExporter struct {
	logger logger.Logger
}

// New creates an Exporter.
func New(log logger.Logger) Exporter {
	return &implExporter{logger: log}
}
