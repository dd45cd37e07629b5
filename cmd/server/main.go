package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/interviewkit/interview-flow/internal/aligner"
	"github.com/interviewkit/interview-flow/internal/chat"
	"github.com/interviewkit/interview-flow/internal/config"
	"github.com/interviewkit/interview-flow/internal/exporter"
	"github.com/interviewkit/interview-flow/internal/extractor"
	"github.com/interviewkit/interview-flow/internal/llm"
	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/pipeline"
	"github.com/interviewkit/interview-flow/internal/revision"
	"github.com/interviewkit/interview-flow/internal/server"
	"github.com/interviewkit/interview-flow/internal/session"
	"github.com/interviewkit/interview-flow/internal/store"
	"github.com/interviewkit/interview-flow/internal/transcriber"
	"github.com/interviewkit/interview-flow/internal/watcher"
	"github.com/interviewkit/interview-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "Interview Flow starting")
	log.Info(ctx, "Chat model: %s, transcription model: %s", cfg.Gemini.ChatModel, cfg.Gemini.TranscribeModel)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Paths.Data)
	if err != nil {
		log.Error(ctx, "Failed to open store: %v", err)
		os.Exit(1)
	}
	defer st.Close()

	exec := executor.New()
	ext := extractor.New(log)
	chatClient := llm.New(cfg.Gemini.APIKeys, cfg.Gemini.ChatModel, log)
	backend := transcriber.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.TranscribeModel, log)
	recorder := transcriber.NewService(backend, exec, log, cfg.Chunking.MaxUploadMB, cfg.Chunking.ChunkMinutes, cfg.Paths.Temp)
	al := aligner.New(chatClient, log)
	p := pipeline.New(cfg, ext, recorder, al, chatClient, st, log)

	eng := chat.New(chatClient, st, log)
	rev := revision.New(chatClient, st, log)
	exp := exporter.New(log)
	locks := session.NewLocks()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)

	if cfg.Paths.Intake != "" {
		w, err := watcher.New(cfg.Paths.Intake, cfg.Paths.Archived, intakeHandler(p, log), log, cfg.Performance.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create intake watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
		log.Info(ctx, "Intake watcher monitoring: %s", cfg.Paths.Intake)
	}

	srv := server.New(cfg, log, st, p, eng, rev, exp, locks)
	go func() {
		if err := srv.Run(ctx); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	log.Info(ctx, "Interview Flow stopped")
}

// intakeHandler drains a full summarize run for a pair dropped into the
// intake directory. The session is persisted by the pipeline itself; the
// stream output is discarded.
func intakeHandler(p pipeline.Pipeline, log logger.Logger) watcher.PairHandler {
	return func(ctx context.Context, transcriptPath, recordingPath string) error {
		for _, err := range p.Summarize(ctx, transcriptPath, recordingPath, nil) {
			if err != nil {
				return err
			}
		}
		log.Info(ctx, "Intake pair %s summarized", transcriptPath)
		return nil
	}
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Temp}
	if cfg.Paths.Intake != "" {
		dirs = append(dirs, cfg.Paths.Intake, cfg.Paths.Archived)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
