package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Run serves the API until the context is cancelled, then drains in-flight
// requests.
func (s *implServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.handler(),
		ReadTimeout: 5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Listening on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *implServer) handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/summarize", s.handleSummarize).Methods(http.MethodPost)

	r.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", s.handleRenameSession).Methods(http.MethodPatch)
	r.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}/revise", s.handleRevise).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/chats", s.handleCreateChat).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/chats", s.handleListChats).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/export", s.handleExport).Methods(http.MethodGet)

	r.HandleFunc("/chats/{id}", s.handleGetChat).Methods(http.MethodGet)
	r.HandleFunc("/chats/{id}", s.handleRenameChat).Methods(http.MethodPatch)
	r.HandleFunc("/chats/{id}", s.handleDeleteChat).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}
