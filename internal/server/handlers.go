package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/interviewkit/interview-flow/internal/session"
)

// multipartMemory caps how much of an upload is buffered in memory before
// spilling to disk.
const multipartMemory = 32 << 20

func statusFor(err error) int {
	var inputErr *session.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}
	var notFound *session.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *implServer) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// stream copies the sequence to the response, flushing per fragment. An
// error before the first byte maps to a status code; after that the stream
// is simply cut, leaving everything already flushed with the client.
func (s *implServer) stream(w http.ResponseWriter, r *http.Request, seq iter.Seq2[string, error]) {
	flusher, _ := w.(http.Flusher)
	wrote := false

	for fragment, err := range seq {
		if err != nil {
			if !wrote {
				s.respondError(w, r, err)
			} else {
				s.logger.Error(r.Context(), "Stream for %s cut short: %v", r.URL.Path, err)
			}
			return
		}
		if !wrote {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			wrote = true
		}
		if _, err := io.WriteString(w, fragment); err != nil {
			s.logger.Warn(r.Context(), "Client disconnected from %s", r.URL.Path)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// saveUpload copies one multipart part into the temp directory under a
// unique name that keeps the original extension.
func (s *implServer) saveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := session.NewID() + strings.ToLower(filepath.Ext(fh.Filename))
	dest := filepath.Join(s.cfg.Paths.Temp, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return dest, nil
}

func (s *implServer) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.respondError(w, r, &session.InputError{Field: "body", Reason: "invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	var saved []string
	defer func() {
		for _, p := range saved {
			os.Remove(p)
		}
	}()

	savePart := func(field string) (string, error) {
		files := r.MultipartForm.File[field]
		if len(files) == 0 {
			return "", &session.InputError{Field: field, Reason: "missing file"}
		}
		path, err := s.saveUpload(files[0])
		if err != nil {
			return "", err
		}
		saved = append(saved, path)
		return path, nil
	}

	transcriptPath, err := savePart("transcript")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	recordingPath, err := savePart("recording")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var supplementary []string
	for _, fh := range r.MultipartForm.File["additional_context"] {
		path, err := s.saveUpload(fh)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		saved = append(saved, path)
		supplementary = append(supplementary, path)
	}

	s.stream(w, r, s.pipeline.Summarize(r.Context(), transcriptPath, recordingPath, supplementary))
}

func (s *implServer) handleRevise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Revision string `json:"revision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Revision) == "" {
		s.respondError(w, r, &session.InputError{Field: "revision", Reason: "missing revision text"})
		return
	}

	release := s.locks.Acquire(id)
	defer release()

	sess, err := s.store.GetSession(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.stream(w, r, s.reviser.Revise(r.Context(), sess, body.Revision))
}

func (s *implServer) handleChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Message string `json:"message"`
		ChatID  string `json:"chat_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		s.respondError(w, r, &session.InputError{Field: "message", Reason: "missing message text"})
		return
	}

	release := s.locks.Acquire(id)
	defer release()

	if _, err := s.store.GetSession(id); err != nil {
		s.respondError(w, r, err)
		return
	}

	var ch *session.Chat
	var err error
	if body.ChatID != "" {
		ch, err = s.store.GetChat(body.ChatID)
		if err == nil && ch.SessionID != id {
			err = &session.NotFoundError{Kind: "chat", ID: body.ChatID}
		}
	} else {
		ch, err = s.store.DefaultChat(id)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.stream(w, r, s.chat.Ask(r.Context(), ch, body.Message))
}

func (s *implServer) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	type item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	items := make([]item, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, item{ID: sess.ID, Name: sess.Name})
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *implServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sess, err := s.store.GetSession(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	chats, err := s.store.ListChats(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defaultChat, err := s.store.DefaultChat(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session":  sess,
		"chats":    chats,
		"messages": defaultChat.Messages,
	})
}

func (s *implServer) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		s.respondError(w, r, &session.InputError{Field: "name", Reason: "missing name"})
		return
	}

	if err := s.store.RenameSession(id, body.Name); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "name": body.Name})
}

func (s *implServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	release := s.locks.Acquire(id)
	defer release()

	if err := s.store.DeleteSession(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *implServer) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		s.respondError(w, r, &session.InputError{Field: "name", Reason: "missing name"})
		return
	}

	ch, err := s.store.CreateChat(id, body.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ch)
}

func (s *implServer) handleListChats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.store.GetSession(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	chats, err := s.store.ListChats(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, chats)
}

func (s *implServer) handleGetChat(w http.ResponseWriter, r *http.Request) {
	ch, err := s.store.GetChat(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ch)
}

func (s *implServer) handleRenameChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		s.respondError(w, r, &session.InputError{Field: "name", Reason: "missing name"})
		return
	}

	if err := s.store.RenameChat(id, body.Name); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "name": body.Name})
}

func (s *implServer) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteChat(mux.Vars(r)["id"]); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *implServer) handleExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sess, err := s.store.GetSession(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	path := filepath.Join(s.cfg.Paths.Temp, session.NewID()+".docx")
	defer os.Remove(path)
	if err := s.exporter.WriteSummary(sess.Name, sess.Summary, path); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.Name+".docx"))
	http.ServeFile(w, r, path)
}
