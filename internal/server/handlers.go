package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/analytics"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/chat"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/render"
)

// envelope is the uniform response shape of the corpus API.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Total   int    `json:"total,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, envelope{Success: false, Error: msg})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// handleListDocuments serves GET /api/documents with optional tipo, año,
// and search filters.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := library.Filter{TitleSubstring: q.Get("search")}
	if v := q.Get("tipo"); v != "" {
		filter.Type = library.DocType(v)
	}
	year := q.Get("año")
	if year == "" {
		year = q.Get("anio")
	}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year filter")
			return
		}
		filter.Year = n
	}

	docs, err := s.lib.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []library.Document{}
	}

	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: docs, Total: len(docs)})
}

// documentContent is the payload of GET /api/documents/{id}/content: the
// raw text plus the article navigation index.
type documentContent struct {
	*library.Content
	Articles []library.Article `json:"articles"`
}

func (s *Server) handleDocumentContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	content, err := s.lib.Content(r.Context(), id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found: "+id)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	articles := library.ExtractAllArticles(content.RawText)
	writeData(w, http.StatusOK, documentContent{Content: content, Articles: articles})
}

// handleSearch serves GET /api/search?q= with the ranked, score-tagged
// document list.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	docs, err := s.lib.Documents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results := s.scorer.Score(r.Context(), query, docs)
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: results, Total: len(results)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.lib.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, stats)
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// chatPayload extends the pipeline response with the HTML rendering of the
// answer.
type chatPayload struct {
	*chat.Response
	AnswerHTML string `json:"answer_html,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	resp, err := s.chatSvc.Query(r.Context(), req.Query)
	s.recordQuery(req, resp, err, time.Since(start))

	switch {
	case errors.Is(err, chat.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "query is empty or too short")
		return
	case errors.Is(err, chat.ErrNoRelevantDocuments):
		// An answerable outcome: the corpus has nothing for this query.
		writeEnvelope(w, http.StatusOK, envelope{
			Success: false,
			Error:   "no relevant documents found for this query",
		})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := chatPayload{Response: resp}
	if html, err := render.Markdown(resp.Answer); err == nil {
		payload.AnswerHTML = html
	}
	writeData(w, http.StatusOK, payload)
}

// recordQuery writes one analytics event for the chat call. Recording
// failures are logged, never surfaced.
func (s *Server) recordQuery(req chatRequest, resp *chat.Response, qerr error, elapsed time.Duration) {
	if s.events == nil {
		return
	}

	event := analytics.Event{
		SessionID:  req.SessionID,
		Query:      req.Query,
		Provider:   s.cfg.ProviderName,
		DurationMS: elapsed.Milliseconds(),
	}

	switch {
	case errors.Is(qerr, chat.ErrEmptyQuery):
		return // nothing worth recording
	case errors.Is(qerr, chat.ErrNoRelevantDocuments):
		event.Outcome = analytics.OutcomeNoResults
	case qerr != nil:
		event.Outcome = analytics.OutcomeError
	case len(resp.Sources) == 0:
		event.Outcome = analytics.OutcomeGreeting
	default:
		event.Outcome = analytics.OutcomeAnswered
		event.Model = resp.Model
		event.InputTokens = resp.InputTokens
		event.OutputTokens = resp.OutputTokens
		for _, src := range resp.Sources {
			event.MatchedDocuments = append(event.MatchedDocuments, src.ID)
		}
		event.TopScore = resp.Sources[0].Score
	}

	// Detached context: the event outlives the request.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.events.Record(ctx, event); err != nil {
		log.Printf("server: recording query event: %v", err)
	}
}
