package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/chat"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/render"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"` // "query"
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type       string        `json:"type"` // "answer" or "error"
	SessionID  string        `json:"session_id,omitempty"`
	Answer     string        `json:"answer,omitempty"`
	AnswerHTML string        `json:"answer_html,omitempty"`
	Sources    []chat.Source `json:"sources,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}

		switch req.Type {
		case "query", "":
			s.handleWSQuery(conn, r, req)
		default:
			s.sendWSError(conn, req.SessionID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) handleWSQuery(conn *websocket.Conn, r *http.Request, req wsRequest) {
	resp, err := s.chatSvc.Query(r.Context(), req.Query)
	switch {
	case errors.Is(err, chat.ErrEmptyQuery):
		s.sendWSError(conn, req.SessionID, "query is empty or too short")
		return
	case errors.Is(err, chat.ErrNoRelevantDocuments):
		s.sendWSError(conn, req.SessionID, "no relevant documents found for this query")
		return
	case err != nil:
		s.sendWSError(conn, req.SessionID, err.Error())
		return
	}

	out := wsResponse{
		Type:      "answer",
		SessionID: req.SessionID,
		Answer:    resp.Answer,
		Sources:   resp.Sources,
	}
	if html, err := render.Markdown(resp.Answer); err == nil {
		out.AnswerHTML = html
	}
	s.sendWS(conn, out)
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, message string) {
	s.sendWS(conn, wsResponse{Type: "error", SessionID: sessionID, Error: message})
}
