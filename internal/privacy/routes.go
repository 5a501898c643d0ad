package privacy

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts privacy endpoints under /api/privacy on the given
// router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/privacy", func(r chi.Router) {
		r.Post("/accept", handleAccept(store))
		r.Get("/status", handleStatus(store))
	})
}

type acceptRequest struct {
	SessionID        string `json:"session_id"`
	PolicyVersion    string `json:"policy_version"`
	ScreenResolution string `json:"screen_resolution"`
}

func handleAccept(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req acceptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}

		id, err := store.Record(r.Context(), Acceptance{
			SessionID:        req.SessionID,
			PolicyVersion:    req.PolicyVersion,
			UserAgent:        r.UserAgent(),
			RemoteAddr:       r.RemoteAddr,
			ScreenResolution: req.ScreenResolution,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "accepted": true})
	}
}

func handleStatus(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}
		version := r.URL.Query().Get("policy_version")
		if version == "" {
			version = "1"
		}

		accepted, err := store.HasAccepted(r.Context(), sessionID, version)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"accepted": accepted})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
