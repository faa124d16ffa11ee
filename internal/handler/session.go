package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/httputil"
	"github.com/burnlink/relay-server-go/internal/store"
)

type SessionHandler struct {
	store *store.Store
}

func NewSessionHandler(store *store.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Post("/join", h.Join)
	r.Post("/{sessionID}/end", h.End)
	r.Get("/{sessionID}/status", h.Status)
	r.Post("/{sessionID}/heartbeat", h.Heartbeat)

	return r
}

type rendezvousRequest struct {
	Code     string `json:"code"`
	DeviceID string `json:"deviceId"`
}

type sessionIDResponse struct {
	SessionID string `json:"sessionId"`
}

// POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rendezvousRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	sessionID, err := h.store.CreateSession(req.Code, req.DeviceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// POST /v1/sessions/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req rendezvousRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	sessionID, err := h.store.JoinSession(req.Code, req.DeviceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// POST /v1/sessions/{sessionID}/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.store.EndSession(sessionID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GET /v1/sessions/{sessionID}/status
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	writeJSON(w, http.StatusOK, h.store.Status(sessionID))
}

type heartbeatRequest struct {
	DeviceID string `json:"deviceId"`
}

type heartbeatResponse struct {
	OK    bool `json:"ok"`
	Ended bool `json:"ended"`
}

// POST /v1/sessions/{sessionID}/heartbeat
func (h *SessionHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req heartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	ended, err := h.store.Heartbeat(sessionID, req.DeviceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, heartbeatResponse{OK: true, Ended: ended})
}
