package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/httputil"
	"github.com/burnlink/relay-server-go/internal/model"
	"github.com/burnlink/relay-server-go/internal/store"
)

type MessageHandler struct {
	store *store.Store
}

func NewMessageHandler(store *store.Store) *MessageHandler {
	return &MessageHandler{store: store}
}

// Routes is mounted at /v1/sessions/{sessionID}/messages; the sessionID
// param comes from the parent router.
func (h *MessageHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Post)
	r.Get("/", h.List)

	return r
}

type postMessageRequest struct {
	SenderID string                 `json:"senderId"`
	Kind     string                 `json:"kind"`
	Payload  model.EncryptedPayload `json:"payload"`
	FileName string                 `json:"fileName"`
}

// POST /v1/sessions/{sessionID}/messages
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	msg, err := h.store.PostMessage(sessionID, model.PostMessageParams{
		SenderID: req.SenderID,
		Kind:     req.Kind,
		Payload:  req.Payload,
		FileName: req.FileName,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

type listMessagesResponse struct {
	Messages []model.Message `json:"messages"`
}

// GET /v1/sessions/{sessionID}/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	msgs, err := h.store.ListMessages(sessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listMessagesResponse{Messages: msgs})
}
