package handler

import (
	"encoding/json"
	"net/http"

	"innerparts/internal/model"
	"innerparts/internal/service"
	"innerparts/internal/transport/rest/middleware"
)

// ChatHandler handles the in-character chat endpoint
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Chat handles POST /v1/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUID(r.Context())
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, &model.ChatResponse{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	resp, err := h.chatSvc.Chat(r.Context(), uid, &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, &model.ChatResponse{
			Success: false,
			Error:   "Chat error: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
