package server

import (
	"net/http"
	"strings"

	"github.com/openportal/portald/pkg/types"
)

// anonymousUser is the actor attributed to chat messages sent before
// login. Authorization rules treat it like any unregistered user.
const anonymousUser = "anonymous"

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = anonymousUser
	}

	answer, err := s.chatbot.ProcessMessage(r.Context(), req.Message, username)
	if err != nil {
		s.logger.Error().Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("user", username).
			Msg("chat processing failed")
		respondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, types.ChatResponse{Message: answer})
}
