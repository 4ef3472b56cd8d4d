package server

import (
	"net/http"
	"strings"

	"github.com/openportal/portald/internal/authz"
	"github.com/openportal/portald/pkg/types"
)

// portalUserHeader carries the client-declared acting user on admin
// endpoints. The portal trusts it; there is no real authentication.
const portalUserHeader = "X-Portal-User"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	_, ok, err := s.users.GetUserByUsername(username)
	if err != nil {
		s.logger.Error().Err(err).Msg("user lookup failed")
		respondError(w, http.StatusInternalServerError, "Failed to validate user")
		return
	}
	if !ok {
		respondJSON(w, http.StatusUnauthorized, types.LoginResponse{
			Success: false,
			Message: "Username does not exist",
		})
		return
	}

	respondJSON(w, http.StatusOK, types.LoginResponse{
		Success: true,
		Message: "Login successful",
	})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req types.AddUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorf(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	created, err := s.users.AddUser(username, strings.TrimSpace(req.Role))
	if err != nil {
		s.logger.Error().Err(err).Msg("adding user failed")
		respondError(w, http.StatusInternalServerError, "Failed to add user")
		return
	}
	if !created {
		respondErrorf(w, http.StatusConflict, "User %s already exists", strings.ToLower(username))
		return
	}

	user, _, err := s.users.GetUserByUsername(username)
	if err != nil {
		s.logger.Error().Err(err).Msg("reading back new user failed")
		respondError(w, http.StatusInternalServerError, "Failed to add user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// requireAdmin gates admin endpoints on the client-declared user. It
// writes the refusal response itself and reports whether to proceed.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	actor := strings.TrimSpace(r.Header.Get(portalUserHeader))
	if actor == "" {
		respondError(w, http.StatusUnauthorized, "User identity required")
		return false
	}
	if !authz.IsAdmin(s.users, actor) {
		respondError(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}
