package server

import (
	"net/http"

	"github.com/openportal/portald/pkg/types"
)

func (s *Server) handleListVacationRequests(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	requests, err := s.requests.GetAllVacationRequests()
	if err != nil {
		s.logger.Error().Err(err).Msg("listing vacation requests failed")
		respondError(w, http.StatusInternalServerError, "Failed to load vacation requests")
		return
	}
	if requests == nil {
		requests = []types.VacationRequest{}
	}

	respondJSON(w, http.StatusOK, types.VacationRequestList{Requests: requests})
}
