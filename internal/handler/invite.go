package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/planner/internal/domain"
)

// OpenLink handles POST /links/open. The presentation layer forwards every
// incoming deep link here to learn which screen to show.
func (s *Server) OpenLink(w http.ResponseWriter, r *http.Request) {
	var body openLinkRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	entry, err := s.invites.Open(body.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ConfirmParticipant handles POST /trips/{tripID}/participants/{participantID}/confirm.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	var body confirmRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	err := s.invites.Confirm(r.Context(), domain.Confirmation{
		TripID:        chi.URLParam(r, "tripID"),
		ParticipantID: chi.URLParam(r, "participantID"),
		Name:          body.Name,
		Email:         body.Email,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
