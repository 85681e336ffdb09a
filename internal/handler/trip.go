package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/planner/internal/domain"
)

// GetCurrent handles GET /current, the startup check. The trip is null when
// the device is unbound or its trip is gone.
func (s *Server) GetCurrent(w http.ResponseWriter, r *http.Request) {
	trip, ok, err := s.trips.Resume(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var resp currentResponse
	if ok {
		t := s.tripToResponse(trip)
		resp.Trip = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteCurrent handles DELETE /current, the "remove trip" action.
func (s *Server) DeleteCurrent(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Remove(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body updateTripRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	dates := rangeFromRequest(body.StartsAt, body.EndsAt)
	if err := s.trips.Update(r.Context(), chi.URLParam(r, "tripID"), body.Destination, dates); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants handles GET /trips/{tripID}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ps, err := s.trips.Participants(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[participantResponse]{Data: participantsToResponse(ps)})
}

// ListLinks handles GET /trips/{tripID}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	ls, err := s.trips.Links(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[linkResponse]{Data: linksToResponse(ls)})
}

// CreateLink handles POST /trips/{tripID}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	var body createLinkRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	id, err := s.trips.AddLink(r.Context(), domain.NewLink{
		TripID: chi.URLParam(r, "tripID"),
		Title:  body.Title,
		URL:    body.URL,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// CreateInvite handles POST /trips/{tripID}/invites.
func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var body emailRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	if err := s.trips.Invite(r.Context(), chi.URLParam(r, "tripID"), body.Email); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
