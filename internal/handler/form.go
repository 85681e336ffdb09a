package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/planner/internal/tripform"
)

// GetForm handles GET /form.
func (s *Server) GetForm(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.formToResponse(s.form.Form()))
}

// ResetForm handles DELETE /form and starts a new trip from scratch.
func (s *Server) ResetForm(w http.ResponseWriter, r *http.Request) {
	if err := s.form.Reset(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.formToResponse(s.form.Form()))
}

// SetDestination handles PUT /form/destination.
func (s *Server) SetDestination(w http.ResponseWriter, r *http.Request) {
	var body destinationRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	s.dispatch(w, r, tripform.SetDestination{Destination: body.Destination})
}

// TapDay handles POST /form/days: one tap on the calendar.
func (s *Server) TapDay(w http.ResponseWriter, r *http.Request) {
	var body dayRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	s.dispatch(w, r, tripform.TapDay{Day: body.Day.Time})
}

// Next handles POST /form/next.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, tripform.Next{})
}

// Back handles POST /form/back.
func (s *Server) Back(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, tripform.Back{})
}

// AddEmail handles POST /form/emails.
func (s *Server) AddEmail(w http.ResponseWriter, r *http.Request) {
	var body emailRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	s.dispatch(w, r, tripform.AddEmail{Email: body.Email})
}

// RemoveEmail handles DELETE /form/emails/{email}.
func (s *Server) RemoveEmail(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		requestError(w, err)
		return
	}
	s.dispatch(w, r, tripform.RemoveEmail{Email: email})
}

// Answer handles POST /form/answer, the "Confirm trip?" prompt. A yes creates
// the trip remotely and, once it exists, binds this device to it. A yes on a
// form that is already submitted only repeats the bind, so a client whose
// bind failed can answer again without creating a second trip.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := decode(r, &body); err != nil {
		requestError(w, err)
		return
	}
	if f := s.form.Form(); body.Yes && f.Step == tripform.StepSubmitted {
		s.bind(w, r, f)
		return
	}
	f, err := s.form.Dispatch(r.Context(), tripform.Answer{Yes: body.Yes})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if f.Step != tripform.StepSubmitted {
		writeJSON(w, http.StatusOK, s.formToResponse(f))
		return
	}
	s.bind(w, r, f)
}

// bind saves the device binding for a submitted form. The error envelope of a
// failed save carries the trip id, which already exists remotely.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, f tripform.Form) {
	if err := s.binding.Save(r.Context(), f.TripID); err != nil {
		s.log.ErrorContext(r.Context(), "bind device failed", "trip_id", f.TripID, "error", err)
		status, detail := classify(err)
		detail.TripID = f.TripID
		writeJSON(w, status, errorResponse{Error: detail})
		return
	}
	writeJSON(w, http.StatusCreated, s.formToResponse(f))
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev tripform.Event) {
	f, err := s.form.Dispatch(r.Context(), ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.formToResponse(f))
}
