// Package remotetest provides an in-memory fake of the planner API for tests
// and local demos. It speaks the same JSON as the real API, so the remote
// Client can be exercised end-to-end over httptest.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/internal/remote"
)

// Operation names accepted by Calls and FailNext.
const (
	OpCreateTrip         = "create_trip"
	OpGetTrip            = "get_trip"
	OpUpdateTrip         = "update_trip"
	OpInviteGuest        = "invite_guest"
	OpConfirmParticipant = "confirm_participant"
	OpListParticipants   = "list_participants"
	OpCreateLink         = "create_link"
	OpListLinks          = "list_links"
)

// API is the fake planner API. The zero value is not usable; call New.
type API struct {
	mu           sync.Mutex
	trips        map[string]remote.TripPayload
	participants map[string]remote.ParticipantPayload
	order        []string // participant ids in creation order
	links        map[string][]remote.LinkPayload
	calls        map[string]int
	failures     map[string]int
}

// New returns an empty fake API.
func New() *API {
	return &API{
		trips:        make(map[string]remote.TripPayload),
		participants: make(map[string]remote.ParticipantPayload),
		links:        make(map[string][]remote.LinkPayload),
		calls:        make(map[string]int),
		failures:     make(map[string]int),
	}
}

// Start serves a fresh fake API on an httptest server that is closed when
// the test finishes.
func Start(t testing.TB) (*API, *httptest.Server) {
	t.Helper()
	api := New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv
}

// Handler returns the chi router serving the API.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/trips", a.createTrip)
	r.Get("/trips/{tripID}", a.getTrip)
	r.Put("/trips/{tripID}", a.updateTrip)
	r.Post("/trips/{tripID}/invites", a.inviteGuest)
	r.Get("/trips/{tripID}/participants", a.listParticipants)
	r.Post("/trips/{tripID}/links", a.createLink)
	r.Get("/trips/{tripID}/links", a.listLinks)
	r.Patch("/participants/{participantID}/confirm", a.confirmParticipant)
	return r
}

// SeedTrip stores a trip directly and invites emails. It returns the trip id
// and the participant ids in the same order as emails.
func (a *API) SeedTrip(destination string, startsAt, endsAt time.Time, emails ...string) (string, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.insertTrip(destination, startsAt, endsAt)
	var pids []string
	for _, e := range emails {
		pids = append(pids, a.insertParticipant(id, e))
	}
	return id, pids
}

// DeleteTrip removes a trip so later lookups return 404.
func (a *API) DeleteTrip(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.trips, id)
}

// Trip returns the stored trip.
func (a *API) Trip(id string) (remote.TripPayload, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.trips[id]
	return t, ok
}

// Participant returns the stored participant.
func (a *API) Participant(id string) (remote.ParticipantPayload, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.participants[id]
	return p, ok
}

// Calls reports how many requests reached op, including failed ones.
func (a *API) Calls(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

// FailNext makes the next request to op answer with status.
func (a *API) FailNext(op string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[op] = status
}

// enter records a call and reports whether it should fail. Callers hold no lock.
func (a *API) enter(w http.ResponseWriter, op string) bool {
	a.mu.Lock()
	a.calls[op]++
	status, fail := a.failures[op]
	delete(a.failures, op)
	a.mu.Unlock()
	if fail {
		writeMessage(w, status, "injected failure")
	}
	return fail
}

func (a *API) createTrip(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpCreateTrip) {
		return
	}
	var req remote.CreateTripRequest
	if !decode(w, r, &req) {
		return
	}
	if len(strings.TrimSpace(req.Destination)) < 4 {
		writeMessage(w, http.StatusBadRequest, "destination must have at least 4 characters")
		return
	}
	if req.EndsAt.Before(req.StartsAt.Time) {
		writeMessage(w, http.StatusBadRequest, "invalid trip end date")
		return
	}

	a.mu.Lock()
	id := a.insertTrip(req.Destination, req.StartsAt.Time, req.EndsAt.Time)
	for _, e := range req.EmailsToInvite {
		a.insertParticipant(id, string(e))
	}
	a.mu.Unlock()

	writeJSON(w, http.StatusCreated, remote.CreateTripResponse{TripID: id})
}

func (a *API) getTrip(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpGetTrip) {
		return
	}
	t, ok := a.Trip(chi.URLParam(r, "tripID"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	writeJSON(w, http.StatusOK, remote.GetTripResponse{Trip: t})
}

func (a *API) updateTrip(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpUpdateTrip) {
		return
	}
	var req remote.UpdateTripRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "tripID")

	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.trips[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	t.Destination = req.Destination
	t.StartsAt = req.StartsAt
	t.EndsAt = req.EndsAt
	a.trips[id] = t
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) inviteGuest(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpInviteGuest) {
		return
	}
	var req remote.InviteRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "tripID")

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.trips[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	a.insertParticipant(id, string(req.Email))
	w.WriteHeader(http.StatusCreated)
}

func (a *API) listParticipants(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpListParticipants) {
		return
	}
	id := chi.URLParam(r, "tripID")

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.trips[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	resp := remote.ListParticipantsResponse{Participants: []remote.ParticipantPayload{}}
	for _, pid := range a.order {
		if p := a.participants[pid]; p.TripID == id {
			resp.Participants = append(resp.Participants, p)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// confirmParticipant is idempotent: confirming twice succeeds and keeps the
// first name given.
func (a *API) confirmParticipant(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpConfirmParticipant) {
		return
	}
	var req remote.ConfirmParticipantRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "participantID")

	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.participants[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Participant not found.")
		return
	}
	if !p.IsConfirmed {
		name := req.Name
		p.Name = &name
		p.IsConfirmed = true
		a.participants[id] = p
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) createLink(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpCreateLink) {
		return
	}
	var req remote.CreateLinkRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "tripID")

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.trips[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	link := remote.LinkPayload{ID: uuid.NewString(), Title: req.Title, URL: req.URL}
	a.links[id] = append(a.links[id], link)
	writeJSON(w, http.StatusCreated, remote.CreateLinkResponse{LinkID: link.ID})
}

func (a *API) listLinks(w http.ResponseWriter, r *http.Request) {
	if a.enter(w, OpListLinks) {
		return
	}
	id := chi.URLParam(r, "tripID")

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.trips[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found.")
		return
	}
	resp := remote.ListLinksResponse{Links: append([]remote.LinkPayload{}, a.links[id]...)}
	writeJSON(w, http.StatusOK, resp)
}

// insertTrip requires a.mu to be held.
func (a *API) insertTrip(destination string, startsAt, endsAt time.Time) string {
	id := uuid.NewString()
	a.trips[id] = remote.TripPayload{
		ID:          id,
		Destination: destination,
		StartsAt:    openapi_types.Date{Time: startsAt},
		EndsAt:      openapi_types.Date{Time: endsAt},
		CreatedAt:   time.Now().UTC(),
	}
	return id
}

// insertParticipant requires a.mu to be held.
func (a *API) insertParticipant(tripID, email string) string {
	id := uuid.NewString()
	a.participants[id] = remote.ParticipantPayload{ID: id, TripID: tripID, Email: email}
	a.order = append(a.order, id)
	return id
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
