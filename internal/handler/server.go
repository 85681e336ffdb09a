// Package handler implements the companion HTTP API the presentation layer
// talks to. All handlers are methods on Server. Methods are split into files
// by screen (form.go, invite.go, trip.go) but share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/planner/internal/calendar"
	"github.com/pkordes/planner/internal/deeplink"
	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
	"github.com/pkordes/planner/spec"
)

// TripServicer defines the trip operations the handler depends on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without a remote API.
type TripServicer interface {
	Resume(ctx context.Context) (domain.Trip, bool, error)
	Get(ctx context.Context, id string) (domain.Trip, error)
	Update(ctx context.Context, id, destination string, dates calendar.Range) error
	Remove(ctx context.Context) error
	Participants(ctx context.Context, tripID string) ([]domain.Participant, error)
	Links(ctx context.Context, tripID string) ([]domain.Link, error)
	AddLink(ctx context.Context, l domain.NewLink) (string, error)
	Invite(ctx context.Context, tripID, email string) error
}

// FormDispatcher drives the trip creation form.
type FormDispatcher interface {
	Form() tripform.Form
	Reset() error
	Dispatch(ctx context.Context, ev tripform.Event) (tripform.Form, error)
}

// Inviter handles incoming links and guest confirmation.
type Inviter interface {
	Open(raw string) (deeplink.Entry, error)
	Confirm(ctx context.Context, in domain.Confirmation) error
}

// Binder binds the device to a freshly created trip.
type Binder interface {
	Save(ctx context.Context, tripID string) error
}

// Server holds the dependencies of every route.
type Server struct {
	trips   TripServicer
	form    FormDispatcher
	invites Inviter
	binding Binder
	scheme  string
	log     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLinkScheme sets the scheme used for share links in responses.
func WithLinkScheme(scheme string) Option {
	return func(s *Server) { s.scheme = scheme }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, form FormDispatcher, invites Inviter, binding Binder, opts ...Option) *Server {
	s := &Server{
		trips:   trips,
		form:    form,
		invites: invites,
		binding: binding,
		scheme:  deeplink.DefaultScheme,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes mounts every endpoint on a fresh chi router. Ambient middleware
// (request id, logging, CORS) is added by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Get("/current", s.GetCurrent)
	r.Delete("/current", s.DeleteCurrent)

	r.Route("/form", func(r chi.Router) {
		r.Get("/", s.GetForm)
		r.Delete("/", s.ResetForm)
		r.Put("/destination", s.SetDestination)
		r.Post("/days", s.TapDay)
		r.Post("/next", s.Next)
		r.Post("/back", s.Back)
		r.Post("/emails", s.AddEmail)
		r.Delete("/emails/{email}", s.RemoveEmail)
		r.Post("/answer", s.Answer)
	})

	r.Post("/links/open", s.OpenLink)

	r.Route("/trips/{tripID}", func(r chi.Router) {
		r.Get("/", s.GetTrip)
		r.Put("/", s.UpdateTrip)
		r.Get("/participants", s.ListParticipants)
		r.Post("/participants/{participantID}/confirm", s.ConfirmParticipant)
		r.Get("/links", s.ListLinks)
		r.Post("/links", s.CreateLink)
		r.Post("/invites", s.CreateInvite)
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
