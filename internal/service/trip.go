package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/planner/internal/calendar"
	"github.com/pkordes/planner/internal/domain"
)

// TripAPI is the part of the remote API used once a trip exists.
type TripAPI interface {
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	UpdateTrip(ctx context.Context, u domain.TripUpdate) error
	InviteGuest(ctx context.Context, tripID, email string) error
	ListParticipants(ctx context.Context, tripID string) ([]domain.Participant, error)
	CreateLink(ctx context.Context, l domain.NewLink) (string, error)
	ListLinks(ctx context.Context, tripID string) ([]domain.Link, error)
}

// TripService implements the operations on an existing trip.
type TripService struct {
	api     TripAPI
	binding *DeviceBinding
	log     *slog.Logger
	update  Guard
}

// NewTripService constructs a TripService.
func NewTripService(api TripAPI, binding *DeviceBinding, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{api: api, binding: binding, log: log}
}

// Resume loads the trip this device is bound to. ok is false when the device
// is unbound or the bound trip no longer exists remotely; in the second case
// the binding is kept so a later call can retry.
func (s *TripService) Resume(ctx context.Context) (trip domain.Trip, ok bool, err error) {
	id, bound, err := s.binding.Get(ctx)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Resume: %w", err)
	}
	if !bound {
		return domain.Trip{}, false, nil
	}
	trip, err = s.api.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "bound trip not found", "trip_id", id)
			return domain.Trip{}, false, nil
		}
		return domain.Trip{}, false, &domain.RemoteError{Op: "get trip", Err: err}
	}
	return trip, true, nil
}

// Get fetches a trip by id.
func (s *TripService) Get(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := s.api.GetTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, &domain.RemoteError{Op: "get trip", Err: err}
	}
	return trip, nil
}

// Update changes the destination and dates of a trip. dates must be a
// complete range. Only one update runs at a time.
func (s *TripService) Update(ctx context.Context, id, destination string, dates calendar.Range) error {
	if id == "" {
		return fmt.Errorf("service.TripService.Update: %w: empty trip id", domain.ErrInvariant)
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return domain.Invalid("destination", "is required")
	}
	if !dates.Complete() {
		return domain.Invalid("dates", "must have a start and an end date")
	}
	return s.update.Do("update trip", func() error {
		err := s.api.UpdateTrip(ctx, domain.TripUpdate{
			ID:          id,
			Destination: destination,
			StartsAt:    dates.StartsAt,
			EndsAt:      dates.EndsAt,
		})
		if err != nil {
			s.log.ErrorContext(ctx, "update trip failed", "trip_id", id, "error", err)
			return &domain.RemoteError{Op: "update trip", Err: err}
		}
		return nil
	})
}

// Remove forgets the trip on this device. The trip itself is untouched.
func (s *TripService) Remove(ctx context.Context) error {
	if err := s.binding.Remove(ctx); err != nil {
		return fmt.Errorf("service.TripService.Remove: %w", err)
	}
	return nil
}

// Participants lists everyone invited to a trip.
func (s *TripService) Participants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	ps, err := s.api.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, &domain.RemoteError{Op: "list participants", Err: err}
	}
	return ps, nil
}

// Links lists the important links of a trip.
func (s *TripService) Links(ctx context.Context, tripID string) ([]domain.Link, error) {
	ls, err := s.api.ListLinks(ctx, tripID)
	if err != nil {
		return nil, &domain.RemoteError{Op: "list links", Err: err}
	}
	return ls, nil
}

// AddLink validates and registers a link, returning its id.
func (s *TripService) AddLink(ctx context.Context, l domain.NewLink) (string, error) {
	l.Title = strings.TrimSpace(l.Title)
	l.URL = strings.TrimSpace(l.URL)
	if l.Title == "" {
		return "", domain.Invalid("title", "is required")
	}
	if !domain.IsURL(l.URL) {
		return "", domain.Invalid("url", "is invalid")
	}
	id, err := s.api.CreateLink(ctx, l)
	if err != nil {
		return "", &domain.RemoteError{Op: "create link", Err: err}
	}
	return id, nil
}

// Invite sends one more invitation for an existing trip.
func (s *TripService) Invite(ctx context.Context, tripID, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Invalid("email", "is required")
	}
	if !domain.IsEmail(email) {
		return domain.Invalid("email", "is invalid")
	}
	if err := s.api.InviteGuest(ctx, tripID, email); err != nil {
		return &domain.RemoteError{Op: "invite guest", Err: err}
	}
	return nil
}
