package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/internal/domain"
)

// TripPayload is the wire shape of a trip returned by the API.
type TripPayload struct {
	ID          string             `json:"id"`
	Destination string             `json:"destination"`
	StartsAt    openapi_types.Date `json:"starts_at"`
	EndsAt      openapi_types.Date `json:"ends_at"`
	IsConfirmed bool               `json:"is_confirmed"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Destination    string                `json:"destination"`
	StartsAt       openapi_types.Date    `json:"starts_at"`
	EndsAt         openapi_types.Date    `json:"ends_at"`
	EmailsToInvite []openapi_types.Email `json:"emails_to_invite"`
}

// CreateTripResponse is the body returned by POST /trips.
type CreateTripResponse struct {
	TripID string `json:"tripId"`
}

// GetTripResponse is the body returned by GET /trips/{id}.
type GetTripResponse struct {
	Trip TripPayload `json:"trip"`
}

// UpdateTripRequest is the body of PUT /trips/{id}.
type UpdateTripRequest struct {
	Destination string             `json:"destination"`
	StartsAt    openapi_types.Date `json:"starts_at"`
	EndsAt      openapi_types.Date `json:"ends_at"`
}

// InviteRequest is the body of POST /trips/{id}/invites.
type InviteRequest struct {
	Email openapi_types.Email `json:"email"`
}

// CreateTrip creates a trip and returns its id. The API emails every address
// in EmailsToInvite.
func (c *Client) CreateTrip(ctx context.Context, t domain.NewTrip) (string, error) {
	emails := make([]openapi_types.Email, 0, len(t.EmailsToInvite))
	for _, e := range t.EmailsToInvite {
		emails = append(emails, openapi_types.Email(e))
	}
	req := CreateTripRequest{
		Destination:    t.Destination,
		StartsAt:       openapi_types.Date{Time: t.StartsAt},
		EndsAt:         openapi_types.Date{Time: t.EndsAt},
		EmailsToInvite: emails,
	}

	var resp CreateTripResponse
	if err := c.do(ctx, http.MethodPost, "/trips", req, &resp); err != nil {
		return "", fmt.Errorf("remote.Client.CreateTrip: %w", err)
	}
	return resp.TripID, nil
}

// GetTrip fetches one trip. Returns an error matching domain.ErrNotFound when
// the trip does not exist.
func (c *Client) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	var resp GetTripResponse
	if err := c.do(ctx, http.MethodGet, pathf("/trips/%s", id), nil, &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client.GetTrip: %w", err)
	}
	return resp.Trip.toDomain(), nil
}

// UpdateTrip overwrites destination and dates of an existing trip.
func (c *Client) UpdateTrip(ctx context.Context, u domain.TripUpdate) error {
	req := UpdateTripRequest{
		Destination: u.Destination,
		StartsAt:    openapi_types.Date{Time: u.StartsAt},
		EndsAt:      openapi_types.Date{Time: u.EndsAt},
	}
	if err := c.do(ctx, http.MethodPut, pathf("/trips/%s", u.ID), req, nil); err != nil {
		return fmt.Errorf("remote.Client.UpdateTrip: %w", err)
	}
	return nil
}

// InviteGuest invites one more email to an existing trip.
func (c *Client) InviteGuest(ctx context.Context, tripID, email string) error {
	req := InviteRequest{Email: openapi_types.Email(email)}
	if err := c.do(ctx, http.MethodPost, pathf("/trips/%s/invites", tripID), req, nil); err != nil {
		return fmt.Errorf("remote.Client.InviteGuest: %w", err)
	}
	return nil
}

func (p TripPayload) toDomain() domain.Trip {
	return domain.Trip{
		ID:          p.ID,
		Destination: p.Destination,
		StartsAt:    p.StartsAt.Time,
		EndsAt:      p.EndsAt.Time,
		IsConfirmed: p.IsConfirmed,
		CreatedAt:   p.CreatedAt,
	}
}
