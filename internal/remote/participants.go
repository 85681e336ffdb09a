package remote

import (
	"context"
	"fmt"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/internal/domain"
)

// ParticipantPayload is the wire shape of a participant.
type ParticipantPayload struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	Name        *string `json:"name"`
	Email       string  `json:"email"`
	IsConfirmed bool    `json:"is_confirmed"`
}

// ConfirmParticipantRequest is the body of PATCH /participants/{id}/confirm.
type ConfirmParticipantRequest struct {
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
}

// ListParticipantsResponse is the body returned by GET /trips/{id}/participants.
type ListParticipantsResponse struct {
	Participants []ParticipantPayload `json:"participants"`
}

// ConfirmParticipant confirms attendance. The API treats repeated
// confirmations of the same participant as success.
func (c *Client) ConfirmParticipant(ctx context.Context, in domain.Confirmation) error {
	req := ConfirmParticipantRequest{Name: in.Name, Email: openapi_types.Email(in.Email)}
	if err := c.do(ctx, http.MethodPatch, pathf("/participants/%s/confirm", in.ParticipantID), req, nil); err != nil {
		return fmt.Errorf("remote.Client.ConfirmParticipant: %w", err)
	}
	return nil
}

// ListParticipants returns every participant of a trip.
// Always returns a non-nil slice.
func (c *Client) ListParticipants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	var resp ListParticipantsResponse
	if err := c.do(ctx, http.MethodGet, pathf("/trips/%s/participants", tripID), nil, &resp); err != nil {
		return nil, fmt.Errorf("remote.Client.ListParticipants: %w", err)
	}
	out := make([]domain.Participant, 0, len(resp.Participants))
	for _, p := range resp.Participants {
		tid := p.TripID
		if tid == "" {
			tid = tripID
		}
		out = append(out, domain.Participant{
			ID:          p.ID,
			TripID:      tid,
			Email:       p.Email,
			Name:        p.Name,
			IsConfirmed: p.IsConfirmed,
		})
	}
	return out, nil
}
