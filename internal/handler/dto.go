package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/internal/calendar"
	"github.com/pkordes/planner/internal/deeplink"
	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

// Request and response bodies of the companion API. Calendar days travel as
// openapi_types.Date ("2006-01-02").

type tripResponse struct {
	ID          string             `json:"id"`
	Destination string             `json:"destination"`
	StartsAt    openapi_types.Date `json:"starts_at"`
	EndsAt      openapi_types.Date `json:"ends_at"`
	IsConfirmed bool               `json:"is_confirmed"`
	Summary     string             `json:"summary"`
	ShareURL    string             `json:"share_url"`
}

type currentResponse struct {
	Trip *tripResponse `json:"trip"`
}

type formResponse struct {
	Step        string               `json:"step"`
	Destination string               `json:"destination"`
	StartsAt    *openapi_types.Date  `json:"starts_at"`
	EndsAt      *openapi_types.Date  `json:"ends_at"`
	Marked      []openapi_types.Date `json:"marked"`
	Label       string               `json:"label"`
	Emails      []string             `json:"emails"`
	TripID      string               `json:"trip_id,omitempty"`
	ShareURL    string               `json:"share_url,omitempty"`
}

type participantResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	IsConfirmed bool    `json:"is_confirmed"`
}

type linkResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type idResponse struct {
	ID string `json:"id"`
}

type destinationRequest struct {
	Destination string `json:"destination"`
}

type dayRequest struct {
	Day openapi_types.Date `json:"day"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type answerRequest struct {
	Yes bool `json:"yes"`
}

type openLinkRequest struct {
	URL string `json:"url"`
}

type confirmRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateTripRequest struct {
	Destination string              `json:"destination"`
	StartsAt    *openapi_types.Date `json:"starts_at"`
	EndsAt      *openapi_types.Date `json:"ends_at"`
}

type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    openapi_types.Date{Time: t.StartsAt},
		EndsAt:      openapi_types.Date{Time: t.EndsAt},
		IsConfirmed: t.IsConfirmed,
		Summary:     t.Summary(),
		ShareURL:    deeplink.Build(s.scheme, t.ID, ""),
	}
}

func (s *Server) formToResponse(f tripform.Form) formResponse {
	resp := formResponse{
		Step:        f.Step.String(),
		Destination: f.Destination,
		StartsAt:    optionalDate(f.Dates.StartsAt),
		EndsAt:      optionalDate(f.Dates.EndsAt),
		Marked:      make([]openapi_types.Date, len(f.Dates.Marked)),
		Label:       f.Dates.Label,
		Emails:      append([]string{}, f.Emails...),
		TripID:      f.TripID,
	}
	for i, d := range f.Dates.Marked {
		resp.Marked[i] = openapi_types.Date{Time: d}
	}
	if f.TripID != "" {
		resp.ShareURL = deeplink.Build(s.scheme, f.TripID, "")
	}
	return resp
}

func optionalDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

// rangeFromRequest builds the range a user would get by tapping start then end.
// Missing endpoints leave the range incomplete for the service to reject.
func rangeFromRequest(start, end *openapi_types.Date) calendar.Range {
	var r calendar.Range
	if start != nil {
		r = calendar.Select(r, start.Time)
	}
	if end != nil && r.HasStart() {
		r = calendar.Select(r, end.Time)
	}
	return r
}

func participantsToResponse(ps []domain.Participant) []participantResponse {
	out := make([]participantResponse, len(ps))
	for i, p := range ps {
		out[i] = participantResponse{ID: p.ID, Email: p.Email, Name: p.Name, IsConfirmed: p.IsConfirmed}
	}
	return out
}

func linksToResponse(ls []domain.Link) []linkResponse {
	out := make([]linkResponse, len(ls))
	for i, l := range ls {
		out[i] = linkResponse{ID: l.ID, Title: l.Title, URL: l.URL}
	}
	return out
}
