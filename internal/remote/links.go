package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/planner/internal/domain"
)

// LinkPayload is the wire shape of a trip link.
type LinkPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CreateLinkRequest is the body of POST /trips/{id}/links.
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CreateLinkResponse is the body returned by POST /trips/{id}/links.
type CreateLinkResponse struct {
	LinkID string `json:"linkId"`
}

// ListLinksResponse is the body returned by GET /trips/{id}/links.
type ListLinksResponse struct {
	Links []LinkPayload `json:"links"`
}

// CreateLink registers a link on a trip and returns its id.
func (c *Client) CreateLink(ctx context.Context, l domain.NewLink) (string, error) {
	var resp CreateLinkResponse
	req := CreateLinkRequest{Title: l.Title, URL: l.URL}
	if err := c.do(ctx, http.MethodPost, pathf("/trips/%s/links", l.TripID), req, &resp); err != nil {
		return "", fmt.Errorf("remote.Client.CreateLink: %w", err)
	}
	return resp.LinkID, nil
}

// ListLinks returns every link on a trip. Always returns a non-nil slice.
func (c *Client) ListLinks(ctx context.Context, tripID string) ([]domain.Link, error) {
	var resp ListLinksResponse
	if err := c.do(ctx, http.MethodGet, pathf("/trips/%s/links", tripID), nil, &resp); err != nil {
		return nil, fmt.Errorf("remote.Client.ListLinks: %w", err)
	}
	out := make([]domain.Link, 0, len(resp.Links))
	for _, l := range resp.Links {
		out = append(out, domain.Link{ID: l.ID, TripID: tripID, Title: l.Title, URL: l.URL})
	}
	return out, nil
}
