// Package deeplink parses and builds the links that open a trip directly,
// e.g. planner://trip/<tripId>?participant=<participantId>.
package deeplink

import (
	"net/url"
	"strings"

	"github.com/pkordes/planner/internal/domain"
)

// DefaultScheme is the URL scheme used when none is configured.
const DefaultScheme = "planner"

// Mode says how the linked trip should be opened.
type Mode string

const (
	// ModeOwner opens the trip for viewing and editing.
	ModeOwner Mode = "owner"
	// ModeGuest opens the trip with the attendance confirmation prompt.
	ModeGuest Mode = "guest"
)

// Entry is the parsed content of a deep link.
type Entry struct {
	TripID        string `json:"trip_id"`
	ParticipantID string `json:"participant_id,omitempty"`
	Mode          Mode   `json:"mode"`
}

// Parse reads a link of the shape <scheme>://trip/<tripId>[?participant=<id>].
// An empty scheme argument accepts DefaultScheme.
func Parse(scheme, raw string) (Entry, error) {
	if scheme == "" {
		scheme = DefaultScheme
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Entry{}, domain.Invalid("url", "is not a valid link")
	}
	if !strings.EqualFold(u.Scheme, scheme) {
		return Entry{}, domain.Invalid("url", "must use the "+scheme+" scheme")
	}
	if u.Host != "trip" {
		return Entry{}, domain.Invalid("url", "does not point at a trip")
	}
	tripID := strings.Trim(u.Path, "/")
	if tripID == "" || strings.Contains(tripID, "/") {
		return Entry{}, domain.Invalid("url", "must contain exactly one trip id")
	}

	e := Entry{TripID: tripID, Mode: ModeOwner}
	if p := strings.TrimSpace(u.Query().Get("participant")); p != "" {
		e.ParticipantID = p
		e.Mode = ModeGuest
	}
	return e, nil
}

// Build renders the link for tripID. An empty participantID yields an owner link.
func Build(scheme, tripID, participantID string) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	u := url.URL{Scheme: scheme, Host: "trip", Path: "/" + tripID}
	if participantID != "" {
		u.RawQuery = url.Values{"participant": {participantID}}.Encode()
	}
	return u.String()
}
