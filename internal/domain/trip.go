// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// summaryDestinationMax is how many characters of the destination the trip
// summary line keeps before truncating.
const summaryDestinationMax = 14

// Trip is the client's projection of the shared plan owned by the remote API.
// StartsAt and EndsAt are calendar days at UTC midnight.
type Trip struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary renders the one-line "when" description shown at the top of a trip,
// e.g. "Rome from the 10 to 15 of Mar.".
// Destinations longer than 14 characters are truncated with "...".
func (t Trip) Summary() string {
	dest := t.Destination
	if utf8.RuneCountInString(dest) > summaryDestinationMax {
		dest = string([]rune(dest)[:summaryDestinationMax]) + "..."
	}
	return fmt.Sprintf("%s from the %s to %s of %s.",
		dest,
		t.StartsAt.Format("02"),
		t.EndsAt.Format("02"),
		t.StartsAt.Format("Jan"),
	)
}

// NewTrip is the payload sent to the remote API to create a trip.
// EmailsToInvite may be empty.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	EmailsToInvite []string
}

// TripUpdate carries the mutable fields of an existing trip.
type TripUpdate struct {
	ID          string
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
}
