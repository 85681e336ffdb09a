package domain

// Participant is a guest invited to a trip.
// Confirmation only ever moves from false to true.
type Participant struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	Email       string  `json:"email"`
	Name        *string `json:"name,omitempty"`
	IsConfirmed bool    `json:"is_confirmed"`
}

// Confirmation is a guest's answer to an invite.
// TripID comes from the deep link, not from the remote API, so the device can
// be bound to the trip once the confirmation succeeds.
type Confirmation struct {
	TripID        string
	ParticipantID string
	Name          string
	Email         string
}
