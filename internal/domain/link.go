package domain

// Link is a titled URL shared with everyone on a trip.
type Link struct {
	ID     string `json:"id"`
	TripID string `json:"trip_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// NewLink is the payload for registering a link on a trip.
type NewLink struct {
	TripID string
	Title  string
	URL    string
}
