package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/planner/internal/domain"
)

func TestTrip_Summary(t *testing.T) {
	tests := []struct {
		name string
		trip domain.Trip
		want string
	}{
		{
			name: "short destination",
			trip: domain.Trip{
				Destination: "Rome",
				StartsAt:    time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
				EndsAt:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			},
			want: "Rome from the 02 to 15 of Mar.",
		},
		{
			name: "long destination is truncated",
			trip: domain.Trip{
				Destination: "Florianópolis, Santa Catarina",
				StartsAt:    time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC),
				EndsAt:      time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
			},
			want: "Florianópolis,... from the 28 to 03 of Dec.",
		},
		{
			name: "exactly fourteen runes is kept",
			trip: domain.Trip{
				Destination: "Rio de Janeiro",
				StartsAt:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				EndsAt:      time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC),
			},
			want: "Rio de Janeiro from the 01 to 09 of Jul.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.trip.Summary())
		})
	}
}
