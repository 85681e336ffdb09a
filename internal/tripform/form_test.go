package tripform_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

func march(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

// apply runs events in order and fails the test on the first error.
func apply(t *testing.T, f tripform.Form, events ...tripform.Event) tripform.Form {
	t.Helper()
	for _, ev := range events {
		var err error
		f, _, err = tripform.Transition(f, ev)
		require.NoError(t, err, "event %T", ev)
	}
	return f
}

// inviteStep returns a form with valid details for Rome that has moved to StepInvite.
func inviteStep(t *testing.T) tripform.Form {
	t.Helper()
	return apply(t, tripform.New(),
		tripform.SetDestination{Destination: "Rome"},
		tripform.TapDay{Day: march(10)},
		tripform.TapDay{Day: march(15)},
		tripform.Next{},
	)
}

func TestNew_StartsInDetails(t *testing.T) {
	f := tripform.New()

	assert.Equal(t, tripform.StepDetails, f.Step)
	assert.Empty(t, f.Emails)
}

func TestNext_DetailsToInvite(t *testing.T) {
	f := inviteStep(t)

	assert.Equal(t, tripform.StepInvite, f.Step)
	assert.True(t, f.Dates.Complete())
}

func TestNext_DetailsGuard(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		days        []time.Time
		field       string
	}{
		{name: "empty destination", destination: "", days: []time.Time{march(10), march(15)}, field: "destination"},
		{name: "whitespace destination", destination: "    ", days: []time.Time{march(10), march(15)}, field: "destination"},
		{name: "no dates", destination: "Rome", field: "dates"},
		{name: "start only", destination: "Rome", days: []time.Time{march(10)}, field: "dates"},
		{name: "short destination", destination: " Rio ", days: []time.Time{march(10), march(15)}, field: "destination"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := apply(t, tripform.New(), tripform.SetDestination{Destination: tc.destination})
			for _, d := range tc.days {
				f = apply(t, f, tripform.TapDay{Day: d})
			}

			got, effects, err := tripform.Transition(f, tripform.Next{})

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tripform.StepDetails, got.Step)
			assert.Empty(t, effects)
		})
	}
}

func TestTapDay_EarlierDayResetsRange(t *testing.T) {
	f := apply(t, tripform.New(),
		tripform.TapDay{Day: march(10)},
		tripform.TapDay{Day: march(5)},
	)

	assert.True(t, f.Dates.StartsAt.Equal(march(5)))
	assert.True(t, f.Dates.EndsAt.IsZero())
}

func TestDetailsEventsRejectedOutsideDetails(t *testing.T) {
	f := inviteStep(t)

	got, _, err := tripform.Transition(f, tripform.SetDestination{Destination: "Paris"})
	assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent)
	assert.Equal(t, "Rome", got.Destination)

	_, _, err = tripform.Transition(f, tripform.TapDay{Day: march(20)})
	assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent)
}

func TestAddEmail(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.AddEmail{Email: "a@b.com"})

	assert.Equal(t, []string{"a@b.com"}, f.Emails)
}

func TestAddEmail_Duplicate(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.AddEmail{Email: "a@b.com"})

	got, _, err := tripform.Transition(f, tripform.AddEmail{Email: "a@b.com"})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, []string{"a@b.com"}, got.Emails)
}

func TestAddEmail_DuplicateIgnoresCase(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.AddEmail{Email: "a@b.com"})

	_, _, err := tripform.Transition(f, tripform.AddEmail{Email: "  A@B.com "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddEmail_Invalid(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a@b", "a b@c.com", "@b.com"} {
		_, _, err := tripform.Transition(inviteStep(t), tripform.AddEmail{Email: email})
		assert.ErrorIs(t, err, domain.ErrValidation, "email %q", email)
	}
}

func TestAddEmail_OnlyInInvite(t *testing.T) {
	_, _, err := tripform.Transition(tripform.New(), tripform.AddEmail{Email: "a@b.com"})

	assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent)
}

func TestRemoveEmail(t *testing.T) {
	f := apply(t, inviteStep(t),
		tripform.AddEmail{Email: "a@b.com"},
		tripform.AddEmail{Email: "c@d.com"},
		tripform.RemoveEmail{Email: "A@B.com"},
	)
	assert.Equal(t, []string{"c@d.com"}, f.Emails)

	// Removing an absent email is not an error.
	f = apply(t, f, tripform.RemoveEmail{Email: "nobody@example.com"})
	assert.Equal(t, []string{"c@d.com"}, f.Emails)
}

func TestBack_KeepsEmails(t *testing.T) {
	f := apply(t, inviteStep(t),
		tripform.AddEmail{Email: "a@b.com"},
		tripform.Back{},
	)
	require.Equal(t, tripform.StepDetails, f.Step)

	f = apply(t, f, tripform.Next{})
	assert.Equal(t, tripform.StepInvite, f.Step)
	assert.Equal(t, []string{"a@b.com"}, f.Emails)
}

func TestBack_NotAllowedInDetails(t *testing.T) {
	_, _, err := tripform.Transition(tripform.New(), tripform.Back{})

	assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent)
}

func TestConfirmGate_NoReturnsToInvite(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.Next{})
	require.Equal(t, tripform.StepConfirm, f.Step)

	got, effects, err := tripform.Transition(f, tripform.Answer{Yes: false})

	require.NoError(t, err)
	assert.Equal(t, tripform.StepInvite, got.Step)
	assert.Empty(t, effects)
}

func TestConfirmGate_YesEmitsCreateTrip(t *testing.T) {
	f := apply(t, tripform.New(),
		tripform.SetDestination{Destination: "  Rome  "},
		tripform.TapDay{Day: march(10)},
		tripform.TapDay{Day: march(15)},
		tripform.Next{},
		tripform.Next{},
	)

	got, effects, err := tripform.Transition(f, tripform.Answer{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, tripform.StepSubmitting, got.Step)
	require.Len(t, effects, 1)
	create, ok := effects[0].(tripform.CreateTrip)
	require.True(t, ok)
	assert.Equal(t, "Rome", create.Trip.Destination)
	assert.True(t, create.Trip.StartsAt.Equal(march(10)))
	assert.True(t, create.Trip.EndsAt.Equal(march(15)))
	assert.Empty(t, create.Trip.EmailsToInvite)
}

func TestAnswer_OnlyInConfirm(t *testing.T) {
	_, effects, err := tripform.Transition(inviteStep(t), tripform.Answer{Yes: true})

	assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent)
	assert.Empty(t, effects)
}

func TestCreated_Submitted(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.Next{}, tripform.Answer{Yes: true})

	got, _, err := tripform.Transition(f, tripform.Created{TripID: "trip-1"})

	require.NoError(t, err)
	assert.Equal(t, tripform.StepSubmitted, got.Step)
	assert.Equal(t, "trip-1", got.TripID)
}

func TestCreated_EmptyIDIsInvariantViolation(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.Next{}, tripform.Answer{Yes: true})

	got, _, err := tripform.Transition(f, tripform.Created{})

	assert.ErrorIs(t, err, domain.ErrInvariant)
	assert.Equal(t, tripform.StepSubmitting, got.Step)
}

func TestFailed_ReturnsToInviteForRetry(t *testing.T) {
	f := apply(t, inviteStep(t),
		tripform.AddEmail{Email: "a@b.com"},
		tripform.Next{},
		tripform.Answer{Yes: true},
		tripform.Failed{Err: errors.New("boom")},
	)

	assert.Equal(t, tripform.StepInvite, f.Step)
	assert.Equal(t, []string{"a@b.com"}, f.Emails)
}

func TestSubmittedIsTerminal(t *testing.T) {
	f := apply(t, inviteStep(t), tripform.Next{}, tripform.Answer{Yes: true}, tripform.Created{TripID: "trip-1"})

	for _, ev := range []tripform.Event{tripform.Next{}, tripform.Back{}, tripform.Answer{Yes: true}, tripform.Created{TripID: "x"}} {
		_, _, err := tripform.Transition(f, ev)
		assert.ErrorIs(t, err, tripform.ErrUnexpectedEvent, "event %T", ev)
	}
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "details", tripform.StepDetails.String())
	assert.Equal(t, "submitted", tripform.StepSubmitted.String())
}
