// Package tripform is the multi-step trip creation flow modelled as a finite
// state machine. Transition is pure: remote calls and persistence are returned
// as Effects for a runner to execute, so every rule here is testable without
// a UI or a network.
package tripform

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkordes/planner/internal/calendar"
	"github.com/pkordes/planner/internal/domain"
)

// MinDestinationLength is the shortest trimmed destination accepted.
const MinDestinationLength = 4

// ErrUnexpectedEvent is returned when an event is not allowed in the form's
// current step. The form is left unchanged.
var ErrUnexpectedEvent = errors.New("event not allowed in current step")

// Step is the state tag of the creation form.
type Step int

const (
	// StepDetails collects destination and dates. Initial step.
	StepDetails Step = iota + 1
	// StepInvite manages the optional set of guest emails.
	StepInvite
	// StepConfirm waits for the user's explicit yes/no before submitting.
	StepConfirm
	// StepSubmitting has handed a CreateTrip effect to the runner.
	StepSubmitting
	// StepSubmitted is terminal; TripID is set.
	StepSubmitted
)

var stepNames = map[Step]string{
	StepDetails:    "details",
	StepInvite:     "invite",
	StepConfirm:    "confirm",
	StepSubmitting: "submitting",
	StepSubmitted:  "submitted",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Form is the full state of one trip being created.
type Form struct {
	Step        Step
	Destination string
	Dates       calendar.Range
	// Emails are normalised (trimmed, lowercased) and unique, in insertion order.
	Emails []string
	// TripID is set once the remote API has created the trip.
	TripID string
}

// New returns an empty form in StepDetails.
func New() Form {
	return Form{Step: StepDetails}
}

// Event is an input to Transition.
type Event interface{ event() }

// SetDestination replaces the destination text. Allowed in StepDetails.
type SetDestination struct{ Destination string }

// TapDay feeds a calendar tap through calendar.Select. Allowed in StepDetails.
type TapDay struct{ Day time.Time }

// Next advances Details → Invite or Invite → Confirm when the details are valid.
type Next struct{}

// Back returns Invite → Details or Confirm → Invite. Guest emails are kept.
type Back struct{}

// AddEmail adds a guest email. Allowed in StepInvite.
type AddEmail struct{ Email string }

// RemoveEmail removes a guest email if present. Allowed in StepInvite.
type RemoveEmail struct{ Email string }

// Answer is the user's reply to "Confirm trip?". Allowed in StepConfirm.
type Answer struct{ Yes bool }

// Created reports that the remote API created the trip. Allowed in StepSubmitting.
type Created struct{ TripID string }

// Failed reports that the CreateTrip effect failed. Allowed in StepSubmitting.
type Failed struct{ Err error }

func (SetDestination) event() {}
func (TapDay) event()         {}
func (Next) event()           {}
func (Back) event()           {}
func (AddEmail) event()       {}
func (RemoveEmail) event()    {}
func (Answer) event()         {}
func (Created) event()        {}
func (Failed) event()         {}

// Effect is a side effect requested by Transition.
type Effect interface{ effect() }

// CreateTrip asks the runner to create Trip on the remote API and to feed
// back Created or Failed.
type CreateTrip struct{ Trip domain.NewTrip }

func (CreateTrip) effect() {}

// Transition applies ev to f. On error the returned form equals f and no
// effects are produced.
func Transition(f Form, ev Event) (Form, []Effect, error) {
	switch ev := ev.(type) {
	case SetDestination:
		if f.Step != StepDetails {
			return f, nil, unexpected(f, ev)
		}
		f.Destination = ev.Destination
		return f, nil, nil

	case TapDay:
		if f.Step != StepDetails {
			return f, nil, unexpected(f, ev)
		}
		f.Dates = calendar.Select(f.Dates, ev.Day)
		return f, nil, nil

	case Next:
		switch f.Step {
		case StepDetails, StepInvite:
		default:
			return f, nil, unexpected(f, ev)
		}
		if err := ValidateDetails(f.Destination, f.Dates); err != nil {
			return f, nil, err
		}
		if f.Step == StepDetails {
			f.Step = StepInvite
		} else {
			f.Step = StepConfirm
		}
		return f, nil, nil

	case Back:
		switch f.Step {
		case StepInvite:
			f.Step = StepDetails
		case StepConfirm:
			f.Step = StepInvite
		default:
			return f, nil, unexpected(f, ev)
		}
		return f, nil, nil

	case AddEmail:
		if f.Step != StepInvite {
			return f, nil, unexpected(f, ev)
		}
		email := domain.NormalizeEmail(ev.Email)
		if !domain.IsEmail(email) {
			return f, nil, domain.Invalid("email", "is invalid")
		}
		if slices.Contains(f.Emails, email) {
			return f, nil, domain.Invalid("email", "already exists")
		}
		f.Emails = append(slices.Clone(f.Emails), email)
		return f, nil, nil

	case RemoveEmail:
		if f.Step != StepInvite {
			return f, nil, unexpected(f, ev)
		}
		email := domain.NormalizeEmail(ev.Email)
		f.Emails = slices.DeleteFunc(slices.Clone(f.Emails), func(e string) bool { return e == email })
		return f, nil, nil

	case Answer:
		if f.Step != StepConfirm {
			return f, nil, unexpected(f, ev)
		}
		if !ev.Yes {
			f.Step = StepInvite
			return f, nil, nil
		}
		f.Step = StepSubmitting
		return f, []Effect{CreateTrip{Trip: f.newTrip()}}, nil

	case Created:
		if f.Step != StepSubmitting {
			return f, nil, unexpected(f, ev)
		}
		if ev.TripID == "" {
			return f, nil, fmt.Errorf("%w: created trip has empty id", domain.ErrInvariant)
		}
		f.Step = StepSubmitted
		f.TripID = ev.TripID
		return f, nil, nil

	case Failed:
		if f.Step != StepSubmitting {
			return f, nil, unexpected(f, ev)
		}
		f.Step = StepInvite
		return f, nil, nil
	}

	return f, nil, fmt.Errorf("%w: unknown event %T", ErrUnexpectedEvent, ev)
}

// ValidateDetails checks the details gate and reports the first unmet
// condition as a *domain.ValidationError.
func ValidateDetails(destination string, dates calendar.Range) error {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return domain.Invalid("destination", "is required")
	}
	if !dates.Complete() {
		return domain.Invalid("dates", "must have a start and an end date")
	}
	if utf8.RuneCountInString(dest) < MinDestinationLength {
		return domain.Invalid("destination", fmt.Sprintf("must have at least %d characters", MinDestinationLength))
	}
	return nil
}

func (f Form) newTrip() domain.NewTrip {
	return domain.NewTrip{
		Destination:    strings.TrimSpace(f.Destination),
		StartsAt:       f.Dates.StartsAt,
		EndsAt:         f.Dates.EndsAt,
		EmailsToInvite: slices.Clone(f.Emails),
	}
}

func unexpected(f Form, ev Event) error {
	return fmt.Errorf("%w: %T in step %s", ErrUnexpectedEvent, ev, f.Step)
}
