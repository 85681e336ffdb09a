package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

// TripCreator is the part of the remote API the creation flow needs.
type TripCreator interface {
	CreateTrip(ctx context.Context, t domain.NewTrip) (string, error)
}

// CreationFlow drives one tripform.Form and executes the effects its
// transitions request. It never binds the device: once Dispatch returns a
// form in tripform.StepSubmitted the caller saves Form.TripID.
type CreationFlow struct {
	trips  TripCreator
	log    *slog.Logger
	submit Guard

	mu   sync.Mutex
	form tripform.Form
}

// NewCreationFlow starts a flow with an empty form.
func NewCreationFlow(trips TripCreator, log *slog.Logger) *CreationFlow {
	if log == nil {
		log = slog.Default()
	}
	return &CreationFlow{trips: trips, log: log, form: tripform.New()}
}

// Form returns the current form.
func (c *CreationFlow) Form() tripform.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Reset discards the current form and starts over. A form whose trip is
// still being created cannot be reset: the create call returns into it.
func (c *CreationFlow) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Step == tripform.StepSubmitting {
		return fmt.Errorf("service.CreationFlow.Reset: %w", domain.ErrInFlight)
	}
	c.form = tripform.New()
	return nil
}

// Dispatch applies ev and runs any resulting effects.
//
// Validation problems come back as *domain.ValidationError, events that do
// not fit the current step as tripform.ErrUnexpectedEvent, and a failed
// remote create as *domain.RemoteError (the form returns to the invite step
// so the user can retry). The returned form is always the current one.
func (c *CreationFlow) Dispatch(ctx context.Context, ev tripform.Event) (tripform.Form, error) {
	effects, err := c.apply(ev)
	if err != nil {
		return c.Form(), err
	}
	for _, eff := range effects {
		switch e := eff.(type) {
		case tripform.CreateTrip:
			if err := c.create(ctx, e); err != nil {
				return c.Form(), err
			}
		}
	}
	return c.Form(), nil
}

func (c *CreationFlow) apply(ev tripform.Event) ([]tripform.Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, effects, err := tripform.Transition(c.form, ev)
	if err != nil {
		return nil, err
	}
	c.form = next
	return effects, nil
}

func (c *CreationFlow) create(ctx context.Context, e tripform.CreateTrip) error {
	return c.submit.Do("create trip", func() error {
		id, err := c.trips.CreateTrip(ctx, e.Trip)
		if err != nil {
			c.log.ErrorContext(ctx, "create trip failed", "destination", e.Trip.Destination, "error", err)
			_, _ = c.apply(tripform.Failed{Err: err})
			return &domain.RemoteError{Op: "create trip", Err: err}
		}
		if _, err := c.apply(tripform.Created{TripID: id}); err != nil {
			_, _ = c.apply(tripform.Failed{Err: err})
			return err
		}
		c.log.InfoContext(ctx, "trip created", "trip_id", id, "guests", len(e.Trip.EmailsToInvite))
		return nil
	})
}
