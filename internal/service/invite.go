package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/planner/internal/deeplink"
	"github.com/pkordes/planner/internal/domain"
)

// ParticipantConfirmer is the part of the remote API the invite flow needs.
type ParticipantConfirmer interface {
	ConfirmParticipant(ctx context.Context, in domain.Confirmation) error
}

// InviteFlow handles a guest opening an invite link and confirming
// attendance. A successful confirmation binds the device to the trip.
type InviteFlow struct {
	participants ParticipantConfirmer
	binding      *DeviceBinding
	scheme       string
	log          *slog.Logger
	confirm      Guard
}

// NewInviteFlow constructs an InviteFlow. An empty scheme means
// deeplink.DefaultScheme.
func NewInviteFlow(p ParticipantConfirmer, b *DeviceBinding, scheme string, log *slog.Logger) *InviteFlow {
	if scheme == "" {
		scheme = deeplink.DefaultScheme
	}
	if log == nil {
		log = slog.Default()
	}
	return &InviteFlow{participants: p, binding: b, scheme: scheme, log: log}
}

// Open parses an incoming link and reports which screen it leads to.
func (f *InviteFlow) Open(raw string) (deeplink.Entry, error) {
	e, err := deeplink.Parse(f.scheme, raw)
	if err != nil {
		return deeplink.Entry{}, fmt.Errorf("service.InviteFlow.Open: %w", err)
	}
	return e, nil
}

// Confirm validates in, confirms the participant on the remote API, and
// binds the device to in.TripID.
//
// Name and email are trimmed and the email lowercased before sending. The
// binding is only written after the remote call succeeds.
func (f *InviteFlow) Confirm(ctx context.Context, in domain.Confirmation) error {
	if in.TripID == "" || in.ParticipantID == "" {
		return fmt.Errorf("service.InviteFlow.Confirm: %w: trip and participant ids are required", domain.ErrInvariant)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := validateConfirmation(in); err != nil {
		return err
	}

	return f.confirm.Do("confirm participant", func() error {
		if err := f.participants.ConfirmParticipant(ctx, in); err != nil {
			f.log.ErrorContext(ctx, "confirm participant failed",
				"trip_id", in.TripID, "participant_id", in.ParticipantID, "error", err)
			return &domain.RemoteError{Op: "confirm participant", Err: err}
		}
		if err := f.binding.Save(ctx, in.TripID); err != nil {
			return fmt.Errorf("service.InviteFlow.Confirm: %w", err)
		}
		f.log.InfoContext(ctx, "participant confirmed", "trip_id", in.TripID, "participant_id", in.ParticipantID)
		return nil
	})
}

func validateConfirmation(in domain.Confirmation) error {
	if in.Name == "" {
		return domain.Invalid("name", "is required")
	}
	if in.Email == "" {
		return domain.Invalid("email", "is required")
	}
	if !domain.IsEmail(in.Email) {
		return domain.Invalid("email", "is invalid")
	}
	return nil
}
