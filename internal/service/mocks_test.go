package service_test

import (
	"context"
	"log/slog"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/repo"
	"github.com/pkordes/planner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockStore struct {
	load   func(ctx context.Context, key string) (string, error)
	store  func(ctx context.Context, key, tripID string) error
	delete func(ctx context.Context, key string) error
}

func (m *mockStore) Load(ctx context.Context, key string) (string, error) { return m.load(ctx, key) }
func (m *mockStore) Store(ctx context.Context, key, tripID string) error {
	return m.store(ctx, key, tripID)
}
func (m *mockStore) Delete(ctx context.Context, key string) error { return m.delete(ctx, key) }

var _ repo.BindingStore = (*mockStore)(nil)

type mockCreator struct {
	createTrip func(ctx context.Context, t domain.NewTrip) (string, error)
}

func (m *mockCreator) CreateTrip(ctx context.Context, t domain.NewTrip) (string, error) {
	return m.createTrip(ctx, t)
}

var _ service.TripCreator = (*mockCreator)(nil)

type mockConfirmer struct {
	confirm func(ctx context.Context, in domain.Confirmation) error
}

func (m *mockConfirmer) ConfirmParticipant(ctx context.Context, in domain.Confirmation) error {
	return m.confirm(ctx, in)
}

var _ service.ParticipantConfirmer = (*mockConfirmer)(nil)

type mockTripAPI struct {
	getTrip          func(ctx context.Context, id string) (domain.Trip, error)
	updateTrip       func(ctx context.Context, u domain.TripUpdate) error
	inviteGuest      func(ctx context.Context, tripID, email string) error
	listParticipants func(ctx context.Context, tripID string) ([]domain.Participant, error)
	createLink       func(ctx context.Context, l domain.NewLink) (string, error)
	listLinks        func(ctx context.Context, tripID string) ([]domain.Link, error)
}

func (m *mockTripAPI) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	return m.getTrip(ctx, id)
}
func (m *mockTripAPI) UpdateTrip(ctx context.Context, u domain.TripUpdate) error {
	return m.updateTrip(ctx, u)
}
func (m *mockTripAPI) InviteGuest(ctx context.Context, tripID, email string) error {
	return m.inviteGuest(ctx, tripID, email)
}
func (m *mockTripAPI) ListParticipants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	return m.listParticipants(ctx, tripID)
}
func (m *mockTripAPI) CreateLink(ctx context.Context, l domain.NewLink) (string, error) {
	return m.createLink(ctx, l)
}
func (m *mockTripAPI) ListLinks(ctx context.Context, tripID string) ([]domain.Link, error) {
	return m.listLinks(ctx, tripID)
}

var _ service.TripAPI = (*mockTripAPI)(nil)

func quietLog() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newBinding() *service.DeviceBinding {
	return service.NewDeviceBinding(repo.NewMemoryBindingStore(), "phone")
}
