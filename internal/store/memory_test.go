package store

import (
	"context"
	"testing"

	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingState(destination string) *domain.State {
	return &domain.State{
		CurrTicket: domain.TravelTicket{
			Origin:        domain.Origin,
			Destination:   destination,
			SelectedRoute: domain.RouteTBD,
			Status:        domain.TicketStatusPending,
		},
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), DefaultSlot)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, DefaultSlot, pendingState("Tokyo (HND)")))

	got, err := s.Get(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo (HND)", got.CurrTicket.Destination)
}

func TestMemoryStore_InitIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seeded, err := s.Init(ctx, DefaultSlot, pendingState("Tokyo (HND)"))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.Init(ctx, DefaultSlot, pendingState("Denver (DEN)"))
	require.NoError(t, err)
	assert.False(t, seeded)

	got, err := s.Get(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo (HND)", got.CurrTicket.Destination, "existing state must never be overwritten")
}

func TestMemoryStore_SlotsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "conv-a", pendingState("Tokyo (HND)")))
	require.NoError(t, s.Set(ctx, "conv-b", pendingState("Denver (DEN)")))

	a, err := s.Get(ctx, "conv-a")
	require.NoError(t, err)
	b, err := s.Get(ctx, "conv-b")
	require.NoError(t, err)

	assert.Equal(t, "Tokyo (HND)", a.CurrTicket.Destination)
	assert.Equal(t, "Denver (DEN)", b.CurrTicket.Destination)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	state := pendingState("Tokyo (HND)")
	state.CurrTicket.AvailableRoutes = []domain.Route{{Airline: domain.AirlineDelta, FlightNumber: "DL123"}}
	require.NoError(t, s.Set(ctx, DefaultSlot, state))

	got, err := s.Get(ctx, DefaultSlot)
	require.NoError(t, err)
	got.CurrTicket.Destination = "mutated"
	got.CurrTicket.AvailableRoutes[0].FlightNumber = "XX000"
	got.CompletedBookings = append(got.CompletedBookings, domain.TravelTicket{ID: "TKT-1"})

	fresh, err := s.Get(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo (HND)", fresh.CurrTicket.Destination)
	assert.Equal(t, "DL123", fresh.CurrTicket.AvailableRoutes[0].FlightNumber)
	assert.Empty(t, fresh.CompletedBookings)
}
