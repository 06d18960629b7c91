package sample

import (
	"strings"
	"testing"

	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateTicket(t *testing.T) {
	for i := 0; i < 50; i++ {
		ticket := GenerateTicket()

		assert.Equal(t, domain.TicketStatusPending, ticket.Status)
		assert.Equal(t, domain.RouteTBD, ticket.SelectedRoute)
		assert.Equal(t, domain.Origin, ticket.Origin)
		assert.Empty(t, ticket.ID)
		assert.Nil(t, ticket.Member)
		assert.Empty(t, ticket.BookingDate)
		assert.Len(t, ticket.AvailableRoutes, 5)
		assert.Contains(t, Destinations, ticket.Destination)
		assert.NotEmpty(t, ticket.TravelDates)
	}
}

func TestGenerateRoutes_flightNumberFormat(t *testing.T) {
	routes := GenerateRoutes(100)

	for _, route := range routes {
		assert.Contains(t, domain.Airlines, route.Airline)

		prefix := strings.ToUpper(string(route.Airline)[:2])
		assert.True(t, strings.HasPrefix(route.FlightNumber, prefix),
			"flight number %q should start with %q", route.FlightNumber, prefix)

		digits := strings.TrimPrefix(route.FlightNumber, prefix)
		assert.Len(t, digits, 3)
		assert.GreaterOrEqual(t, digits, "100")
		assert.LessOrEqual(t, digits, "999")
	}
}

func TestRandomDestination(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Contains(t, Destinations, RandomDestination())
	}
}

func TestRouteValue(t *testing.T) {
	route := domain.Route{Airline: domain.AirlineDelta, FlightNumber: "DL123"}
	assert.Equal(t, "Delta - DL123", route.Value())
}
