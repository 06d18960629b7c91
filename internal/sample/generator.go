package sample

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/avdeev99/travelbot/internal/domain"
)

// Destinations is the fixed list a new assignment picks from.
var Destinations = []string{
	"Los Angeles (LAX)",
	"New York (JFK)",
	"Chicago (ORD)",
	"Dallas (DFW)",
	"Denver (DEN)",
	"San Francisco (SFO)",
	"Tokyo (HND)",
	"Las Vegas (LAS)",
	"Phoenix (PHX)",
	"Houston (IAH)",
}

const (
	routesPerTicket = 5
	travelDates     = "Monday November 17th - Friday November 21st, 2025"
)

// RandomDestination picks uniformly from the fixed destination list.
func RandomDestination() string {
	return Destinations[rand.Intn(len(Destinations))]
}

// GenerateRoutes produces count flight options, each with a random airline
// and a 3-digit flight number prefixed by the airline's first two letters.
func GenerateRoutes(count int) []domain.Route {
	routes := make([]domain.Route, 0, count)
	for i := 0; i < count; i++ {
		airline := domain.Airlines[rand.Intn(len(domain.Airlines))]
		number := rand.Intn(900) + 100
		routes = append(routes, domain.Route{
			Airline:      airline,
			FlightNumber: fmt.Sprintf("%s%d", strings.ToUpper(string(airline)[:2]), number),
		})
	}
	return routes
}

// GenerateTicket produces a fresh pending ticket with a random destination
// and five offered routes. Not deterministic; every call may differ.
func GenerateTicket() domain.TravelTicket {
	return domain.TravelTicket{
		Origin:          domain.Origin,
		Destination:     RandomDestination(),
		AvailableRoutes: GenerateRoutes(routesPerTicket),
		SelectedRoute:   domain.RouteTBD,
		TravelDates:     travelDates,
		Status:          domain.TicketStatusPending,
	}
}
