package domain

type TicketStatus string

const (
	TicketStatusPending TicketStatus = "pending"
	TicketStatusBooked  TicketStatus = "booked"
)

// Origin is the single supported departure airport.
const Origin = "Seattle (SEA)"

// RouteTBD is the selected-route placeholder until the user picks a flight.
const RouteTBD = "TBD"

type Airline string

const (
	AirlineDelta     Airline = "Delta"
	AirlineAmerican  Airline = "American"
	AirlineUnited    Airline = "United"
	AirlineSouthwest Airline = "Southwest"
	AirlineJetBlue   Airline = "JetBlue"
	AirlineAlaska    Airline = "Alaska"
	AirlineSpirit    Airline = "Spirit"
	AirlineFrontier  Airline = "Frontier"
	AirlineHawaiian  Airline = "Hawaiian"
	AirlineAirCanada Airline = "Air Canada"
	AirlineWestJet   Airline = "WestJet"
)

// Airlines is the closed set of carriers routes are drawn from.
var Airlines = []Airline{
	AirlineDelta,
	AirlineAmerican,
	AirlineUnited,
	AirlineSouthwest,
	AirlineJetBlue,
	AirlineAlaska,
	AirlineSpirit,
	AirlineFrontier,
	AirlineHawaiian,
	AirlineAirCanada,
	AirlineWestJet,
}

// Route is one offered flight option for a ticket.
type Route struct {
	Airline      Airline `json:"airline"`
	FlightNumber string  `json:"flight_number"`
}

// Value is the canonical "<airline> - <flightNumber>" string a booking-form
// submission echoes back. The submit handler matches against it by value.
func (r Route) Value() string {
	return string(r.Airline) + " - " + r.FlightNumber
}

type Member struct {
	Name string `json:"name"`
}

// TravelTicket is one trip, in progress or completed. ID, Member and
// BookingDate are set only when the ticket is booked.
type TravelTicket struct {
	ID              string       `json:"id,omitempty"`
	Member          *Member      `json:"member,omitempty"`
	Origin          string       `json:"origin"`
	Destination     string       `json:"destination"`
	AvailableRoutes []Route      `json:"available_routes"`
	SelectedRoute   string       `json:"selected_route"`
	TravelDates     string       `json:"travel_dates"`
	Status          TicketStatus `json:"status"`
	BookingDate     string       `json:"booking_date,omitempty"`
}

// State is the whole value held under one store slot: the ticket currently
// being planned plus the append-only list of completed bookings.
type State struct {
	CurrTicket        TravelTicket   `json:"curr_ticket"`
	CompletedBookings []TravelTicket `json:"completed_bookings"`
}

// Clone returns a deep copy so handlers can read-modify-write a full state
// value without aliasing the slices of the value they read.
func (s *State) Clone() *State {
	out := &State{CurrTicket: s.CurrTicket}
	out.CurrTicket.AvailableRoutes = append([]Route(nil), s.CurrTicket.AvailableRoutes...)
	if s.CurrTicket.Member != nil {
		m := *s.CurrTicket.Member
		out.CurrTicket.Member = &m
	}
	out.CompletedBookings = append([]TravelTicket(nil), s.CompletedBookings...)
	return out
}
