package cards

import (
	"fmt"
	"strings"
	"time"

	"github.com/avdeev99/travelbot/internal/domain"
)

// Form input ids and the submit action id. The dialog-submit handler reads
// the payload back by these names.
const (
	NameInputID       = "userNameInput"
	RouteInputID      = "selectedRoute"
	BookingActionID   = "completeBooking"
	ProceedActionID   = "proceedToBookingButton"
	BookingDateLayout = "1/2/2006"
)

// AssignmentCard renders the travel-assignment notice for a pending ticket.
// Tolerates a ticket whose route is still TBD.
func AssignmentCard(ticket domain.TravelTicket) *Card {
	statusColor := "Good"
	if ticket.Status == domain.TicketStatusPending {
		statusColor = "Warning"
	}

	card := NewCard(
		Container("emphasis", "",
			TextBlock("✈️ New Travel Assignment",
				WithSize("Large"), WithWeight("Bolder"), WithColor("Accent"), Centered(), WithSpacing("Medium")),
		),
		Container("", "Medium",
			TextBlock("📋 Trip Information", WithSize("Medium"), WithWeight("Bolder"), WithSpacing("Medium")),
			TextBlock(fmt.Sprintf("🛫 **Departure:** %s", ticket.Origin), WithWeight("Bolder"), WithSpacing("Small"), Wrapped()),
			TextBlock(fmt.Sprintf("🛬 **Destination:** %s", ticket.Destination), WithWeight("Bolder"), WithColor("Accent"), WithSpacing("Small"), Wrapped()),
			TextBlock(fmt.Sprintf("📅 **Travel Period:** %s", ticket.TravelDates), WithSpacing("Small"), Wrapped()),
			TextBlock(fmt.Sprintf("**Current Status:** %s", strings.ToUpper(string(ticket.Status))),
				WithColor(statusColor), WithWeight("Bolder"), WithSpacing("Small")),
		),
		Container("accent", "Large",
			TextBlock("Ready to secure your travel arrangements? 🎯", Centered(), WithColor("Light"), WithWeight("Bolder")),
		),
	)
	return card.WithActions(TaskFetchAction("🚀 Choose Your Airline & Route", ProceedActionID))
}

// BookingFormCard renders the booking dialog: a name input plus one choice
// per offered route, in offer order. Each choice value is the canonical
// "<airline> - <flightNumber>" string the submit handler expects back.
func BookingFormCard(ticket domain.TravelTicket) *Card {
	choices := make([]Choice, 0, len(ticket.AvailableRoutes))
	for _, route := range ticket.AvailableRoutes {
		choices = append(choices, Choice{
			Title: fmt.Sprintf("✈️ %s Flight %s", route.Airline, route.FlightNumber),
			Value: route.Value(),
		})
	}

	card := NewCard(
		Container("accent", "",
			TextBlock("✈️ Complete Your Reservation",
				WithSize("Large"), WithWeight("Bolder"), WithColor("Light"), Centered(), WithSpacing("Medium")),
		),
		Container("", "Large",
			TextBlock("👤 Personal Information", WithWeight("Bolder"), WithSize("Medium"), WithSpacing("Medium")),
			TextBlock("Please provide your full legal name as it appears on your passport:", WithSpacing("Small"), Wrapped()),
			TextInput(NameInputID, "Full Name (e.g., John Michael Smith)"),
			TextBlock("✈️ Flight Preferences", WithWeight("Bolder"), WithSize("Medium"), WithSpacing("Medium")),
			TextBlock("Select your preferred airline and flight option:", WithSpacing("Small"), Wrapped()),
			ChoiceSet(RouteInputID, "Choose your preferred flight", choices),
		),
		Container("emphasis", "Large",
			TextBlock("Ready to confirm your travel details? 🎯", Centered(), WithColor("Accent"), WithWeight("Bolder")),
		),
	)
	return card.WithActions(SubmitAction("🚀 Confirm Booking", BookingActionID))
}

// ConfirmationCard renders the booking summary for a completed ticket.
func ConfirmationCard(ticket domain.TravelTicket) *Card {
	traveler := "Unknown"
	if ticket.Member != nil && ticket.Member.Name != "" {
		traveler = ticket.Member.Name
	}
	bookingDate := ticket.BookingDate
	if bookingDate == "" {
		bookingDate = time.Now().Format(BookingDateLayout)
	}
	bookingID := ticket.ID
	if bookingID == "" {
		bookingID = "Generating..."
	}
	reference := ticket.ID
	if reference == "" {
		reference = domain.RouteTBD
	}

	return NewCard(
		Container("good", "",
			TextBlock("🎉 Booking Confirmed!",
				WithSize("Large"), WithWeight("Bolder"), WithColor("Light"), Centered(), WithSpacing("Medium")),
			TextBlock("Your travel has been reserved", Centered(), WithColor("Light"), WithSpacing("Small")),
		),
		Container("", "Large",
			TextBlock("📋 Booking Summary", WithSize("Medium"), WithWeight("Bolder"), WithSpacing("Medium")),
			FactSet("Medium",
				Fact{Title: "🎫 Booking ID", Value: bookingID},
				Fact{Title: "👤 Traveler", Value: traveler},
				Fact{Title: "🛫 Departure", Value: ticket.Origin},
				Fact{Title: "🛬 Destination", Value: ticket.Destination},
				Fact{Title: "📅 Travel Dates", Value: ticket.TravelDates},
				Fact{Title: "✈️ Selected Flight", Value: ticket.SelectedRoute},
				Fact{Title: "📆 Booking Date", Value: bookingDate},
				Fact{Title: "✅ Status", Value: strings.ToUpper(string(ticket.Status))},
			),
		),
		Container("emphasis", "Large",
			TextBlock(fmt.Sprintf("📝 Reference: %s", reference),
				Centered(), WithWeight("Bolder"), WithColor("Accent"), WithSize("Medium")),
			TextBlock("Bon voyage! ✈️", Centered(), WithColor("Accent"), WithSpacing("Small")),
		),
	)
}
