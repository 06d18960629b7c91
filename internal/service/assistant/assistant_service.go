package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avdeev99/travelbot/internal/cards"
	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/avdeev99/travelbot/internal/kafka"
	"github.com/avdeev99/travelbot/internal/sample"
	"github.com/avdeev99/travelbot/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssistantUseCase interface {
	Seed(ctx context.Context, conversationID string) error
	OpenBookingDialog(ctx context.Context, conversationID string) (*cards.TaskResponse, error)
	SubmitBooking(ctx context.Context, conversationID string, input SubmitBookingInput) (*SubmitBookingResult, error)
	HandleMessage(ctx context.Context, conversationID, text string) (*MessageResult, error)
	AvailableRoutes(ctx context.Context, conversationID string) ([]domain.Route, error)
	ListBookings(ctx context.Context, conversationID string) (string, error)
	GenerateAssignment(ctx context.Context, conversationID string) (string, error)
}

// Model is the external language-model collaborator. Send forwards one user
// message and returns the reply text plus the names of any assistant
// functions the model invoked during the turn.
type Model interface {
	Send(ctx context.Context, conversationID, text string) (content string, toolCalls []string, err error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SubmitBookingInput struct {
	UserName      string `json:"userNameInput"`
	SelectedRoute string `json:"selectedRoute"`
}

type SubmitBookingResult struct {
	Completed    domain.TravelTicket
	Confirmation cards.Activity
	Ack          *cards.InvokeResponse
}

type MessageResult struct {
	Reply string
	// Card carries the assignment notice when the turn produced or referred
	// to a new travel assignment, nil otherwise.
	Card *cards.Activity
}

const (
	noBookingsMessage = "You have no completed bookings yet."
	apologyMessage    = "Sorry, I'm having trouble reaching the travel assistant right now. Please try again in a moment."

	defaultModelTimeout = 30 * time.Second

	// AssignmentFunctionName is the tool the model calls to refresh a
	// ticket's destination. HandleMessage watches for it by name.
	AssignmentFunctionName = "generate_new_travel_assignment"
)

// triggerPhrases is the fallback heuristic: when the model's reply mentions
// assignment language, the assignment card is shown even if no tool-call
// event was observed. The announcement wording below keeps these phrases.
var triggerPhrases = []string{
	"upcoming travel",
	"travel assignment",
	"scheduled to present",
}

type AssistantService struct {
	store        store.Store
	model        Model
	producer     Producer
	bookingTopic string
	logger       *zap.Logger

	newTicket      func() domain.TravelTicket
	newDestination func() string
	modelTimeout   time.Duration
}

type AssistantServiceOption func(*AssistantService)

// WithTicketGenerator overrides the sample-data source, used in tests.
func WithTicketGenerator(gen func() domain.TravelTicket) AssistantServiceOption {
	return func(s *AssistantService) {
		s.newTicket = gen
	}
}

func WithDestinationPicker(pick func() string) AssistantServiceOption {
	return func(s *AssistantService) {
		s.newDestination = pick
	}
}

func WithModelTimeout(timeout time.Duration) AssistantServiceOption {
	return func(s *AssistantService) {
		s.modelTimeout = timeout
	}
}

func NewAssistantService(
	st store.Store,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...AssistantServiceOption,
) *AssistantService {
	service := &AssistantService{
		store:          st,
		producer:       producer,
		bookingTopic:   bookingTopic,
		logger:         logger,
		newTicket:      sample.GenerateTicket,
		newDestination: sample.RandomDestination,
		modelTimeout:   defaultModelTimeout,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// AttachModel wires the language-model collaborator. Separate from the
// constructor because the model's tool declarations point back at this
// service.
func (s *AssistantService) AttachModel(m Model) {
	s.model = m
}

// Seed initializes a conversation's state with a fresh sample ticket. It
// never overwrites state that already exists.
func (s *AssistantService) Seed(ctx context.Context, conversationID string) error {
	seeded, err := s.store.Init(ctx, slotFor(conversationID), &domain.State{CurrTicket: s.newTicket()})
	if err != nil {
		return fmt.Errorf("seed state: %w", err)
	}
	if seeded {
		s.logger.Debug("seeded booking state", zap.String("conversation", conversationID))
	}
	return nil
}

func (s *AssistantService) OpenBookingDialog(ctx context.Context, conversationID string) (*cards.TaskResponse, error) {
	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	ticket := state.CurrTicket
	return cards.ContinueTask(cards.BookingFormCard(ticket), ticket.Destination, ticket.AvailableRoutes), nil
}

func (s *AssistantService) SubmitBooking(ctx context.Context, conversationID string, input SubmitBookingInput) (*SubmitBookingResult, error) {
	if strings.TrimSpace(input.UserName) == "" {
		return nil, ErrEmptyTravelerName
	}

	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	ticket := state.CurrTicket
	if !offeredRoute(ticket.AvailableRoutes, input.SelectedRoute) {
		return nil, ErrUnknownRoute
	}

	completed := ticket
	completed.ID = fmt.Sprintf("TKT-%s", uuid.NewString())
	completed.Member = &domain.Member{Name: input.UserName}
	completed.SelectedRoute = input.SelectedRoute
	completed.Status = domain.TicketStatusBooked
	completed.BookingDate = time.Now().Format(cards.BookingDateLayout)

	// Cycle the slot to a fresh pending ticket. Only the destination
	// survives; routes and dates are regenerated.
	next := s.newTicket()
	next.Destination = ticket.Destination
	next.Status = domain.TicketStatusPending

	state.CompletedBookings = append(state.CompletedBookings, completed)
	state.CurrTicket = next
	if err := s.store.Set(ctx, slotFor(conversationID), state); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	s.publish(ctx, kafka.BookingEvent{
		Type:           kafka.EventBookingCompleted,
		TicketID:       completed.ID,
		ConversationID: conversationID,
		Traveler:       completed.Member.Name,
		Origin:         completed.Origin,
		Destination:    completed.Destination,
		SelectedRoute:  completed.SelectedRoute,
		TravelDates:    completed.TravelDates,
		BookingDate:    completed.BookingDate,
		Status:         string(completed.Status),
	})

	return &SubmitBookingResult{
		Completed:    completed,
		Confirmation: cards.CardActivity(cards.ConfirmationCard(completed)),
		Ack:          cards.MessageTask(fmt.Sprintf("Great your travel to %s has been booked!", next.Destination)),
	}, nil
}

// HandleMessage forwards one user message to the model and decides whether
// to attach the assignment card: either the model reported invoking the
// new-assignment function, the stored destination changed during the turn,
// or the reply text matches a trigger phrase.
func (s *AssistantService) HandleMessage(ctx context.Context, conversationID, text string) (*MessageResult, error) {
	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	destinationBefore := state.CurrTicket.Destination

	content, toolCalls, err := s.sendToModel(ctx, conversationID, text)
	if err != nil {
		s.logger.Error("model call failed twice, apologizing",
			zap.String("conversation", conversationID), zap.Error(err))
		return &MessageResult{Reply: apologyMessage}, nil
	}

	// State read before the model call is stale now: the model may have
	// invoked the new-assignment function mid-turn.
	state, err = s.ensureState(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	result := &MessageResult{Reply: content}
	if destinationBefore != state.CurrTicket.Destination ||
		calledAssignment(toolCalls) ||
		mentionsAssignment(content) {
		card := cards.CardActivity(cards.AssignmentCard(state.CurrTicket))
		result.Card = &card
	}
	return result, nil
}

func (s *AssistantService) AvailableRoutes(ctx context.Context, conversationID string) ([]domain.Route, error) {
	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return state.CurrTicket.AvailableRoutes, nil
}

func (s *AssistantService) ListBookings(ctx context.Context, conversationID string) (string, error) {
	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return "", err
	}

	bookings := state.CompletedBookings
	if len(bookings) == 0 {
		return noBookingsMessage, nil
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "📋 Your Travel Bookings (%d total):\n\n", len(bookings))
	for i, booking := range bookings {
		traveler := "Unknown"
		if booking.Member != nil && booking.Member.Name != "" {
			traveler = booking.Member.Name
		}
		fmt.Fprintf(&summary, "%d. %s\n", i+1, booking.ID)
		fmt.Fprintf(&summary, "👤 Traveler: %s\n", traveler)
		fmt.Fprintf(&summary, "🛫 %s → 🛬 %s\n", booking.Origin, booking.Destination)
		fmt.Fprintf(&summary, "✈️ Route: %s\n", booking.SelectedRoute)
		fmt.Fprintf(&summary, "📅 Travel Dates: %s\n", booking.TravelDates)
		fmt.Fprintf(&summary, "📆 Booked: %s\n", booking.BookingDate)
		fmt.Fprintf(&summary, "✅ Status: %s\n\n", booking.Status)
	}
	return summary.String(), nil
}

// GenerateAssignment replaces only the current ticket's destination and
// resets its status to pending; routes and travel dates stay as they are.
// The announcement wording is load-bearing: it contains the trigger phrases
// HandleMessage matches on.
func (s *AssistantService) GenerateAssignment(ctx context.Context, conversationID string) (string, error) {
	state, err := s.ensureState(ctx, conversationID)
	if err != nil {
		return "", err
	}

	destination := s.newDestination()
	state.CurrTicket.Destination = destination
	state.CurrTicket.Status = domain.TicketStatusPending
	if err := s.store.Set(ctx, slotFor(conversationID), state); err != nil {
		return "", fmt.Errorf("persist assignment: %w", err)
	}

	s.publish(ctx, kafka.BookingEvent{
		Type:           kafka.EventAssignmentGenerated,
		ConversationID: conversationID,
		Origin:         state.CurrTicket.Origin,
		Destination:    destination,
		TravelDates:    state.CurrTicket.TravelDates,
		Status:         string(state.CurrTicket.Status),
	})

	return fmt.Sprintf("✈️ UPCOMING TRAVEL ASSIGNMENT: You're scheduled to present at a company event in %s! "+
		"This is an important business trip, and it's best to book your travel soon to get the best rates and flight times. "+
		"I'll show you the available booking options with convenient schedules.", destination), nil
}

// ensureState loads a conversation's state, seeding it first when missing.
func (s *AssistantService) ensureState(ctx context.Context, conversationID string) (*domain.State, error) {
	slot := slotFor(conversationID)
	state, err := s.store.Get(ctx, slot)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load state: %w", err)
	}

	if _, err := s.store.Init(ctx, slot, &domain.State{CurrTicket: s.newTicket()}); err != nil {
		return nil, fmt.Errorf("reseed state: %w", err)
	}
	state, err = s.store.Get(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingState, err)
	}
	return state, nil
}

// sendToModel runs the model call under a bounded timeout, retrying once.
func (s *AssistantService) sendToModel(ctx context.Context, conversationID, text string) (string, []string, error) {
	if s.model == nil {
		return "", nil, ErrModelUnavailable
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
		content, toolCalls, err := s.model.Send(callCtx, conversationID, text)
		cancel()
		if err == nil {
			return content, toolCalls, nil
		}
		lastErr = err
		s.logger.Warn("model call failed",
			zap.Int("attempt", attempt+1), zap.String("conversation", conversationID), zap.Error(err))
	}
	return "", nil, fmt.Errorf("%w: %v", ErrModelUnavailable, lastErr)
}

func (s *AssistantService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	key := event.ConversationID
	if key == "" {
		key = store.DefaultSlot
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", event.Type), zap.String("conversation", event.ConversationID), zap.Error(err))
	}
}

func slotFor(conversationID string) string {
	if conversationID == "" {
		return store.DefaultSlot
	}
	return conversationID
}

func offeredRoute(routes []domain.Route, value string) bool {
	for _, route := range routes {
		if route.Value() == value {
			return true
		}
	}
	return false
}

func calledAssignment(toolCalls []string) bool {
	for _, name := range toolCalls {
		if name == AssignmentFunctionName {
			return true
		}
	}
	return false
}

func mentionsAssignment(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var _ AssistantUseCase = (*AssistantService)(nil)
