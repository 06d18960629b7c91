package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/avdeev99/travelbot/config"
	"github.com/avdeev99/travelbot/internal/domain"
	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Functions is the assistant surface the model may invoke mid-turn.
type Functions interface {
	AvailableRoutes(ctx context.Context, conversationID string) ([]domain.Route, error)
	ListBookings(ctx context.Context, conversationID string) (string, error)
	GenerateAssignment(ctx context.Context, conversationID string) (string, error)
}

const (
	routesFunction     = "get_routes"
	bookingsFunction   = "list_bookings"
	assignmentFunction = "generate_new_travel_assignment"

	// Tool rounds per turn are capped so a model that keeps calling
	// functions cannot loop a conversation forever.
	maxToolRounds = 4
)

var systemInstructions = strings.Join([]string{
	"You are an assistant that helps manage booking travel for individual team members.",
	"When users ask about their travel bookings, past trips, or want to see what they have booked, call the list_bookings function.",
	"When users ask about upcoming travel, new assignments, or if they have any travel coming up, call the generate_new_travel_assignment function.",
	"When users ask which flights or routes are available for their trip, call the get_routes function.",
	"On startup greet users in a friendly way and ask if they would like more information about upcoming travel assignments, their existing bookings, or available routes.",
}, "\n")

// GeminiModel holds one chat session per conversation so the model keeps
// context across turns.
type GeminiModel struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	functions Functions
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*genai.ChatSession
}

func NewGeminiModel(ctx context.Context, cfg config.ModelConfig, functions Functions, logger *zap.Logger) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey()))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Name)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstructions)}}
	model.Tools = []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{
		{Name: routesFunction, Description: "Returns a list of the available routes for the current travel assignment."},
		{Name: bookingsFunction, Description: "Lists all completed travel bookings for the user. Call this when the user asks about their bookings, trips, or travel history."},
		{Name: assignmentFunction, Description: "Generates a new travel assignment with a random destination. Call this when the user asks about upcoming travel or new assignments."},
	}}}

	return &GeminiModel{
		client:    client,
		model:     model,
		functions: functions,
		logger:    logger,
		sessions:  make(map[string]*genai.ChatSession),
	}, nil
}

// Send forwards one user message, resolves any tool calls the model makes,
// and returns the final reply text plus the tool names that were invoked.
func (g *GeminiModel) Send(ctx context.Context, conversationID, text string) (string, []string, error) {
	session := g.session(conversationID)

	resp, err := session.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", nil, fmt.Errorf("gemini send: %w", err)
	}

	var toolCalls []string
	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			toolCalls = append(toolCalls, call.Name)
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: g.dispatch(ctx, conversationID, call.Name),
			})
		}

		resp, err = session.SendMessage(ctx, parts...)
		if err != nil {
			return "", toolCalls, fmt.Errorf("gemini tool response: %w", err)
		}
	}

	return responseText(resp), toolCalls, nil
}

func (g *GeminiModel) Close() error {
	return g.client.Close()
}

func (g *GeminiModel) session(conversationID string) *genai.ChatSession {
	g.mu.Lock()
	defer g.mu.Unlock()
	session, ok := g.sessions[conversationID]
	if !ok {
		session = g.model.StartChat()
		g.sessions[conversationID] = session
	}
	return session
}

// dispatch runs one assistant function. Failures are reported back to the
// model as tool output rather than failing the whole turn.
func (g *GeminiModel) dispatch(ctx context.Context, conversationID, name string) map[string]any {
	switch name {
	case routesFunction:
		routes, err := g.functions.AvailableRoutes(ctx, conversationID)
		if err != nil {
			return toolError(err)
		}
		options := make([]any, 0, len(routes))
		for _, route := range routes {
			options = append(options, map[string]any{
				"airline":       string(route.Airline),
				"flight_number": route.FlightNumber,
			})
		}
		return map[string]any{"routes": options}
	case bookingsFunction:
		summary, err := g.functions.ListBookings(ctx, conversationID)
		if err != nil {
			return toolError(err)
		}
		return map[string]any{"result": summary}
	case assignmentFunction:
		announcement, err := g.functions.GenerateAssignment(ctx, conversationID)
		if err != nil {
			return toolError(err)
		}
		return map[string]any{"result": announcement}
	default:
		g.logger.Warn("model invoked unknown function", zap.String("name", name))
		return map[string]any{"error": fmt.Sprintf("unknown function %q", name)}
	}
}

func toolError(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if call, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, call)
			}
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
