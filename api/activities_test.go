package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdeev99/travelbot/internal/cards"
	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/avdeev99/travelbot/internal/service/assistant"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAssistantUseCase is a mock implementation of assistant.AssistantUseCase
type MockAssistantUseCase struct {
	mock.Mock
}

func (m *MockAssistantUseCase) Seed(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *MockAssistantUseCase) OpenBookingDialog(ctx context.Context, conversationID string) (*cards.TaskResponse, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cards.TaskResponse), args.Error(1)
}

func (m *MockAssistantUseCase) SubmitBooking(ctx context.Context, conversationID string, input assistant.SubmitBookingInput) (*assistant.SubmitBookingResult, error) {
	args := m.Called(ctx, conversationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.SubmitBookingResult), args.Error(1)
}

func (m *MockAssistantUseCase) HandleMessage(ctx context.Context, conversationID, text string) (*assistant.MessageResult, error) {
	args := m.Called(ctx, conversationID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.MessageResult), args.Error(1)
}

func (m *MockAssistantUseCase) AvailableRoutes(ctx context.Context, conversationID string) ([]domain.Route, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockAssistantUseCase) ListBookings(ctx context.Context, conversationID string) (string, error) {
	args := m.Called(ctx, conversationID)
	return args.String(0), args.Error(1)
}

func (m *MockAssistantUseCase) GenerateAssignment(ctx context.Context, conversationID string) (string, error) {
	args := m.Called(ctx, conversationID)
	return args.String(0), args.Error(1)
}

func newTestRouter(service assistant.AssistantUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	NewActivityHandler(service).Register(group)
	NewRouteHandler(service).Register(group)
	return router
}

func postActivity(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/api/activities", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestActivityHandler_message(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	card := cards.CardActivity(cards.AssignmentCard(domain.TravelTicket{
		Origin:      domain.Origin,
		Destination: "Tokyo (HND)",
		Status:      domain.TicketStatusPending,
	}))
	mockService.On("HandleMessage", mock.Anything, "conv-1", "any travel coming up?").
		Return(&assistant.MessageResult{Reply: "Yes, you are headed to Tokyo!", Card: &card}, nil)

	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type":         "message",
		"text":         "any travel coming up?",
		"conversation": map[string]string{"id": "conv-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp messageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 3)
	assert.Equal(t, "typing", resp.Activities[0].Type)
	assert.Equal(t, "Yes, you are headed to Tokyo!", resp.Activities[1].Text)
	assert.Equal(t, cards.CardContentType, resp.Activities[2].Attachments[0].ContentType)
	mockService.AssertExpectations(t)
}

func TestActivityHandler_messageWithoutCard(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	mockService.On("HandleMessage", mock.Anything, "conv-1", "hello").
		Return(&assistant.MessageResult{Reply: "Hi!"}, nil)

	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type":         "message",
		"text":         "hello",
		"conversation": map[string]string{"id": "conv-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp messageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Activities, 2)
}

func TestActivityHandler_dialogOpen(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	routes := []domain.Route{{Airline: domain.AirlineDelta, FlightNumber: "DL123"}}
	ticket := domain.TravelTicket{
		Origin:          domain.Origin,
		Destination:     "Tokyo (HND)",
		AvailableRoutes: routes,
		SelectedRoute:   domain.RouteTBD,
		Status:          domain.TicketStatusPending,
	}
	mockService.On("OpenBookingDialog", mock.Anything, "conv-1").
		Return(cards.ContinueTask(cards.BookingFormCard(ticket), ticket.Destination, routes), nil)

	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type":         "invoke",
		"name":         "task/fetch",
		"conversation": map[string]string{"id": "conv-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Task struct {
			Type  string `json:"type"`
			Value struct {
				Destination string `json:"Destination"`
				Card        struct {
					ContentType string `json:"contentType"`
				} `json:"card"`
			} `json:"value"`
		} `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "continue", resp.Task.Type)
	assert.Equal(t, "Tokyo (HND)", resp.Task.Value.Destination)
	assert.Equal(t, cards.CardContentType, resp.Task.Value.Card.ContentType)
}

func TestActivityHandler_dialogSubmit(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	completed := domain.TravelTicket{
		ID:            "TKT-1",
		Member:        &domain.Member{Name: "Jane Doe"},
		Origin:        domain.Origin,
		Destination:   "Tokyo (HND)",
		SelectedRoute: "Delta - DL123",
		Status:        domain.TicketStatusBooked,
		BookingDate:   "11/3/2025",
	}
	mockService.On("SubmitBooking", mock.Anything, "conv-1", assistant.SubmitBookingInput{
		UserName:      "Jane Doe",
		SelectedRoute: "Delta - DL123",
	}).Return(&assistant.SubmitBookingResult{
		Completed:    completed,
		Confirmation: cards.CardActivity(cards.ConfirmationCard(completed)),
		Ack:          cards.MessageTask("Great your travel to Tokyo (HND) has been booked!"),
	}, nil)

	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type":         "invoke",
		"name":         "task/submit",
		"conversation": map[string]string{"id": "conv-1"},
		"value": map[string]any{
			"data": map[string]any{
				"userNameInput": "Jane Doe",
				"selectedRoute": "Delta - DL123",
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status int `json:"status"`
		Body   struct {
			Task struct {
				Type  string `json:"type"`
				Value string `json:"value"`
			} `json:"task"`
		} `json:"body"`
		Activities []cards.Activity `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "message", resp.Body.Task.Type)
	assert.Equal(t, "Great your travel to Tokyo (HND) has been booked!", resp.Body.Task.Value)
	require.Len(t, resp.Activities, 1)
	assert.Len(t, resp.Activities[0].Attachments, 1)
	mockService.AssertExpectations(t)
}

func TestActivityHandler_dialogSubmitMalformed(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	mockService.On("SubmitBooking", mock.Anything, "conv-1", mock.Anything).
		Return(nil, assistant.ErrUnknownRoute)

	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type":         "invoke",
		"name":         "task/submit",
		"conversation": map[string]string{"id": "conv-1"},
		"value": map[string]any{
			"data": map[string]any{
				"userNameInput": "Jane Doe",
				"selectedRoute": "Bogus - XX000",
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status int `json:"status"`
		Body   struct {
			Task struct {
				Value string `json:"value"`
			} `json:"task"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, retryPrompt, resp.Body.Task.Value)
}

func TestActivityHandler_unsupportedType(t *testing.T) {
	mockService := &MockAssistantUseCase{}
	w := postActivity(t, newTestRouter(mockService), map[string]any{
		"type": "reaction",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitData_routeValueCoercion(t *testing.T) {
	assert.Equal(t, "Delta - DL123", submitData{SelectedRoute: "Delta - DL123"}.routeValue())
	assert.Equal(t, "", submitData{}.routeValue())
	// Objects are stringified rather than rejected, as the channel does.
	assert.NotEmpty(t, submitData{SelectedRoute: map[string]any{"value": "Delta - DL123"}}.routeValue())
}
