package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avdeev99/travelbot/internal/cards"
	"github.com/avdeev99/travelbot/internal/service/assistant"
	"github.com/gin-gonic/gin"
)

// ActivityHandler is the bot-channel endpoint. The transport delivers three
// event kinds: free-text messages, dialog-open invokes and dialog-submit
// invokes.
type ActivityHandler struct {
	service assistant.AssistantUseCase
}

const (
	activityMessage = "message"
	activityInvoke  = "invoke"

	invokeDialogOpen   = "task/fetch"
	invokeDialogSubmit = "task/submit"

	retryPrompt = "That submission didn't look right. Please enter your name and pick one of the offered flights, then try again."
)

type conversationRef struct {
	ID string `json:"id"`
}

type inboundActivity struct {
	Type         string          `json:"type"`
	Name         string          `json:"name,omitempty"`
	Text         string          `json:"text,omitempty"`
	Conversation conversationRef `json:"conversation"`
	Value        *activityValue  `json:"value,omitempty"`
}

type activityValue struct {
	Data submitData `json:"data"`
}

// submitData tolerates a selectedRoute that arrives as a string or as an
// arbitrary object; it is stringified either way, as the channel does.
type submitData struct {
	UserNameInput string `json:"userNameInput"`
	SelectedRoute any    `json:"selectedRoute"`
}

func (d submitData) routeValue() string {
	if d.SelectedRoute == nil {
		return ""
	}
	if s, ok := d.SelectedRoute.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", d.SelectedRoute)
}

type messageResponse struct {
	Activities []cards.Activity `json:"activities"`
}

type submitResponse struct {
	cards.InvokeResponse
	Activities []cards.Activity `json:"activities,omitempty"`
}

func NewActivityHandler(service assistant.AssistantUseCase) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) Register(router *gin.RouterGroup) {
	router.POST("/activities", h.handle)
}

func (h *ActivityHandler) handle(c *gin.Context) {
	var activity inboundActivity
	if err := c.ShouldBindJSON(&activity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch {
	case activity.Type == activityMessage:
		h.message(c, activity)
	case activity.Type == activityInvoke && activity.Name == invokeDialogOpen:
		h.dialogOpen(c, activity)
	case activity.Type == activityInvoke && activity.Name == invokeDialogSubmit:
		h.dialogSubmit(c, activity)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported activity %q", activity.Type)})
	}
}

func (h *ActivityHandler) message(c *gin.Context, activity inboundActivity) {
	result, err := h.service.HandleMessage(c.Request.Context(), activity.Conversation.ID, activity.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	activities := []cards.Activity{cards.TypingActivity(), cards.MessageActivity(result.Reply)}
	if result.Card != nil {
		activities = append(activities, *result.Card)
	}
	c.JSON(http.StatusOK, messageResponse{Activities: activities})
}

func (h *ActivityHandler) dialogOpen(c *gin.Context, activity inboundActivity) {
	task, err := h.service.OpenBookingDialog(c.Request.Context(), activity.Conversation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *ActivityHandler) dialogSubmit(c *gin.Context, activity inboundActivity) {
	input := assistant.SubmitBookingInput{}
	if activity.Value != nil {
		input.UserName = activity.Value.Data.UserNameInput
		input.SelectedRoute = activity.Value.Data.routeValue()
	}

	result, err := h.service.SubmitBooking(c.Request.Context(), activity.Conversation.ID, input)
	if err != nil {
		if errors.Is(err, assistant.ErrMalformedSubmission) {
			c.JSON(http.StatusOK, cards.MessageTask(retryPrompt))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		InvokeResponse: *result.Ack,
		Activities:     []cards.Activity{result.Confirmation},
	})
}
