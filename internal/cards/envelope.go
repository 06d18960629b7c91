package cards

import "github.com/avdeev99/travelbot/internal/domain"

// Envelope shapes for the bot channel.

type Attachment struct {
	ContentType string `json:"contentType"`
	Content     any    `json:"content"`
}

// Activity is one outbound channel message. Cards ride as attachments.
type Activity struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func MessageActivity(text string) Activity {
	return Activity{Type: "message", Text: text}
}

func TypingActivity() Activity {
	return Activity{Type: "typing"}
}

func CardActivity(card *Card) Activity {
	return Activity{
		Type:        "message",
		Attachments: []Attachment{{ContentType: CardContentType, Content: card}},
	}
}

// TaskResponse is the dialog continuation payload: the booking form plus the
// destination and route set it was built from.
type TaskResponse struct {
	Task Task `json:"task"`
}

type Task struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type DialogValue struct {
	Card        Attachment     `json:"card"`
	Destination string         `json:"Destination"`
	Route       []domain.Route `json:"Route"`
}

func ContinueTask(card *Card, destination string, routes []domain.Route) *TaskResponse {
	return &TaskResponse{Task: Task{
		Type: "continue",
		Value: DialogValue{
			Card:        Attachment{ContentType: CardContentType, Content: card},
			Destination: destination,
			Route:       routes,
		},
	}}
}

// InvokeResponse acknowledges a dialog submit.
type InvokeResponse struct {
	Status int          `json:"status"`
	Body   TaskResponse `json:"body"`
}

func MessageTask(text string) *InvokeResponse {
	return &InvokeResponse{
		Status: 200,
		Body:   TaskResponse{Task: Task{Type: "message", Value: text}},
	}
}
