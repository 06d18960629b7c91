package cards

// Adaptive Card document model. Only the block types the renderers use are
// modeled; the JSON shape follows the Adaptive Card 1.5 schema so a generic
// channel can render the output as-is.

const (
	CardContentType = "application/vnd.microsoft.card.adaptive"
	cardSchema      = "http://adaptivecards.io/schemas/adaptive-card.json"
	cardVersion     = "1.5"
)

type Card struct {
	Type    string    `json:"type"`
	Schema  string    `json:"$schema,omitempty"`
	Version string    `json:"version"`
	Body    []Element `json:"body"`
	Actions []Action  `json:"actions,omitempty"`
}

func NewCard(body ...Element) *Card {
	return &Card{Type: "AdaptiveCard", Schema: cardSchema, Version: cardVersion, Body: body}
}

func (c *Card) WithActions(actions ...Action) *Card {
	c.Actions = actions
	return c
}

// Element is a single visual block. One struct covers every block kind the
// renderers need; unused fields stay empty and are omitted from the JSON.
type Element struct {
	Type                string    `json:"type"`
	Text                string    `json:"text,omitempty"`
	Size                string    `json:"size,omitempty"`
	Weight              string    `json:"weight,omitempty"`
	Color               string    `json:"color,omitempty"`
	Style               string    `json:"style,omitempty"`
	Spacing             string    `json:"spacing,omitempty"`
	HorizontalAlignment string    `json:"horizontalAlignment,omitempty"`
	Wrap                bool      `json:"wrap,omitempty"`
	Items               []Element `json:"items,omitempty"`
	Facts               []Fact    `json:"facts,omitempty"`
	ID                  string    `json:"id,omitempty"`
	Placeholder         string    `json:"placeholder,omitempty"`
	Choices             []Choice  `json:"choices,omitempty"`
}

type Fact struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Choice struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Action struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type textOption func(*Element)

func WithSize(size string) textOption       { return func(e *Element) { e.Size = size } }
func WithWeight(weight string) textOption   { return func(e *Element) { e.Weight = weight } }
func WithColor(color string) textOption     { return func(e *Element) { e.Color = color } }
func WithSpacing(spacing string) textOption { return func(e *Element) { e.Spacing = spacing } }
func Centered() textOption                  { return func(e *Element) { e.HorizontalAlignment = "Center" } }
func Wrapped() textOption                   { return func(e *Element) { e.Wrap = true } }

func TextBlock(text string, opts ...textOption) Element {
	e := Element{Type: "TextBlock", Text: text}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func Container(style, spacing string, items ...Element) Element {
	return Element{Type: "Container", Style: style, Spacing: spacing, Items: items}
}

func FactSet(spacing string, facts ...Fact) Element {
	return Element{Type: "FactSet", Spacing: spacing, Facts: facts}
}

func TextInput(id, placeholder string) Element {
	return Element{Type: "Input.Text", ID: id, Placeholder: placeholder}
}

// ChoiceSet renders an expanded single-choice input.
func ChoiceSet(id, placeholder string, choices []Choice) Element {
	return Element{Type: "Input.ChoiceSet", ID: id, Style: "expanded", Placeholder: placeholder, Choices: choices}
}

func SubmitAction(title, id string) Action {
	return Action{Type: "Action.Submit", Title: title, ID: id}
}

// TaskFetchAction is a submit action carrying the task/fetch marker that
// makes the channel open a dialog instead of posting data back.
func TaskFetchAction(title, id string) Action {
	return Action{
		Type:  "Action.Submit",
		Title: title,
		ID:    id,
		Data:  map[string]any{"msteams": map[string]string{"type": "task/fetch"}},
	}
}
