package widget

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// CardState is the lifecycle state of a card.
type CardState string

const (
	CardLoading CardState = "loading"
	CardReady   CardState = "ready"
	CardError   CardState = "error"
)

// Card is the mounted, visible form of a widget.
type Card struct {
	widgetID string
	title    string
	kind     types.WidgetType

	mu        sync.RWMutex
	state     CardState
	body      template.HTML
	message   string
	container *Container
	mounted   bool
}

// CardView is a point-in-time copy of a card for serialisation.
type CardView struct {
	WidgetID string           `json:"widgetId"`
	Title    string           `json:"title"`
	Type     types.WidgetType `json:"widgetType"`
	State    CardState        `json:"state"`
	Message  string           `json:"message,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Removed  bool             `json:"removed,omitempty"`
}

func newCard(widgetID, title string, kind types.WidgetType) *Card {
	return &Card{
		widgetID: widgetID,
		title:    title,
		kind:     kind,
		state:    CardLoading,
		body:     loadingBody,
	}
}

func (c *Card) WidgetID() string { return c.widgetID }
func (c *Card) Title() string    { return c.title }

func (c *Card) State() CardState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Body returns the card's current inner markup.
func (c *Card) Body() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body
}

// Message returns the inline error text, if any.
func (c *Card) Message() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.message
}

// Mounted reports whether the card is still attached to a container.
func (c *Card) Mounted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mounted
}

// Present replaces the loading state with body. It returns false, and
// changes nothing, when the card has been detached.
func (c *Card) Present(body template.HTML) bool {
	return c.update(CardReady, body, "")
}

// Fail shows message as an inline error. Same liveness rule as Present.
func (c *Card) Fail(message string) bool {
	return c.update(CardError, errorBody(message), message)
}

func (c *Card) update(state CardState, body template.HTML, message string) bool {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return false
	}
	c.state = state
	c.body = body
	c.message = message
	container := c.container
	c.mu.Unlock()

	container.notify(c.View())
	return true
}

// RequestDelete asks the container's listeners to delete the widget.
// It returns false when a listener cancels the signal or the card is detached.
func (c *Card) RequestDelete() bool {
	return c.request(SignalDelete)
}

// RequestEdit asks the container's listeners to open the widget for editing.
func (c *Card) RequestEdit() bool {
	return c.request(SignalEdit)
}

func (c *Card) request(kind SignalKind) bool {
	c.mu.RLock()
	container, mounted := c.container, c.mounted
	c.mu.RUnlock()
	if !mounted {
		return false
	}
	return container.Dispatch(&Signal{Kind: kind, WidgetID: c.widgetID})
}

func (c *Card) attach(container *Container) {
	c.mu.Lock()
	c.container = container
	c.mounted = true
	c.mu.Unlock()
}

func (c *Card) detach() {
	c.mu.Lock()
	c.mounted = false
	c.mu.Unlock()
}

// View snapshots the card, including its rendered markup.
func (c *Card) View() CardView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CardView{
		WidgetID: c.widgetID,
		Title:    c.title,
		Type:     c.kind,
		State:    c.state,
		Message:  c.message,
		HTML:     string(c.renderLocked()),
		Removed:  !c.mounted,
	}
}

// HTML renders the full card markup.
func (c *Card) HTML() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderLocked()
}

func (c *Card) renderLocked() template.HTML {
	var buf bytes.Buffer
	err := cardTemplate.Execute(&buf, cardData{
		ID:    c.widgetID,
		Title: c.title,
		Type:  c.kind,
		State: c.state,
		Body:  c.body,
	})
	if err != nil {
		return errorBody("Failed to render widget.")
	}
	return template.HTML(buf.String())
}
