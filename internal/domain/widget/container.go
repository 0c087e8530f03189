package widget

import (
	"html/template"
	"strings"
	"sync"
)

// SignalKind names a user intent raised from a card.
type SignalKind string

const (
	SignalDelete SignalKind = "widget-delete"
	SignalEdit   SignalKind = "widget-edit"
)

// Signal is dispatched to container listeners. Any listener may cancel it.
type Signal struct {
	Kind     SignalKind
	WidgetID string

	canceled bool
}

// Cancel vetoes the requested action.
func (s *Signal) Cancel() { s.canceled = true }

// Canceled reports whether a listener vetoed the signal.
func (s *Signal) Canceled() bool { return s.canceled }

// Listener receives card signals.
type Listener func(*Signal)

// Observer receives a snapshot of every card change.
type Observer func(CardView)

// Container holds the cards of one rendered dashboard.
type Container struct {
	mu        sync.RWMutex
	cards     []*Card
	slots     map[string]int
	listeners []Listener
	observers []Observer
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{slots: make(map[string]int)}
}

// Reserve fixes the display order for widgetIDs before any card is mounted.
// Cards for reserved IDs are shown in reservation order no matter when they
// mount; unreserved cards follow in mount order.
func (c *Container) Reserve(widgetIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range widgetIDs {
		if _, ok := c.slots[id]; !ok {
			c.slots[id] = len(c.slots)
		}
	}
}

// Mount attaches card. A card with the same widget ID replaces the old one.
func (c *Container) Mount(card *Card) {
	card.attach(c)

	c.mu.Lock()
	replaced := false
	for i, existing := range c.cards {
		if existing.widgetID == card.widgetID {
			existing.detach()
			c.cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		c.cards = append(c.cards, card)
	}
	c.mu.Unlock()

	c.notify(card.View())
}

// Detach removes the widget's card. Later updates to that card are dropped.
func (c *Container) Detach(widgetID string) bool {
	c.mu.Lock()
	var removed *Card
	for i, card := range c.cards {
		if card.widgetID == widgetID {
			removed = card
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if removed == nil {
		return false
	}
	removed.detach()
	c.notify(removed.View())
	return true
}

// Card returns the mounted card for widgetID.
func (c *Container) Card(widgetID string) (*Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, card := range c.cards {
		if card.widgetID == widgetID {
			return card, true
		}
	}
	return nil, false
}

// Cards returns mounted cards in display order.
func (c *Container) Cards() []*Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reserved := make([]*Card, len(c.slots))
	var rest []*Card
	for _, card := range c.cards {
		if slot, ok := c.slots[card.widgetID]; ok {
			reserved[slot] = card
		} else {
			rest = append(rest, card)
		}
	}

	out := make([]*Card, 0, len(c.cards))
	for _, card := range reserved {
		if card != nil {
			out = append(out, card)
		}
	}
	return append(out, rest...)
}

// Len returns the number of mounted cards.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// HTML renders every card in display order.
func (c *Container) HTML() template.HTML {
	var sb strings.Builder
	for _, card := range c.Cards() {
		sb.WriteString(string(card.HTML()))
	}
	return template.HTML(sb.String())
}

// Listen registers a signal listener.
func (c *Container) Listen(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Observe registers fn to be called with every card change.
func (c *Container) Observe(fn Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Dispatch delivers s to every listener and reports whether it survived.
// Listeners run without the container lock held, so they may Detach.
func (c *Container) Dispatch(s *Signal) bool {
	c.mu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.RUnlock()

	for _, l := range listeners {
		l(s)
	}
	return !s.Canceled()
}

func (c *Container) notify(view CardView) {
	if c == nil {
		return
	}
	c.mu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(view)
	}
}
