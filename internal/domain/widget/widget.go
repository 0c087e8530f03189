package widget

import (
	"context"
	"html/template"
	"time"

	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/providers/feed"
	"github.com/GriffinCanCode/Dashboard/internal/providers/scraper"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// DefaultTitle is used when a widget is created without a title.
const DefaultTitle = "Untitled Widget"

// Widget is anything that can render itself into a Container.
type Widget interface {
	ID() string
	Title() string
	Type() types.WidgetType
	Render(ctx context.Context, c *Container)
}

// Deps are the collaborators shared by all widget variants.
type Deps struct {
	Feed      feed.Fetcher
	Sanitizer *scraper.Sanitizer // nil renders HTML content verbatim
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Clock     func() time.Time
}

func (d Deps) withDefaults() Deps {
	d.Logger = logging.OrNop(d.Logger)
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return d
}

// Base holds the state every widget shares and builds its card.
type Base struct {
	id     string
	title  string
	kind   types.WidgetType
	config map[string]interface{}
	deps   Deps
}

// NewBase copies config so later edits to the record never leak into a live widget.
func NewBase(kind types.WidgetType, deps Deps, id, title string, config map[string]interface{}) Base {
	if title == "" {
		title = DefaultTitle
	}
	cfg := types.CloneConfig(config)
	if cfg == nil {
		cfg = map[string]interface{}{}
	}
	return Base{
		id:     id,
		title:  title,
		kind:   kind,
		config: cfg,
		deps:   deps.withDefaults(),
	}
}

func (b *Base) ID() string             { return b.id }
func (b *Base) Title() string          { return b.title }
func (b *Base) Type() types.WidgetType { return b.kind }

// Config returns a copy of the widget's configuration.
func (b *Base) Config() map[string]interface{} {
	return types.CloneConfig(b.config)
}

// Mount creates this widget's card in the loading state and mounts it.
func (b *Base) Mount(c *Container) *Card {
	card := newCard(b.id, b.title, b.kind)
	c.Mount(card)
	return card
}

// present shows body on card and records the outcome.
func (b *Base) present(card *Card, body template.HTML) {
	if card.Present(body) {
		b.deps.Metrics.RecordWidgetRender(string(b.kind), monitoring.OutcomeSuccess)
	} else {
		b.deps.Metrics.RecordWidgetRender(string(b.kind), monitoring.OutcomeSkipped)
	}
}

// fail shows message inline on card and records the outcome.
func (b *Base) fail(card *Card, message string) {
	if card.Fail(message) {
		b.deps.Metrics.RecordWidgetRender(string(b.kind), monitoring.OutcomeError)
	} else {
		b.deps.Metrics.RecordWidgetRender(string(b.kind), monitoring.OutcomeSkipped)
	}
}
