package widget

import (
	"bytes"
	"context"
	"errors"
	"html/template"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

const (
	msgNoFeedURL    = "No RSS URL provided."
	msgLoadingError = "Error loading feed: "
)

var errNoFetcher = errors.New("no feed client configured")

// RSS shows the items of a feed.
type RSS struct {
	Base
}

// NewRSS creates an RSS widget.
func NewRSS(deps Deps, id, title string, config map[string]interface{}) *RSS {
	return &RSS{Base: NewBase(types.WidgetRSS, deps, id, title, config)}
}

// Render mounts a loading card, then fetches, filters and presents the feed.
func (w *RSS) Render(ctx context.Context, c *Container) {
	card := w.Mount(c)
	w.renderFeed(ctx, card, w.config)
}

// renderFeed runs the fetch/filter/present pipeline for config into card.
func (b *Base) renderFeed(ctx context.Context, card *Card, config map[string]interface{}) {
	opts := ResolveFeedOptions(config)
	if opts.URL == "" {
		b.fail(card, msgNoFeedURL)
		return
	}

	if b.deps.Feed == nil {
		b.fail(card, msgLoadingError+errNoFetcher.Error())
		return
	}

	result, err := b.deps.Feed.Fetch(ctx, opts.URL)
	if err != nil {
		b.deps.Logger.Warn("Feed widget failed to load",
			zap.String("widget_id", b.id),
			zap.String("widget_type", string(b.kind)),
			zap.String("url", opts.URL),
			zap.Error(err))
		b.fail(card, msgLoadingError+err.Error())
		return
	}

	items := FilterItems(result.Items, opts, b.deps.Clock())

	var buf bytes.Buffer
	if err := itemsTemplate.Execute(&buf, presentItems(items, opts)); err != nil {
		b.fail(card, msgLoadingError+err.Error())
		return
	}
	b.present(card, template.HTML(buf.String()))
}
