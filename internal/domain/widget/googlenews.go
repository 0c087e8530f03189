package widget

import (
	"context"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

const googleNewsSearch = "https://news.google.com/rss/search?q="

// GoogleNews shows a Google News search as a feed.
type GoogleNews struct {
	Base
}

// NewGoogleNews creates a Google News widget.
func NewGoogleNews(deps Deps, id, title string, config map[string]interface{}) *GoogleNews {
	return &GoogleNews{Base: NewBase(types.WidgetGoogleNews, deps, id, title, config)}
}

// GoogleNewsURL returns the search feed URL for query.
func GoogleNewsURL(query string) string {
	return googleNewsSearch + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// ResolvedConfig returns the config with url derived from query, when a query is set.
func (w *GoogleNews) ResolvedConfig() map[string]interface{} {
	cfg := w.Config()
	if query, ok := cfg["query"].(string); ok && query != "" {
		cfg["url"] = GoogleNewsURL(query)
	}
	return cfg
}

// Render derives the feed URL and runs the feed pipeline. Without a query
// the config's own url, if any, is used.
func (w *GoogleNews) Render(ctx context.Context, c *Container) {
	card := w.Mount(c)
	w.renderFeed(ctx, card, w.ResolvedConfig())
}
