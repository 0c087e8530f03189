package widget

import (
	"context"
	"html/template"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

const emptyContent = "<p>No content</p>"

// HTML shows user-authored markup.
type HTML struct {
	Base
}

// NewHTML creates an HTML widget.
func NewHTML(deps Deps, id, title string, config map[string]interface{}) *HTML {
	return &HTML{Base: NewBase(types.WidgetHTML, deps, id, title, config)}
}

// Content returns the markup that will be rendered.
func (w *HTML) Content() string {
	content, _ := w.config["content"].(string)
	if content == "" {
		return emptyContent
	}
	if w.deps.Sanitizer != nil {
		return w.deps.Sanitizer.Sanitize(content)
	}
	return content
}

// Render mounts a card and fills it synchronously.
func (w *HTML) Render(_ context.Context, c *Container) {
	card := w.Mount(c)
	body := `<div class="html-widget-content">` + w.Content() + `</div>`
	w.present(card, template.HTML(body))
}
