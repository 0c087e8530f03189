package widget

import (
	"bytes"
	"html/template"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

const loadingBody template.HTML = `<div class="rss-widget-content"><div class="progress"><div class="indeterminate"></div></div></div>`

type cardData struct {
	ID    string
	Title string
	Type  types.WidgetType
	State CardState
	Body  template.HTML
}

var cardTemplate = template.Must(template.New("card").Parse(
	`<div class="col s12 m6 l4" data-widget-id="{{.ID}}" data-widget-type="{{.Type}}">` +
		`<div class="card widget-card" data-state="{{.State}}">` +
		`<div class="card-content">` +
		`<span class="card-title">{{.Title}}` +
		`<button class="btn-flat right widget-delete" data-action="widget-delete" data-widget-id="{{.ID}}" aria-label="Delete {{.Title}}"><i class="material-icons white-text">close</i></button>` +
		`<button class="btn-flat right widget-edit" data-action="widget-edit" data-widget-id="{{.ID}}" aria-label="Edit {{.Title}}"><i class="material-icons white-text">edit</i></button>` +
		`</span>` +
		`<div class="widget-body">{{.Body}}</div>` +
		`</div></div></div>`))

var errorTemplate = template.Must(template.New("error").Parse(
	`<div class="rss-widget-content"><p class="red-text">{{.}}</p></div>`))

type itemData struct {
	Title       string
	Link        string
	Date        string
	Description string
}

var itemsTemplate = template.Must(template.New("items").Parse(
	`<div class="rss-widget-content"><div>` +
		`{{range .}}<div class="rss-item">` +
		`<a class="rss-item-link" href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a>` +
		`{{if .Date}}<small class="rss-item-date grey-text">{{.Date}}</small>{{end}}` +
		`{{if .Description}}<p class="rss-item-description">{{.Description}}</p>{{end}}` +
		`</div>{{end}}` +
		`</div></div>`))

func errorBody(message string) template.HTML {
	var buf bytes.Buffer
	if err := errorTemplate.Execute(&buf, message); err != nil {
		return template.HTML(`<div class="rss-widget-content"><p class="red-text">Error</p></div>`)
	}
	return template.HTML(buf.String())
}
