package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/shared/utils"
)

type pageData struct {
	DashboardID string
	Name        string
	Cards       template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}}</title>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/materialize/1.0.0/css/materialize.min.css">
<link rel="stylesheet" href="https://fonts.googleapis.com/icon?family=Material+Icons">
</head>
<body class="grey darken-4">
<div class="container">
<h4 class="white-text">{{.Name}}</h4>
<div class="row" id="widget-container" data-dashboard-id="{{.DashboardID}}">{{.Cards}}</div>
</div>
</body>
</html>
`))

// RenderDashboard renders every widget of a dashboard and returns the page
// once all of them have settled.
func (h *Handlers) RenderDashboard(c *gin.Context) {
	dashboardID := c.Param("id")
	if err := utils.ValidateID(dashboardID, "dashboard_id", true); err != nil {
		badRequest(c, err.Error())
		return
	}

	d, ok := h.manager.Dashboard(dashboardID)
	if !ok {
		notFound(c, "dashboard not found")
		return
	}

	container := h.renderer.Render(c.Request.Context(), d)

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		DashboardID: d.ID,
		Name:        d.Name,
		Cards:       container.HTML(),
	})
	if err != nil {
		h.logger.Error("Page render failed", zap.String("dashboard_id", d.ID), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
