package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
	"github.com/GriffinCanCode/Dashboard/internal/shared/utils"
)

// AddWidget appends a widget to the active dashboard
func (h *Handlers) AddWidget(c *gin.Context) {
	var req types.AddWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !h.knownType(req.Type) {
		badRequest(c, "unknown widget type: "+string(req.Type))
		return
	}
	if err := validateWidget(req.Title, req.Config); err != nil {
		badRequest(c, err.Error())
		return
	}

	rec := h.manager.AddWidgetToCurrent(c.Request.Context(), req.Type, req.Title, req.Config)
	if rec == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "no active dashboard",
		})
		return
	}

	h.logger.Info("Widget added",
		zap.String("widget_id", rec.ID),
		zap.String("type", string(rec.Type)))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"widget":  rec,
	})
}

// UpdateWidget edits a widget's title and config in place
func (h *Handlers) UpdateWidget(c *gin.Context) {
	dashboardID, widgetID, ok := widgetParams(c)
	if !ok {
		return
	}

	var req types.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := validateWidget(req.Title, req.Config); err != nil {
		badRequest(c, err.Error())
		return
	}

	if !h.manager.UpdateWidget(c.Request.Context(), dashboardID, widgetID, req.Title, req.Config) {
		notFound(c, "widget not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"widget_id": widgetID,
	})
}

// DeleteWidget removes a widget from a dashboard
func (h *Handlers) DeleteWidget(c *gin.Context) {
	dashboardID, widgetID, ok := widgetParams(c)
	if !ok {
		return
	}

	if !h.manager.RemoveWidget(c.Request.Context(), dashboardID, widgetID) {
		notFound(c, "widget not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"widget_id": widgetID,
	})
}

// ReorderWidgets applies a drag-and-drop order
func (h *Handlers) ReorderWidgets(c *gin.Context) {
	dashboardID := c.Param("id")
	if err := utils.ValidateID(dashboardID, "dashboard_id", true); err != nil {
		badRequest(c, err.Error())
		return
	}

	var req types.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if !h.manager.ReorderWidgets(ctx, dashboardID, req.IDs) {
		notFound(c, "dashboard not found")
		return
	}

	d, _ := h.manager.Dashboard(dashboardID)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"dashboard": d,
	})
}

func widgetParams(c *gin.Context) (dashboardID, widgetID string, ok bool) {
	dashboardID, widgetID = c.Param("id"), c.Param("wid")
	if err := utils.ValidateID(dashboardID, "dashboard_id", true); err != nil {
		badRequest(c, err.Error())
		return "", "", false
	}
	if err := utils.ValidateID(widgetID, "widget_id", true); err != nil {
		badRequest(c, err.Error())
		return "", "", false
	}
	return dashboardID, widgetID, true
}

func validateWidget(title string, config map[string]interface{}) error {
	if err := utils.ValidateTitle(title); err != nil {
		return err
	}
	return utils.ValidateConfig(config)
}
