package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Dashboard/internal/domain/board"
	"github.com/GriffinCanCode/Dashboard/internal/domain/dashboard"
	"github.com/GriffinCanCode/Dashboard/internal/domain/registry"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	manager  *dashboard.Manager
	registry *registry.Registry
	renderer *board.Renderer
	logger   *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	manager *dashboard.Manager,
	reg *registry.Registry,
	renderer *board.Renderer,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		manager:  manager,
		registry: reg,
		renderer: renderer,
		logger:   logging.OrNop(logger).Named("http"),
	}
}

// Register mounts every REST route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/widgets/types", h.WidgetTypes)

	// Dashboards
	r.GET("/dashboards", h.ListDashboards)
	r.POST("/dashboards", h.CreateDashboard)
	r.GET("/dashboards/active", h.GetActiveDashboard)
	r.DELETE("/dashboards/:id", h.DeleteDashboard)
	r.POST("/dashboards/:id/activate", h.ActivateDashboard)
	r.GET("/dashboards/:id/render", h.RenderDashboard)

	// Widgets
	r.POST("/widgets", h.AddWidget)
	r.PUT("/dashboards/:id/widgets/order", h.ReorderWidgets)
	r.PUT("/dashboards/:id/widgets/:wid", h.UpdateWidget)
	r.DELETE("/dashboards/:id/widgets/:wid", h.DeleteWidget)

	// State
	r.GET("/state/export", h.ExportState)
	r.POST("/state/import", h.ImportState)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Dashboard Service (Go)",
		"version": Version,
	})
}

// Health reports state size alongside liveness.
func (h *Handlers) Health(c *gin.Context) {
	state := h.manager.Snapshot()
	widgets := 0
	for _, d := range state.Dashboards {
		widgets += len(d.Widgets)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"dashboards":        len(state.Dashboards),
		"widgets":           widgets,
		"activeDashboardId": state.ActiveDashboardID,
	})
}

// WidgetTypes lists the registered widget type tags.
func (h *Handlers) WidgetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types": h.registry.AvailableTypes(),
	})
}

func (h *Handlers) knownType(t types.WidgetType) bool {
	return h.registry.Has(string(t))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   msg,
	})
}
