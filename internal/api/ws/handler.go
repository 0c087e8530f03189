package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/domain/board"
	"github.com/GriffinCanCode/Dashboard/internal/domain/dashboard"
	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
	"github.com/GriffinCanCode/Dashboard/internal/shared/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler streams a rendered dashboard over WebSocket
type Handler struct {
	manager  *dashboard.Manager
	renderer *board.Renderer
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *dashboard.Manager, renderer *board.Renderer, logger *logging.Logger) *Handler {
	return &Handler{
		manager:  manager,
		renderer: renderer,
		logger:   logging.OrNop(logger).Named("ws"),
	}
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// conn serialises writes; card updates arrive from render goroutines. The
// first failed write closes the socket, which ends the read loop, and later
// sends are no-ops.
type conn struct {
	ws      *websocket.Conn
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu     sync.Mutex
	closed bool
}

func (c *conn) send(data map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if msgType, ok := data["type"].(string); ok {
		c.metrics.RecordWSMessage("out", msgType)
	}
	if err := c.ws.WriteJSON(data); err != nil {
		c.closed = true
		c.logger.Debug("WebSocket write failed, closing stream", zap.Error(err))
		_ = c.ws.Close()
	}
}

func (c *conn) sendError(message string) {
	c.send(map[string]interface{}{
		"type":      "error",
		"message":   message,
		"timestamp": time.Now().Unix(),
	})
}

func (c *conn) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// HandleConnection upgrades the request and streams the dashboard named by
// the "dashboard" query parameter, or the active one.
func (h *Handler) HandleConnection(c *gin.Context) {
	d, ok := h.resolve(c.Query("dashboard"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "dashboard not found"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	ctx, cancel := context.WithCancel(c.Request.Context())
	out := &conn{ws: ws, logger: h.logger, metrics: h.metrics}
	container := widget.NewContainer()

	container.Listen(func(s *widget.Signal) {
		if s.Kind != widget.SignalDelete {
			return
		}
		if !h.manager.RemoveWidget(ctx, d.ID, s.WidgetID) {
			s.Cancel()
			return
		}
		container.Detach(s.WidgetID)
	})
	container.Observe(func(view widget.CardView) {
		out.send(map[string]interface{}{"type": "card", "card": view})
	})

	out.send(map[string]interface{}{
		"type":      "board",
		"dashboard": gin.H{"id": d.ID, "name": d.Name},
		"widgetIds": widgetIDs(d),
	})

	wait := h.renderer.Start(ctx, d, container)
	go func() {
		wait()
		out.send(map[string]interface{}{"type": "rendered", "dashboardId": d.ID})
	}()

	defer func() {
		out.close()
		cancel()
	}()

	h.logger.Debug("Stream opened", zap.String("dashboard_id", d.ID))

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "ping":
			out.send(map[string]interface{}{"type": "pong"})
		case string(widget.SignalDelete):
			h.handleDelete(out, container, msg)
		case string(widget.SignalEdit):
			if rec := h.handleEdit(ctx, out, container, d.ID, msg); rec != nil {
				// The new card replaces the old one in its slot. Nothing waits
				// for it; cancel stops the render when the stream closes.
				_ = h.renderer.Start(ctx, types.Dashboard{ID: d.ID, Name: d.Name, Widgets: []types.WidgetRecord{*rec}}, container)
			}
		default:
			out.sendError("unknown message type")
		}
	}
}

func (h *Handler) resolve(dashboardID string) (types.Dashboard, bool) {
	if dashboardID == "" {
		active := h.manager.ActiveDashboard()
		if active == nil {
			return types.Dashboard{}, false
		}
		return *active, true
	}
	return h.manager.Dashboard(dashboardID)
}

func (h *Handler) handleDelete(out *conn, container *widget.Container, msg types.WSMessage) {
	card, ok := container.Card(msg.WidgetID)
	if !ok {
		out.sendError("unknown widget: " + msg.WidgetID)
		return
	}
	if !card.RequestDelete() {
		out.sendError("delete canceled")
		return
	}
	out.send(map[string]interface{}{"type": "deleted", "widgetId": msg.WidgetID})
}

// handleEdit applies an edit and returns the updated record for re-render.
func (h *Handler) handleEdit(ctx context.Context, out *conn, container *widget.Container, dashboardID string, msg types.WSMessage) *types.WidgetRecord {
	card, ok := container.Card(msg.WidgetID)
	if !ok {
		out.sendError("unknown widget: " + msg.WidgetID)
		return nil
	}
	if err := utils.ValidateTitle(msg.Title); err != nil {
		out.sendError(err.Error())
		return nil
	}
	if err := utils.ValidateConfig(msg.Config); err != nil {
		out.sendError(err.Error())
		return nil
	}
	if !card.RequestEdit() {
		out.sendError("edit canceled")
		return nil
	}
	if !h.manager.UpdateWidget(ctx, dashboardID, msg.WidgetID, msg.Title, msg.Config) {
		out.sendError("widget not found")
		return nil
	}

	d, ok := h.manager.Dashboard(dashboardID)
	if !ok {
		return nil
	}
	i := d.FindWidget(msg.WidgetID)
	if i < 0 {
		return nil
	}
	out.send(map[string]interface{}{"type": "updated", "widgetId": msg.WidgetID})
	return &d.Widgets[i]
}

func widgetIDs(d types.Dashboard) []string {
	ids := make([]string, len(d.Widgets))
	for i, w := range d.Widgets {
		ids[i] = w.ID
	}
	return ids
}
