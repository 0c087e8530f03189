package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
	"github.com/GriffinCanCode/Dashboard/internal/shared/utils"
)

// ListDashboards lists all dashboards and the active pointer
func (h *Handlers) ListDashboards(c *gin.Context) {
	state := h.manager.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"dashboards":        state.Dashboards,
		"activeDashboardId": state.ActiveDashboardID,
	})
}

// CreateDashboard adds a dashboard and makes it active
func (h *Handlers) CreateDashboard(c *gin.Context) {
	var req types.CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := utils.ValidateName(req.Name, "name"); err != nil {
		badRequest(c, err.Error())
		return
	}

	d := h.manager.AddDashboard(c.Request.Context(), strings.TrimSpace(req.Name))
	h.logger.Info("Dashboard created", zap.String("dashboard_id", d.ID), zap.String("name", d.Name))

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"dashboard": d,
	})
}

// GetActiveDashboard returns the active dashboard
func (h *Handlers) GetActiveDashboard(c *gin.Context) {
	d := h.manager.ActiveDashboard()
	if d == nil {
		notFound(c, "no active dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": d})
}

// DeleteDashboard removes a dashboard and its widgets
func (h *Handlers) DeleteDashboard(c *gin.Context) {
	dashboardID := c.Param("id")
	if err := utils.ValidateID(dashboardID, "dashboard_id", true); err != nil {
		badRequest(c, err.Error())
		return
	}

	if !h.manager.RemoveDashboard(c.Request.Context(), dashboardID) {
		notFound(c, "dashboard not found")
		return
	}

	state := h.manager.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"dashboard_id":      dashboardID,
		"activeDashboardId": state.ActiveDashboardID,
	})
}

// ActivateDashboard switches the active dashboard
func (h *Handlers) ActivateDashboard(c *gin.Context) {
	dashboardID := c.Param("id")
	if err := utils.ValidateID(dashboardID, "dashboard_id", true); err != nil {
		badRequest(c, err.Error())
		return
	}

	if !h.manager.SetActiveDashboard(c.Request.Context(), dashboardID) {
		notFound(c, "dashboard not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"dashboard_id": dashboardID,
	})
}
