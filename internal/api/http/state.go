package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/domain/storage"
	"github.com/GriffinCanCode/Dashboard/internal/shared/utils"
)

// InvalidImportMessage is the client-facing error for any rejected import.
const InvalidImportMessage = "Invalid import file."

// ExportState downloads the whole state as an attachment
func (h *Handlers) ExportState(c *gin.Context) {
	format, err := storage.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.manager.ExportState(&buf, format); err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "export failed",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ImportState replaces the whole state with an uploaded document. The body
// is either a multipart form with a "file" field or the raw document.
func (h *Handlers) ImportState(c *gin.Context) {
	data, err := readImport(c)
	if err == nil {
		err = utils.ValidateImportSize(data)
	}
	if err != nil {
		h.logger.Warn("Import rejected", zap.Error(err))
		badRequest(c, InvalidImportMessage)
		return
	}

	doc, err := storage.DecodeImport(data)
	if err != nil {
		h.logger.Warn("Import rejected", zap.Error(err))
		badRequest(c, InvalidImportMessage)
		return
	}

	if !h.manager.ImportState(c.Request.Context(), doc) {
		badRequest(c, InvalidImportMessage)
		return
	}

	state := h.manager.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"dashboards":        len(state.Dashboards),
		"activeDashboardId": state.ActiveDashboardID,
	})
}

func readImport(c *gin.Context) ([]byte, error) {
	var src io.Reader = c.Request.Body

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("read form file: %w", err)
		}
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open form file: %w", err)
		}
		defer f.Close()
		src = f
	}

	// One byte over the limit is enough for ValidateImportSize to reject it.
	return io.ReadAll(io.LimitReader(src, utils.MaxImportSize+1))
}
