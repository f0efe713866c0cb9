package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pomodoro/focus/internal/errors"
	"pomodoro/focus/internal/report"
	"pomodoro/focus/internal/service"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) List(c *gin.Context) {
	entries, apiErr := h.historyService.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *HistoryHandler) Summary(c *gin.Context) {
	summary, apiErr := h.historyService.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *HistoryHandler) Report(c *gin.Context) {
	summary, apiErr := h.historyService.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, *summary); err != nil {
		writeError(c, apperrors.Internal("failed to render report"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="time-tracking.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	if apiErr := h.historyService.Clear(c.Request.Context()); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
