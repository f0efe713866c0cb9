package handler

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pomodoro/focus/internal/service"
	"pomodoro/focus/internal/timer"
)

const eventBuffer = 16

type TimerHandler struct {
	timerService *service.TimerService
}

// updateSettingsRequest keeps the raw values so a field that is not a number
// falls back to the current setting instead of failing the request.
type updateSettingsRequest struct {
	WorkDurationMinutes  json.RawMessage `json:"workDurationMinutes"`
	BreakDurationMinutes json.RawMessage `json:"breakDurationMinutes"`
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

func (h *TimerHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.timerService.State()})
}

func (h *TimerHandler) Toggle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.timerService.Toggle()})
}

func (h *TimerHandler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.timerService.Reset()})
}

func (h *TimerHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	state := h.timerService.UpdateSettings(service.UpdateSettingsInput{
		WorkDurationMinutes:  minutesValue(req.WorkDurationMinutes),
		BreakDurationMinutes: minutesValue(req.BreakDurationMinutes),
	})
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *TimerHandler) ConfirmNotification(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.timerService.ConfirmNotification()})
}

func (h *TimerHandler) DismissNotification(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.timerService.DismissNotification()})
}

// minutesValue reads a JSON number or numeric string. Anything else is 0,
// which leaves the setting unchanged.
func minutesValue(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0
		}
		return int(v)
	case string:
		minutes, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return minutes
	default:
		return 0
	}
}

// Events streams timer events as server-sent events, starting with the
// current state. The stream ends when the client goes away or the engine
// closes.
func (h *TimerHandler) Events(c *gin.Context) {
	events, unsubscribe := h.timerService.Subscribe(eventBuffer)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent(string(timer.EventState), timer.Event{Type: timer.EventState, State: h.timerService.State()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		}
	})
}
