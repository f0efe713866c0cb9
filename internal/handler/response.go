package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "pomodoro/focus/internal/errors"
)

// WriteError aborts the request with the error envelope
// {"error": {"code", "message", "details"}}.
func WriteError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		apiErr = apperrors.Internal("")
	}

	errorBody := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Details != nil {
		errorBody["details"] = apiErr.Details
	}

	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": errorBody,
	})
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	WriteError(c, apiErr)
}

func writeInvalidJSON(c *gin.Context) {
	WriteError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
}
