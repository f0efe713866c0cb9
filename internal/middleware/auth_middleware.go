package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "pomodoro/focus/internal/errors"
	"pomodoro/focus/internal/handler"
	"pomodoro/focus/internal/service"
)

const SubjectContextKey = "subject"

// Auth requires a bearer token once an owner passphrase has been set up.
// Before that every request passes through.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		protected, apiErr := authService.Protected(c.Request.Context())
		if apiErr != nil {
			handler.WriteError(c, apiErr)
			return
		}
		if !protected {
			c.Next()
			return
		}

		token, apiErr := bearerToken(c)
		if apiErr != nil {
			handler.WriteError(c, apiErr)
			return
		}

		subject, apiErr := authService.ParseToken(token)
		if apiErr != nil {
			handler.WriteError(c, apiErr)
			return
		}

		c.Set(SubjectContextKey, subject)
		c.Next()
	}
}

// bearerToken reads the Authorization header, or the access_token query
// parameter for EventSource clients that cannot set headers.
func bearerToken(c *gin.Context) (string, *apperrors.APIError) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("access_token"); token != "" {
			return token, nil
		}
		return "", apperrors.Unauthorized("missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", apperrors.Unauthorized("invalid authorization format")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", apperrors.Unauthorized("invalid authorization format")
	}
	return token, nil
}
