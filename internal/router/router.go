package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomodoro/focus/internal/handler"
	"pomodoro/focus/internal/middleware"
	"pomodoro/focus/internal/service"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Timer   *handler.TimerHandler
	History *handler.HistoryHandler
	Tasks   *handler.TaskHandler
}

func New(authService *service.AuthService, handlers Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.GET("/status", handlers.Auth.Status)
	auth.POST("/setup", handlers.Auth.Setup)
	auth.POST("/login", handlers.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	timer := protected.Group("/timer")
	timer.GET("/state", handlers.Timer.GetState)
	timer.POST("/toggle", handlers.Timer.Toggle)
	timer.POST("/reset", handlers.Timer.Reset)
	timer.PUT("/settings", handlers.Timer.UpdateSettings)
	timer.POST("/notification/confirm", handlers.Timer.ConfirmNotification)
	timer.POST("/notification/dismiss", handlers.Timer.DismissNotification)
	timer.GET("/events", handlers.Timer.Events)

	history := protected.Group("/history")
	history.GET("", handlers.History.List)
	history.GET("/summary", handlers.History.Summary)
	history.GET("/report", handlers.History.Report)
	history.DELETE("", handlers.History.Clear)

	tasks := protected.Group("/tasks")
	tasks.GET("", handlers.Tasks.List)
	tasks.POST("", handlers.Tasks.Add)
	tasks.POST("/:id/toggle", handlers.Tasks.Toggle)
	tasks.DELETE("/:id", handlers.Tasks.Delete)

	return engine
}
