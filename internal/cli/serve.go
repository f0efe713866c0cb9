package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/focus/internal/config"
	"pomodoro/focus/internal/handler"
	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/router"
	"pomodoro/focus/internal/service"
	"pomodoro/focus/internal/timer"
	"pomodoro/focus/internal/tone"
	"pomodoro/focus/internal/tone/beeptone"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the timer and its HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	engine := timer.New(backend, backend, engineOptions(cfg))
	defer func() {
		if err := engine.Close(); err != nil {
			log.Printf("close timer: %v", err)
		}
	}()

	authService := service.NewAuthService(backend, cfg.JWTSecret, cfg.TokenTTL)
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Timer:   handler.NewTimerHandler(service.NewTimerService(engine)),
		History: handler.NewHistoryHandler(service.NewHistoryService(backend)),
		Tasks:   handler.NewTaskHandler(service.NewTaskService(backend, time.Now)),
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(authService, handlers, cfg.CORSOrigins),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("pomodoro listening on :%s (store=%s)", cfg.Port, cfg.StoreDriver)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func engineOptions(cfg config.Config) timer.Options {
	var player tone.Player = tone.Nop{}
	if cfg.ToneEnabled {
		player = beeptone.NewBeep(0)
	}
	return timer.Options{
		TickInterval: cfg.TickInterval,
		Defaults: model.Settings{
			WorkMinutes:  cfg.DefaultWorkMinutes,
			BreakMinutes: cfg.DefaultBreakMinutes,
		},
		Tone:   player,
		Strict: cfg.Strict(),
	}
}
