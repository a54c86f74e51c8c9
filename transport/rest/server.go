package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
			return nil
		},
	}))

	h := newHandlers(log, games)

	e.GET("/ping", pingHandler)

	e.POST("/games", h.CreateGame)
	e.GET("/games/:id", h.GetGame)
	e.DELETE("/games/:id", h.DeleteGame)
	e.POST("/games/:id/turns", h.MakeTurn)

	e.GET("/results", h.RecentResults)
	e.GET("/stats", h.Stats)

	e.POST("/analysis", h.Analyze)

	return &Server{
		logger: log,
		echo:   e,
	}
}

// ServeHTTP exposes the router for tests and embedding.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.echo.ServeHTTP(w, r)
}

// Start - serves on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}
