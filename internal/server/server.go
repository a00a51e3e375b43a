package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pr-poehali-dev/streamhub/internal/config"
	"github.com/pr-poehali-dev/streamhub/internal/domain"
	apperrors "github.com/pr-poehali-dev/streamhub/internal/errors"
	"github.com/pr-poehali-dev/streamhub/internal/vk"
	"github.com/pr-poehali-dev/streamhub/internal/youtube"
)

// vkSearcher is the slice of the VK client the handlers need.
type vkSearcher interface {
	Search(ctx context.Context, query string, count int) ([]vk.Video, error)
}

// youtubeSearcher is the slice of the YouTube client the handlers need.
type youtubeSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]youtube.Video, error)
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	streams   domain.StreamService
	vkClient  vkSearcher
	ytClient  youtubeSearcher
	db        postgresHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, streams domain.StreamService, vkClient vkSearcher, ytClient youtubeSearcher, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(corsMiddleware)
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		streams:   streams,
		vkClient:  vkClient,
		ytClient:  ytClient,
		db:        db,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
