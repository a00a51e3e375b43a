package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Stream lifecycle and points ledger, dispatched by the `action`
	// query parameter
	s.echo.GET("/streaming", s.handleStreaming)
	s.echo.POST("/streaming", s.handleStreaming)

	// Video search proxies
	s.echo.GET("/search/vk", s.handleVKSearch)
	s.echo.GET("/search/youtube", s.handleYouTubeSearch)
}
