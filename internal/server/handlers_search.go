package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pr-poehali-dev/streamhub/internal/errors"
)

// parseCount reads an optional positive integer query parameter, returning
// 0 when absent so the client applies its default.
func parseCount(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationError(name + " must be a number").WithField(name, raw)
	}
	return parsed, nil
}

func (s *Server) handleVKSearch(c echo.Context) error {
	if s.config.VKServiceToken == "" {
		return apperrors.ConfigError("VK_SERVICE_TOKEN not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("Missing query parameter")
	}

	count, err := parseCount(c, "count")
	if err != nil {
		return err
	}

	videos, err := s.vkClient.Search(c.Request().Context(), query, count)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"videos": videos,
		"count":  len(videos),
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleYouTubeSearch(c echo.Context) error {
	if s.config.YouTubeAPIKey == "" {
		return apperrors.ConfigError("YouTube API key not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("Search query is required")
	}

	maxResults, err := parseCount(c, "maxResults")
	if err != nil {
		return err
	}

	videos, err := s.ytClient.Search(c.Request().Context(), query, maxResults)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"videos": videos,
		"total":  len(videos),
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
