package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pr-poehali-dev/streamhub/internal/domain"
	apperrors "github.com/pr-poehali-dev/streamhub/internal/errors"
)

// streamAction is the dispatch tag carried in the `action` query parameter.
type streamAction string

const (
	actionList        streamAction = "list"
	actionLeaderboard streamAction = "leaderboard"
	actionStart       streamAction = "start"
	actionStop        streamAction = "stop"
	actionJoin        streamAction = "join"
)

type startRequest struct {
	Username string `json:"username"`
	PhoneID  string `json:"phone_id"`
	Title    string `json:"title"`
}

type streamIDRequest struct {
	StreamID int64 `json:"stream_id"`
}

// handleStreaming dispatches on method plus action, defaulting to list.
// Unrecognized combinations fail with a validation error.
func (s *Server) handleStreaming(c echo.Context) error {
	action := streamAction(c.QueryParam("action"))
	if action == "" {
		action = actionList
	}

	get := c.Request().Method == http.MethodGet

	switch {
	case get && action == actionList:
		return s.handleListStreams(c)
	case get && action == actionLeaderboard:
		return s.handleLeaderboard(c)
	case !get && action == actionStart:
		return s.handleStartStream(c)
	case !get && action == actionStop:
		return s.handleStopStream(c)
	case !get && action == actionJoin:
		return s.handleJoinStream(c)
	default:
		return apperrors.ValidationError("Invalid action").
			WithField("action", string(action)).
			WithField("method", c.Request().Method)
	}
}

func (s *Server) handleListStreams(c echo.Context) error {
	streams, err := s.streams.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{"streams": streams}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("limit must be a number").WithField("limit", raw)
		}
		limit = parsed
	}

	leaderboard, err := s.streams.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{"leaderboard": leaderboard}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleStartStream(c echo.Context) error {
	var req startRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Username == "" || req.PhoneID == "" {
		return apperrors.ValidationError("username and phone_id required")
	}

	result, err := s.streams.Start(c.Request().Context(), req.Username, req.PhoneID, req.Title)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"stream_id":   result.StreamID,
		"streamer_id": result.StreamerID,
		"message":     "Stream started",
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleStopStream(c echo.Context) error {
	var req streamIDRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.StreamID == 0 {
		return apperrors.ValidationError("stream_id required")
	}

	result, err := s.streams.Stop(c.Request().Context(), req.StreamID)
	if err != nil {
		if errors.Is(err, domain.ErrStreamNotFound) {
			return apperrors.NotFoundError("Stream not found").WithField("stream_id", req.StreamID)
		}
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"points_earned": result.PointsEarned,
		"duration":      result.Duration,
		"message":       "Stream ended",
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleJoinStream(c echo.Context) error {
	var req streamIDRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.StreamID == 0 {
		return apperrors.ValidationError("stream_id required")
	}

	result, err := s.streams.Join(c.Request().Context(), req.StreamID)
	if err != nil {
		if errors.Is(err, domain.ErrStreamNotFound) {
			return apperrors.NotFoundError("Stream not found").WithField("stream_id", req.StreamID)
		}
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]any{
		"viewer_id":     result.ViewerID,
		"viewers_count": result.ViewersCount,
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
