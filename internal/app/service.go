package app

import (
	"context"
	"log/slog"

	"github.com/pr-poehali-dev/streamhub/internal/domain"
	"github.com/pr-poehali-dev/streamhub/internal/metrics"
)

// DefaultLeaderboardLimit is used when the caller supplies no limit.
const DefaultLeaderboardLimit = 10

// Service implements domain.StreamService on top of the repositories.
type Service struct {
	streams   domain.StreamRepository
	streamers domain.StreamerRepository
}

func NewService(streams domain.StreamRepository, streamers domain.StreamerRepository) *Service {
	return &Service{
		streams:   streams,
		streamers: streamers,
	}
}

// ListActive returns all running streams ordered by viewer count descending.
func (s *Service) ListActive(ctx context.Context) ([]domain.ActiveStream, error) {
	return s.streams.ListActive(ctx)
}

// Leaderboard returns the top streamers by points. A non-positive limit
// falls back to DefaultLeaderboardLimit.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.streamers.Leaderboard(ctx, limit)
}

// Start opens a stream session for the streamer identified by phoneID,
// creating the streamer on first contact and refreshing the username
// otherwise. An empty title falls back to domain.DefaultStreamTitle.
func (s *Service) Start(ctx context.Context, username, phoneID, title string) (*domain.StartResult, error) {
	if title == "" {
		title = domain.DefaultStreamTitle
	}

	result, err := s.streams.Start(ctx, username, phoneID, title)
	if err != nil {
		return nil, err
	}

	metrics.StreamsStarted.Inc()
	slog.InfoContext(ctx, "Stream started",
		"stream_id", result.StreamID,
		"streamer_id", result.StreamerID,
		"title", title,
	)
	return result, nil
}

// Stop closes the stream and credits the earned points. Returns
// domain.ErrStreamNotFound when the stream does not exist or has already
// ended, so repeated stops never double-credit.
func (s *Service) Stop(ctx context.Context, streamID int64) (*domain.StopResult, error) {
	result, err := s.streams.Stop(ctx, streamID)
	if err != nil {
		return nil, err
	}

	metrics.StreamsStopped.Inc()
	metrics.PointsAwarded.Add(float64(result.PointsEarned))
	slog.InfoContext(ctx, "Stream ended",
		"stream_id", streamID,
		"duration", result.Duration,
		"points_earned", result.PointsEarned,
	)
	return result, nil
}

// Join records a viewer join against an active stream and returns the new
// counter value.
func (s *Service) Join(ctx context.Context, streamID int64) (*domain.JoinResult, error) {
	result, err := s.streams.Join(ctx, streamID)
	if err != nil {
		return nil, err
	}

	metrics.ViewerJoins.Inc()
	slog.DebugContext(ctx, "Viewer joined",
		"stream_id", streamID,
		"viewer_id", result.ViewerID,
		"viewers_count", result.ViewersCount,
	)
	return result, nil
}
