package server

import (
	"context"

	"github.com/pr-poehali-dev/streamhub/internal/config"
	"github.com/pr-poehali-dev/streamhub/internal/domain"
	"github.com/pr-poehali-dev/streamhub/internal/vk"
	"github.com/pr-poehali-dev/streamhub/internal/youtube"
)

type mockStreamService struct {
	listActiveFn  func(ctx context.Context) ([]domain.ActiveStream, error)
	leaderboardFn func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	startFn       func(ctx context.Context, username, phoneID, title string) (*domain.StartResult, error)
	stopFn        func(ctx context.Context, streamID int64) (*domain.StopResult, error)
	joinFn        func(ctx context.Context, streamID int64) (*domain.JoinResult, error)
}

func (m *mockStreamService) ListActive(ctx context.Context) ([]domain.ActiveStream, error) {
	return m.listActiveFn(ctx)
}

func (m *mockStreamService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return m.leaderboardFn(ctx, limit)
}

func (m *mockStreamService) Start(ctx context.Context, username, phoneID, title string) (*domain.StartResult, error) {
	return m.startFn(ctx, username, phoneID, title)
}

func (m *mockStreamService) Stop(ctx context.Context, streamID int64) (*domain.StopResult, error) {
	return m.stopFn(ctx, streamID)
}

func (m *mockStreamService) Join(ctx context.Context, streamID int64) (*domain.JoinResult, error) {
	return m.joinFn(ctx, streamID)
}

type mockVKSearcher struct {
	searchFn func(ctx context.Context, query string, count int) ([]vk.Video, error)
}

func (m *mockVKSearcher) Search(ctx context.Context, query string, count int) ([]vk.Video, error) {
	return m.searchFn(ctx, query, count)
}

type mockYouTubeSearcher struct {
	searchFn func(ctx context.Context, query string, maxResults int) ([]youtube.Video, error)
}

func (m *mockYouTubeSearcher) Search(ctx context.Context, query string, maxResults int) ([]youtube.Video, error) {
	return m.searchFn(ctx, query, maxResults)
}

type mockHealthChecker struct {
	pingFn func(ctx context.Context) error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	if m.pingFn == nil {
		return nil
	}
	return m.pingFn(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:         "test",
		Port:           "8080",
		DatabaseURL:    "postgres://localhost:5432/test",
		VKServiceToken: "vk-token",
		YouTubeAPIKey:  "yt-key",
	}
}
