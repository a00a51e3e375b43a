package domain

import (
	"context"
	"time"
)

type Streamer struct {
	ID        int64
	CreatedAt time.Time

	Username        string
	PhoneID         string
	Points          int64
	TotalStreamTime int64
	IsStreaming     bool
	LastStreamAt    *time.Time
}

// LeaderboardEntry is one row of the points leaderboard, ordered by
// Points descending. Tie order among equal scores is unspecified.
type LeaderboardEntry struct {
	Username        string `json:"username"`
	Points          int64  `json:"points"`
	TotalStreamTime int64  `json:"total_stream_time"`
	IsStreaming     bool   `json:"is_streaming"`
}

type StreamerRepository interface {
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
