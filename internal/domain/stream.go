package domain

import (
	"context"
	"time"
)

type StreamStatus string

const (
	StreamStatusActive StreamStatus = "active"
	StreamStatusEnded  StreamStatus = "ended"
)

// DefaultStreamTitle is used when a start request carries no title.
const DefaultStreamTitle = "Live broadcast"

type Stream struct {
	ID         int64
	StreamerID int64

	Title        string
	Status       StreamStatus
	ViewersCount int
	StartedAt    time.Time
	EndedAt      *time.Time
	Duration     int64
	PointsEarned int64
}

// ActiveStream is the listing view of a running stream, joined with the
// owning streamer's identity and points balance.
type ActiveStream struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Streamer  string    `json:"streamer"`
	Points    int64     `json:"points"`
	Viewers   int       `json:"viewers"`
	StartedAt time.Time `json:"started_at"`
	PhoneID   string    `json:"phone_id"`
}

type StartResult struct {
	StreamID   int64
	StreamerID int64
}

type StopResult struct {
	PointsEarned int64
	Duration     int64
}

type JoinResult struct {
	ViewerID     int64
	ViewersCount int
}

// StreamRepository persists stream sessions and the points ledger.
// Start, Stop and Join each run their multi-row writes inside a single
// transaction; a partial outcome must never be observable.
type StreamRepository interface {
	ListActive(ctx context.Context) ([]ActiveStream, error)

	// Start upserts the streamer by phone_id (refreshing the username on
	// conflict), marks them streaming and opens a new active stream.
	Start(ctx context.Context, username, phoneID, title string) (*StartResult, error)

	// Stop closes the stream and credits the earned points to its
	// streamer. Only a stream in status 'active' can be stopped; a
	// second stop returns ErrStreamNotFound, so points are credited at
	// most once.
	Stop(ctx context.Context, streamID int64) (*StopResult, error)

	// Join atomically increments the live viewer counter of an active
	// stream and records the join. Returns ErrStreamNotFound when the
	// stream does not exist or is no longer active.
	Join(ctx context.Context, streamID int64) (*JoinResult, error)
}
