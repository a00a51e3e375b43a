package domain

import (
	"context"
	"fmt"
	"time"
)

// ViewerPointsBonus is credited per recorded viewer join (not deduplicated).
const ViewerPointsBonus = 5

// PointsHistory is one append-only ledger entry, written once per stream
// close.
type PointsHistory struct {
	ID         int64
	StreamerID int64
	Points     int64
	Reason     string
	CreatedAt  time.Time
}

// CalculatePoints awards one point per full minute streamed plus five
// points per viewer recorded during the session.
func CalculatePoints(durationSeconds int64, viewersCount int) int64 {
	return durationSeconds/60 + int64(viewersCount)*ViewerPointsBonus
}

// PointsReason describes a close outcome for the ledger entry.
func PointsReason(durationSeconds int64, viewersCount int) string {
	return fmt.Sprintf("Stream ended: %ds, %d viewers", durationSeconds, viewersCount)
}

// StreamService is the application-facing API over the stream lifecycle
// and points ledger.
type StreamService interface {
	ListActive(ctx context.Context) ([]ActiveStream, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Start(ctx context.Context, username, phoneID, title string) (*StartResult, error)
	Stop(ctx context.Context, streamID int64) (*StopResult, error)
	Join(ctx context.Context, streamID int64) (*JoinResult, error)
}
