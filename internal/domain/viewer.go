package domain

import "time"

// Viewer is an anonymous join event tied to a stream. Append-only.
type Viewer struct {
	ID       int64
	StreamID int64
	JoinedAt time.Time
}
