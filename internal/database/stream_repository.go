package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/pr-poehali-dev/streamhub/internal/domain"
)

// StreamRepo implements domain.StreamRepository backed by PostgreSQL.
type StreamRepo struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock
}

func NewStreamRepo(pool *pgxpool.Pool, clock clockwork.Clock) *StreamRepo {
	return &StreamRepo{pool: pool, clock: clock}
}

func (r *StreamRepo) ListActive(ctx context.Context) ([]domain.ActiveStream, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.title, st.username, st.points, s.viewers_count, s.started_at, st.phone_id
		FROM streams s
		JOIN streamers st ON s.streamer_id = st.id
		WHERE s.status = 'active'
		ORDER BY s.viewers_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active streams: %w", err)
	}
	defer rows.Close()

	streams := make([]domain.ActiveStream, 0)
	for rows.Next() {
		var s domain.ActiveStream
		if err := rows.Scan(&s.ID, &s.Title, &s.Streamer, &s.Points, &s.Viewers, &s.StartedAt, &s.PhoneID); err != nil {
			return nil, fmt.Errorf("failed to scan active stream: %w", err)
		}
		streams = append(streams, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active streams: %w", err)
	}
	return streams, nil
}

// Start upserts the streamer by phone_id and opens a new active stream in
// one transaction. The unique constraint on phone_id makes concurrent
// starts for the same phone converge on a single streamer row.
func (r *StreamRepo) Start(ctx context.Context, username, phoneID, title string) (*domain.StartResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	now := r.clock.Now().UTC()

	var streamerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO streamers (username, phone_id)
		VALUES ($1, $2)
		ON CONFLICT (phone_id)
		DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, phoneID).Scan(&streamerID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert streamer: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE streamers
		SET is_streaming = TRUE, last_stream_at = $2
		WHERE id = $1
	`, streamerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark streamer as streaming: %w", err)
	}

	var streamID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO streams (streamer_id, title, status, started_at)
		VALUES ($1, $2, 'active', $3)
		RETURNING id
	`, streamerID, title, now).Scan(&streamID)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.StartResult{StreamID: streamID, StreamerID: streamerID}, nil
}

// Stop closes the stream and credits its streamer in one transaction. The
// close is a conditional update on status='active', so a second stop sees
// no matching row and the points are credited at most once.
func (r *StreamRepo) Stop(ctx context.Context, streamID int64) (*domain.StopResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	now := r.clock.Now().UTC()

	var (
		streamerID   int64
		duration     int64
		viewersCount int
	)
	err = tx.QueryRow(ctx, `
		UPDATE streams
		SET status = 'ended',
		    ended_at = $2,
		    duration = FLOOR(EXTRACT(EPOCH FROM ($2::timestamptz - started_at)))::BIGINT
		WHERE id = $1 AND status = 'active'
		RETURNING streamer_id, duration, viewers_count
	`, streamID, now).Scan(&streamerID, &duration, &viewersCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close stream: %w", err)
	}

	points := domain.CalculatePoints(duration, viewersCount)

	_, err = tx.Exec(ctx, `
		UPDATE streamers
		SET points = points + $2,
		    total_stream_time = total_stream_time + $3,
		    is_streaming = FALSE
		WHERE id = $1
	`, streamerID, points, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to credit streamer: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO points_history (streamer_id, points, reason)
		VALUES ($1, $2, $3)
	`, streamerID, points, domain.PointsReason(duration, viewersCount))
	if err != nil {
		return nil, fmt.Errorf("failed to append points history: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE streams SET points_earned = $2 WHERE id = $1
	`, streamID, points)
	if err != nil {
		return nil, fmt.Errorf("failed to record earned points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.StopResult{PointsEarned: points, Duration: duration}, nil
}

// Join bumps the viewer counter and records the join in one transaction.
// The increment is a single conditional statement, not read-then-write,
// so concurrent joins cannot lose updates.
func (r *StreamRepo) Join(ctx context.Context, streamID int64) (*domain.JoinResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var viewersCount int
	err = tx.QueryRow(ctx, `
		UPDATE streams
		SET viewers_count = viewers_count + 1
		WHERE id = $1 AND status = 'active'
		RETURNING viewers_count
	`, streamID).Scan(&viewersCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment viewers: %w", err)
	}

	var viewerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO viewers (stream_id, joined_at)
		VALUES ($1, $2)
		RETURNING id
	`, streamID, r.clock.Now().UTC()).Scan(&viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to record viewer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.JoinResult{ViewerID: viewerID, ViewersCount: viewersCount}, nil
}
