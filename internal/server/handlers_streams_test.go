package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pr-poehali-dev/streamhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, svc domain.StreamService) *Server {
	t.Helper()
	return NewServer(testConfig(), svc, &mockVKSearcher{}, &mockYouTubeSearcher{}, &mockHealthChecker{})
}

func doJSON(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestListStreams(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &mockStreamService{
		listActiveFn: func(_ context.Context) ([]domain.ActiveStream, error) {
			return []domain.ActiveStream{
				{ID: 1, Title: "Coding stream", Streamer: "alice", Points: 50, Viewers: 7, StartedAt: started, PhoneID: "phone_1"},
				{ID: 2, Title: "Live broadcast", Streamer: "bob", Points: 10, Viewers: 3, StartedAt: started, PhoneID: "phone_2"},
			}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodGet, "/streaming?action=list", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Streams []domain.ActiveStream `json:"streams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Streams, 2)
	assert.Equal(t, "alice", resp.Streams[0].Streamer)
	assert.Equal(t, 7, resp.Streams[0].Viewers)
}

func TestListStreams_DefaultAction(t *testing.T) {
	called := false
	svc := &mockStreamService{
		listActiveFn: func(_ context.Context) ([]domain.ActiveStream, error) {
			called = true
			return nil, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodGet, "/streaming", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestLeaderboard(t *testing.T) {
	var gotLimit int
	svc := &mockStreamService{
		leaderboardFn: func(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
			gotLimit = limit
			return []domain.LeaderboardEntry{
				{Username: "alice", Points: 50, TotalStreamTime: 3600, IsStreaming: true},
				{Username: "bob", Points: 40},
				{Username: "carol", Points: 40},
			}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodGet, "/streaming?action=leaderboard&limit=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotLimit)

	var resp struct {
		Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 3)
	assert.Equal(t, int64(50), resp.Leaderboard[0].Points)
}

func TestLeaderboard_InvalidLimit(t *testing.T) {
	srv := newTestServer(t, &mockStreamService{})

	rec := doJSON(t, srv, http.MethodGet, "/streaming?action=leaderboard&limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartStream(t *testing.T) {
	svc := &mockStreamService{
		startFn: func(_ context.Context, username, phoneID, title string) (*domain.StartResult, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "phone_1", phoneID)
			assert.Equal(t, "Coding stream", title)
			return &domain.StartResult{StreamID: 1, StreamerID: 2}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=start",
		`{"username": "alice", "phone_id": "phone_1", "title": "Coding stream"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["stream_id"])
	assert.Equal(t, float64(2), resp["streamer_id"])
	assert.Equal(t, "Stream started", resp["message"])
}

func TestStartStream_MissingFields(t *testing.T) {
	srv := newTestServer(t, &mockStreamService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"phone_id": "phone_1"}`},
		{"missing phone_id", `{"username": "alice"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/streaming?action=start", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "username and phone_id required", resp["error"])
		})
	}
}

func TestStopStream(t *testing.T) {
	svc := &mockStreamService{
		stopFn: func(_ context.Context, streamID int64) (*domain.StopResult, error) {
			assert.Equal(t, int64(1), streamID)
			return &domain.StopResult{PointsEarned: 12, Duration: 120}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=stop", `{"stream_id": 1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(12), resp["points_earned"])
	assert.Equal(t, float64(120), resp["duration"])
	assert.Equal(t, "Stream ended", resp["message"])
}

func TestStopStream_MissingStreamID(t *testing.T) {
	srv := newTestServer(t, &mockStreamService{})

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=stop", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStopStream_NotFound(t *testing.T) {
	svc := &mockStreamService{
		stopFn: func(_ context.Context, _ int64) (*domain.StopResult, error) {
			return nil, domain.ErrStreamNotFound
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=stop", `{"stream_id": 99}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Stream not found", resp["error"])
}

func TestJoinStream(t *testing.T) {
	svc := &mockStreamService{
		joinFn: func(_ context.Context, streamID int64) (*domain.JoinResult, error) {
			assert.Equal(t, int64(1), streamID)
			return &domain.JoinResult{ViewerID: 5, ViewersCount: 2}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=join", `{"stream_id": 1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(5), resp["viewer_id"])
	assert.Equal(t, float64(2), resp["viewers_count"])
}

func TestJoinStream_NotFound(t *testing.T) {
	svc := &mockStreamService{
		joinFn: func(_ context.Context, _ int64) (*domain.JoinResult, error) {
			return nil, domain.ErrStreamNotFound
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=join", `{"stream_id": 7}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreaming_InvalidAction(t *testing.T) {
	srv := newTestServer(t, &mockStreamService{})

	rec := doJSON(t, srv, http.MethodPost, "/streaming?action=explode", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid action", resp["error"])
}

func TestStreaming_ActionMethodMismatch(t *testing.T) {
	srv := newTestServer(t, &mockStreamService{})

	// start is a write; dispatching it over GET is invalid
	rec := doJSON(t, srv, http.MethodGet, "/streaming?action=start", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreaming_StorageFailureBecomes500(t *testing.T) {
	svc := &mockStreamService{
		listActiveFn: func(_ context.Context) ([]domain.ActiveStream, error) {
			return nil, context.DeadlineExceeded
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(t, srv, http.MethodGet, "/streaming?action=list", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}
