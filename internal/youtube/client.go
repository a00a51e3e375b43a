// Package youtube is a minimal client for the YouTube Data API v3 search
// endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/pr-poehali-dev/streamhub/internal/errors"
	"github.com/pr-poehali-dev/streamhub/internal/metrics"
)

const (
	// DefaultBaseURL is the production Google APIs endpoint.
	DefaultBaseURL = "https://www.googleapis.com"

	defaultMaxResults = 12
	// maxResultsCap is the YouTube API hard limit per request.
	maxResultsCap  = 50
	requestTimeout = 10 * time.Second
)

// Video is the simplified search result shape exposed to clients.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Client calls the YouTube Data API with an API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Search queries the search endpoint for embeddable videos with moderate
// safe-search. maxResults is clamped to the API limit of 50. A non-2xx
// vendor response is passed through with its status code and body.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)
	params.Set("videoEmbeddable", "true")
	params.Set("safeSearch", "moderate")

	reqURL := c.baseURL + "/youtube/v3/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.VendorSearchRequests.WithLabelValues("youtube", "error").Inc()
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.VendorSearchRequests.WithLabelValues("youtube", "error").Inc()
		return nil, fmt.Errorf("read youtube response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.VendorSearchRequests.WithLabelValues("youtube", "vendor_error").Inc()
		return nil, apperrors.VendorError(resp.StatusCode, "YouTube API error", nil).
			WithField("details", string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.VendorSearchRequests.WithLabelValues("youtube", "error").Inc()
		return nil, fmt.Errorf("decode youtube response: %w", err)
	}

	videos := make([]Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		videos = append(videos, Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			Description: item.Snippet.Description,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	metrics.VendorSearchRequests.WithLabelValues("youtube", "ok").Inc()
	return videos, nil
}
