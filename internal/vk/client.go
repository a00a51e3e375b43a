// Package vk is a minimal client for the VK video.search API.
package vk

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
	// DefaultBaseURL is the production VK API endpoint.
	DefaultBaseURL = "https://api.vk.com"

	apiVersion     = "5.131"
	defaultCount   = 20
	requestTimeout = 10 * time.Second

	// minThumbnailHeight filters preview images too small for the grid.
	minThumbnailHeight = 240
)

// Video is the simplified search result shape exposed to clients.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Views       int    `json:"views"`
	Thumbnail   string `json:"thumbnail"`
	Player      string `json:"player"`
	Date        int64  `json:"date"`
}

type imageSize struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
}

type searchItem struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    int         `json:"duration"`
	Views       int         `json:"views"`
	Player      string      `json:"player"`
	Date        int64       `json:"date"`
	Image       []imageSize `json:"image"`
	FirstFrame  []imageSize `json:"first_frame"`
}

type searchEnvelope struct {
	Response *struct {
		Items []searchItem `json:"items"`
	} `json:"response"`
	Error *struct {
		ErrorCode int    `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
	} `json:"error"`
}

// Client calls the VK API with a service token.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewClient(baseURL, serviceToken string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Search queries video.search with safe-search enabled and maps the
// response into the simplified video shape. A VK-level error envelope is
// passed through as a vendor error with VK's message.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Video, error) {
	if count <= 0 {
		count = defaultCount
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("adult", "0")
	params.Set("access_token", c.serviceToken)
	params.Set("v", apiVersion)

	reqURL := c.baseURL + "/method/video.search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.VendorSearchRequests.WithLabelValues("vk", "error").Inc()
		return nil, fmt.Errorf("vk request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.VendorSearchRequests.WithLabelValues("vk", "error").Inc()
		return nil, fmt.Errorf("read vk response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.VendorSearchRequests.WithLabelValues("vk", "vendor_error").Inc()
		return nil, apperrors.VendorError(resp.StatusCode, "VK API error", nil).
			WithField("details", string(body))
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.VendorSearchRequests.WithLabelValues("vk", "error").Inc()
		return nil, fmt.Errorf("decode vk response: %w", err)
	}

	// VK reports API errors inside a 200 envelope
	if envelope.Error != nil {
		metrics.VendorSearchRequests.WithLabelValues("vk", "vendor_error").Inc()
		msg := envelope.Error.ErrorMsg
		if msg == "" {
			msg = "VK API error"
		}
		return nil, apperrors.VendorError(http.StatusBadRequest, msg, nil).
			WithField("error_code", envelope.Error.ErrorCode)
	}

	videos := make([]Video, 0)
	if envelope.Response != nil {
		for _, item := range envelope.Response.Items {
			videos = append(videos, Video{
				ID:          fmt.Sprintf("%d_%d", item.OwnerID, item.ID),
				Title:       item.Title,
				Description: item.Description,
				Duration:    item.Duration,
				Views:       item.Views,
				Thumbnail:   pickThumbnail(item),
				Player:      item.Player,
				Date:        item.Date,
			})
		}
	}

	metrics.VendorSearchRequests.WithLabelValues("vk", "ok").Inc()
	return videos, nil
}

// pickThumbnail prefers the image set over first_frame, taking the first
// size at least minThumbnailHeight tall.
func pickThumbnail(item searchItem) string {
	for _, sizes := range [][]imageSize{item.Image, item.FirstFrame} {
		for _, size := range sizes {
			if size.Height >= minThumbnailHeight {
				return size.URL
			}
		}
	}
	return ""
}
