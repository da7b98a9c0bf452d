package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/careerstack/resumegest/internal/fragment"
)

// RemoteReader calls an external document-parsing service. The
// service returns per-page text items in a top-left-origin coordinate
// system; this client remaps them to the pipeline's bottom-left
// origin and flattens pages into a single descending Y range, with
// each page boundary marked as a hard line break.
type RemoteReader struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// Stats tracks call latency for the stats endpoint.
	Stats *Stats
}

func NewRemoteReader(baseURL, apiKey string) *RemoteReader {
	return &RemoteReader{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Stats: NewStats(time.Hour),
	}
}

// parseResponse is the service's JSON response.
type parseResponse struct {
	Pages []parsePage `json:"pages"`
}

type parsePage struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Items  []parseItem `json:"items"`
}

// parseItem positions are top-left origin: Y grows downward.
type parseItem struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontName string  `json:"font_name,omitempty"`
	EOL      bool    `json:"eol,omitempty"`
}

func (c *RemoteReader) Read(ctx context.Context, r io.Reader, filename string) ([]fragment.TextFragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		frags, err := c.parseOnce(ctx, data, filename)
		if err == nil {
			return frags, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(Backoff(attempt)):
		}
	}
	return nil, lastErr
}

func (c *RemoteReader) parseOnce(ctx context.Context, data []byte, filename string) ([]fragment.TextFragment, error) {
	endpoint := c.baseURL + "/v1/documents/parse?filename=" + url.QueryEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("parse service: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{Err: fmt.Errorf("parse service: status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("parse service: status %d: %s", resp.StatusCode, string(body))
	}

	var pr parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode parse response: %w", err)
	}
	c.Stats.Record(time.Since(start).Milliseconds())

	return flattenPages(pr.Pages), nil
}

// flattenPages converts the service's top-left-origin page items into
// one bottom-left-origin fragment list.
func flattenPages(pages []parsePage) []fragment.TextFragment {
	var frags []fragment.TextFragment
	var yOffset float64

	for _, page := range pages {
		height := page.Height
		if height <= 0 {
			height = 792.0
		}
		start := len(frags)
		for _, item := range page.Items {
			frags = append(frags, fragment.TextFragment{
				Text:     item.Text,
				X:        item.X,
				Y:        height - item.Y - item.Height - yOffset,
				Width:    item.Width,
				Height:   item.Height,
				FontName: item.FontName,
				HasEOL:   item.EOL,
			})
		}
		if len(frags) > start {
			frags[len(frags)-1].HasEOL = true
		}
		yOffset += height
	}

	return frags
}

// Close releases idle connections held by the HTTP client.
func (c *RemoteReader) Close() {
	c.httpClient.CloseIdleConnections()
}
