// Package probe issues the HTTP requests behind every smoke check.
package probe

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// MaxBodyBytes caps how much of a response body is read
const MaxBodyBytes = 10 << 20

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       string
}

// Client performs plain GET requests with a fixed timeout and no retries
type Client struct {
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a Client whose requests give up after timeout
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Get fetches url and reads the (decompressed) body
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			slog.String("url", url),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := c.decompress(resp)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("GET %s: reading body: %w", url, err)
	}

	c.logger.Debug("request completed",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
		slog.Int("bytes", len(data)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: string(data)}, nil
}

// decompress wraps the body when the server compressed it without being asked.
// A gzip body negotiated by the transport arrives already decoded.
func (c *Client) decompress(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "":
		return io.NopCloser(resp.Body), nil
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return r, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		c.logger.Debug("unknown content encoding, reading raw body",
			slog.String("encoding", resp.Header.Get("Content-Encoding")),
		)
		return io.NopCloser(resp.Body), nil
	}
}
