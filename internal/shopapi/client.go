// Package shopapi is the typed HTTP client for the shop backend REST API:
// customers, deliveries, orders, payments, and the product catalog.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yavemu/products-shop-web/internal/pkg/requestmeta"
)

const defaultTimeout = 15 * time.Second

// Client issues JSON requests against a configured base URL and normalizes
// transport failures into user-facing messages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// call issues a JSON request and decodes the response into out (unless nil).
//
// Error contract:
//   - transport failures come back as *RequestError with a localized message
//   - non-2xx responses come back as *StatusError embedding code and body
//   - anything else (encode/decode failures) is returned as-is
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("shopapi: encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("shopapi: build request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := requestmeta.RequestID(ctx); id != "" {
		req.Header.Set(requestmeta.HeaderRequestID, id)
	}
	if key := requestmeta.IdempotencyKey(ctx); key != "" {
		req.Header.Set(requestmeta.HeaderIdempotencyKey, key)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := classifyTransport(err)
		slog.ErrorContext(ctx, "backend request failed",
			"method", method, "endpoint", endpoint, "error", err)
		return reqErr
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("shopapi: read response %s %s: %w", method, endpoint, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{
			Code:   res.StatusCode,
			Status: http.StatusText(res.StatusCode),
			Body:   string(bytes.TrimSpace(raw)),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("shopapi: decode response %s %s: %w", method, endpoint, err)
		}
	}
	return nil
}
