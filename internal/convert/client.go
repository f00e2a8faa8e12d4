package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Client talks to an OpenCC-compatible conversion service over HTTP.
type Client struct {
	baseURL    string
	configName string
	retries    uint
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetries sets the number of attempts per request.
func WithRetries(n uint) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a conversion client for the service at baseURL using the
// named conversion config.
func NewClient(baseURL, configName string, opts ...ClientOption) (*Client, error) {
	name, err := ValidateConfig(configName)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		configName: name,
		retries:    3,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the conversion config name the client was created with.
func (c *Client) Config() string {
	return c.configName
}

type convertRequest struct {
	Text        string `json:"text"`
	Config      string `json:"config"`
	Punctuation bool   `json:"punctuation"`
}

type convertResponse struct {
	Text string `json:"text"`
}

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Result int `json:"result"`
}

// Convert converts text via the service. Empty input is returned as-is
// without a network round trip.
func (c *Client) Convert(ctx context.Context, text string, punct bool) (string, error) {
	if text == "" {
		return "", nil
	}

	req := convertRequest{Text: text, Config: c.configName, Punctuation: punct}
	var resp convertResponse
	if err := c.post(ctx, "/convert", req, &resp); err != nil {
		return "", fmt.Errorf("conversion failed: %w", err)
	}
	return resp.Text, nil
}

// ZhoCheck reports the script variant of text: 0 neither, 1 traditional,
// 2 simplified.
func (c *Client) ZhoCheck(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	req := checkRequest{Text: text}
	var resp checkResponse
	if err := c.post(ctx, "/check", req, &resp); err != nil {
		return 0, fmt.Errorf("script check failed: %w", err)
	}
	return resp.Result, nil
}

// post sends a JSON request and decodes the JSON response, retrying
// transient failures. 4xx responses are not retried.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(
				ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body),
			)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return retry.Unrecoverable(
					fmt.Errorf("service rejected request: %d %s", resp.StatusCode, strings.TrimSpace(string(msg))),
				)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status: %d", resp.StatusCode)
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retries),
		retry.Delay(500*time.Millisecond),
	)
}
