package regplace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://api.reg.place"

	maxErrorBody = 500
)

// TransportError is any non-200 answer from the API.
type TransportError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s (status %d): %s", e.URL, e.Status, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s (status %d)", e.URL, e.Status, e.StatusCode)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

// Event fetches the event summary with per-race stats.
func (c *Client) Event(ctx context.Context, slug string) ([]byte, error) {
	q := url.Values{}
	q.Set("heats_stats", "true")
	q.Set("races", "true")
	q.Set("compact", "false")
	return c.get(ctx, "/v1/events/"+url.PathEscape(slug), q)
}

// HeatV1 needs the platform token; the answer points at the v3 record.
func (c *Client) HeatV1(ctx context.Context, number int64) ([]byte, error) {
	q := url.Values{}
	q.Set("token", c.token)
	return c.get(ctx, "/v1/heats/"+strconv.FormatInt(number, 10), q)
}

// HeatV3 is fetched without a token, as the API currently allows.
func (c *Client) HeatV3(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/v3/heats/"+url.PathEscape(id), nil)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err // drop the URL, its query may hold the token
		}
		return nil, fmt.Errorf("GET %s: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			URL:        c.baseURL + path, // without the query, it may hold the token
			Body:       truncate(string(body), maxErrorBody),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.baseURL+path, err)
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
