// Package kickapi implements the KickSource port against the HTTP counting
// service.
package kickapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

const (
	dailyPath    = "/api/baby-kick-daily/"
	maxBodyBytes = 1 << 20
)

// Client fetches daily kick totals over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for baseURL with the given per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements ports.KickSource.
var _ ports.KickSource = (*Client)(nil)

// URLFor returns the daily-count URL for user.
func (c *Client) URLFor(user domain.UserIdentity) string {
	return c.baseURL + dailyPath + url.PathEscape(user.String())
}

// DailyKicks issues one GET for the user's daily total.
func (c *Client) DailyKicks(ctx context.Context, user domain.UserIdentity) (domain.KickCount, error) {
	if user.IsZero() {
		return 0, domain.ErrIdentityUnavailable
	}

	endpoint := c.URLFor(user)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("kick request failed", "user", user, "err", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("kick request", "user", user, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return 0, &domain.StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
		}
		return 0, fmt.Errorf("%w: read body: %v", domain.ErrNetworkFailure, err)
	}

	count, err := ParseTotalKicks(body)
	if err != nil {
		c.logger.Warn("malformed kick response", "user", user, "err", err)
		return 0, err
	}
	return count, nil
}

// ParseTotalKicks extracts total_kicks from a response body. The field may be
// a JSON number or a numeric string; anything else is malformed.
func ParseTotalKicks(body []byte) (domain.KickCount, error) {
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: invalid json", domain.ErrResponseMalformed)
	}
	field := gjson.GetBytes(body, "total_kicks")
	switch field.Type {
	case gjson.Number:
		n := field.Float()
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n > 1<<30 {
			return 0, fmt.Errorf("%w: total_kicks out of range", domain.ErrResponseMalformed)
		}
		return domain.KickCount(int(n)), nil
	case gjson.String:
		count, err := domain.ParseKickCount(field.Str)
		if err != nil {
			return 0, fmt.Errorf("%w: total_kicks %q", domain.ErrResponseMalformed, field.Str)
		}
		return count, nil
	case gjson.Null:
		if !field.Exists() {
			return 0, fmt.Errorf("%w: missing total_kicks", domain.ErrResponseMalformed)
		}
		return 0, fmt.Errorf("%w: total_kicks is null", domain.ErrResponseMalformed)
	default:
		return 0, fmt.Errorf("%w: total_kicks has type %s", domain.ErrResponseMalformed, field.Type)
	}
}
