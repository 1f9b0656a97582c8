// Package clashapi reads clan member lists from the Clash of Clans API.
package clashapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mcoot/cwlroster/internal/model"
)

// DefaultBaseURL is the public Clash of Clans API
const DefaultBaseURL = "https://api.clashofclans.com/v1"

var (
	ErrNotConfigured = errors.New("clash of clans api key not configured")
	ErrUnauthorized  = errors.New("clash of clans api key invalid or not authorised for this IP")
	ErrBadResponse   = errors.New("unexpected response from clash of clans api")
)

// Member is one clan member as reported by the API
type Member struct {
	Name             string          `json:"name"`
	Tag              string          `json:"tag"`
	TownHallLevel    int             `json:"townHallLevel"`
	WarStars         int             `json:"warStars"`
	Trophies         int             `json:"trophies"`
	BestTrophies     int             `json:"bestTrophies"`
	LegendStatistics json.RawMessage `json:"legendStatistics,omitempty"`
}

// Config holds the API client settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RequestsPerSecond limits outgoing calls; 0 disables the limit
	RequestsPerSecond float64
}

// DefaultConfig returns the client defaults without an API key
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
	}
}

// Client calls the Clash of Clans API
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Client
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// NormaliseTag upper-cases a clan tag and drops everything but letters and digits,
// so "#2pp" and "2PP" name the same clan
func NormaliseTag(tag string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(tag) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClanMembers returns the members of the clan with the given tag
func (c *Client) ClanMembers(ctx context.Context, tag string) ([]Member, error) {
	clean := NormaliseTag(tag)
	if clean == "" {
		return nil, fmt.Errorf("%w: clan tag is required", model.ErrInvalidInput)
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/clans/" + url.PathEscape("#"+clean) + "/members"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clash api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("clash api call",
		slog.String("clan_tag", clean),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: #%s", model.ErrClanNotFound, clean)
	case http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Items *[]Member `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: no member list", ErrBadResponse)
	}
	return *payload.Items, nil
}
