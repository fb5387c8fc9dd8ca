package cheapshark

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

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const maxReplySize = 5 << 20

// Client calls the CheapShark deals endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      *lru.LRU[string, json.RawMessage]
}

type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func NewClient(cfg Config, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
	}
	if cfg.CacheTTL > 0 {
		c.cache = lru.NewLRU[string, json.RawMessage](64, nil, cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deals returns the current deals of a store exactly as CheapShark sent them.
func (c *Client) Deals(ctx context.Context, storeID int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("storeID", strconv.Itoa(storeID))
	endpoint := c.baseURL + "/api/1.0/deals?" + params.Encode()

	if c.cache != nil {
		if body, ok := c.cache.Get(endpoint); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cheapshark: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ErrInvalidReply)
	}

	if c.cache != nil {
		c.cache.Add(endpoint, body)
	}
	return body, nil
}

// UbisoftDeals is Deals for the Ubisoft Store.
func (c *Client) UbisoftDeals(ctx context.Context) (json.RawMessage, error) {
	return c.Deals(ctx, UbisoftStoreID)
}
