package newsapi

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
)

const maxReplySize = 5 << 20

// Client calls the NewsAPI /v2/everything endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	pageSize   int
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
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		pageSize:   pageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Everything searches all articles for query, newest first.
func (c *Client) Everything(ctx context.Context, query string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", query)
	if c.language != "" {
		params.Set("language", c.language)
	}
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var reply struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &reply) == nil {
			apiErr.Code, apiErr.Message = reply.Code, reply.Message
		}
		return nil, apiErr
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ErrInvalidReply)
	}
	return body, nil
}

// GamingNews returns the latest Ubisoft related articles.
func (c *Client) GamingNews(ctx context.Context) (json.RawMessage, error) {
	return c.Everything(ctx, UbisoftQuery)
}
