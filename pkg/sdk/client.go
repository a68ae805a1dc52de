// Package sdk is a Go client for the listdex HTTP API.
package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "http://localhost:8080"

// Client is the listdex SDK entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a listdex Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	baseURL := strings.TrimRight(cfg.baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("listdex: invalid base url: %w", err)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.apiKey,
		httpClient: cfg.httpClient,
	}, nil
}

// Search runs a federated search.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, errors.New("listdex: query is required")
	}

	q := url.Values{}
	q.Set("q", params.Query)
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	addPaging(q, params.Page, params.PageSize)

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Feed fetches one page of the merged browse feed.
func (c *Client) Feed(ctx context.Context, page, pageSize int) (*FeedResponse, error) {
	q := url.Values{}
	addPaging(q, page, pageSize)

	var resp FeedResponse
	if err := c.get(ctx, "/api/v1/listings", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Similar fetches listings related to one item.
func (c *Client) Similar(ctx context.Context, params SimilarParams) (*FeedResponse, error) {
	if params.Type == "" {
		return nil, errors.New("listdex: type is required")
	}

	q := url.Values{}
	q.Set("type", params.Type)
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.College != "" {
		q.Set("college", params.College)
	}
	if params.ExcludeID != "" {
		q.Set("exclude", params.ExcludeID)
	}
	addPaging(q, params.Page, params.PageSize)

	var resp FeedResponse
	if err := c.get(ctx, "/api/v1/listings/similar", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks service health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func addPaging(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("listdex: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("listdex: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("listdex: decode response: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
