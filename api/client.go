package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client is the thin HTTP binding shared by every resource service.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

// NewClient parses baseURL and binds the services to httpClient. baseURL
// must carry a scheme and host; a trailing slash is optional.
func NewClient(baseURL string, httpClient *http.Client, userAgent string) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("api: nil http client")
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: base url %q needs scheme and host", baseURL)
	}
	return &Client{
		base:      parsed,
		http:      httpClient,
		userAgent: userAgent,
	}, nil
}

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListParams are the query parameters every list endpoint understands.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	return v
}

func merge(base url.Values, extra url.Values) url.Values {
	for key, vals := range extra {
		for _, val := range vals {
			base.Add(key, val)
		}
	}
	return base
}

// do performs one exchange. in is JSON-encoded when non-nil; out is
// JSON-decoded when non-nil and the response has a body. Error responses
// decode into *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := *c.base
	target.Path = strings.TrimSuffix(target.Path, "/") + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// crud binds the five standard operations of one resource path.
type crud[T any, In any] struct {
	c    *Client
	path string
}

func (r crud[T, In]) list(ctx context.Context, params ListParams, extra url.Values) (*Page[T], error) {
	var page Page[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, merge(params.values(), extra), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// List fetches one page of the collection.
func (r crud[T, In]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	return r.list(ctx, params, nil)
}

// Get fetches a single record by id.
func (r crud[T, In]) Get(ctx context.Context, id int) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.path+strconv.Itoa(id)+"/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new record and returns the stored representation.
func (r crud[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a record by id.
func (r crud[T, In]) Update(ctx context.Context, id int, in In) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.path+strconv.Itoa(id)+"/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a record by id.
func (r crud[T, In]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, http.MethodDelete, r.path+strconv.Itoa(id)+"/", nil, nil, nil)
}
