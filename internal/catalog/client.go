package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"mediaresolve/internal/upstream"
)

// Media type values used across the engine. They mirror the catalog's own
// media_type discriminator.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	retryAttempts      = 3
	retryBaseDelay     = 250 * time.Millisecond
)

// API defines the catalog operations the resolution pipeline consumes.
type API interface {
	SearchMovie(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
	SearchTV(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
	SearchMulti(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
	Details(ctx context.Context, id int64, mediaType string) (*Details, error)
	Credits(ctx context.Context, id int64, mediaType string) (*Credits, error)
	Images(ctx context.Context, id int64, mediaType string) (*ImageSet, error)
}

// SearchOptions contains optional search filters.
type SearchOptions struct {
	Year int
}

// Client provides access to the catalog API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a catalog client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("catalog api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie performs a movie text search with optional filters.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}
	return c.search(ctx, "/search/movie", query, params)
}

// SearchTV performs a TV text search with optional filters.
func (c *Client) SearchTV(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}
	return c.search(ctx, "/search/tv", query, params)
}

// SearchMulti performs a mixed movie/TV search.
func (c *Client) SearchMulti(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}
	return c.search(ctx, "/search/multi", query, params)
}

func (c *Client) search(ctx context.Context, path, query string, params url.Values) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params.Set("query", query)

	var payload SearchResponse
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, err
	}

	// TV search results omit media_type; stamp it so downstream code can
	// treat every candidate uniformly.
	if path == "/search/tv" {
		for i := range payload.Results {
			if payload.Results[i].MediaType == "" {
				payload.Results[i].MediaType = MediaTypeTV
			}
		}
	}
	if path == "/search/movie" {
		for i := range payload.Results {
			if payload.Results[i].MediaType == "" {
				payload.Results[i].MediaType = MediaTypeMovie
			}
		}
	}
	return &payload, nil
}

// Details fetches the full record for an entity.
func (c *Client) Details(ctx context.Context, id int64, mediaType string) (*Details, error) {
	path, err := entityPath(id, mediaType, "")
	if err != nil {
		return nil, err
	}
	var payload Details
	if err := c.getJSON(ctx, path, url.Values{}, &payload); err != nil {
		return nil, err
	}
	if payload.MediaType == "" {
		payload.MediaType = mediaType
	}
	return &payload, nil
}

// Credits fetches the credited cast and crew for an entity.
func (c *Client) Credits(ctx context.Context, id int64, mediaType string) (*Credits, error) {
	path, err := entityPath(id, mediaType, "credits")
	if err != nil {
		return nil, err
	}
	var payload Credits
	if err := c.getJSON(ctx, path, url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Images fetches the backdrop and poster lists for an entity.
func (c *Client) Images(ctx context.Context, id int64, mediaType string) (*ImageSet, error) {
	path, err := entityPath(id, mediaType, "images")
	if err != nil {
		return nil, err
	}
	// Without this parameter the catalog filters images to the configured
	// locale only; the selector needs target-language and neutral images.
	params := url.Values{}
	params.Set("include_image_language", c.imageLanguageFilter())
	var payload ImageSet
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// imageLanguageFilter narrows the image lists to the configured language's
// base code plus untagged images, so the selector sees both buckets.
func (c *Client) imageLanguageFilter() string {
	base := c.language
	if idx := strings.IndexByte(base, '-'); idx > 0 {
		base = base[:idx]
	}
	if base == "" {
		base = "en"
	}
	return base + ",null"
}

func entityPath(id int64, mediaType, suffix string) (string, error) {
	if id <= 0 {
		return "", errors.New("entity id required")
	}
	switch mediaType {
	case MediaTypeMovie, MediaTypeTV:
	default:
		return "", fmt.Errorf("unsupported media type %q", mediaType)
	}
	path := "/" + mediaType + "/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		path += "/" + suffix
	}
	return path, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse catalog url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.fetch(ctx, endpoint.String())
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return upstream.Wrap(upstream.ErrMalformed, "decode catalog response", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUnavailable, "catalog request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := upstream.Wrap(upstream.ErrUnavailable, fmt.Sprintf("catalog returned %d", resp.StatusCode), nil)
		if retriableStatus(resp.StatusCode) {
			return nil, err
		}
		return nil, retry.Unrecoverable(err)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUnavailable, "read catalog response", err)
	}
	return buf, nil
}

func retriableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// isTransient gates retries. RetryIf replaces the library's recoverability
// default, so Unrecoverable markers must be honored here as well.
func isTransient(err error) bool {
	return retry.IsRecoverable(err) && errors.Is(err, upstream.ErrUnavailable)
}
