package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scripture-tui/internal/schema"
)

const defaultTimeout = 15 * time.Second

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: API returned status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: API returned status %d: %s", e.Endpoint, e.Code, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a client for the API rooted at baseURL. Endpoints are
// resolved under "<baseURL>/api/".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog is what the reader needs before it can show anything.
type Catalog struct {
	Versions []schema.Version
	Books    []schema.Book
}

func (c *Client) Versions(ctx context.Context) ([]schema.Version, error) {
	return get[[]schema.Version](ctx, c, "versions", nil)
}

func (c *Client) Books(ctx context.Context, versionID int) ([]schema.Book, error) {
	q := url.Values{}
	q.Set("version_id", strconv.Itoa(versionID))
	return get[[]schema.Book](ctx, c, "books", q)
}

// Chapters lists the chapters of book in the given version.
func (c *Client) Chapters(ctx context.Context, book string, versionID int) ([]schema.ChapterSummary, error) {
	q := url.Values{}
	q.Set("version_id", strconv.Itoa(versionID))
	return get[[]schema.ChapterSummary](ctx, c, fmt.Sprintf("books/%s/chapters", url.PathEscape(book)), q)
}

// Chapter fetches the text of one chapter.
func (c *Client) Chapter(ctx context.Context, versionID int, book string, chapter int) (schema.Chapter, error) {
	path := fmt.Sprintf("versions/%d/books/%s/chapters/%d", versionID, url.PathEscape(book), chapter)
	return get[schema.Chapter](ctx, c, path, nil)
}

// Bootstrap fetches the version list and the book list of versionID
// concurrently.
func (c *Client) Bootstrap(ctx context.Context, versionID int) (Catalog, error) {
	var cat Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		versions, err := c.Versions(ctx)
		if err != nil {
			return err
		}
		cat.Versions = versions
		return nil
	})
	g.Go(func() error {
		books, err := c.Books(ctx, versionID)
		if err != nil {
			return err
		}
		cat.Books = books
		return nil
	})

	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	endpoint := c.baseURL + "/api/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
		return zero, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return zero, &StatusError{Endpoint: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	out, err := schema.Decode[T](resp.Body)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
