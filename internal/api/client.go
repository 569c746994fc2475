package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	apihttp "github.com/animabing/animabing/internal/api/http"
	"github.com/animabing/animabing/internal/config"
	"github.com/animabing/animabing/internal/models"
)

// searchLimit bounds a search request; search results are never paged further
const searchLimit = 100

// Client handles communication with the Animabing content API
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *apihttp.Client
	httpConfig apihttp.ClientConfig
	children   *ChildCache
	debug      bool
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if logger == nil {
		logger = slog.Default()
	}

	httpConfig := apihttp.ClientConfig{
		Timeout:           cfg.API.Timeout,
		MaxRetries:        cfg.API.MaxRetries,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		UserAgent:         cfg.API.UserAgent,
		Debug:             cfg.Advanced.Debug,
		Logger:            logger,
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: apihttp.NewClient(httpConfig),
		httpConfig: httpConfig,
		children:   NewChildCache(),
		debug:      cfg.Advanced.Debug,
		logger:     logger,
	}
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL points the client at another API root. Cached children
// belong to the old root and are dropped.
func (c *Client) SetBaseURL(baseURL string) {
	baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Lock()
	changed := c.baseURL != baseURL
	c.baseURL = baseURL
	c.mu.Unlock()

	if changed {
		c.children.Reset()
		c.logger.Info("api base url changed", "base_url", baseURL)
	}
}

// FetchListing fetches one page of the catalog together with the
// pagination block when the server sends one.
func (c *Client) FetchListing(ctx context.Context, page, pageSize int) (Listing, error) {
	params := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(pageSize),
	}

	body, err := c.get(ctx, "fetch page", "/anime", params)
	if err != nil {
		return Listing{}, err
	}

	listing := parseListing(body)
	if c.debug {
		c.logger.Debug("fetched page", "page", page, "limit", pageSize, "items", len(listing.Items))
	}
	return listing, nil
}

// FetchPage fetches one page of the catalog
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) ([]models.ContentItem, error) {
	listing, err := c.FetchListing(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return listing.Items, nil
}

// Search queries the catalog. A blank query returns ErrEmptyQuery and the
// caller is expected to page the catalog instead.
func (c *Client) Search(ctx context.Context, query string) ([]models.ContentItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := map[string]string{
		"query": query,
		"page":  "1",
		"limit": strconv.Itoa(searchLimit),
	}

	body, err := c.get(ctx, "search", "/anime/search", params)
	if err != nil {
		return nil, err
	}

	return parseListing(body).Items, nil
}

// FetchAllStrict fetches the complete catalog and reports failures
func (c *Client) FetchAllStrict(ctx context.Context) ([]models.ContentItem, error) {
	body, err := c.get(ctx, "fetch all", "/anime", nil)
	if err != nil {
		return nil, err
	}
	return parseListing(body).Items, nil
}

// FetchAll fetches the complete catalog. It never fails: errors are logged
// and an empty slice is returned.
func (c *Client) FetchAll(ctx context.Context) []models.ContentItem {
	items, err := c.FetchAllStrict(ctx)
	if err != nil {
		c.logger.Warn("failed to fetch full catalog", "error", err)
		return []models.ContentItem{}
	}
	return items
}

// FetchEpisodes fetches the episodes of an anime or movie. Any failure
// degrades to an empty list.
func (c *Client) FetchEpisodes(ctx context.Context, animeID string) []models.Episode {
	return c.fetchChildren(ctx, kindEpisodes, animeID)
}

// FetchChapters fetches the chapters of a manga. Any failure degrades to an
// empty list.
func (c *Client) FetchChapters(ctx context.Context, mangaID string) []models.Episode {
	return c.fetchChildren(ctx, kindChapters, mangaID)
}

// InvalidateChildren drops cached episode/chapter lists of a parent
func (c *Client) InvalidateChildren(parentID string) {
	c.children.Invalidate(parentID)
}

func (c *Client) fetchChildren(ctx context.Context, kind childKind, parentID string) []models.Episode {
	if cached, ok := c.children.Get(kind, parentID); ok {
		return cached
	}

	endpoint := fmt.Sprintf("/%s/%s", kind, url.PathEscape(parentID))
	body, err := c.get(ctx, "fetch "+string(kind), endpoint, nil)
	if err != nil {
		c.logger.Warn("failed to fetch child collection", "kind", kind, "parent_id", parentID, "error", err)
		return []models.Episode{}
	}

	eps := parseEpisodes(body, parentID)
	c.children.Set(kind, parentID, eps)
	return eps
}

// SubmitReport validates and posts a user report
func (c *Client) SubmitReport(ctx context.Context, report models.Report) error {
	if err := ValidateReport(report); err != nil {
		return err
	}

	resp, err := c.httpClient.Post(ctx, c.BaseURL()+"/reports", report, nil)
	if err != nil {
		return c.networkError("submit report", resp, err)
	}

	c.logger.Info("report submitted", "anime_id", report.AnimeID, "issue_type", report.IssueType)
	return nil
}

// get performs a GET request to the API and returns the raw body
func (c *Client) get(ctx context.Context, op, endpoint string, params map[string]string) ([]byte, error) {
	fullURL := c.BaseURL() + endpoint

	if len(params) > 0 {
		u, err := url.Parse(fullURL)
		if err != nil {
			return nil, &NetworkError{Op: op, Err: fmt.Errorf("invalid URL: %w", err)}
		}

		q := u.Query()
		for key, value := range params {
			q.Set(key, value)
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	start := time.Now()
	resp, err := c.httpClient.Get(ctx, fullURL, nil)
	if err != nil {
		return nil, c.networkError(op, resp, err)
	}

	if c.debug {
		c.logger.Debug("api request complete", "op", op, "url", fullURL, "elapsed", time.Since(start))
	}
	return resp.Body(), nil
}

// networkError converts a transport result into a *NetworkError, pulling
// the server's message out of the body when there is one.
func (c *Client) networkError(op string, resp *resty.Response, err error) error {
	netErr := &NetworkError{Op: op, Err: err}
	if resp != nil && resp.StatusCode() >= 400 {
		netErr.StatusCode = resp.StatusCode()
		netErr.Message = serverMessage(resp.Body())
	}
	return netErr
}

// serverMessage extracts "message" or "error" from an error body
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	if len(env.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(env.Error, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(env.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}
