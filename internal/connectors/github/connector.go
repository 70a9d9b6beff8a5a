// Package github fetches blog posts from a GitHub repository's posts
// directory, rate limited against the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
	"github.com/custodia-labs/blograg/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.PostSource = (*Connector)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultPostsPath is the Jekyll posts directory.
const DefaultPostsPath = "_posts"

// Config holds the source repository coordinates.
type Config struct {
	// Owner is the repository owner.
	Owner string

	// Repo is the repository name.
	Repo string

	// PostsPath is the directory holding posts (default: _posts).
	PostsPath string

	// Token is an optional access token. Public repositories work without
	// one, at a lower rate limit.
	Token string
}

// Connector lists and downloads posts from a GitHub repository.
type Connector struct {
	cfg     Config
	gh      *gh.Client
	http    *http.Client
	limiter *RateLimiter
}

// New creates a connector for the configured repository.
func New(ctx context.Context, cfg Config) *Connector {
	if cfg.PostsPath == "" {
		cfg.PostsPath = DefaultPostsPath
	}

	hc := &http.Client{Timeout: DefaultTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	}

	return &Connector{
		cfg:     cfg,
		gh:      gh.NewClient(hc),
		http:    hc,
		limiter: NewRateLimiter(),
	}
}

// NewWithClients creates a connector with custom clients. Useful for
// tests pointing at a local server.
func NewWithClients(cfg Config, ghClient *gh.Client, httpClient *http.Client) *Connector {
	if cfg.PostsPath == "" {
		cfg.PostsPath = DefaultPostsPath
	}
	return &Connector{
		cfg:     cfg,
		gh:      ghClient,
		http:    httpClient,
		limiter: NewRateLimiter(),
	}
}

// RateLimiter returns the connector's rate limiter.
func (c *Connector) RateLimiter() *RateLimiter {
	return c.limiter
}

// ListPosts returns the dated post entries in the posts directory,
// newest first. Entries not matching the dated-filename pattern are
// silently excluded. A non-success listing response is fatal.
func (c *Connector) ListPosts(ctx context.Context) ([]domain.PostEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	_, dir, resp, err := c.gh.Repositories.GetContents(
		ctx, c.cfg.Owner, c.cfg.Repo, c.cfg.PostsPath, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, c.wrapError(err, "list contents"))
	}
	c.updateRateLimitFromResponse(resp)

	entries := make([]domain.PostEntry, 0, len(dir))
	for _, item := range dir {
		if item.GetType() != "file" {
			continue
		}
		date, ok := PostDate(item.GetName())
		if !ok {
			logger.Debug("Skipping non-post file: %s", item.GetName())
			continue
		}
		entries = append(entries, domain.PostEntry{
			Name:        item.GetName(),
			SHA:         item.GetSHA(),
			Date:        date,
			DownloadURL: item.GetDownloadURL(),
			HTMLURL:     item.GetHTMLURL(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].Name > entries[j].Name
	})

	logger.Info("Listed %d post files in %s/%s/%s", len(entries), c.cfg.Owner, c.cfg.Repo, c.cfg.PostsPath)
	return entries, nil
}

// Download fetches the raw content for one entry through the rate
// limiter. Any non-success response is fatal for the whole run.
func (c *Connector) Download(ctx context.Context, entry domain.PostEntry) (*domain.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.DownloadURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %w", domain.ErrFetch, entry.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrFetch, entry.Name, err)
	}
	c.limiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			URL:        entry.DownloadURL,
		})
	}

	return &domain.Document{
		ID:        entry.SHA,
		Name:      entry.Name,
		RawText:   string(body),
		SourceURL: entry.HTMLURL,
	}, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Connector) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Connector) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.limiter.ResetTime(),
			Remaining: c.limiter.Remaining(),
			Limit:     c.limiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
