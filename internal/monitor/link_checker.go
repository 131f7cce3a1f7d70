package monitor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// linkLister is the slice of the URL repository the checker needs.
type linkLister interface {
	ListAll(ctx context.Context) ([]models.ShortURL, error)
}

// Result is the reachability of one stored target URL.
type Result struct {
	ShortCode  string
	URL        string
	Accessible bool
	Err        error
}

// LinkChecker performs a single pass of HTTP HEAD requests over every stored
// target URL. It runs on demand from the CLI, never in the background.
type LinkChecker struct {
	links       linkLister
	httpClient  *http.Client
	timeout     time.Duration
	concurrency int
}

// NewLinkChecker creates a LinkChecker. timeout bounds each request.
func NewLinkChecker(links linkLister, timeout time.Duration) *LinkChecker {
	return &LinkChecker{
		links:       links,
		httpClient:  &http.Client{Timeout: timeout},
		timeout:     timeout,
		concurrency: 8,
	}
}

// CheckAll checks every link and returns one Result per link in store order.
func (c *LinkChecker) CheckAll(ctx context.Context) ([]Result, error) {
	links, err := c.links.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve links for monitoring: %w", err)
	}

	results := make([]Result, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, link := range links {
		g.Go(func() error {
			err := c.check(gctx, link.URL)
			results[i] = Result{
				ShortCode:  link.ShortCode,
				URL:        link.URL,
				Accessible: err == nil,
				Err:        err,
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		log.Printf("[MONITOR] Link %s (%s): %s", r.ShortCode, r.URL, formatState(r.Accessible))
	}
	return results, nil
}

// check considers a URL accessible if it answers HEAD with 2xx or 3xx.
func (c *LinkChecker) check(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return customerrors.ErrURLCheckFailed{URL: url, Reason: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return customerrors.ErrURLCheckFailed{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return customerrors.ErrURLCheckFailed{URL: url, Reason: resp.Status}
	}
	return nil
}

// formatState makes the state more readable in logs.
func formatState(accessible bool) string {
	if accessible {
		return "ACCESSIBLE"
	}
	return "INACCESSIBLE"
}
