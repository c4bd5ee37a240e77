// Package cacheio pokes the web application's cache-reset endpoint after
// taxonomy uploads so stale OTU listings disappear right away.
package cacheio

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/springsdata/springsync/internal/ent/recon"
)

type cacheio struct {
	url    string
	client *http.Client
}

// New returns a new instance of CacheInvalidator.
func New(url string) recon.CacheInvalidator {
	return &cacheio{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Invalidate issues the reset request. A non-2xx status is an error, the
// caller decides whether it is worth more than a warning.
func (c *cacheio) Invalidate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("cache reset returned %s", resp.Status)
	}
	return nil
}
