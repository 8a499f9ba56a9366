// Package rcsb downloads structure entries from the RCSB file service.
package rcsb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultBaseURL = "https://files.rcsb.org/download"

// DefaultCacheTTL is how long a downloaded entry stays fresh on disk.
// Released PDB entries change rarely; a month mirrors how long the
// upstream recommends caching.
const DefaultCacheTTL = 30 * 24 * time.Hour

var idPattern = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// Client fetches CIF entries by PDB ID, caching them on disk.
type Client struct {
	BaseURL    string
	CacheDir   string
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// New creates a Client caching downloads under cacheDir.
func New(cacheDir string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		CacheDir:   cacheDir,
		CacheTTL:   DefaultCacheTTL,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// ValidateID checks that id looks like a PDB identifier (e.g. "7R6R").
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid PDB ID %q: expected four characters like 7R6R", id)
	}
	return nil
}

// Fetch returns the CIF contents for the given PDB ID, from cache when
// fresh, otherwise from the RCSB download service.
func (c *Client) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	id = strings.ToUpper(id)

	cachePath := filepath.Join(c.CacheDir, id+".cif")
	if data, ok := c.fromCache(cachePath); ok {
		return data, nil
	}

	body, _, err := c.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", id, err)
	}

	c.toCache(cachePath, data)
	return data, nil
}

// Open starts a download for the given PDB ID and returns the body
// stream plus the reported content length (-1 when unknown). The caller
// owns the stream; Open never consults or fills the cache.
func (c *Client) Open(ctx context.Context, id string) (io.ReadCloser, int64, error) {
	if err := ValidateID(id); err != nil {
		return nil, 0, err
	}
	id = strings.ToUpper(id)

	url := fmt.Sprintf("%s/%s.cif", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request for %s: %w", id, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("downloading %s: %w", id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("entry %s not found at RCSB", id)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("downloading %s: unexpected status %s", id, resp.Status)
	}

	return resp.Body, resp.ContentLength, nil
}

// fromCache returns cached bytes when the file exists and is fresh.
func (c *Client) fromCache(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.CacheTTL > 0 && time.Since(info.ModTime()) > c.CacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// toCache writes bytes to the cache, ignoring failures: the cache is an
// optimization, not a requirement.
func (c *Client) toCache(path string, data []byte) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}
