// Package source reads input data from local files or http(s) URLs.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Fetcher loads raw bytes for a location.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a fetcher with a bounded http client.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: timeout},
	}
}

// IsRemote reports whether the location is fetched over http.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch reads the whole location. Remote requests are bound to ctx.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !IsRemote(location) {
		log.Debug().Str("path", location).Msg("Reading local source")
		return os.ReadFile(location)
	}

	log.Debug().Str("url", location).Msg("Downloading source")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s failed: status %d", location, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
