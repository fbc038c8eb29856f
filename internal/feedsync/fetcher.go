package feedsync

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const userAgent = "nuuslees/1.0 (+https://github.com/studiowebux/nuuslees)"

// Fetcher retrieves and parses one remote feed
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// HTTPFetcher downloads a feed over HTTP and parses it with gofeed
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests give up after timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch reports transport failures and HTTP error statuses as network errors
// and unparseable documents as format errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrapf(apperr.KindNetwork, err, "failed to create request for %s", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperr.Wrapf(apperr.KindNetwork, err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apperr.Errorf(apperr.KindNetwork, "failed to fetch %s: %s", url, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, apperr.Wrapf(apperr.KindFormat, err, "failed to parse %s", url)
	}
	return feed, nil
}
