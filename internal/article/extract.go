package article

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const userAgent = "Mozilla/5.0 (compatible; nuuslees/1.0)"

// Extractor downloads a web page and reduces it to its readable article HTML
type Extractor struct {
	client *http.Client
	policy *bluemonday.Policy
}

// NewExtractor creates an extractor whose downloads give up after timeout
func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		policy: bluemonday.UGCPolicy(),
	}
}

// Extract returns the sanitized main content of the page at rawURL
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return "", apperr.Errorf(apperr.KindFormat, "invalid article url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", apperr.Wrapf(apperr.KindNetwork, err, "failed to create request for %s", rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", apperr.Wrapf(apperr.KindNetwork, err, "failed to fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", apperr.Errorf(apperr.KindNetwork, "failed to fetch %s: %s", rawURL, resp.Status)
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", apperr.Wrapf(apperr.KindFormat, err, "failed to extract article from %s", rawURL)
	}

	content := strings.TrimSpace(e.policy.Sanitize(parsed.Content))
	if content == "" {
		return "", apperr.Errorf(apperr.KindFormat, "no readable content at %s", rawURL)
	}
	return content, nil
}
