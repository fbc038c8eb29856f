// Package version compares the running build with the latest published release.
package version

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const (
	// ReleasesURL is the GitHub API endpoint of the latest release
	ReleasesURL  = "https://api.github.com/repos/studiowebux/nuuslees/releases/latest"
	checkTimeout = 5 * time.Second
)

type gitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Release is the outcome of an update check
type Release struct {
	Latest    string
	URL       string
	Available bool
}

// Checker queries the releases endpoint
type Checker struct {
	url    string
	client *http.Client
}

// NewChecker creates a checker for the releases endpoint at url
func NewChecker(url string) *Checker {
	return &Checker{url: url, client: &http.Client{Timeout: checkTimeout}}
}

// Check reports whether a release newer than current is published
func (c *Checker) Check(ctx context.Context, current string) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Release{}, apperr.Wrap(apperr.KindNetwork, err, "failed to create request")
	}
	req.Header.Set("User-Agent", "nuuslees/"+current)

	resp, err := c.client.Do(req)
	if err != nil {
		return Release{}, apperr.Wrap(apperr.KindNetwork, err, "failed to fetch latest release")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, apperr.Errorf(apperr.KindNetwork, "unexpected status code: %d", resp.StatusCode)
	}

	var release gitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Release{}, apperr.Wrap(apperr.KindFormat, err, "failed to decode release")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	return Release{
		Latest:    latest,
		URL:       release.HTMLURL,
		Available: latest != "" && isNewerVersion(latest, strings.TrimPrefix(current, "v")),
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
