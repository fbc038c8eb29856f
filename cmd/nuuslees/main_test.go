package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/storage"
)

const testFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example</title><link>https://example.com</link><description>news</description>
<item><title>Hello</title><link>https://example.com/hello</link><guid>hello</guid></item>
</channel></rss>`

func TestRunSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	flagDatabase = filepath.Join(t.TempDir(), "test.db")
	defer func() { flagDatabase = "" }()

	cfg := config.Default()
	cfg.Groups = []config.Group{{Name: "Tech", Feeds: []config.Feed{
		{Link: srv.URL + "/rss"},
		{Link: srv.URL + "/broken"},
	}}}

	var out bytes.Buffer
	require.NoError(t, runSync(context.Background(), &out, cfg))
	assert.Contains(t, out.String(), "Synced")
	assert.Contains(t, out.String(), "1 entries skipped")

	store, err := storage.Open(flagDatabase)
	require.NoError(t, err)
	defer store.Close()

	items, err := store.AllFeedItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hello", items[0].Title)
}

func TestPick(t *testing.T) {
	assert.Equal(t, "a", pick("a", "b"))
	assert.Equal(t, "b", pick("", "b"))
}
