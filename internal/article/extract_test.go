package article

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>A long read</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>A long read</h1>
<p>%[1]s</p>
<p>%[1]s</p>
<p>%[1]s</p>
</article>
<footer>Copyright</footer>
</body></html>`

var sentence = strings.Repeat("The quick brown fox jumps over the lazy dog, again and again, while the reader keeps reading. ", 6)

func TestExtract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/post", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, articlePage, sentence)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := NewExtractor(5 * time.Second)
	ctx := context.Background()

	content, err := e.Extract(ctx, srv.URL+"/post")
	require.NoError(t, err)
	assert.Contains(t, content, "quick brown fox")
	assert.NotContains(t, content, "<script")

	_, err = e.Extract(ctx, srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))

	_, err = e.Extract(ctx, "not a url")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindFormat))
}

func TestExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewExtractor(time.Second).Extract(context.Background(), url+"/gone")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
}
