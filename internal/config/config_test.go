package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("groups: []\n"))
	require.NoError(t, err)

	assert.True(t, cfg.ConfirmQuit)
	assert.True(t, cfg.SyncOnStart)
	assert.False(t, cfg.CheckUpdates)
	assert.Equal(t, 4.0, cfg.TickRate)
	assert.Equal(t, 30.0, cfg.FrameRate)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Empty(t, cfg.Groups)
}

func TestParse_Groups(t *testing.T) {
	doc := `
confirm_quit: false
fetch_timeout: 5s
groups:
  - name: Tech
    desc: Technology
    feeds:
      - link: https://example.com/rss
        name: Example
      - link: https://example.org/atom
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.False(t, cfg.ConfirmQuit)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "Tech", cfg.Groups[0].Name)
	require.Len(t, cfg.Groups[0].Feeds, 2)
	require.NotNil(t, cfg.Groups[0].Feeds[0].Name)
	assert.Equal(t, "Example", *cfg.Groups[0].Feeds[0].Name)
	assert.Nil(t, cfg.Groups[0].Feeds[1].Name)
	assert.Nil(t, cfg.Groups[0].Feeds[1].Desc)
	assert.Equal(t, 2, cfg.FeedCount())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "groups: [\n"},
		{"missing group name", "groups:\n  - feeds: []\n"},
		{"duplicate group", "groups:\n  - name: A\n  - name: A\n"},
		{"missing link", "groups:\n  - name: A\n    feeds:\n      - name: x\n"},
		{"relative link", "groups:\n  - name: A\n    feeds:\n      - link: /rss\n"},
		{"zero tick rate", "tick_rate: 0\n"},
		{"zero concurrency", "fetch_concurrency: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindConfig), "expected config error, got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConfig))
}

func TestInitialize_WritesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Initialize())
	assert.Equal(t, filepath.Join(home, ".nuuslees", "config.yaml"), ConfigFile)

	data, err := os.ReadFile(ConfigFile)
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, cfg.ConfirmQuit)

	// an existing file is left alone
	require.NoError(t, os.WriteFile(ConfigFile, []byte("confirm_quit: false\n"), FilePermissions))
	require.NoError(t, Initialize())
	cfg, err = Load(ConfigFile)
	require.NoError(t, err)
	assert.False(t, cfg.ConfirmQuit)
}
