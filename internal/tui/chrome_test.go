package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
)

func TestQuitPopup_WithoutConfirmation(t *testing.T) {
	p := NewQuitPopup(keybinds.NewDefaultRegistry())
	require.NoError(t, p.RegisterConfig(&config.Config{ConfirmQuit: false}))

	assert.Equal(t, action.Quit{}, p.Update(action.ConfirmQuit{}))
	assert.False(t, p.Visible())
}

func TestQuitPopup_Confirmation(t *testing.T) {
	p := NewQuitPopup(keybinds.NewDefaultRegistry())
	require.NoError(t, p.RegisterConfig(&config.Config{ConfirmQuit: true}))

	assert.Nil(t, p.Update(action.ConfirmQuit{}))
	require.True(t, p.CapturesInput())

	assert.Nil(t, press(p, "n"))
	assert.False(t, p.Visible())

	p.Update(action.ConfirmQuit{})
	assert.Nil(t, press(p, "j"))
	assert.True(t, p.Visible())
	assert.Equal(t, action.Quit{}, press(p, "y"))
	assert.False(t, p.CapturesInput())
}

func TestHelpPopup(t *testing.T) {
	p := NewHelpPopup(keybinds.NewDefaultRegistry())
	assert.Nil(t, press(p, "esc"))

	p.Update(action.Help{})
	require.True(t, p.Visible())

	text := strings.Join(p.Lines(), "\n")
	assert.Contains(t, text, "next tab")
	assert.Contains(t, text, "copy link")
	assert.NotContains(t, text, "go to top prepare")

	f := component.NewFrame(80, 50)
	require.NoError(t, p.Draw(f, f.Area()))
	assert.Contains(t, f.String(), "quit")

	press(p, "?")
	assert.False(t, p.Visible())
}

func TestInfoBar_MessageExpires(t *testing.T) {
	b := NewInfoBar("1.0.0")
	require.NoError(t, b.RegisterConfig(&config.Config{TickRate: 1}))

	b.Update(action.Error{Message: "storage error: locked\nmore"})
	msg, isErr := b.Message()
	assert.Equal(t, "storage error: locked", msg)
	assert.True(t, isErr)

	for range MessageSeconds - 1 {
		b.Update(action.Tick{})
	}
	msg, _ = b.Message()
	assert.NotEmpty(t, msg)

	b.Update(action.Tick{})
	msg, _ = b.Message()
	assert.Empty(t, msg)
}

func TestInfoBar_Draw(t *testing.T) {
	b := NewInfoBar("1.0.0")
	b.Update(action.ModeChange{Mode: mode.Mode{Kind: mode.FeedList}})
	b.Update(action.Refresh{Failed: 2})

	f := component.NewFrame(100, 1)
	require.NoError(t, b.Draw(f, f.Area()))
	line := f.Line(0)
	assert.Contains(t, line, "Nuuslees 1.0.0")
	assert.Contains(t, line, "Feeds")
	assert.Contains(t, line, "2 entries skipped")
}
