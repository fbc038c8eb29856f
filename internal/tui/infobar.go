package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/mode"
)

// InfoBar is the bottom line: version, mode and the latest message
type InfoBar struct {
	version   string
	mode      mode.Mode
	message   string
	isError   bool
	ticksLeft int
	expire    int
}

// NewInfoBar creates the info bar for version
func NewInfoBar(version string) *InfoBar {
	return &InfoBar{version: version, expire: MessageSeconds * 4}
}

func (b *InfoBar) RegisterConfig(cfg *config.Config) error {
	b.expire = max(int(cfg.TickRate*MessageSeconds), 1)
	return nil
}

// Message returns the visible message and whether it is an error
func (b *InfoBar) Message() (string, bool) {
	return b.message, b.isError
}

func (b *InfoBar) setMessage(msg string, isError bool) {
	if len(msg) > StatusMessageMaxLength {
		msg = msg[:StatusMessageMaxLength-3] + "..."
	}
	b.message = msg
	b.isError = isError
	b.ticksLeft = b.expire
}

func (b *InfoBar) Update(a action.Action) action.Action {
	switch a := a.(type) {
	case action.ModeChange:
		b.mode = a.Mode
	case action.Error:
		b.setMessage(firstLine(a.Message), true)
	case action.Status:
		b.setMessage(a.Message, false)
	case action.RequestRefresh:
		b.setMessage("Syncing feeds…", false)
	case action.Refresh:
		if a.Failed > 0 {
			b.setMessage(fmt.Sprintf("Sync finished, %d entries skipped (see log)", a.Failed), true)
		}
	case action.Tick:
		if b.ticksLeft > 0 {
			b.ticksLeft--
			if b.ticksLeft == 0 {
				b.message = ""
				b.isError = false
			}
		}
	}
	return nil
}

func (b *InfoBar) Draw(f *component.Frame, area component.Rect) error {
	if area.Empty() {
		return nil
	}

	left := styleTitle.Render("Nuuslees "+b.version) + styleSubtle.Render(" │ ")
	if b.mode.Kind == mode.Refreshing {
		left += styleWarning.Render(b.mode.String())
	} else {
		left += b.mode.String()
	}

	right := b.message
	switch {
	case right == "":
		right = styleSubtle.Render("? help  q quit")
	case b.isError:
		right = styleError.Render(right)
	default:
		right = styleSuccess.Render(right)
	}

	room := area.Width - lipgloss.Width(left) - 1
	right = truncate(right, max(room, 0))
	gap := max(area.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	f.Render(area, left+padRight("", gap)+right)
	return nil
}
