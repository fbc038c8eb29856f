package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/keybinds"
)

// modalBox renders a centered bordered popup of width x height
func modalBox(f *component.Frame, area component.Rect, width, height int, content string) {
	box := component.Center(area, width, height)
	f.Render(box, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Padding(0, 1).
		Width(max(box.Width-ViewportBorderWidth, 0)).
		Height(max(box.Height-ViewportBorderWidth, 0)).
		Render(content))
}

// QuitPopup asks for confirmation before quitting when confirm_quit is set
type QuitPopup struct {
	keys    *keybinds.Registry
	confirm bool
	visible bool
}

// NewQuitPopup creates a hidden quit popup
func NewQuitPopup(keys *keybinds.Registry) *QuitPopup {
	return &QuitPopup{keys: keys, confirm: true}
}

func (p *QuitPopup) RegisterConfig(cfg *config.Config) error {
	p.confirm = cfg.ConfirmQuit
	return nil
}

// Visible reports whether the popup is shown
func (p *QuitPopup) Visible() bool {
	return p.visible
}

func (p *QuitPopup) CapturesInput() bool {
	return p.visible
}

func (p *QuitPopup) Update(a action.Action) action.Action {
	if _, ok := a.(action.ConfirmQuit); ok {
		if !p.confirm {
			return action.Quit{}
		}
		p.visible = true
	}
	return nil
}

func (p *QuitPopup) HandleKey(key component.Key) action.Action {
	if !p.visible {
		return nil
	}
	act, ok := p.keys.Match(keybinds.ContextConfirm, key.String())
	if !ok {
		return nil
	}
	switch act {
	case keybinds.ActionConfirm:
		p.visible = false
		return action.Quit{}
	case keybinds.ActionCancel:
		p.visible = false
	}
	return nil
}

func (p *QuitPopup) Draw(f *component.Frame, area component.Rect) error {
	if !p.visible {
		return nil
	}
	content := styleTitle.Render("Quit nuuslees?") + "\n\n" + styleSubtle.Render("y: quit   n: stay")
	modalBox(f, area, QuitPopupWidth, QuitPopupHeight+2, content)
	return nil
}

// HelpPopup lists the key bindings
type HelpPopup struct {
	keys    *keybinds.Registry
	visible bool
}

// NewHelpPopup creates a hidden help popup
func NewHelpPopup(keys *keybinds.Registry) *HelpPopup {
	return &HelpPopup{keys: keys}
}

func (p *HelpPopup) CapturesInput() bool {
	return p.visible
}

// Visible reports whether the popup is shown
func (p *HelpPopup) Visible() bool {
	return p.visible
}

func (p *HelpPopup) Update(a action.Action) action.Action {
	if _, ok := a.(action.Help); ok {
		p.visible = true
	}
	return nil
}

func (p *HelpPopup) HandleKey(key component.Key) action.Action {
	if !p.visible {
		return nil
	}
	if act, ok := p.keys.Match(keybinds.ContextHelp, key.String()); ok && act == keybinds.ActionCloseModal {
		p.visible = false
	}
	return nil
}

var helpSections = []struct {
	title   string
	context keybinds.Context
}{
	{"Global", keybinds.ContextGlobal},
	{"Tabs", keybinds.ContextTabs},
	{"Lists", keybinds.ContextList},
	{"Reader", keybinds.ContextReader},
}

// Lines returns the help text, one binding per line
func (p *HelpPopup) Lines() []string {
	var lines []string
	for _, section := range helpSections {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styleTitle.Render(section.title))

		seen := make(map[keybinds.Action]bool)
		for _, b := range p.keys.ListBindings(section.context) {
			if b.Context != section.context || seen[b.Action] || b.Action == keybinds.ActionGoToTopPrepare {
				continue
			}
			seen[b.Action] = true
			keys := p.keys.GetBindingString(section.context, b.Action)
			lines = append(lines, fmt.Sprintf("  %-18s %s", keys, strings.ReplaceAll(string(b.Action), "_", " ")))
		}
	}
	return lines
}

func (p *HelpPopup) Draw(f *component.Frame, area component.Rect) error {
	if !p.visible {
		return nil
	}
	lines := p.Lines()
	modalBox(f, area, HelpPopupWidth, len(lines)+ViewportBorderWidth, strings.Join(lines, "\n"))
	return nil
}
