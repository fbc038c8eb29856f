package tui

import (
	"strings"

	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/keybinds"
)

// listState is the cursor and scroll offset of a list
type listState struct {
	index  int
	offset int
	page   int
}

func (l *listState) clamp(n int) {
	if n == 0 {
		l.index, l.offset = 0, 0
		return
	}
	l.index = min(max(l.index, 0), n-1)
}

// move steps the cursor by delta, wrapping at both ends
func (l *listState) move(delta, n int) {
	if n == 0 {
		return
	}
	l.index = ((l.index+delta)%n + n) % n
}

// jump moves the cursor by delta without wrapping
func (l *listState) jump(delta, n int) {
	if n == 0 {
		return
	}
	l.index = min(max(l.index+delta, 0), n-1)
}

// apply performs a navigation action and reports whether it was one
func (l *listState) apply(act keybinds.Action, n int) bool {
	page := max(l.page, 1)
	switch act {
	case keybinds.ActionNavigateUp:
		l.move(-1, n)
	case keybinds.ActionNavigateDown:
		l.move(1, n)
	case keybinds.ActionPageUp:
		l.jump(-page, n)
	case keybinds.ActionPageDown:
		l.jump(page, n)
	case keybinds.ActionGoToTop:
		l.index = 0
	case keybinds.ActionGoToBottom:
		l.index = max(n-1, 0)
	default:
		return false
	}
	return true
}

// scroll handles the mouse wheel
func (l *listState) scroll(m component.Mouse, n int) bool {
	switch m.Kind {
	case component.MouseWheelUp:
		l.jump(-1, n)
	case component.MouseWheelDown:
		l.jump(1, n)
	default:
		return false
	}
	return true
}

// window returns the visible range for height rows, scrolling to keep the
// cursor in view
func (l *listState) window(height, n int) (start, end int) {
	l.page = height
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if l.index < l.offset {
		l.offset = l.index
	}
	if l.index >= l.offset+height {
		l.offset = l.index - height + 1
	}
	l.offset = min(l.offset, max(n-height, 0))
	return l.offset, min(n, l.offset+height)
}

type listEntry struct {
	title  string
	detail string
	dim    bool
}

// renderList draws a titled, bordered list filling width x height cells
func renderList(title string, entries []listEntry, state *listState, width, height int, focused bool) string {
	innerWidth := width - ViewportBorderWidth
	innerHeight := height - ViewportBorderWidth

	rows := []string{styleTitle.Render(truncate(title, innerWidth))}
	start, end := state.window(innerHeight-1, len(entries))
	for i := start; i < end; i++ {
		e := entries[i]
		plain := e.title
		if e.detail != "" {
			plain += "  " + e.detail
		}

		switch {
		case i == state.index:
			rows = append(rows, styleSelected.Render(padRight(truncate(plain, innerWidth), innerWidth)))
		case e.dim:
			rows = append(rows, styleSubtle.Render(truncate(plain, innerWidth)))
		default:
			line := e.title
			if e.detail != "" {
				line += "  " + styleSubtle.Render(e.detail)
			}
			rows = append(rows, truncate(line, innerWidth))
		}
	}
	if len(entries) == 0 {
		rows = append(rows, styleSubtle.Render(truncate("Nothing here yet", innerWidth)))
	}

	return panel(width, height, focused).Render(strings.Join(rows, "\n"))
}
