package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/nuuslees/internal/article"
	"github.com/studiowebux/nuuslees/internal/keybinds"
)

// Reader shows the readable content of one article in a scrollable viewport
type Reader struct {
	viewport viewport.Model
	title    string
	pending  string
	lines    []article.Line
	err      string
	loading  bool
	width    int
}

// NewReader creates an empty reader
func NewReader() *Reader {
	return &Reader{viewport: viewport.New(0, 0)}
}

// Loading marks title as being fetched. The previous content stays visible.
func (r *Reader) Loading(title string) {
	r.loading = true
	r.pending = title
	r.err = ""
	if r.lines == nil {
		r.title = title
	}
}

// Pending returns the title of the article being fetched
func (r *Reader) Pending() string {
	return r.pending
}

// SetContent replaces the content with the rendered article HTML
func (r *Reader) SetContent(title, html string) {
	lines, err := article.Render(html)
	if err != nil {
		r.SetError(err.Error())
		return
	}
	r.title = title
	r.pending = ""
	r.lines = lines
	r.err = ""
	r.loading = false
	r.width = 0
	r.viewport.GotoTop()
}

// SetError shows msg above the current content, which is left intact
func (r *Reader) SetError(msg string) {
	r.err = firstLine(msg)
	r.loading = false
}

// Err returns the inline error message, if any
func (r *Reader) Err() string {
	return r.err
}

// Title returns the title of the displayed article
func (r *Reader) Title() string {
	return r.title
}

// Text returns the displayed article without styling
func (r *Reader) Text() string {
	out := make([]string, len(r.lines))
	for i, l := range r.lines {
		out[i] = l.Text()
	}
	return strings.Join(out, "\n")
}

// apply scrolls the viewport for a reader action and reports whether it was one
func (r *Reader) apply(act keybinds.Action) bool {
	switch act {
	case keybinds.ActionNavigateUp:
		r.viewport.SetYOffset(r.viewport.YOffset - 1)
	case keybinds.ActionNavigateDown:
		r.viewport.SetYOffset(r.viewport.YOffset + 1)
	case keybinds.ActionPageUp:
		r.viewport.SetYOffset(r.viewport.YOffset - max(r.viewport.Height, 1))
	case keybinds.ActionPageDown:
		r.viewport.SetYOffset(r.viewport.YOffset + max(r.viewport.Height, 1))
	case keybinds.ActionGoToTop:
		r.viewport.GotoTop()
	case keybinds.ActionGoToBottom:
		r.viewport.GotoBottom()
	default:
		return false
	}
	return true
}

// render lays the lines out for width columns
func (r *Reader) render(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, line := range r.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		var styled strings.Builder
		for _, run := range line.Runs {
			switch run.Style {
			case article.StyleHeading:
				styled.WriteString(styleHeading.Render(run.Text))
			case article.StyleLink:
				styled.WriteString(styleLink.Render(run.Text))
			default:
				styled.WriteString(run.Text)
			}
		}
		b.WriteString(wrap.Render(styled.String()))
	}
	return b.String()
}

// View renders the reader into width x height cells, border included
func (r *Reader) View(width, height int, focused bool) string {
	innerWidth := width - ViewportBorderWidth
	innerHeight := height - ViewportBorderWidth

	header := []string{styleTitle.Render(truncate(r.title, innerWidth))}
	switch {
	case r.err != "":
		header = append(header, styleError.Render(truncate("! "+r.err, innerWidth)))
	case r.loading:
		header = append(header, styleWarning.Render(truncate("Loading…", innerWidth)))
	}
	if r.title == "" && r.lines == nil && !r.loading && r.err == "" {
		header = []string{styleSubtle.Render(truncate("Select an article to read it", innerWidth))}
	}

	r.viewport.Width = max(innerWidth, 0)
	r.viewport.Height = max(innerHeight-len(header), 0)
	if r.width != innerWidth {
		r.width = innerWidth
		offset := r.viewport.YOffset
		r.viewport.SetContent(r.render(max(innerWidth, 1)))
		r.viewport.SetYOffset(offset)
	}

	body := strings.Join(header, "\n")
	if r.viewport.Height > 0 && r.lines != nil {
		body += "\n" + r.viewport.View()
	}
	return panel(width, height, focused).Render(body)
}
