package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const resetStyle = "\x1b[0m"

// Frame is the canvas of one redraw: a grid of lines that may carry ANSI
// styling. Later renders overwrite earlier ones, which is how popups overlay
// the tab content.
type Frame struct {
	width  int
	height int
	lines  []string
}

// NewFrame creates a blank frame
func NewFrame(width, height int) *Frame {
	width, height = max(width, 0), max(height, 0)
	f := &Frame{width: width, height: height, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range f.lines {
		f.lines[i] = blank
	}
	return f
}

// Area returns the whole frame
func (f *Frame) Area() Rect {
	return Rect{Width: f.width, Height: f.height}
}

// Render writes content into area. Lines beyond the area are cut, shorter
// lines and missing rows are padded with blanks.
func (f *Frame) Render(area Rect, content string) {
	area = area.Intersect(f.Area())
	if area.Empty() {
		return
	}

	rows := strings.Split(content, "\n")
	for i := 0; i < area.Height; i++ {
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		y := area.Y + i
		line := f.lines[y]

		left := fit(ansi.Truncate(line, area.X, ""), area.X)
		right := ansi.TruncateLeft(line, area.X+area.Width, "")
		f.lines[y] = left + resetStyle + fit(row, area.Width) + resetStyle + right
	}
}

// Ensure returns a render error when area is smaller than width x height
func Ensure(area Rect, width, height int) error {
	if area.Width < width || area.Height < height {
		return apperr.Errorf(apperr.KindRender, "area %dx%d is smaller than %dx%d", area.Width, area.Height, width, height)
	}
	return nil
}

// String returns the frame as terminal output
func (f *Frame) String() string {
	return strings.Join(f.lines, "\n")
}

// Line returns row y without styling
func (f *Frame) Line(y int) string {
	if y < 0 || y >= len(f.lines) {
		return ""
	}
	return ansi.Strip(f.lines[y])
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
