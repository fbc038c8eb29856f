package tabs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/nuuslees/internal/component"
)

// BarStyle styles the tab strip
type BarStyle struct {
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Separator string
}

// Bar is the tab strip: labels and the highlighted one
type Bar struct {
	labels   []string
	selected int
	Style    BarStyle
}

// NewBar creates an empty tab strip
func NewBar() *Bar {
	return &Bar{
		Style: BarStyle{
			Active:    lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
			Inactive:  lipgloss.NewStyle().Padding(0, 1),
			Separator: "│",
		},
	}
}

// Add appends a label
func (b *Bar) Add(label string) {
	b.labels = append(b.labels, label)
}

// Remove drops the label at index
func (b *Bar) Remove(index int) {
	if index < 0 || index >= len(b.labels) {
		return
	}
	b.labels = append(b.labels[:index], b.labels[index+1:]...)
}

// Select highlights the label at index
func (b *Bar) Select(index int) {
	b.selected = index
}

// Labels returns the labels in order
func (b *Bar) Labels() []string {
	return b.labels
}

// Draw renders the strip on the first row of area
func (b *Bar) Draw(f *component.Frame, area component.Rect) error {
	parts := make([]string, len(b.labels))
	for i, label := range b.labels {
		if i == b.selected {
			parts[i] = b.Style.Active.Render(label)
		} else {
			parts[i] = b.Style.Inactive.Render(label)
		}
	}
	f.Render(area, strings.Join(parts, b.Style.Separator))
	return nil
}
