// Package article turns web pages into readable, styled text.
//
// Extraction (Extractor) is network-bound and runs off the UI thread.
// Rendering (Render) is a pure transform from article HTML to lines of
// tagged runs; the reader pane decides how each tag looks.
package article

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

// Style tags a run of text
type Style int

const (
	StylePlain Style = iota
	StyleHeading
	StyleLink
)

// Run is a span of text sharing one style
type Run struct {
	Text  string
	Style Style
}

// Line is one output line made of runs. An empty line separates paragraphs.
type Line struct {
	Runs []Run
}

// Text returns the line without styling
func (l Line) Text() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type renderer struct {
	lines   []Line
	current []Run
}

// Render converts article HTML to styled lines
func Render(doc string) ([]Line, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFormat, err, "failed to parse article html")
	}

	r := &renderer{}
	r.walk(root, StylePlain)
	r.flush()

	// trailing separators carry nothing
	for len(r.lines) > 0 && len(r.lines[len(r.lines)-1].Runs) == 0 {
		r.lines = r.lines[:len(r.lines)-1]
	}
	return r.lines, nil
}

func (r *renderer) walk(n *html.Node, style Style) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data, style)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Noscript, atom.Template:
			return
		case atom.Br:
			r.flush()
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			r.flush()
			r.children(n, StyleHeading)
			r.paragraph()
			return
		case atom.P, atom.Blockquote, atom.Pre, atom.Ul, atom.Ol, atom.Table, atom.Figure:
			r.flush()
			r.children(n, style)
			r.paragraph()
			return
		case atom.Li, atom.Div, atom.Tr, atom.Section, atom.Article, atom.Figcaption:
			r.flush()
			r.children(n, style)
			r.flush()
			return
		case atom.A:
			if style == StylePlain {
				style = StyleLink
			}
		}
	}
	r.children(n, style)
}

func (r *renderer) children(n *html.Node, style Style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, style)
	}
}

func (r *renderer) text(data string, style Style) {
	words := strings.Fields(data)
	if len(words) == 0 {
		if len(r.current) > 0 && data != "" {
			r.appendText(" ", style)
		}
		return
	}

	text := strings.Join(words, " ")
	if startsWithSpace(data) && len(r.current) > 0 {
		text = " " + text
	}
	if endsWithSpace(data) {
		text += " "
	}
	r.appendText(text, style)
}

func (r *renderer) appendText(text string, style Style) {
	if len(r.current) == 0 {
		text = strings.TrimLeft(text, " ")
		if text == "" {
			return
		}
	} else if last := r.current[len(r.current)-1]; strings.HasSuffix(last.Text, " ") {
		text = strings.TrimLeft(text, " ")
		if text == "" {
			return
		}
	}

	if n := len(r.current); n > 0 && r.current[n-1].Style == style {
		r.current[n-1].Text += text
		return
	}
	r.current = append(r.current, Run{Text: text, Style: style})
}

// flush ends the current line if it holds text
func (r *renderer) flush() {
	if len(r.current) == 0 {
		return
	}
	last := &r.current[len(r.current)-1]
	last.Text = strings.TrimRight(last.Text, " ")
	if last.Text == "" {
		r.current = r.current[:len(r.current)-1]
	}
	if len(r.current) > 0 {
		r.lines = append(r.lines, Line{Runs: r.current})
	}
	r.current = nil
}

// paragraph ends the current line and leaves one blank line after it
func (r *renderer) paragraph() {
	r.flush()
	if n := len(r.lines); n > 0 && len(r.lines[n-1].Runs) > 0 {
		r.lines = append(r.lines, Line{})
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r\f", rune(s[0]))
}

func endsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r\f", rune(s[len(s)-1]))
}
