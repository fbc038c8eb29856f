package component

// Rect is a cell area of the frame
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the area holds no cell
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SplitTop cuts n rows off the top of r
func SplitTop(r Rect, n int) (top, rest Rect) {
	n = clamp(n, 0, r.Height)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: n}
	rest = Rect{X: r.X, Y: r.Y + n, Width: r.Width, Height: r.Height - n}
	return top, rest
}

// SplitBottom cuts n rows off the bottom of r
func SplitBottom(r Rect, n int) (rest, bottom Rect) {
	n = clamp(n, 0, r.Height)
	rest = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - n}
	bottom = Rect{X: r.X, Y: r.Y + r.Height - n, Width: r.Width, Height: n}
	return rest, bottom
}

// SplitPercent splits r into a left part of pct percent and the remainder
func SplitPercent(r Rect, pct int) (left, right Rect) {
	w := clamp(r.Width*pct/100, 0, r.Width)
	left = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, right
}

// Center returns a width x height area centered in r, shrunk to fit
func Center(r Rect, width, height int) Rect {
	width = clamp(width, 0, r.Width)
	height = clamp(height, 0, r.Height)
	return Rect{
		X:      r.X + (r.Width-width)/2,
		Y:      r.Y + (r.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
