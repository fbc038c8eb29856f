package component

// EventKind is the variant of a terminal event
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventTick
	EventRender
	EventSuspend
	EventResume
	EventQuit
)

// Key is a key press named the way bubbletea names it ("j", "G", "enter", "ctrl+c")
type Key string

func (k Key) String() string {
	return string(k)
}

// MouseKind is the kind of a mouse event
type MouseKind int

const (
	MouseOther MouseKind = iota
	MouseWheelUp
	MouseWheelDown
	MouseLeft
)

// Mouse is a mouse event at a cell
type Mouse struct {
	Kind MouseKind
	X, Y int
}

// Event is produced by the terminal driver
type Event struct {
	Kind   EventKind
	Key    Key
	Mouse  Mouse
	Width  int
	Height int
}

// KeyEvent builds a key event
func KeyEvent(name string) Event {
	return Event{Kind: EventKey, Key: Key(name)}
}

// MouseEvent builds a mouse event
func MouseEvent(kind MouseKind, x, y int) Event {
	return Event{Kind: EventMouse, Mouse: Mouse{Kind: kind, X: x, Y: y}}
}

// ResizeEvent builds a resize event
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}
