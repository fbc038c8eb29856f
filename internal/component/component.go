// Package component defines the contract every UI node implements.
//
// Only Update and Draw are mandatory. The remaining capabilities are
// optional interfaces; the package-level helpers apply the default no-op
// behaviour when a node does not implement one.
package component

import (
	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/config"
)

// Component is a UI node
type Component interface {
	// Update reacts to an action and may return a follow-up action
	Update(a action.Action) action.Action
	// Draw renders the node into area of the frame
	Draw(f *Frame, area Rect) error
}

// SinkRegistrar receives the queue handle used to emit actions outside of
// the return path, typically from background work started by the node.
type SinkRegistrar interface {
	RegisterActionSink(sink action.Sink)
}

// ConfigRegistrar receives the configuration snapshot
type ConfigRegistrar interface {
	RegisterConfig(cfg *config.Config) error
}

// Initializer is called once with the initial terminal area
type Initializer interface {
	Init(area Rect) error
}

// EventHandler takes over raw event handling entirely
type EventHandler interface {
	HandleEvent(ev Event) action.Action
}

// KeyHandler handles key events
type KeyHandler interface {
	HandleKey(key Key) action.Action
}

// MouseHandler handles mouse events
type MouseHandler interface {
	HandleMouse(m Mouse) action.Action
}

// InputCapturer is implemented by modal nodes. While CapturesInput returns
// true the node is the only one receiving key and mouse events.
type InputCapturer interface {
	CapturesInput() bool
}

// RegisterSink hands sink to c if it accepts one
func RegisterSink(c Component, sink action.Sink) {
	if r, ok := c.(SinkRegistrar); ok {
		r.RegisterActionSink(sink)
	}
}

// RegisterConfig hands cfg to c if it accepts one
func RegisterConfig(c Component, cfg *config.Config) error {
	if r, ok := c.(ConfigRegistrar); ok {
		return r.RegisterConfig(cfg)
	}
	return nil
}

// Init initializes c if it needs it
func Init(c Component, area Rect) error {
	if i, ok := c.(Initializer); ok {
		return i.Init(area)
	}
	return nil
}

// HandleEvent routes ev to c. Nodes without their own HandleEvent get key
// events through HandleKey and mouse events through HandleMouse.
func HandleEvent(c Component, ev Event) action.Action {
	if h, ok := c.(EventHandler); ok {
		return h.HandleEvent(ev)
	}

	switch ev.Kind {
	case EventKey:
		if h, ok := c.(KeyHandler); ok {
			return h.HandleKey(ev.Key)
		}
	case EventMouse:
		if h, ok := c.(MouseHandler); ok {
			return h.HandleMouse(ev.Mouse)
		}
	}
	return nil
}

// CapturesInput reports whether c currently holds exclusive input
func CapturesInput(c Component) bool {
	if ic, ok := c.(InputCapturer); ok {
		return ic.CapturesInput()
	}
	return false
}
