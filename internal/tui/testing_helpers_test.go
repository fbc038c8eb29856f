package tui

import (
	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// recordingSink collects actions emitted outside of the return path
type recordingSink struct {
	actions []action.Action
}

func (s *recordingSink) Send(a action.Action) {
	if a != nil {
		s.actions = append(s.actions, a)
	}
}

func (s *recordingSink) take() []action.Action {
	out := s.actions
	s.actions = nil
	return out
}

// activate selects tab id and enters kind, the way the loop would
func activate(c component.Component, id types.TabID, kind mode.Kind) {
	c.Update(action.ChangeTab{Tab: id, View: kind})
	c.Update(action.ModeChange{Mode: mode.Mode{Kind: kind}})
}

// press sends keys one by one and returns the last non-nil follow-up
func press(c component.Component, keys ...string) action.Action {
	var last action.Action
	for _, k := range keys {
		if a := component.HandleEvent(c, component.KeyEvent(k)); a != nil {
			last = a
		}
	}
	return last
}
