package tui

import (
	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// GroupView lists the configured groups. It is the first, permanent tab.
type GroupView struct {
	id     types.TabID
	keys   *keybinds.Registry
	groups []types.Group
	list   listState
	active bool
	mode   mode.Mode
}

// NewGroupView creates the group list hosted in tab id
func NewGroupView(id types.TabID, keys *keybinds.Registry) *GroupView {
	return &GroupView{id: id, keys: keys}
}

// View implements tabs.Tab
func (v *GroupView) View() mode.Kind {
	return mode.GroupView
}

func (v *GroupView) accepts() bool {
	return v.active && v.mode.Kind == v.View()
}

// Selected returns the group under the cursor
func (v *GroupView) Selected() (types.Group, bool) {
	if len(v.groups) == 0 {
		return types.Group{}, false
	}
	return v.groups[v.list.index], true
}

func (v *GroupView) Update(a action.Action) action.Action {
	switch a := a.(type) {
	case action.Refresh:
		v.groups = a.Groups
		v.list.clamp(len(v.groups))
	case action.ChangeTab:
		v.active = a.Tab == v.id
	case action.ModeChange:
		v.mode = a.Mode
	}
	return nil
}

func (v *GroupView) HandleKey(key component.Key) action.Action {
	if !v.accepts() {
		return nil
	}

	act, ok, partial := v.keys.MatchMultiKey(keybinds.ContextList, key.String())
	if partial || !ok {
		return nil
	}
	if v.list.apply(act, len(v.groups)) {
		return nil
	}

	if act == keybinds.ActionOpen {
		g, ok := v.Selected()
		if !ok {
			return nil
		}
		if g.IsAggregate() {
			return action.NewTabArticleViewAll{}
		}
		return action.NewTabFeedView{Group: g}
	}
	return nil
}

func (v *GroupView) HandleMouse(m component.Mouse) action.Action {
	if v.accepts() {
		v.list.scroll(m, len(v.groups))
	}
	return nil
}

func (v *GroupView) Draw(f *component.Frame, area component.Rect) error {
	if err := component.Ensure(area, MinPanelWidth, MinPanelHeight); err != nil {
		return err
	}

	entries := make([]listEntry, len(v.groups))
	for i, g := range v.groups {
		entries[i] = listEntry{title: g.Name, detail: g.Desc}
	}
	f.Render(area, renderList("Groups", entries, &v.list, area.Width, area.Height, true))
	return nil
}
