package tui

import (
	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// FeedView lists the feeds of one group
type FeedView struct {
	id     types.TabID
	keys   *keybinds.Registry
	group  types.Group
	feeds  []types.Feed
	list   listState
	active bool
	mode   mode.Mode
}

// NewFeedView creates the feed list of group hosted in tab id
func NewFeedView(id types.TabID, keys *keybinds.Registry, group types.Group) *FeedView {
	return &FeedView{id: id, keys: keys, group: group}
}

// View implements tabs.Tab
func (v *FeedView) View() mode.Kind {
	return mode.FeedList
}

func (v *FeedView) accepts() bool {
	return v.active && v.mode.Kind == v.View()
}

// Request returns the action loading the feeds of this tab
func (v *FeedView) Request() action.Action {
	return action.RequestUpdateFeedView{Tab: v.id, Group: v.group}
}

func (v *FeedView) Update(a action.Action) action.Action {
	switch a := a.(type) {
	case action.UpdateFeedView:
		if a.Tab == v.id {
			v.feeds = a.Feeds
			v.list.clamp(len(v.feeds))
		}
	case action.Refresh:
		return v.Request()
	case action.ChangeTab:
		v.active = a.Tab == v.id
	case action.ModeChange:
		v.mode = a.Mode
	}
	return nil
}

func (v *FeedView) HandleKey(key component.Key) action.Action {
	if !v.accepts() {
		return nil
	}

	act, ok, partial := v.keys.MatchMultiKey(keybinds.ContextList, key.String())
	if partial || !ok {
		return nil
	}
	if v.list.apply(act, len(v.feeds)) {
		return nil
	}

	if act == keybinds.ActionOpen && len(v.feeds) > 0 {
		feed := v.feeds[v.list.index]
		if feed.IsAggregate() {
			return action.NewTabArticleViewGroup{Group: v.group}
		}
		return action.NewTabArticleViewFeed{Feed: feed}
	}
	return nil
}

func (v *FeedView) HandleMouse(m component.Mouse) action.Action {
	if v.accepts() {
		v.list.scroll(m, len(v.feeds))
	}
	return nil
}

func (v *FeedView) Draw(f *component.Frame, area component.Rect) error {
	if err := component.Ensure(area, MinPanelWidth, MinPanelHeight); err != nil {
		return err
	}

	entries := make([]listEntry, len(v.feeds))
	for i, feed := range v.feeds {
		entries[i] = listEntry{title: feed.Name, detail: feed.Desc}
	}
	f.Render(area, renderList(v.group.Name, entries, &v.list, area.Width, area.Height, true))
	return nil
}
