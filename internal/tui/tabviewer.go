package tui

import (
	"strconv"

	log "github.com/go-pkgz/lgr"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/tabs"
	"github.com/studiowebux/nuuslees/internal/types"
)

// TabViewer hosts the tab strip and the selected tab. The group list is
// always the first tab and cannot be closed.
type TabViewer struct {
	keys    *keybinds.Registry
	manager *tabs.Manager
	sink    action.Sink
	cfg     *config.Config
	mode    mode.Mode
}

// NewTabViewer creates the viewer with the group list tab
func NewTabViewer(keys *keybinds.Registry) *TabViewer {
	v := &TabViewer{keys: keys, manager: tabs.NewManager(nil)}
	bar := v.manager.Bar()
	bar.Style.Active = styleTabActive
	bar.Style.Inactive = styleTabInactive
	bar.Style.Separator = styleSubtle.Render("│")

	v.manager.AddTab("Groups", func(id types.TabID) tabs.Tab {
		return NewGroupView(id, keys)
	})
	return v
}

// Manager returns the underlying tab manager
func (v *TabViewer) Manager() *tabs.Manager {
	return v.manager
}

func (v *TabViewer) RegisterActionSink(sink action.Sink) {
	v.sink = sink
	v.manager.SetSink(sink)
	for _, t := range v.manager.Components() {
		component.RegisterSink(t, sink)
	}
}

func (v *TabViewer) RegisterConfig(cfg *config.Config) error {
	v.cfg = cfg
	for _, t := range v.manager.Components() {
		if err := component.RegisterConfig(t, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Init selects the group list so the first ChangeTab reaches the queue
func (v *TabViewer) Init(area component.Rect) error {
	for _, t := range v.manager.Components() {
		if err := component.Init(t, area); err != nil {
			return err
		}
	}
	return v.manager.SelectTab(0)
}

func (v *TabViewer) send(a action.Action) {
	if a != nil && v.sink != nil {
		v.sink.Send(a)
	}
}

func (v *TabViewer) Update(a action.Action) action.Action {
	if mc, ok := a.(action.ModeChange); ok {
		v.mode = mc.Mode
	}

	for _, t := range v.manager.Components() {
		v.send(t.Update(a))
	}

	switch a := a.(type) {
	case action.NewTabFeedView:
		fv := v.open(a.Group.Name, func(id types.TabID) tabs.Tab {
			return NewFeedView(id, v.keys, a.Group)
		})
		return fv.(*FeedView).Request()
	case action.NewTabArticleViewAll:
		return v.openArticles(SourceAll, types.Group{}, types.Feed{})
	case action.NewTabArticleViewGroup:
		return v.openArticles(SourceGroup, a.Group, types.Feed{})
	case action.NewTabArticleViewFeed:
		return v.openArticles(SourceFeed, types.Group{}, a.Feed)
	}
	return nil
}

func (v *TabViewer) openArticles(source ArticleSource, group types.Group, feed types.Feed) action.Action {
	t := v.open(articleTitle(source, group, feed), func(id types.TabID) tabs.Tab {
		return NewArticleView(id, v.keys, source, group, feed)
	})
	return t.(*ArticleView).Request()
}

// open adds a tab and hands it what tabs created at startup received:
// the sink, the configuration and the current mode
func (v *TabViewer) open(label string, build func(types.TabID) tabs.Tab) tabs.Tab {
	index, id := v.manager.AddTab(label, build)
	_, t, _ := v.manager.Tab(index)

	component.RegisterSink(t, v.sink)
	if v.cfg != nil {
		if err := component.RegisterConfig(t, v.cfg); err != nil {
			log.Printf("[WARN] configure tab %s: %v", id, err)
		}
	}
	t.Update(action.ModeChange{Mode: v.mode})
	log.Printf("[DEBUG] opened tab %s %q at %d", id, label, index)
	return t
}

func (v *TabViewer) HandleEvent(ev component.Event) action.Action {
	var out action.Action
	for _, t := range v.manager.Components() {
		r := component.HandleEvent(t, ev)
		if out == nil {
			out = r
		} else {
			v.send(r)
		}
	}

	if ev.Kind != component.EventKey {
		return out
	}

	act, ok := v.keys.Match(keybinds.ContextTabs, ev.Key.String())
	if !ok {
		return out
	}

	n := v.manager.Len()
	switch act {
	case keybinds.ActionNextTab:
		v.selectTab((v.manager.Selected() + 1) % n)
	case keybinds.ActionPrevTab:
		v.selectTab((v.manager.Selected() - 1 + n) % n)
	case keybinds.ActionGoToTab:
		if digit, err := strconv.Atoi(ev.Key.String()); err == nil && digit-1 < n {
			v.selectTab(digit - 1)
		}
	case keybinds.ActionCloseTab:
		if sel := v.manager.Selected(); sel > 0 {
			if err := v.manager.RemoveTab(sel); err != nil {
				return action.Error{Message: err.Error()}
			}
		}
	}
	return out
}

func (v *TabViewer) selectTab(index int) {
	if index == v.manager.Selected() {
		return
	}
	if err := v.manager.SelectTab(index); err != nil {
		log.Printf("[WARN] select tab: %v", err)
	}
}

func (v *TabViewer) Draw(f *component.Frame, area component.Rect) error {
	if area.Empty() {
		return nil
	}
	barArea, body := component.SplitTop(area, 1)
	if err := v.manager.Bar().Draw(f, barArea); err != nil {
		return err
	}

	_, t, ok := v.manager.Tab(v.manager.Selected())
	if !ok {
		return nil
	}
	return t.Draw(f, body)
}
