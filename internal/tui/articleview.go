package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	log "github.com/go-pkgz/lgr"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// ArticleSource selects which articles an article tab lists
type ArticleSource int

const (
	SourceAll ArticleSource = iota
	SourceGroup
	SourceFeed
)

type focusArea int

const (
	focusList focusArea = iota
	focusReader
)

// ArticleView is an article list next to a reader
type ArticleView struct {
	id     types.TabID
	keys   *keybinds.Registry
	source ArticleSource
	group  types.Group
	feed   types.Feed

	items  []types.FeedItem
	list   listState
	reader *Reader
	focus  focusArea
	seq    uint64

	active bool
	mode   mode.Mode
	sink   action.Sink
	copy   func(string) error
}

// NewArticleView creates the article tab id. group is used for SourceGroup,
// feed for SourceFeed.
func NewArticleView(id types.TabID, keys *keybinds.Registry, source ArticleSource, group types.Group, feed types.Feed) *ArticleView {
	return &ArticleView{
		id:     id,
		keys:   keys,
		source: source,
		group:  group,
		feed:   feed,
		reader: NewReader(),
		copy:   clipboard.WriteAll,
	}
}

// View implements tabs.Tab
func (v *ArticleView) View() mode.Kind {
	return mode.ViewArticles
}

func (v *ArticleView) RegisterActionSink(sink action.Sink) {
	v.sink = sink
}

func (v *ArticleView) accepts() bool {
	return v.active && v.mode.Kind == v.View()
}

// Title returns the tab label
func (v *ArticleView) Title() string {
	return articleTitle(v.source, v.group, v.feed)
}

func articleTitle(source ArticleSource, group types.Group, feed types.Feed) string {
	switch source {
	case SourceGroup:
		return group.Name + " articles"
	case SourceFeed:
		return feed.Name
	default:
		return "All articles"
	}
}

// Request returns the action loading the articles of this tab
func (v *ArticleView) Request() action.Action {
	switch v.source {
	case SourceGroup:
		return action.RequestUpdateArticleViewGroup{Tab: v.id, Group: v.group}
	case SourceFeed:
		return action.RequestUpdateArticleViewFeed{Tab: v.id, Feed: v.feed}
	default:
		return action.RequestUpdateArticleViewAll{Tab: v.id}
	}
}

// Reader returns the reader pane
func (v *ArticleView) Reader() *Reader {
	return v.reader
}

func (v *ArticleView) selected() (types.FeedItem, bool) {
	if len(v.items) == 0 {
		return types.FeedItem{}, false
	}
	return v.items[v.list.index], true
}

func (v *ArticleView) Update(a action.Action) action.Action {
	switch a := a.(type) {
	case action.UpdateArticleView:
		if a.Tab == v.id {
			v.items = a.Items
			v.list.clamp(len(v.items))
		}
	case action.UpdateReader:
		if a.Tab == v.id {
			v.updateReader(a)
		}
	case action.ActivateReader:
		if a.Tab == v.id {
			v.focus = focusReader
		}
	case action.ActivateFeedList:
		if a.Tab == v.id {
			v.focus = focusList
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

func (v *ArticleView) updateReader(a action.UpdateReader) {
	if a.Seq != v.seq {
		log.Printf("[DEBUG] drop stale reader result for %s, seq %d, want %d", v.id, a.Seq, v.seq)
		return
	}
	if a.Err != "" {
		v.reader.SetError(a.Err)
		return
	}

	title := v.reader.Pending()
	for i := range v.items {
		if v.items[i].ID == a.ItemID {
			// items is shared with the action that delivered it
			items := make([]types.FeedItem, len(v.items))
			copy(items, v.items)
			items[i].Read = true
			items[i].Content = a.Content
			v.items = items
			title = items[i].Title
			break
		}
	}
	v.reader.SetContent(title, a.Content)
}

func (v *ArticleView) HandleKey(key component.Key) action.Action {
	if !v.accepts() {
		return nil
	}
	if v.focus == focusReader {
		return v.handleReaderKey(key)
	}
	return v.handleListKey(key)
}

func (v *ArticleView) handleListKey(key component.Key) action.Action {
	act, ok, partial := v.keys.MatchMultiKey(keybinds.ContextList, key.String())
	if partial || !ok {
		return nil
	}
	if v.list.apply(act, len(v.items)) {
		return nil
	}

	switch act {
	case keybinds.ActionOpen:
		item, ok := v.selected()
		if !ok {
			return nil
		}
		v.seq++
		v.reader.Loading(item.Title)
		if v.sink != nil {
			v.sink.Send(action.ActivateReader{Tab: v.id})
		}
		return action.RequestUpdateReader{Tab: v.id, Item: item, Seq: v.seq}
	case keybinds.ActionRefreshFeed:
		if v.source == SourceFeed {
			return action.RequestRefreshFeed{Tab: v.id, Feed: v.feed}
		}
		return action.Status{Message: "Only a single feed can be refreshed here, press r to sync everything"}
	case keybinds.ActionCopyLink:
		if item, ok := v.selected(); ok {
			return v.copyLink(item.URL)
		}
	}
	return nil
}

func (v *ArticleView) handleReaderKey(key component.Key) action.Action {
	act, ok, partial := v.keys.MatchMultiKey(keybinds.ContextReader, key.String())
	if partial || !ok {
		return nil
	}
	if v.reader.apply(act) {
		return nil
	}

	switch act {
	case keybinds.ActionBack:
		return action.ActivateFeedList{Tab: v.id}
	case keybinds.ActionCopyLink:
		if item, ok := v.selected(); ok {
			return v.copyLink(item.URL)
		}
	}
	return nil
}

func (v *ArticleView) copyLink(url string) action.Action {
	if err := v.copy(url); err != nil {
		return action.Error{Message: fmt.Sprintf("failed to copy link: %v", err)}
	}
	return action.Status{Message: "Link copied"}
}

func (v *ArticleView) HandleMouse(m component.Mouse) action.Action {
	if !v.accepts() {
		return nil
	}
	if v.focus == focusReader {
		switch m.Kind {
		case component.MouseWheelUp:
			v.reader.apply(keybinds.ActionNavigateUp)
		case component.MouseWheelDown:
			v.reader.apply(keybinds.ActionNavigateDown)
		}
		return nil
	}
	v.list.scroll(m, len(v.items))
	return nil
}

func (v *ArticleView) Draw(f *component.Frame, area component.Rect) error {
	if err := component.Ensure(area, 2*MinPanelWidth, MinPanelHeight); err != nil {
		return err
	}

	left, right := component.SplitPercent(area, ArticleListPercent)

	entries := make([]listEntry, len(v.items))
	for i, item := range v.items {
		entries[i] = listEntry{title: item.Title, dim: item.Read}
	}
	f.Render(left, renderList(v.Title(), entries, &v.list, left.Width, left.Height, v.focus == focusList))
	f.Render(right, v.reader.View(right.Width, right.Height, v.focus == focusReader))
	return nil
}
