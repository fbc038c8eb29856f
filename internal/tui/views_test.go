package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

var (
	tabA = types.TabID{Slot: 1, Gen: 1}
	tabB = types.TabID{Slot: 2, Gen: 1}
)

func testGroups() []types.Group {
	return []types.Group{
		types.AllFeedsGroup(),
		{ID: 1, Name: "Tech", Desc: "Technology"},
		{ID: 2, Name: "News"},
	}
}

func testItems() []types.FeedItem {
	return []types.FeedItem{
		{ID: 10, FeedID: 3, Title: "First", URL: "https://example.com/1"},
		{ID: 11, FeedID: 3, Title: "Second", URL: "https://example.com/2"},
	}
}

func TestGroupView_OpenGroup(t *testing.T) {
	v := NewGroupView(tabA, keybinds.NewDefaultRegistry())
	v.Update(action.Refresh{Groups: testGroups()})
	activate(v, tabA, mode.GroupView)

	assert.Equal(t, action.NewTabArticleViewAll{}, press(v, "enter"))
	assert.Equal(t, action.NewTabFeedView{Group: testGroups()[1]}, press(v, "j", "l"))
}

func TestGroupView_ListWraps(t *testing.T) {
	v := NewGroupView(tabA, keybinds.NewDefaultRegistry())
	v.Update(action.Refresh{Groups: testGroups()})
	activate(v, tabA, mode.GroupView)

	press(v, "k")
	g, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "News", g.Name)

	press(v, "g", "g")
	g, _ = v.Selected()
	assert.True(t, g.IsAggregate())

	press(v, "G")
	g, _ = v.Selected()
	assert.Equal(t, "News", g.Name)
}

func TestGroupView_IgnoresKeysWhenNotLive(t *testing.T) {
	v := NewGroupView(tabA, keybinds.NewDefaultRegistry())
	v.Update(action.Refresh{Groups: testGroups()})

	// not selected
	v.Update(action.ChangeTab{Tab: tabB, View: mode.FeedList})
	v.Update(action.ModeChange{Mode: mode.Mode{Kind: mode.GroupView}})
	assert.Nil(t, press(v, "enter"))

	// selected but refreshing
	v.Update(action.ChangeTab{Tab: tabA, View: mode.GroupView})
	v.Update(action.ModeChange{Mode: mode.Mode{Kind: mode.Refreshing}})
	assert.Nil(t, press(v, "enter"))

	v.Update(action.ModeChange{Mode: mode.Mode{Kind: mode.GroupView}})
	assert.NotNil(t, press(v, "enter"))
}

func TestFeedView_OpenFeed(t *testing.T) {
	group := types.Group{ID: 1, Name: "Tech"}
	feed := types.Feed{ID: 3, GroupID: 1, Name: "Blog", URL: "https://example.com/feed"}
	v := NewFeedView(tabA, keybinds.NewDefaultRegistry(), group)

	assert.Equal(t, action.RequestUpdateFeedView{Tab: tabA, Group: group}, v.Request())
	assert.Equal(t, v.Request(), v.Update(action.Refresh{}))

	v.Update(action.UpdateFeedView{Tab: tabB, Feeds: []types.Feed{feed}})
	activate(v, tabA, mode.FeedList)
	assert.Nil(t, press(v, "enter"), "reply for another tab must be ignored")

	v.Update(action.UpdateFeedView{Tab: tabA, Feeds: []types.Feed{types.AllFeedsFeed(1), feed}})
	assert.Equal(t, action.NewTabArticleViewGroup{Group: group}, press(v, "enter"))
	assert.Equal(t, action.NewTabArticleViewFeed{Feed: feed}, press(v, "j", "enter"))
}

func newTestArticleView(t *testing.T) (*ArticleView, *recordingSink) {
	t.Helper()
	feed := types.Feed{ID: 3, Name: "Blog"}
	v := NewArticleView(tabA, keybinds.NewDefaultRegistry(), SourceFeed, types.Group{}, feed)
	sink := &recordingSink{}
	v.RegisterActionSink(sink)
	activate(v, tabA, mode.ViewArticles)
	v.Update(action.UpdateArticleView{Tab: tabA, Items: testItems()})
	return v, sink
}

func TestArticleView_OpenRequestsReader(t *testing.T) {
	v, sink := newTestArticleView(t)

	got := press(v, "enter")
	assert.Equal(t, action.RequestUpdateReader{Tab: tabA, Item: testItems()[0], Seq: 1}, got)
	assert.Equal(t, []action.Action{action.ActivateReader{Tab: tabA}}, sink.take())
	assert.Equal(t, "First", v.Reader().Title())
}

func TestArticleView_DropsStaleReaderResult(t *testing.T) {
	v, _ := newTestArticleView(t)

	first := press(v, "enter").(action.RequestUpdateReader)
	second := press(v, "j", "enter").(action.RequestUpdateReader)
	require.Greater(t, second.Seq, first.Seq)

	v.Update(action.UpdateReader{Tab: tabA, Seq: first.Seq, ItemID: 10, Content: "<p>old</p>"})
	assert.Empty(t, v.Reader().Text())

	v.Update(action.UpdateReader{Tab: tabA, Seq: second.Seq, ItemID: 11, Content: "<p>new</p>"})
	assert.Equal(t, "new", v.Reader().Text())
	assert.Equal(t, "Second", v.Reader().Title())
	assert.True(t, v.items[1].Read)
	assert.False(t, v.items[0].Read)
}

func TestArticleView_ExtractionFailureKeepsContent(t *testing.T) {
	v, _ := newTestArticleView(t)

	req := press(v, "enter").(action.RequestUpdateReader)
	v.Update(action.UpdateReader{Tab: tabA, Seq: req.Seq, ItemID: 10, Content: "<p>kept</p>"})
	require.Equal(t, "kept", v.Reader().Text())

	// back to the list, open the second article, which fails
	v.Update(action.ActivateFeedList{Tab: tabA})
	req = press(v, "j", "enter").(action.RequestUpdateReader)
	v.Update(action.UpdateReader{Tab: tabA, Seq: req.Seq, ItemID: 11, Err: "network error: boom"})

	assert.Equal(t, "kept", v.Reader().Text())
	assert.Equal(t, "network error: boom", v.Reader().Err())
	assert.False(t, v.items[1].Read)
}

func TestArticleView_ReaderKeys(t *testing.T) {
	v, _ := newTestArticleView(t)
	var copied string
	v.copy = func(s string) error {
		copied = s
		return nil
	}

	press(v, "enter")
	v.Update(action.ActivateReader{Tab: tabA})

	assert.Equal(t, action.Status{Message: "Link copied"}, press(v, "y"))
	assert.Equal(t, "https://example.com/1", copied)
	assert.Equal(t, action.ActivateFeedList{Tab: tabA}, press(v, "esc"))

	v.copy = func(string) error { return errors.New("no clipboard") }
	got, ok := press(v, "y").(action.Error)
	require.True(t, ok)
	assert.Contains(t, got.Message, "no clipboard")
}

func TestArticleView_RefreshFeed(t *testing.T) {
	v, _ := newTestArticleView(t)
	assert.Equal(t, action.RequestRefreshFeed{Tab: tabA, Feed: v.feed}, press(v, "R"))

	all := NewArticleView(tabB, keybinds.NewDefaultRegistry(), SourceAll, types.Group{}, types.Feed{})
	activate(all, tabB, mode.ViewArticles)
	_, ok := press(all, "R").(action.Status)
	assert.True(t, ok)
	assert.Equal(t, action.RequestUpdateArticleViewAll{Tab: tabB}, all.Update(action.Refresh{}))
}
