package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/apperr"
	"github.com/studiowebux/nuuslees/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nuuslees.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedFeed(t *testing.T, s *Store) (groupID, feedID int64) {
	t.Helper()
	ctx := context.Background()
	groupID, err := s.UpsertGroup(ctx, types.Group{Name: "Tech", Desc: "Technology"})
	require.NoError(t, err)
	feedID, err = s.UpsertFeed(ctx, types.Feed{GroupID: groupID, Name: "Example", URL: "https://example.com/rss", UpdatedAt: time.Now()})
	require.NoError(t, err)
	return groupID, feedID
}

func TestUpsertGroup_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.UpsertGroup(ctx, types.Group{Name: "Tech", Desc: "first"})
	require.NoError(t, err)
	id2, err := s.UpsertGroup(ctx, types.Group{Name: "Tech", Desc: "second"})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	groups, err := s.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.True(t, groups[0].IsAggregate())
	assert.Equal(t, types.Group{ID: id1, Name: "Tech", Desc: "second"}, groups[1])
}

func TestListGroups_Empty(t *testing.T) {
	s := newTestStore(t)

	groups, err := s.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, types.AllFeedsID, groups[0].ID)
}

func TestUpsertFeed_UpdatesMutableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	groupID, feedID := seedFeed(t, s)

	later := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.UpsertFeed(ctx, types.Feed{GroupID: groupID, Name: "Renamed", Desc: "d", URL: "https://example.com/rss", UpdatedAt: later})
	require.NoError(t, err)
	assert.Equal(t, feedID, id)

	feeds, err := s.ListFeedsForGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Equal(t, types.AllFeedsFeed(groupID), feeds[0])
	assert.Equal(t, "Renamed", feeds[1].Name)
	assert.Equal(t, "d", feeds[1].Desc)
	assert.True(t, later.Equal(feeds[1].UpdatedAt))
}

func TestUpsertFeed_UnknownGroupFails(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertFeed(context.Background(), types.Feed{GroupID: 42, Name: "x", URL: "https://x.test/rss"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
}

func TestUpsertFeedItem_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, feedID := seedFeed(t, s)

	item := types.FeedItem{FeedID: feedID, Title: "Hello", URL: "https://example.com/a", PubDate: time.Now()}
	id1, err := s.UpsertFeedItem(ctx, item)
	require.NoError(t, err)
	id2, err := s.UpsertFeedItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	items, err := s.FeedItemsForFeed(ctx, feedID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpsertFeedItem_MergeKeepsContentAndRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, feedID := seedFeed(t, s)

	id, err := s.UpsertFeedItem(ctx, types.FeedItem{FeedID: feedID, Title: "Old", URL: "https://example.com/a", PubDate: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.SetItemContent(ctx, id, "<p>body</p>"))
	require.NoError(t, s.MarkItemRead(ctx, id))

	_, err = s.UpsertFeedItem(ctx, types.FeedItem{FeedID: feedID, Title: "New", URL: "https://example.com/a", PubDate: time.Now()})
	require.NoError(t, err)

	items, err := s.FeedItemsForFeed(ctx, feedID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New", items[0].Title)
	assert.Equal(t, "<p>body</p>", items[0].Content)
	assert.True(t, items[0].Read)
}

func TestUpsertFeedItem_RequiresURL(t *testing.T) {
	s := newTestStore(t)
	_, feedID := seedFeed(t, s)

	_, err := s.UpsertFeedItem(context.Background(), types.FeedItem{FeedID: feedID, Title: "no link"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
}

func TestFeedItemQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	groupID, feedA := seedFeed(t, s)

	otherGroup, err := s.UpsertGroup(ctx, types.Group{Name: "News"})
	require.NoError(t, err)
	feedB, err := s.UpsertFeed(ctx, types.Feed{GroupID: groupID, Name: "B", URL: "https://b.test/rss", UpdatedAt: time.Now()})
	require.NoError(t, err)
	feedC, err := s.UpsertFeed(ctx, types.Feed{GroupID: otherGroup, Name: "C", URL: "https://c.test/rss", UpdatedAt: time.Now()})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, it := range []struct {
		feed int64
		url  string
	}{
		{feedA, "https://example.com/1"},
		{feedB, "https://b.test/1"},
		{feedC, "https://c.test/1"},
	} {
		_, err := s.UpsertFeedItem(ctx, types.FeedItem{FeedID: it.feed, Title: it.url, URL: it.url, PubDate: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	byFeed, err := s.FeedItemsForFeed(ctx, feedB)
	require.NoError(t, err)
	require.Len(t, byFeed, 1)
	assert.Equal(t, "https://b.test/1", byFeed[0].URL)

	byGroup, err := s.FeedItemsForGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, byGroup, 2)
	assert.Equal(t, "https://b.test/1", byGroup[0].URL, "newest first")

	all, err := s.AllFeedItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://c.test/1", all[0].URL)
	assert.True(t, base.Add(2*time.Hour).Equal(all[0].PubDate))
}
