package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/feedsync"
	"github.com/studiowebux/nuuslees/internal/types"
	"github.com/studiowebux/nuuslees/internal/version"
)

type fakeTerminal struct {
	mu        sync.Mutex
	events    chan component.Event
	width     int
	height    int
	frames    []string
	entered   bool
	exited    bool
	suspended int
}

func newFakeTerminal(width, height int) *fakeTerminal {
	return &fakeTerminal{events: make(chan component.Event, 64), width: width, height: height}
}

func (f *fakeTerminal) Enter() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entered = true
	return nil
}

func (f *fakeTerminal) Exit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exited = true
	return nil
}

func (f *fakeTerminal) Suspend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suspended++
	return nil
}

func (f *fakeTerminal) Events() <-chan component.Event {
	return f.events
}

func (f *fakeTerminal) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeTerminal) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

func (f *fakeTerminal) Draw(frame string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeTerminal) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *fakeTerminal) lastFrame() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[len(f.frames)-1]
}

type fakeStore struct {
	mu      sync.Mutex
	groups  []types.Group
	feeds   map[int64][]types.Feed
	items   []types.FeedItem
	content map[int64]string
	read    map[int64]bool
	listErr error
	queries []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups: []types.Group{types.AllFeedsGroup(), {ID: 1, Name: "Tech"}},
		feeds: map[int64][]types.Feed{
			1: {types.AllFeedsFeed(1), {ID: 3, GroupID: 1, Name: "Blog", URL: "https://example.com/feed"}},
		},
		items: []types.FeedItem{
			{ID: 10, FeedID: 3, Title: "First", URL: "https://example.com/1"},
			{ID: 11, FeedID: 3, Title: "Second", URL: "https://example.com/2"},
		},
		content: make(map[int64]string),
		read:    make(map[int64]bool),
	}
}

func (s *fakeStore) record(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
}

func (s *fakeStore) queried(q string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, got := range s.queries {
		if got == q {
			n++
		}
	}
	return n
}

func (s *fakeStore) ListGroups(context.Context) ([]types.Group, error) {
	s.record("groups")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]types.Group(nil), s.groups...), nil
}

func (s *fakeStore) ListFeedsForGroup(_ context.Context, groupID int64) ([]types.Feed, error) {
	s.record("feeds")
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Feed(nil), s.feeds[groupID]...), nil
}

func (s *fakeStore) FeedItemsForFeed(_ context.Context, feedID int64) ([]types.FeedItem, error) {
	s.record("items of feed")
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.FeedItem
	for _, it := range s.items {
		if it.FeedID == feedID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeStore) FeedItemsForGroup(ctx context.Context, _ int64) ([]types.FeedItem, error) {
	s.record("items of group")
	return s.AllFeedItems(ctx)
}

func (s *fakeStore) AllFeedItems(context.Context) ([]types.FeedItem, error) {
	s.record("all items")
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.FeedItem(nil), s.items...), nil
}

func (s *fakeStore) SetItemContent(_ context.Context, id int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[id] = content
	return nil
}

func (s *fakeStore) MarkItemRead(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.read[id] = true
	return nil
}

func (s *fakeStore) stored(id int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[id], s.read[id]
}

type fakeSyncer struct {
	mu      sync.Mutex
	calls   int
	feeds   []string
	gate    chan struct{}
	failed  int
	feedErr error
}

func (f *fakeSyncer) Sync(ctx context.Context, groups []config.Group) feedsync.Report {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	report := feedsync.Report{Groups: len(groups)}
	for range f.failed {
		report.Errors = multierror.Append(report.Errors, errors.New("feed down"))
	}
	return report
}

func (f *fakeSyncer) SyncFeed(_ context.Context, _ int64, fc config.Feed) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeds = append(f.feeds, fc.Link)
	if f.feedErr != nil {
		return 0, f.feedErr
	}
	return 3, nil
}

func (f *fakeSyncer) syncCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeExtractor answers every url containing a key of pages with its value.
// Other urls fail.
type fakeExtractor struct {
	pages map[string]string
}

func (f *fakeExtractor) Extract(_ context.Context, url string) (string, error) {
	for key, page := range f.pages {
		if strings.Contains(url, key) {
			return page, nil
		}
	}
	return "", errors.New("network error: connection refused")
}

type fakeUpdates struct {
	release version.Release
	err     error
}

func (f fakeUpdates) Check(context.Context, string) (version.Release, error) {
	return f.release, f.err
}
