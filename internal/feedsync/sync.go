// Package feedsync fetches the configured feeds and merges them into storage.
//
// A sync never fails as a whole. A group that cannot be stored is skipped with
// all of its feeds, a feed that cannot be fetched or parsed is skipped on its
// own, and an article that cannot be stored is skipped without affecting its
// siblings. Every skip is logged and collected in the Report.
package feedsync

import (
	"context"
	"html"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/hashicorp/go-multierror"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/nuuslees/internal/apperr"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/types"
)

// Store is the subset of the storage gateway the synchronizer writes through
type Store interface {
	UpsertGroup(ctx context.Context, g types.Group) (int64, error)
	UpsertFeed(ctx context.Context, f types.Feed) (int64, error)
	UpsertFeedItem(ctx context.Context, item types.FeedItem) (int64, error)
}

// Report summarizes one sync run
type Report struct {
	Groups int
	Feeds  int
	Items  int
	Errors *multierror.Error
}

// Failed returns the number of skipped groups, feeds and items
func (r Report) Failed() int {
	if r.Errors == nil {
		return 0
	}
	return len(r.Errors.Errors)
}

// Err returns the aggregated failures or nil
func (r Report) Err() error {
	return r.Errors.ErrorOrNil()
}

// Synchronizer merges remote feeds into storage
type Synchronizer struct {
	store       Store
	fetcher     Fetcher
	concurrency int
	now         func() time.Time
	strip       *bluemonday.Policy
}

// New creates a synchronizer fetching up to concurrency feeds of a group at once
func New(store Store, fetcher Fetcher, concurrency int) *Synchronizer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Synchronizer{
		store:       store,
		fetcher:     fetcher,
		concurrency: concurrency,
		now:         time.Now,
		strip:       bluemonday.StrictPolicy(),
	}
}

type fetchResult struct {
	feed *gofeed.Feed
	err  error
}

// Sync fetches every configured feed and upserts groups, feeds and articles
// in configuration order.
func (s *Synchronizer) Sync(ctx context.Context, groups []config.Group) Report {
	var report Report

	for _, g := range groups {
		groupID, err := s.store.UpsertGroup(ctx, types.Group{Name: g.Name, Desc: g.Desc})
		if err != nil {
			log.Printf("[WARN] skip group %q, %v", g.Name, err)
			report.Errors = multierror.Append(report.Errors, err)
			continue
		}
		report.Groups++

		results := s.fetchAll(ctx, g.Feeds)
		for i, fc := range g.Feeds {
			if results[i].err != nil {
				log.Printf("[WARN] skip feed %s, %v", fc.Link, results[i].err)
				report.Errors = multierror.Append(report.Errors, results[i].err)
				continue
			}
			_, items, err := s.mergeFeed(ctx, groupID, fc, results[i].feed, &report)
			if err != nil {
				log.Printf("[WARN] skip feed %s, %v", fc.Link, err)
				report.Errors = multierror.Append(report.Errors, err)
				continue
			}
			report.Feeds++
			report.Items += items
		}
	}

	log.Printf("[INFO] sync completed, groups=%d feeds=%d items=%d failed=%d",
		report.Groups, report.Feeds, report.Items, report.Failed())
	return report
}

// SyncFeed fetches a single feed and merges it into an existing group
func (s *Synchronizer) SyncFeed(ctx context.Context, groupID int64, fc config.Feed) (int64, error) {
	feed, err := s.fetcher.Fetch(ctx, fc.Link)
	if err != nil {
		return 0, err
	}

	var report Report
	feedID, _, err := s.mergeFeed(ctx, groupID, fc, feed, &report)
	if err != nil {
		return 0, err
	}
	if report.Failed() > 0 {
		log.Printf("[WARN] feed %s synced with %d skipped items", fc.Link, report.Failed())
	}
	return feedID, nil
}

// fetchAll downloads the feeds of one group concurrently.
// Results are positional so the merge happens in configuration order.
func (s *Synchronizer) fetchAll(ctx context.Context, feeds []config.Feed) []fetchResult {
	results := make([]fetchResult, len(feeds))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, fc := range feeds {
		g.Go(func() error {
			feed, err := s.fetcher.Fetch(ctx, fc.Link)
			results[i] = fetchResult{feed: feed, err: err}
			// a failed feed must not cancel its siblings
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Synchronizer) mergeFeed(ctx context.Context, groupID int64, fc config.Feed, feed *gofeed.Feed, report *Report) (int64, int, error) {
	name := strings.TrimSpace(feed.Title)
	if fc.Name != nil {
		name = *fc.Name
	}
	desc := s.plainText(feed.Description)
	if fc.Desc != nil {
		desc = *fc.Desc
	}

	feedID, err := s.store.UpsertFeed(ctx, types.Feed{
		GroupID:   groupID,
		Name:      name,
		Desc:      desc,
		URL:       fc.Link,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return 0, 0, err
	}

	stored := 0
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		if it.Link == "" {
			log.Printf("[DEBUG] skip item %q of %s, no link", it.Title, fc.Link)
			report.Errors = multierror.Append(report.Errors,
				apperr.Errorf(apperr.KindFormat, "item %q of %s has no link", it.Title, fc.Link))
			continue
		}

		item := types.FeedItem{
			FeedID:  feedID,
			Title:   strings.TrimSpace(it.Title),
			URL:     it.Link,
			Desc:    s.plainText(it.Description),
			PubDate: s.publishedAt(it),
		}
		if _, err := s.store.UpsertFeedItem(ctx, item); err != nil {
			log.Printf("[WARN] skip item %s, %v", it.Link, err)
			report.Errors = multierror.Append(report.Errors, err)
			continue
		}
		stored++
	}

	return feedID, stored, nil
}

// plainText drops markup from feed-provided descriptions
func (s *Synchronizer) plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(raw)))
}

func (s *Synchronizer) publishedAt(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return s.now()
}
