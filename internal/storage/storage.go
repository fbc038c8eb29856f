// Package storage persists groups, feeds and articles in SQLite.
//
// Every write is an upsert keyed on the natural key of the row (group name,
// feed URL, article URL), so syncing the same configuration twice leaves the
// database unchanged apart from merged fields.
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/nuuslees/internal/apperr"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/migrations"
	"github.com/studiowebux/nuuslees/internal/types"
)

// Store is the storage gateway
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at dbPath and applies migrations
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to create database directory")
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to open database")
	}
	// One connection serializes access from the storage worker and keeps
	// the foreign key pragma on the only session.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to connect to database")
	}

	if err := migrations.Run(db.DB); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to run migrations")
	}

	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

type groupRow struct {
	ID   int64          `db:"id"`
	Name string         `db:"name"`
	Desc sql.NullString `db:"desc"`
}

type feedRow struct {
	ID        int64          `db:"id"`
	GroupID   int64          `db:"group_id"`
	Name      string         `db:"name"`
	Desc      sql.NullString `db:"desc"`
	URL       string         `db:"url"`
	UpdatedAt string         `db:"updated_at"`
}

type itemRow struct {
	ID      int64          `db:"id"`
	FeedID  int64          `db:"feed_id"`
	Title   string         `db:"title"`
	URL     string         `db:"url"`
	Desc    sql.NullString `db:"desc"`
	Content sql.NullString `db:"content"`
	Read    bool           `db:"read"`
	PubDate string         `db:"pub_date"`
}

func (r groupRow) toGroup() types.Group {
	return types.Group{ID: r.ID, Name: r.Name, Desc: r.Desc.String}
}

func (r feedRow) toFeed() types.Feed {
	return types.Feed{
		ID:        r.ID,
		GroupID:   r.GroupID,
		Name:      r.Name,
		Desc:      r.Desc.String,
		URL:       r.URL,
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

func (r itemRow) toItem() types.FeedItem {
	return types.FeedItem{
		ID:      r.ID,
		FeedID:  r.FeedID,
		Title:   r.Title,
		URL:     r.URL,
		Desc:    r.Desc.String,
		Content: r.Content.String,
		Read:    r.Read,
		PubDate: parseTime(r.PubDate),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// UpsertGroup inserts the group or updates its description, returning its id
func (s *Store) UpsertGroup(ctx context.Context, g types.Group) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO groups (name, "desc") VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET "desc" = excluded."desc"
		RETURNING id`,
		g.Name, nullString(g.Desc),
	)
	if err != nil {
		return 0, apperr.Wrapf(apperr.KindStorage, err, "failed to upsert group %q", g.Name)
	}
	return id, nil
}

// UpsertFeed inserts the feed or updates its name, description and timestamp
func (s *Store) UpsertFeed(ctx context.Context, f types.Feed) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO feeds (group_id, name, "desc", url, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name,
			"desc" = excluded."desc",
			updated_at = excluded.updated_at
		RETURNING id`,
		f.GroupID, f.Name, nullString(f.Desc), f.URL, formatTime(f.UpdatedAt),
	)
	if err != nil {
		return 0, apperr.Wrapf(apperr.KindStorage, err, "failed to upsert feed %q", f.URL)
	}
	return id, nil
}

// UpsertFeedItem inserts the article or merges it into the stored row.
// Stored content survives an empty incoming content and the read flag is never cleared.
func (s *Store) UpsertFeedItem(ctx context.Context, item types.FeedItem) (int64, error) {
	if item.URL == "" {
		return 0, apperr.Errorf(apperr.KindStorage, "feed item %q has no url", item.Title)
	}

	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO feed_items (feed_id, title, url, "desc", content, read, pub_date) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			"desc" = excluded."desc",
			content = COALESCE(excluded.content, feed_items.content),
			read = MAX(feed_items.read, excluded.read),
			pub_date = excluded.pub_date
		RETURNING id`,
		item.FeedID, item.Title, item.URL, nullString(item.Desc), nullString(item.Content), item.Read, formatTime(item.PubDate),
	)
	if err != nil {
		return 0, apperr.Wrapf(apperr.KindStorage, err, "failed to upsert feed item %q", item.URL)
	}
	return id, nil
}

// SetItemContent stores the extracted readable content of an article
func (s *Store) SetItemContent(ctx context.Context, id int64, content string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE feed_items SET content = ? WHERE id = ?`, nullString(content), id)
	if err != nil {
		return apperr.Wrapf(apperr.KindStorage, err, "failed to store content of item %d", id)
	}
	return nil
}

// MarkItemRead flags an article as read
func (s *Store) MarkItemRead(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE feed_items SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return apperr.Wrapf(apperr.KindStorage, err, "failed to mark item %d read", id)
	}
	return nil
}

// ListGroups returns the "All Feeds" entry followed by every stored group in insertion order
func (s *Store) ListGroups(ctx context.Context) ([]types.Group, error) {
	var rows []groupRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, "desc" FROM groups ORDER BY id`); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to list groups")
	}

	groups := make([]types.Group, 0, len(rows)+1)
	groups = append(groups, types.AllFeedsGroup())
	for _, r := range rows {
		groups = append(groups, r.toGroup())
	}
	return groups, nil
}

// ListFeedsForGroup returns the "All Feeds" entry followed by the feeds of the group
func (s *Store) ListFeedsForGroup(ctx context.Context, groupID int64) ([]types.Feed, error) {
	var rows []feedRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, group_id, name, "desc", url, updated_at
		FROM feeds WHERE group_id = ? ORDER BY id`,
		groupID,
	)
	if err != nil {
		return nil, apperr.Wrapf(apperr.KindStorage, err, "failed to list feeds of group %d", groupID)
	}

	feeds := make([]types.Feed, 0, len(rows)+1)
	feeds = append(feeds, types.AllFeedsFeed(groupID))
	for _, r := range rows {
		feeds = append(feeds, r.toFeed())
	}
	return feeds, nil
}

const itemColumns = `i.id, i.feed_id, i.title, i.url, i."desc", i.content, i.read, i.pub_date`

// FeedItemsForFeed returns the articles of one feed, newest first
func (s *Store) FeedItemsForFeed(ctx context.Context, feedID int64) ([]types.FeedItem, error) {
	return s.selectItems(ctx, `
		SELECT `+itemColumns+` FROM feed_items i
		WHERE i.feed_id = ?
		ORDER BY i.pub_date DESC, i.id`, feedID)
}

// FeedItemsForGroup returns the articles of every feed in a group, newest first
func (s *Store) FeedItemsForGroup(ctx context.Context, groupID int64) ([]types.FeedItem, error) {
	return s.selectItems(ctx, `
		SELECT `+itemColumns+` FROM feed_items i
		JOIN feeds f ON f.id = i.feed_id
		WHERE f.group_id = ?
		ORDER BY i.pub_date DESC, i.id`, groupID)
}

// AllFeedItems returns every stored article, newest first
func (s *Store) AllFeedItems(ctx context.Context) ([]types.FeedItem, error) {
	return s.selectItems(ctx, `
		SELECT `+itemColumns+` FROM feed_items i
		ORDER BY i.pub_date DESC, i.id`)
}

func (s *Store) selectItems(ctx context.Context, query string, args ...interface{}) ([]types.FeedItem, error) {
	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to list feed items")
	}

	items := make([]types.FeedItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toItem())
	}
	return items, nil
}
