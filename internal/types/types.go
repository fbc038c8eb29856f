package types

import (
	"fmt"
	"time"
)

// AllFeedsID is the ID of the synthetic "All Feeds" entry prepended to listings.
const AllFeedsID int64 = -1

// Group is a named collection of feeds
type Group struct {
	ID   int64
	Name string
	Desc string
}

// Feed is a syndication source
type Feed struct {
	ID        int64
	GroupID   int64
	Name      string
	Desc      string
	URL       string
	UpdatedAt time.Time
}

// FeedItem is a single article of a feed
type FeedItem struct {
	ID      int64
	FeedID  int64
	Title   string
	URL     string
	Desc    string
	Content string
	Read    bool
	PubDate time.Time
}

// IsAggregate reports whether the group is the synthetic "All Feeds" entry
func (g Group) IsAggregate() bool {
	return g.ID == AllFeedsID
}

// IsAggregate reports whether the feed is the synthetic "All Feeds" entry
func (f Feed) IsAggregate() bool {
	return f.ID == AllFeedsID
}

// AllFeedsGroup returns the synthetic entry listed before every stored group
func AllFeedsGroup() Group {
	return Group{
		ID:   AllFeedsID,
		Name: "All Feeds",
		Desc: "Articles from every group",
	}
}

// AllFeedsFeed returns the synthetic entry listed before the feeds of a group
func AllFeedsFeed(groupID int64) Feed {
	return Feed{
		ID:      AllFeedsID,
		GroupID: groupID,
		Name:    "All Feeds",
		Desc:    "Articles from every feed in this group",
	}
}

// TabID identifies an open tab independently of its position.
// The zero value is never issued to a live tab.
type TabID struct {
	Slot uint32
	Gen  uint32
}

// IsZero reports whether the id was never issued
func (id TabID) IsZero() bool {
	return id.Gen == 0
}

func (id TabID) String() string {
	return fmt.Sprintf("tab#%d.%d", id.Slot, id.Gen)
}
