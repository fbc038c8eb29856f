// Package action defines the messages exchanged between the dispatch loop,
// UI components and background tasks.
//
// An Action is an immutable value. Components must treat the slices carried
// by an action as read-only because the same value is offered to every
// component of a broadcast.
package action

import (
	"fmt"
	"strings"

	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// Action is a message routed through the queue
type Action interface {
	isAction()
}

// Lifecycle

type Tick struct{}
type Render struct{}
type Resize struct{ Width, Height int }
type Suspend struct{}
type Resume struct{}
type ConfirmQuit struct{}
type Quit struct{}
type Help struct{}

// Tabs

// ChangeTab announces the selected tab. View is the mode kind of that tab.
type ChangeTab struct {
	Index int
	Tab   types.TabID
	View  mode.Kind
}

// RemoveTab announces that the tab at Index was closed
type RemoveTab struct {
	Index int
	Tab   types.TabID
}

type NewTabFeedView struct{ Group types.Group }
type NewTabArticleViewAll struct{}
type NewTabArticleViewGroup struct{ Group types.Group }
type NewTabArticleViewFeed struct{ Feed types.Feed }

// Synchronization

type RequestRefresh struct{}

// Refresh carries the group listing after a sync. Failed counts the skipped
// groups, feeds and items of that sync.
type Refresh struct {
	Groups []types.Group
	Failed int
}

// RequestRefreshFeed re-syncs a single feed for an article tab
type RequestRefreshFeed struct {
	Tab  types.TabID
	Feed types.Feed
}

// Data requests and replies, addressed to one tab

type RequestUpdateFeedView struct {
	Tab   types.TabID
	Group types.Group
}

type RequestUpdateArticleViewAll struct {
	Tab types.TabID
}

type RequestUpdateArticleViewGroup struct {
	Tab   types.TabID
	Group types.Group
}

type RequestUpdateArticleViewFeed struct {
	Tab  types.TabID
	Feed types.Feed
}

type UpdateFeedView struct {
	Tab   types.TabID
	Feeds []types.Feed
}

type UpdateArticleView struct {
	Tab   types.TabID
	Items []types.FeedItem
}

// Reader

// RequestUpdateReader asks for the readable content of Item. Seq increases
// with every request of the same tab so late replies can be recognised.
type RequestUpdateReader struct {
	Tab  types.TabID
	Item types.FeedItem
	Seq  uint64
}

// UpdateReader answers a RequestUpdateReader. Err is set when extraction failed.
type UpdateReader struct {
	Tab     types.TabID
	Seq     uint64
	ItemID  int64
	Content string
	Err     string
}

type ActivateReader struct{ Tab types.TabID }
type ActivateFeedList struct{ Tab types.TabID }

// Mode and status

type ModeChange struct{ Mode mode.Mode }

// Error is a user-visible failure message
type Error struct{ Message string }

// Status is a user-visible informational message
type Status struct{ Message string }

func (Tick) isAction()                          {}
func (Render) isAction()                        {}
func (Resize) isAction()                        {}
func (Suspend) isAction()                       {}
func (Resume) isAction()                        {}
func (ConfirmQuit) isAction()                   {}
func (Quit) isAction()                          {}
func (Help) isAction()                          {}
func (ChangeTab) isAction()                     {}
func (RemoveTab) isAction()                     {}
func (NewTabFeedView) isAction()                {}
func (NewTabArticleViewAll) isAction()          {}
func (NewTabArticleViewGroup) isAction()        {}
func (NewTabArticleViewFeed) isAction()         {}
func (RequestRefresh) isAction()                {}
func (Refresh) isAction()                       {}
func (RequestRefreshFeed) isAction()            {}
func (RequestUpdateFeedView) isAction()         {}
func (RequestUpdateArticleViewAll) isAction()   {}
func (RequestUpdateArticleViewGroup) isAction() {}
func (RequestUpdateArticleViewFeed) isAction()  {}
func (UpdateFeedView) isAction()                {}
func (UpdateArticleView) isAction()             {}
func (RequestUpdateReader) isAction()           {}
func (UpdateReader) isAction()                  {}
func (ActivateReader) isAction()                {}
func (ActivateFeedList) isAction()              {}
func (ModeChange) isAction()                    {}
func (Error) isAction()                         {}
func (Status) isAction()                        {}

// Name returns the type name of an action for logs
func Name(a Action) string {
	name := fmt.Sprintf("%T", a)
	return strings.TrimPrefix(name, "action.")
}

// Describe returns a short log line for an action without dumping payloads
func Describe(a Action) string {
	switch a := a.(type) {
	case Resize:
		return fmt.Sprintf("Resize(%d, %d)", a.Width, a.Height)
	case ChangeTab:
		return fmt.Sprintf("ChangeTab(%d, %s, %s)", a.Index, a.Tab, a.View)
	case RemoveTab:
		return fmt.Sprintf("RemoveTab(%d, %s)", a.Index, a.Tab)
	case Refresh:
		return fmt.Sprintf("Refresh(%d groups, %d failed)", len(a.Groups), a.Failed)
	case UpdateFeedView:
		return fmt.Sprintf("UpdateFeedView(%s, %d feeds)", a.Tab, len(a.Feeds))
	case UpdateArticleView:
		return fmt.Sprintf("UpdateArticleView(%s, %d items)", a.Tab, len(a.Items))
	case RequestUpdateReader:
		return fmt.Sprintf("RequestUpdateReader(%s, item %d, seq %d)", a.Tab, a.Item.ID, a.Seq)
	case UpdateReader:
		if a.Err != "" {
			return fmt.Sprintf("UpdateReader(%s, seq %d, error %q)", a.Tab, a.Seq, a.Err)
		}
		return fmt.Sprintf("UpdateReader(%s, seq %d, %d bytes)", a.Tab, a.Seq, len(a.Content))
	case ModeChange:
		return fmt.Sprintf("ModeChange(%s)", a.Mode)
	case Error:
		return fmt.Sprintf("Error(%q)", a.Message)
	default:
		return Name(a)
	}
}
