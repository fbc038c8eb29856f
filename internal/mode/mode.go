// Package mode tracks which navigation mode the UI is in.
//
// The base mode follows the active tab (group list, feed list or article
// view). A background refresh overlays Refreshing on top of it and restores
// the base mode when it completes.
package mode

import (
	"fmt"

	"github.com/studiowebux/nuuslees/internal/types"
)

// Kind is the variant of a Mode
type Kind int

const (
	GroupView Kind = iota
	FeedList
	ViewArticles
	Refreshing
)

func (k Kind) String() string {
	switch k {
	case GroupView:
		return "Groups"
	case FeedList:
		return "Feeds"
	case ViewArticles:
		return "Articles"
	case Refreshing:
		return "Refreshing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mode is the current navigation mode. Articles is the snapshot of the active
// article tab and is only set for ViewArticles.
type Mode struct {
	Kind     Kind
	Articles []types.FeedItem
}

func (m Mode) String() string {
	if m.Kind == ViewArticles {
		return fmt.Sprintf("%s (%d)", m.Kind, len(m.Articles))
	}
	return m.Kind.String()
}

// Machine holds the mode and applies transitions
type Machine struct {
	base       Mode
	activeTab  types.TabID
	refreshing bool
	articles   map[types.TabID][]types.FeedItem
}

// NewMachine starts in GroupView
func NewMachine() *Machine {
	return &Machine{
		base:     Mode{Kind: GroupView},
		articles: make(map[types.TabID][]types.FeedItem),
	}
}

// Current returns the effective mode
func (m *Machine) Current() Mode {
	if m.refreshing {
		return Mode{Kind: Refreshing}
	}
	return m.base
}

// Refreshing reports whether a background refresh is running
func (m *Machine) Refreshing() bool {
	return m.refreshing
}

// Accepts reports whether input for a view of the given kind is live
func (m *Machine) Accepts(kind Kind) bool {
	return m.Current().Kind == kind
}

// SelectTab makes tab the active one. kind is the view kind of the tab.
func (m *Machine) SelectTab(tab types.TabID, kind Kind) (Mode, bool) {
	return m.apply(func() {
		m.activeTab = tab
		m.base = Mode{Kind: kind}
		if kind == ViewArticles {
			m.base.Articles = m.articles[tab]
		}
	})
}

// ArticlesLoaded records the article snapshot of tab. The mode changes only
// when tab is the active tab.
func (m *Machine) ArticlesLoaded(tab types.TabID, items []types.FeedItem) (Mode, bool) {
	m.articles[tab] = items
	if tab != m.activeTab || m.base.Kind != ViewArticles {
		return m.Current(), false
	}
	return m.apply(func() {
		m.base = Mode{Kind: ViewArticles, Articles: items}
	})
}

// ForgetTab drops the snapshot of a closed tab
func (m *Machine) ForgetTab(tab types.TabID) {
	delete(m.articles, tab)
}

// BeginRefresh enters Refreshing. It reports false if a refresh is already running.
func (m *Machine) BeginRefresh() (Mode, bool) {
	if m.refreshing {
		return m.Current(), false
	}
	m.refreshing = true
	return m.Current(), true
}

// EndRefresh restores the mode of the active tab
func (m *Machine) EndRefresh() (Mode, bool) {
	if !m.refreshing {
		return m.Current(), false
	}
	m.refreshing = false
	return m.Current(), true
}

// apply runs a transition of the base mode and reports whether the
// effective mode changed.
func (m *Machine) apply(transition func()) (Mode, bool) {
	before := m.Current()
	transition()
	after := m.Current()
	return after, !sameMode(before, after)
}

func sameMode(a, b Mode) bool {
	if a.Kind != b.Kind || len(a.Articles) != len(b.Articles) {
		return false
	}
	for i := range a.Articles {
		if a.Articles[i].ID != b.Articles[i].ID || a.Articles[i].Read != b.Articles[i].Read {
			return false
		}
	}
	return true
}
